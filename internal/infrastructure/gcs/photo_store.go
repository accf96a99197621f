// Package gcs stores user photos in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/muyik/smartschool/pkg/helpers"
)

// ErrUnsupportedType is returned for photo uploads with a disallowed extension.
var ErrUnsupportedType = errors.New("unsupported image type")

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// PhotoStore uploads user photos and returns their public URLs.
type PhotoStore struct {
	client *storage.Client
	bucket string
}

func NewPhotoStore(client *storage.Client, bucket string) *PhotoStore {
	return &PhotoStore{client: client, bucket: bucket}
}

// Upload stores the photo under photos/<userID>/<random>.<ext>. The random
// object name avoids stale CDN caches when a user replaces their photo.
func (s *PhotoStore) Upload(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedExt[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	objectPath := filepath.ToSlash(filepath.Join("photos", userID.String(), uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}
