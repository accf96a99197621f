package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/application"
	"github.com/muyik/smartschool/internal/infrastructure/gcs"
	"github.com/muyik/smartschool/internal/infrastructure/search"
	"github.com/muyik/smartschool/pkg/response"
	"github.com/muyik/smartschool/pkg/validation"
)

// maxPhotoBytes caps user photo uploads at 5MB.
const maxPhotoBytes = 5 << 20

type UserHandler struct {
	Svc    *application.UserService
	Photos *gcs.PhotoStore
	Search *search.UserIndex
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, photos *gcs.PhotoStore, idx *search.UserIndex, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Photos: photos, Search: idx, Logger: logger}
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dto, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "user", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	base, ok := listInputFromQuery(c)
	if !ok {
		return
	}
	in := application.ListUsersInput{ListInput: base}
	if v := c.Query("genderId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid genderId", nil)
			return
		}
		in.GenderID = &id
	}
	if v := c.Query("schoolClassId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid schoolClassId", nil)
			return
		}
		in.SchoolClassID = &id
	}
	if v := c.Query("hasLeftSchool"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid hasLeftSchool", nil)
			return
		}
		in.HasLeftSchool = &b
	}

	page, err := h.Svc.List(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "users", nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in application.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dto, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto, "user created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in application.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dto, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

// UploadPhoto handles POST /api/app/users/:id/photo with a multipart "photo"
// part. The file goes to object storage first; the URL is persisted after.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	if h.Photos == nil {
		response.Error(c, http.StatusServiceUnavailable, "photo storage not configured", nil)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	if fh.Size > maxPhotoBytes {
		response.Error(c, http.StatusBadRequest, "photo exceeds 5MB limit", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable photo file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Photos.Upload(c.Request.Context(), id, fh.Filename, f)
	if err != nil {
		if errors.Is(err, gcs.ErrUnsupportedType) {
			response.Error(c, http.StatusBadRequest, "unsupported image type, use jpg, jpeg, png or gif", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", id).Error("photo upload failed")
		}
		response.Error(c, http.StatusInternalServerError, "photo upload failed", nil)
		return
	}

	dto, err := h.Svc.SetPhoto(c.Request.Context(), id, url)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "photo uploaded", nil)
}

// SearchUsers handles GET /api/app/users/search?q=...&size=...
func (h *UserHandler) SearchUsers(c *gin.Context) {
	if h.Search == nil {
		response.Error(c, http.StatusServiceUnavailable, "search not configured", nil)
		return
	}
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing q parameter", nil)
		return
	}
	size := 0
	if v := c.Query("size"); v != "" {
		size, _ = strconv.Atoi(v)
	}
	hits, err := h.Search.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user search failed")
		}
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
