package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionStore persists refresh-token sessions in Redis so tokens can be
// revoked server-side. One active session per user.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(userID string) string {
	return "session:" + userID
}

// Save stores the user's current refresh token, replacing any previous one.
func (s *SessionStore) Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(userID), refreshToken, ttl).Err()
}

// Validate reports whether the presented refresh token matches the stored
// session. A missing session means the user logged out or the session expired.
func (s *SessionStore) Validate(ctx context.Context, userID, refreshToken string) (bool, error) {
	stored, err := s.rdb.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == refreshToken, nil
}

// Delete revokes the user's session.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}
