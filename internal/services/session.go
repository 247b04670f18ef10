package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is how long a login stays valid.
	SessionDuration = 7 * 24 * time.Hour
	// sessionKeyPrefix maps token -> user id.
	sessionKeyPrefix = "session:"
	// userSessionKeyPrefix maps user id -> token so old sessions can be
	// revoked on re-login.
	userSessionKeyPrefix = "user_session:"
)

// Sessions issues and validates opaque bearer tokens backed by Redis. The
// token is the only source of the acting identity; handlers never trust a
// user id from the request body.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

// Create issues a new session token for the user. Any existing session for
// the same user is invalidated first so the expiry timer restarts at login.
func (s *Sessions) Create(ctx context.Context, userID string) (string, error) {
	s.invalidateUser(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, userID, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, userSessionKeyPrefix+userID, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the user id behind a token, or ok=false when the token is
// unknown or expired.
func (s *Sessions) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// Invalidate removes a session on logout.
func (s *Sessions) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == nil && userID != "" {
		s.rdb.Del(ctx, userSessionKeyPrefix+userID)
	}
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

func (s *Sessions) invalidateUser(ctx context.Context, userID string) {
	token, err := s.rdb.Get(ctx, userSessionKeyPrefix+userID).Result()
	if err == nil && token != "" {
		s.rdb.Del(ctx, sessionKeyPrefix+token)
	}
	s.rdb.Del(ctx, userSessionKeyPrefix+userID)
}
