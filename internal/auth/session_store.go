package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"craftmarket/internal/model"
)

const sessionKeyPrefix = "session:"

// kvStore is the slice of the cache client the session store needs.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Available() bool
}

// SessionStoreInterface defines the session-validity operations consumed by
// the middleware and the auth service.
//
// Get returns (claims, nil) for a live session, (nil, nil) when the backend
// is reachable but holds no entry for the token, and (nil, err) when the
// backend is unreachable.
type SessionStoreInterface interface {
	Save(ctx context.Context, token string, claims *Claims) error
	Get(ctx context.Context, token string) (*Claims, error)
	Delete(ctx context.Context, token string) error
	Available() bool
}

// SessionStore records issued tokens in the cache so that logout can revoke
// them before their signature expires.
type SessionStore struct {
	cache kvStore
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store over the given cache.
func NewSessionStore(cache kvStore) *SessionStore {
	return &SessionStore{cache: cache}
}

type sessionPayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

// Save records the token as currently valid, with TTL equal to the token's
// own validity window. Best-effort: an unreachable backend surfaces as an
// error the caller logs and ignores.
func (s *SessionStore) Save(ctx context.Context, token string, claims *Claims) error {
	payload, err := json.Marshal(sessionPayload{
		UserID: claims.UserID,
		Role:   string(claims.Role),
		Email:  claims.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+token, payload, TokenExpiry)
}

// Get looks the token up in the cache.
func (s *SessionStore) Get(ctx context.Context, token string) (*Claims, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var p sessionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal session payload: %w", err)
	}
	return &Claims{UserID: p.UserID, Role: model.Role(p.Role), Email: p.Email}, nil
}

// Delete revokes the token's session entry, best-effort.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}

// Available reports whether the cache backend is currently reachable.
func (s *SessionStore) Available() bool {
	return s.cache.Available()
}
