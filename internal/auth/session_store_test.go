package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftmarket/internal/cache"
	"craftmarket/internal/model"
)

// fakeKV stands in for the Redis-backed cache client.
type fakeKV struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	down    bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.down {
		return nil, cache.ErrUnavailable
	}
	return f.entries[key], nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.down {
		return cache.ErrUnavailable
	}
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	if f.down {
		return cache.ErrUnavailable
	}
	delete(f.entries, key)
	return nil
}

func (f *fakeKV) Available() bool { return !f.down }

func TestSessionStore_SaveGetDelete(t *testing.T) {
	kv := newFakeKV()
	store := NewSessionStore(kv)
	ctx := context.Background()

	claims := &Claims{UserID: uuid.New().String(), Role: model.RoleBuyer, Email: "anna@example.com"}
	require.NoError(t, store.Save(ctx, "tok-1", claims))

	// TTL matches the token validity window.
	assert.Equal(t, TokenExpiry, kv.ttls[sessionKeyPrefix+"tok-1"])

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, model.RoleBuyer, got.Role)
	assert.Equal(t, "anna@example.com", got.Email)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	got, err = store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_MissIsNotAnError(t *testing.T) {
	store := NewSessionStore(newFakeKV())

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_UnreachablePropagates(t *testing.T) {
	kv := newFakeKV()
	kv.down = true
	store := NewSessionStore(kv)
	ctx := context.Background()

	assert.False(t, store.Available())

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, cache.ErrUnavailable)

	claims := &Claims{UserID: uuid.New().String(), Role: model.RoleBuyer, Email: "a@example.com"}
	assert.ErrorIs(t, store.Save(ctx, "tok", claims), cache.ErrUnavailable)
	assert.ErrorIs(t, store.Delete(ctx, "tok"), cache.ErrUnavailable)
}
