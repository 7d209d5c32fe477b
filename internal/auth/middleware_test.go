package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftmarket/internal/model"
)

func guardedEcho(t *testing.T, jwtService *JWTService, sessions SessionStoreInterface, allowDegraded bool) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		claims, ok := IdentityFromContext(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, map[string]string{"email": claims.Email})
	}, Middleware(jwtService, sessions, allowDegraded))
	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func issueAndCache(t *testing.T, jwtService *JWTService, store *SessionStore) string {
	t.Helper()
	claims := &Claims{UserID: uuid.New().String(), Role: model.RoleBuyer, Email: "anna@example.com"}
	token, err := jwtService.Issue(uuid.MustParse(claims.UserID), claims.Role, claims.Email)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), token, claims))
	return token
}

func TestMiddleware_NoToken(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	e := guardedEcho(t, jwtService, NewSessionStore(newFakeKV()), true)

	rec := doRequest(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token")
}

func TestMiddleware_BadSignature(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	e := guardedEcho(t, jwtService, NewSessionStore(newFakeKV()), true)

	forged, err := NewJWTService("other-secret").Issue(uuid.New(), model.RoleBuyer, "a@example.com")
	require.NoError(t, err)

	rec := doRequest(e, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authorization error")
}

func TestMiddleware_AcceptsCachedToken(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	store := NewSessionStore(newFakeKV())
	e := guardedEcho(t, jwtService, store, true)

	token := issueAndCache(t, jwtService, store)

	rec := doRequest(e, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anna@example.com")
}

func TestMiddleware_StripsBearerScheme(t *testing.T) {
	// The extractor must cut the "Bearer " scheme before handing the raw
	// token over; a bare unprefixed header value never reaches validation.
	jwtService := NewJWTService("test-secret")
	store := NewSessionStore(newFakeKV())
	e := guardedEcho(t, jwtService, store, true)

	token := issueAndCache(t, jwtService, store)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token")
}

func TestMiddleware_RejectsRevokedToken(t *testing.T) {
	// Logout deletes the cache entry; the token's signature still verifies
	// but the guard must reject it while the cache is reachable.
	jwtService := NewJWTService("test-secret")
	store := NewSessionStore(newFakeKV())
	e := guardedEcho(t, jwtService, store, true)

	token := issueAndCache(t, jwtService, store)
	require.NoError(t, store.Delete(context.Background(), token))

	rec := doRequest(e, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestMiddleware_CorruptSessionEntryRejected(t *testing.T) {
	// A reachable cache holding an undecodable session entry must reject the
	// token, not ride the degraded-accept path.
	jwtService := NewJWTService("test-secret")
	kv := newFakeKV()
	store := NewSessionStore(kv)
	e := guardedEcho(t, jwtService, store, true)

	token := issueAndCache(t, jwtService, store)
	kv.entries[sessionKeyPrefix+token] = []byte("{not json")

	rec := doRequest(e, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestMiddleware_DegradedCacheAcceptsValidToken(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	kv := newFakeKV()
	store := NewSessionStore(kv)
	e := guardedEcho(t, jwtService, store, true)

	token := issueAndCache(t, jwtService, store)
	kv.down = true

	rec := doRequest(e, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_DegradedCacheRejectsWhenNotAllowed(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	kv := newFakeKV()
	store := NewSessionStore(kv)
	e := guardedEcho(t, jwtService, store, false)

	token := issueAndCache(t, jwtService, store)
	kv.down = true

	rec := doRequest(e, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}
