package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"craftmarket/internal/auth"
	"craftmarket/internal/cache"
	"craftmarket/internal/errors"
	"craftmarket/internal/model"
	"craftmarket/internal/service"
	"craftmarket/internal/validation"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) BecomeMaster(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, in service.UpdateProfileInput) (*model.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validation.NewEchoValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, userID uuid.UUID, role model.Role) {
	c.Set("identity", &auth.Claims{
		UserID: userID.String(),
		Role:   role,
		Email:  "user@example.com",
	})
}

func errorBody(t *testing.T, err error) errors.ErrorResponse {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	body, ok := he.Message.(errors.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse message, got %T", he.Message)
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)

	user := &model.User{ID: uuid.New(), Name: "Анна", Email: "anna@example.com", Role: model.RoleBuyer}
	svc.On("Register", mock.Anything, service.RegisterInput{
		Name:     "Анна",
		Email:    "anna@example.com",
		Password: "Password1",
	}).Return(user, nil)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Анна","email":"anna@example.com","password":"Password1"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "user")
	svc.AssertExpectations(t)
}

func TestAuthHandler_RegisterCollectsAllValidationErrors(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)

	c, _ := jsonContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"not-an-email","password":"short"}`)

	err := h.Register(c)
	require.Error(t, err)

	body := errorBody(t, err)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.GreaterOrEqual(t, len(body.Details), 3)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)

	user := &model.User{ID: uuid.New(), Email: "anna@example.com", Role: model.RoleBuyer}
	svc.On("Login", mock.Anything, "anna@example.com", "Password1").Return("token-123", user, nil)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"anna@example.com","password":"Password1"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "token-123", resp.Token)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)

	svc.On("Login", mock.Anything, "anna@example.com", "wrong-pass").
		Return("", nil, errors.ErrInvalidCredentials)

	c, _ := jsonContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"anna@example.com","password":"wrong-pass"}`)

	err := h.Login(c)
	require.Error(t, err)

	he := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "invalid email or password", errorBody(t, err).Error)
}

func TestAuthHandler_LogoutSucceedsWhenCacheIsDown(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)

	svc.On("Logout", mock.Anything, mock.Anything).Return(cache.ErrUnavailable)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	withIdentity(c, uuid.New(), model.RoleBuyer)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_MeRequiresIdentity(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)

	c, _ := jsonContext(t, http.MethodGet, "/api/auth/me", "")

	err := h.Me(c)
	require.Error(t, err)

	he := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "no token", he.Message)
}

func TestAuthHandler_BecomeMasterTwice(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, nil)
	userID := uuid.New()

	master := &model.User{ID: userID, Role: model.RoleMaster}
	svc.On("BecomeMaster", mock.Anything, userID.String()).Return(master, nil).Once()
	svc.On("BecomeMaster", mock.Anything, userID.String()).Return(nil, errors.ErrAlreadyMaster).Once()

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/become-master", "")
	withIdentity(c, userID, model.RoleBuyer)
	require.NoError(t, h.BecomeMaster(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = jsonContext(t, http.MethodPost, "/api/auth/become-master", "")
	withIdentity(c, userID, model.RoleMaster)
	err := h.BecomeMaster(c)
	require.Error(t, err)

	he := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "already a master or admin", errorBody(t, err).Error)
	svc.AssertExpectations(t)
}
