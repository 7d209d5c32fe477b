package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"craftmarket/internal/auth"
	"craftmarket/internal/errors"
	"craftmarket/internal/validation"
)

// respondError translates a service error into the standard error envelope.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// respondValidation returns all violated rules at once so the client can show
// every problem in a single round trip.
func respondValidation(err error) error {
	msgs := validation.Messages(err)
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error:   strings.Join(msgs, ", "),
		Code:    "VALIDATION_ERROR",
		Details: msgs,
	})
}

// currentClaims returns the identity the access guard attached upstream.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no token")
	}
	return claims, nil
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, parseErr := uuid.Parse(claims.UserID)
	if parseErr != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authorization error")
	}
	return id, nil
}

// bearerToken extracts the raw token the guard already verified.
func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer"))
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
