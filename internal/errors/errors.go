package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when an account no longer resolves.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when the email belongs to another account.
	ErrEmailTaken = errors.New("email already in use")
	// ErrAlreadyMaster is returned when a non-buyer asks to become a master.
	ErrAlreadyMaster = errors.New("already a master or admin")
	// ErrWrongCurrentPassword is returned when a password change fails the
	// current-password check.
	ErrWrongCurrentPassword = errors.New("incorrect current password")
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoPermission is returned when the caller does not own the resource
	// or lacks the required role.
	ErrNoPermission = errors.New("no permission")
	// ErrInvalidOrderStatus is returned for an unknown order status.
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown is an
// infrastructure failure and surfaces as a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrAlreadyMaster):
		return NewHTTPError(http.StatusBadRequest, ErrAlreadyMaster.Error(), "ALREADY_MASTER")
	case errors.Is(err, ErrWrongCurrentPassword):
		return NewHTTPError(http.StatusBadRequest, ErrWrongCurrentPassword.Error(), "WRONG_CURRENT_PASSWORD")
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProductNotFound.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, ErrOrderNotFound.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrNoPermission):
		return NewHTTPError(http.StatusForbidden, ErrNoPermission.Error(), "NO_PERMISSION")
	case errors.Is(err, ErrInvalidOrderStatus):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidOrderStatus.Error(), "INVALID_ORDER_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "server error", "INTERNAL_ERROR")
	}
}
