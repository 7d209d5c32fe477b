package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Display names allow Latin and Cyrillic letters plus spaces.
	nameRe = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z\s]+$`)
	// Russian phone formats: +7/8 prefix, optional separators and parens.
	phoneRe = regexp.MustCompile(`^(\+7|8)?[\s\-]?\(?[489][0-9]{2}\)?[\s\-]?[0-9]{3}[\s\-]?[0-9]{2}[\s\-]?[0-9]{2}$`)
)

// New returns a validator with the marketplace's custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("name_alpha_space", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ru_phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	return v
}

func strongPassword(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// EchoValidator adapts validator for Echo.
type EchoValidator struct {
	validator *validator.Validate
}

// NewEchoValidator builds the validator Echo binds requests against.
func NewEchoValidator() *EchoValidator {
	return &EchoValidator{validator: New()}
}

// Validate implements echo.Validator interface.
func (cv *EchoValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Messages flattens a validation error into itemized messages, one per
// violated field, so the client sees every problem at once.
func Messages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"invalid request"}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		switch fe.Tag() {
		case "required":
			return "name is required"
		case "min":
			return "name must contain at least 2 characters"
		case "max":
			return "name must not exceed 50 characters"
		case "name_alpha_space":
			return "name may contain only letters and spaces"
		}
	case "Email":
		switch fe.Tag() {
		case "required":
			return "email is required"
		case "email":
			return "invalid email address"
		}
	case "Password", "NewPassword":
		switch fe.Tag() {
		case "required":
			return "password is required"
		case "min":
			return "password must contain at least 8 characters"
		case "strong_password":
			return "password must contain an uppercase letter, a lowercase letter and a digit"
		}
	case "CurrentPassword":
		return "current password is required to change password"
	case "Phone":
		return "invalid phone number"
	case "Title":
		return "title is required"
	case "Price":
		return "invalid price"
	}
	return fmt.Sprintf("invalid %s", fe.Field())
}
