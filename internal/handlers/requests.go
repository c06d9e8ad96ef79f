package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/signin/internal/login"
)

// CustomValidator wraps go-playground/validator to implement echo.Validator.
// The login_email and login_password tags are registered on it.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: login.NewValidator()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// LoginRequest is the sign-in form submission. Only size limits are checked
// here; the sign-in rules themselves are applied by the form so that their
// order and messages are preserved.
type LoginRequest struct {
	Email    string `form:"email" validate:"max=320"`
	Password string `form:"password" validate:"max=1024"`
}
