package login

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validation tags registered on every validator produced by this package.
const (
	TagEmail    = "login_email"
	TagPassword = "login_password"
)

var (
	// Whitespace covers Unicode space separators, line terminators, VT and
	// the BOM, not only the ASCII set matched by \s.
	emailPattern = regexp.MustCompile(`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

	// Line terminators never count toward the password length.
	passwordLength = regexp.MustCompile(`^[^\r\n\x{2028}\x{2029}]{8,}$`)
	hasLower       = regexp.MustCompile(`[a-z]`)
	hasUpper       = regexp.MustCompile(`[A-Z]`)
	hasDigit       = regexp.MustCompile(`[0-9]`)
)

var credentialsValidator = NewValidator()

// Credentials is the pair submitted by the form.
type Credentials struct {
	Email    string `validate:"login_email"`
	Password string `validate:"login_password"`
}

// IsValidEmail reports whether text looks like local@domain.tld. Matching is
// done on the lower-cased input.
func IsValidEmail(text string) bool {
	// cases.Caser is stateful and must not be shared between goroutines.
	lower := cases.Lower(language.Und).String(text)
	return emailPattern.MatchString(lower)
}

// IsValidPassword reports whether text has at least 8 characters, one
// lowercase letter, one uppercase letter and one digit. Length is counted in
// runes, so a character outside the Basic Multilingual Plane (an emoji, say)
// counts once rather than as two UTF-16 code units.
func IsValidPassword(text string) bool {
	return passwordLength.MatchString(text) &&
		hasLower.MatchString(text) &&
		hasUpper.MatchString(text) &&
		hasDigit.MatchString(text)
}

// RegisterValidations installs the login_email and login_password tags on v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagPassword, func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
}

// NewValidator returns a validator with the login tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the email first and only looks at the password when the
// email is valid. It returns ErrInvalidEmail, ErrInvalidPassword or nil.
func Validate(c Credentials) error {
	if err := credentialsValidator.Var(c.Email, TagEmail); err != nil {
		return ErrInvalidEmail
	}
	if err := credentialsValidator.Var(c.Password, TagPassword); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
