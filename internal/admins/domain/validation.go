package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit, in bytes.
	MaxPasswordLength = 72
)

// ValidationError reports a rejected field of a request body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Normalize trims the request fields and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate applies the registration rules: every field present, a plausible
// email, a password of MinPasswordLength characters up to MaxPasswordLength
// bytes that matches its confirmation.
func (r RegisterRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "The name field is required."}
	}
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "The email field is required."}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ValidationError{Field: "email", Message: "The email must be a valid email address."}
	}
	if len(r.Password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("The password must be at least %d characters.", MinPasswordLength),
		}
	}
	if len(r.Password) > MaxPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("The password may not be greater than %d bytes.", MaxPasswordLength),
		}
	}
	if r.Password != r.PasswordConfirmation {
		return &ValidationError{Field: "password", Message: "The password confirmation does not match."}
	}
	return nil
}
