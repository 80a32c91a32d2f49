// Package forms checks submitted form values before anything is sent to the
// API.
package forms

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidationError blocks a submission locally.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Required rejects a blank value.
func Required(field, label, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", label)}
	}
	return nil
}

// Registration is the admin sign-up form.
type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Validate rejects a mismatched confirmation. The remaining rules are the
// server's.
func (r Registration) Validate() error {
	if r.Password != r.PasswordConfirmation {
		return &ValidationError{Field: "password_confirmation", Message: "Passwords do not match"}
	}
	return nil
}

// Contact is the public contact form.
type Contact struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (c Contact) Validate() error {
	if err := Required("name", "Name", c.Name); err != nil {
		return err
	}
	if err := Required("email", "Email", c.Email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
		return &ValidationError{Field: "email", Message: "Email must be a valid email address"}
	}
	return Required("message", "Message", c.Message)
}

// Optional returns nil for a blank value and a trimmed copy otherwise.
func Optional(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
