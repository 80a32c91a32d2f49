package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of every date field.
const DateLayout = "2006-01-02"

// ValidationError reports a rejected field of a request body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fields is implemented by the mutable field set of each resource. Clean
// returns a trimmed copy with blank optionals set to nil, or a
// *ValidationError.
type Fields[F any] interface {
	Clean() (F, error)
}

func (f ProjectFields) Clean() (ProjectFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = optional(f.Description)
	if f.Title == "" {
		return f, required("title")
	}
	return f, nil
}

func (f EventFields) Clean() (EventFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Date = optional(f.Date)
	f.Location = optional(f.Location)
	if f.Name == "" {
		return f, required("name")
	}
	if err := checkDate("date", f.Date); err != nil {
		return f, err
	}
	return f, nil
}

func (f CalendarItemFields) Clean() (CalendarItemFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.StartDate = optional(f.StartDate)
	f.EndDate = optional(f.EndDate)
	if f.Title == "" {
		return f, required("title")
	}
	if err := checkDate("start_date", f.StartDate); err != nil {
		return f, err
	}
	if err := checkDate("end_date", f.EndDate); err != nil {
		return f, err
	}
	return f, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func required(field string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("The %s field is required.", field)}
}

func checkDate(field string, v *string) error {
	if v == nil {
		return nil
	}
	if _, err := time.Parse(DateLayout, *v); err != nil {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("The %s is not a valid date.", strings.ReplaceAll(field, "_", " ")),
		}
	}
	return nil
}
