package state

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidRow = errors.New("invalid row")
	ErrNotFound   = errors.New("row not found")

	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// FieldError names the offending field and carries the message shown to
// the user.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationError collects every field problem of one row.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRow
}

// Validate checks f and returns a *ValidationError listing each problem
// in name, email, age order.
func Validate(f Fields) error {
	var errs []FieldError
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required."})
	}
	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "Email is required."})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Message: "Email is invalid."})
	}
	if f.Age <= 0 {
		errs = append(errs, FieldError{Field: "age", Message: "Age must be a positive number."})
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
