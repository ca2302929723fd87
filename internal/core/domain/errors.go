package domain

import (
	"errors"
	"strings"
)

var ErrForbidden = errors.New("access forbidden")

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// NewMissingFieldsError builds a ValidationError for absent required fields.
func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
