// Package types provides type definitions for the datasets and insight records used throughout brand-insights.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Recoverable error kinds. Routines wrap these with %w and callers compare with errors.Is.
var (
	// ErrDivisionUndefined means a ratio's denominator was zero. The value is "no data", never 0 or 100.
	ErrDivisionUndefined = errors.New("division undefined")
	// ErrInsufficientData means a series is shorter than the window a computation requires.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUnknownKey means a join referenced a brand, context or topic absent from one side.
	ErrUnknownKey = errors.New("unknown key")
)

// FieldError represents a single violation at a specific field path
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaViolation is the only fatal error kind: a required field is missing or has the wrong type.
// It aborts the refresh cycle before any computation runs.
type SchemaViolation struct {
	Source string
	Errors []FieldError
	Cause  error
}

func (e *SchemaViolation) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("schema violation in %s", e.Source))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

func (e *SchemaViolation) Unwrap() error {
	return e.Cause
}

// IsSchemaViolation reports whether err is or wraps a *SchemaViolation.
func IsSchemaViolation(err error) bool {
	var sv *SchemaViolation
	return errors.As(err, &sv)
}
