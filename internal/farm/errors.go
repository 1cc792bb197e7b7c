package farm

import (
	"fmt"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidInput is the single failure kind of the emission pipeline.
// Every *InvalidInputError matches it with errors.Is.
const ErrInvalidInput = constError("invalid input")

// InvalidInputError describes a rejected input field.
//
// Field is the name of the offending field as it appears on the wire
// (for example "fertilizer_level" or "livestock"). Accepted lists the values
// the field may take when it is categorical and is empty for numeric fields.
type InvalidInputError struct {
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Accepted []string `json:"accepted,omitempty"`
	Reason   string   `json:"reason"`
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	var b strings.Builder
	b.WriteString(string(ErrInvalidInput))
	b.WriteString(": ")
	b.WriteString(e.Field)
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if len(e.Accepted) > 0 {
		b.WriteString(" (accepted: ")
		b.WriteString(strings.Join(e.Accepted, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidChoice returns an InvalidInputError for a categorical field whose
// value is not one of accepted.
func NewInvalidChoice(field, value string, accepted []string) *InvalidInputError {
	return &InvalidInputError{
		Field:    field,
		Value:    value,
		Accepted: append([]string(nil), accepted...),
		Reason:   fmt.Sprintf("unrecognized value %q", value),
	}
}

// NewInvalidRange returns an InvalidInputError for a numeric field outside its
// permitted range.
func NewInvalidRange(field string, value float64, reason string) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Value:  fmt.Sprintf("%g", value),
		Reason: reason,
	}
}
