package services

import (
	"errors"
	"fmt"
)

// ParseError means the model response was not valid JSON after
// fence-stripping. The decoder diagnostic is preserved for the caller.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError means the payload decoded but is missing a mandatory
// top-level key.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// FieldError means a milestone or resource object lacked a mandatory field
// during assembly. Index is the 1-based position in the parsed sequence, or
// 0 when the error is not positional.
type FieldError struct {
	Entity string
	Field  string
	Index  int
}

func (e *FieldError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("%s %d missing required field %q", e.Entity, e.Index, e.Field)
	}
	return fmt.Sprintf("%s missing required field %q", e.Entity, e.Field)
}

// IsGenerationError reports whether err belongs to the generation-pipeline
// taxonomy, i.e. should surface to the user as a failed roadmap generation.
func IsGenerationError(err error) bool {
	var pe *ParseError
	var ve *ValidationError
	var fe *FieldError
	return errors.As(err, &pe) || errors.As(err, &ve) || errors.As(err, &fe)
}
