package pipeline

import (
	"errors"
	"strings"

	"github.com/kilianp07/skejul/core/llm"
)

var (
	// ErrInvalidInput is returned when the extracted data lacks required fields.
	ErrInvalidInput = errors.New("invalid timetable input")
	// ErrGroupMissing is returned when a generator answer holds no schedule
	// for the requested class group.
	ErrGroupMissing = errors.New("class group missing from generator output")
	// ErrMalformedOutput is returned when a model answer cannot be decoded.
	ErrMalformedOutput = llm.ErrMalformedOutput
)

// ValidationError lists the required fields that could not be extracted.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required information: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
