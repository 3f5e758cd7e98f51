package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the referenced order, customer or product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed or missing caller input.
	ErrValidation = errors.New("invalid input")

	// ErrRateLimited: contact relay only, so the UI can show a specific
	// message instead of a generic failure.
	ErrRateLimited = errors.New("rate limited")
)

// DependencyError wraps a database, storage or mail transport failure. The
// core never retries these; the caller decides.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func dependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

// RenderError wraps a PDF generation failure. Fatal for the request; there is
// no degraded fallback document.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render receipt: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
