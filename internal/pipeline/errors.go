package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoArticles indicates the news fetch returned zero articles. The model
// step requires source material, so the run aborts before any model call.
var ErrNoArticles = errors.New("no articles returned for analysis")

// UpstreamError indicates a non-success response from one of the external
// sources. It aborts the run.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failure: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError indicates the model output was not valid JSON even after
// stripping code fences. Raw carries the offending text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError indicates the model output parsed as JSON but violated
// the active schema: a required field was missing, empty, wrong-typed, or
// out of range.
type ValidationError struct {
	Constraint string
	Raw        string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model output failed validation: %s", e.Constraint)
}

// StorageError indicates the report insert was rejected. The fetched news
// and model work is not retried.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("report insert rejected: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
