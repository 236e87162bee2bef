package aiquiz

import (
	"errors"
	"fmt"
)

var ErrNoJSONObject = errors.New("no JSON object found")

// ExtractionError means the model output held no JSON object at all.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "extract quiz json: " + e.Err.Error() }

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError wraps a JSON syntax error in an extracted candidate.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse quiz json: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError describes the first rule a decoded payload breaks. Index is
// the question position, or -1 for the top level.
type SchemaError struct {
	Index  int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		if e.Field == "" {
			return "quiz schema: " + e.Reason
		}
		return fmt.Sprintf("quiz schema: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("quiz schema: questions[%d].%s: %s", e.Index, e.Field, e.Reason)
}

type GenerationFailedError struct {
	Attempts int
	LastErr  error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("quiz generation failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *GenerationFailedError) Unwrap() error { return e.LastErr }

// retryable reports whether err came from the model output rather than the
// call itself.
func retryable(err error) bool {
	var ee *ExtractionError
	var pe *ParseError
	var se *SchemaError
	return errors.As(err, &ee) || errors.As(err, &pe) || errors.As(err, &se)
}
