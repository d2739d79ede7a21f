package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned by Pick when a key is not declared by the schema.
	ErrUnknownField = errors.New("field not defined in schema")
	// ErrInvalidDocument is returned by compilers for documents they cannot decode.
	ErrInvalidDocument = errors.New("invalid schema document")
	// ErrNotObject is returned when a schema document does not describe an object.
	ErrNotObject = errors.New("schema does not describe an object")
)

// Error types reported in ValidationError.Type.
const (
	ErrorRequired   = "required"
	ErrorType       = "type"
	ErrorFormat     = "format"
	ErrorConstraint = "constraint"
	ErrorUnknown    = "unknown"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string `json:"name"`             // Field name
	Type   string `json:"type"`             // One of the Error* constants
	Reason string `json:"reason,omitempty"` // Library provided reason
	Value  any    `json:"value,omitempty"`  // The value that failed validation
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = e.Type
	}
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Errors converts an error list into an *AggregateError, or nil when the list is empty.
func Errors(list []ValidationError) error {
	if len(list) == 0 {
		return nil
	}
	errs := make([]error, 0, len(list))
	for i := range list {
		errs = append(errs, &list[i])
	}
	return &AggregateError{Errors: errs}
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
