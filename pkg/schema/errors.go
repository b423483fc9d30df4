package schema

import (
	"fmt"

	"github.com/aretw0/skilltree/pkg/domain"
)

// ValidationError represents a single setting validation failure.
type ValidationError struct {
	Key    string       // Setting key
	Reason string       // Human-readable reason for failure
	Value  domain.Value // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value.IsZero() {
		return fmt.Sprintf("setting %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("setting %q: %s (got %s %q)", e.Key, e.Reason, e.Value.Kind(), e.Value.AsString())
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

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
