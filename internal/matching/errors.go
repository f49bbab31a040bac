// internal/matching/errors.go
package matching

import "fmt"

// ValidationError reports a profile that is missing a mandatory field.
// A mentee validation error aborts the whole call; a mentor validation
// error only skips that candidate.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile: %s %s", e.Field, e.Reason)
}

func missingID(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}
