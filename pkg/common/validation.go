package common

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ValidationError describes a single parameter that failed validation.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"message"`
}

func (v ValidationError) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("invalid config: %s", v.Reason)
	}
	return fmt.Sprintf("invalid config: %s: %s", v.Field, v.Reason)
}

// Invalid is a shorthand to create a ValidationError with a formatted reason.
func Invalid(field, format string, a ...interface{}) error {
	return ValidationError{Field: field, Reason: fmt.Sprintf(format, a...)}
}

// Violations collects validation errors so all of them can be reported at once.
type Violations struct {
	err error
}

// Add records a violation. nil errors are ignored.
func (v *Violations) Add(err error) {
	v.err = multierr.Append(v.err, err)
}

// Addf records a ValidationError for field.
func (v *Violations) Addf(field, format string, a ...interface{}) {
	v.Add(Invalid(field, format, a...))
}

// Err returns the combined error, or nil if nothing was recorded.
func (v *Violations) Err() error {
	return v.err
}

// ValidationErrors extracts all ValidationErrors from a (combined) error.
// Errors of other types are ignored.
func ValidationErrors(err error) []ValidationError {
	var result []ValidationError
	for _, e := range multierr.Errors(err) {
		var ve ValidationError
		if errors.As(e, &ve) {
			result = append(result, ve)
		}
	}

	return result
}

// IsValidationError returns true if err consists only of ValidationErrors.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	return len(ValidationErrors(err)) == len(multierr.Errors(err))
}
