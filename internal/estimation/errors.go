package estimation

import "fmt"

// ValidationError reports an input field outside its allowed values.
type ValidationError struct {
	error
	Field string
}

func NewValidationError(field string, format string, args ...any) *ValidationError {
	return &ValidationError{
		error: fmt.Errorf("invalid %s: %s", field, fmt.Sprintf(format, args...)),
		Field: field,
	}
}
