package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest lists every field that failed validation.
type ErrInvalidRequest struct {
	error
	Fields []string
}

func newErrInvalidRequest(fieldErrs validator.ValidationErrors) *ErrInvalidRequest {
	fields := make([]string, 0, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, describe(fe))
	}
	return &ErrInvalidRequest{
		error:  fmt.Errorf("%s", strings.Join(msgs, "; ")),
		Fields: fields,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "producing_state":
		return fmt.Sprintf("%s %v is not a known producing state for the selected metal", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s has invalid value %v", fe.Field(), fe.Value())
	}
}
