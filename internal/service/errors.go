package service

import (
	"fmt"
)

// ErrInvalidInput wraps the validation error that rejected an estimate request.
type ErrInvalidInput struct {
	error
}

func NewErrInvalidInput(err error) *ErrInvalidInput {
	return &ErrInvalidInput{err}
}

func (e *ErrInvalidInput) Unwrap() error {
	return e.error
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(format string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported report format: %q", format)}
}

type ErrPolicyEvaluation struct {
	error
}

func NewErrPolicyEvaluation(err error) *ErrPolicyEvaluation {
	return &ErrPolicyEvaluation{fmt.Errorf("failed to evaluate site policies: %w", err)}
}
