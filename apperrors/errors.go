package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError rejects a request before any external call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError wraps a failure of an external collaborator (inventory store,
// catalog, LLM, image service, message bus).
type UpstreamError struct {
	Service string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("An Exception Occurred while %s --> %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(service, op string, err error) error {
	return &UpstreamError{Service: service, Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ServiceOf reports which upstream service failed, or "" when err is not an
// upstream failure.
func ServiceOf(err error) string {
	var u *UpstreamError
	if errors.As(err, &u) {
		return u.Service
	}

	return ""
}
