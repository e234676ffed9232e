package service

import "errors"

var (
	// ErrValidation indicates the draft failed validation and was not
	// persisted. Per-field messages travel in the validate.Result.
	ErrValidation = errors.New("draft failed validation")

	// ErrUnknownField indicates a field name outside the draft schema.
	ErrUnknownField = errors.New("unknown draft field")

	// ErrInvalidValue indicates a value outside a field's enumeration.
	ErrInvalidValue = errors.New("invalid field value")

	// ErrNotStarted indicates a call before Start wired the adapters.
	ErrNotStarted = errors.New("service not started")
)
