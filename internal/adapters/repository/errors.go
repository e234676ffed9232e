package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrMissingID       = errors.New("record id is required")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
