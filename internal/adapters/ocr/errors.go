package ocr

import "errors"

var (
	// ErrNotConfigured indicates no extraction endpoint was set.
	ErrNotConfigured = errors.New("extraction endpoint not configured")

	// ErrExtraction indicates the extraction call failed.
	ErrExtraction = errors.New("extraction failed")
)
