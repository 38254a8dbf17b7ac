package checklist

import "errors"

var (
	// ErrInvalidInput marks validation failures; handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured is returned when the document or blob store has no
	// usable credentials; handlers map it to 500 with an explanatory body.
	ErrNotConfigured = errors.New("store is not configured")
)
