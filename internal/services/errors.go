package services

import (
	"errors"
	"fmt"
)

// Stable error kinds the HTTP boundary maps to status codes. Services wrap
// these with fmt.Errorf("%w: ...") so handlers can match with errors.Is while
// the message stays specific.
var (
	// ErrValidation covers missing or malformed required fields; the wrapped
	// message names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers references to absent reports, users or comments.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable means the content provider could not be reached;
	// callers may retry.
	ErrUpstreamUnavailable = errors.New("content provider unavailable")

	// ErrStorage wraps durable-store failures. The underlying engine error is
	// carried for logs but is never echoed to API callers.
	ErrStorage = errors.New("storage failure")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
