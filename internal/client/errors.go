package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for a 404, e.g. an unknown wallet id.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for a 401.
	ErrUnauthorized = errors.New("Unauthorized (bad API key).")

	// ErrTooLarge is returned while reading a body past the response limit.
	ErrTooLarge = errors.New("response exceeds size limit")
)

// StatusError is returned for any other non-200 status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Status code: %d.", e.Code)
}
