package jsonarr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedJSON is returned when an element (or a dense buffer) is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrFraming is returned when a streamed buffer does not open with "[\n"
	// or does not close with "\n]".
	ErrFraming = errors.New("incorrect array framing")

	errEncoderClosed = errors.New("jsonarr: encoder already closed")
)

// SyntaxError describes an element that failed to parse.
// Index counts the elements that decoded successfully before it.
type SyntaxError struct {
	Offset int64
	Index  int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonarr: malformed element %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

// Unwrap exposes both ErrMalformedJSON and the parser error.
func (e *SyntaxError) Unwrap() []error {
	return []error{ErrMalformedJSON, e.Err}
}

func framingError(offset int64, reason string) error {
	return fmt.Errorf("jsonarr: %w at offset %d: %s", ErrFraming, offset, reason)
}
