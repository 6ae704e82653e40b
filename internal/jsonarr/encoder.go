package jsonarr

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const (
	newLine      = '\n'
	openBracket  = '['
	closeBracket = ']'
	comma        = ','
)

var (
	streamedOpen  = []byte{openBracket, newLine}
	streamedSep   = []byte{comma, newLine}
	streamedClose = []byte{newLine, closeBracket}
	emptyArray    = []byte{openBracket, closeBracket}
)

// Encoder writes a JSON array one element at a time.
//
// The separator after an element is only written once the next element (or
// Close) arrives, so the last element never carries a trailing comma.
type Encoder struct {
	w        *bufio.Writer
	buf      bytes.Buffer
	elem     *json.Encoder
	streamed bool
	count    int
	closed   bool
	err      error
}

// NewEncoder returns an encoder writing to w. With streamed=false the output is
// a dense JSON array, byte-equal to json.Marshal of the whole slice except that
// <, > and & are written as-is, the way hsd writes them.
func NewEncoder(w io.Writer, streamed bool) *Encoder {
	e := &Encoder{
		w:        bufio.NewWriter(w),
		streamed: streamed,
	}
	e.elem = json.NewEncoder(&e.buf)
	e.elem.SetEscapeHTML(false)
	return e
}

// Encode appends v to the array.
func (e *Encoder) Encode(v any) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return errEncoderClosed
	}

	e.buf.Reset()
	if err := e.elem.Encode(v); err != nil {
		return fmt.Errorf("jsonarr: encode element %d: %w", e.count, err)
	}
	data := bytes.TrimSuffix(e.buf.Bytes(), []byte{newLine})

	switch {
	case e.count == 0 && e.streamed:
		e.write(streamedOpen)
	case e.count == 0:
		e.writeByte(openBracket)
	case e.streamed:
		e.write(streamedSep)
	default:
		e.writeByte(comma)
	}
	e.write(data)
	e.count++

	return e.err
}

// Count returns the number of elements encoded so far.
func (e *Encoder) Count() int {
	return e.count
}

// Close terminates the array and flushes buffered output. It does not close
// the underlying writer.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return nil
	}
	e.closed = true

	switch {
	case e.count == 0:
		e.write(emptyArray)
	case e.streamed:
		e.write(streamedClose)
	default:
		e.writeByte(closeBracket)
	}

	if e.err == nil {
		e.err = e.w.Flush()
	}
	return e.err
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte(b)
}

// Encode serializes xs as a single buffer.
func Encode[T any](xs []T, streamed bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, xs, streamed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo serializes xs to w.
func EncodeTo[T any](w io.Writer, xs []T, streamed bool) error {
	enc := NewEncoder(w, streamed)
	for _, x := range xs {
		if err := enc.Encode(x); err != nil {
			return err
		}
	}
	return enc.Close()
}
