package jsonarr

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

type decoderState int

const (
	stateOpen decoderState = iota
	stateElements
	stateDone
)

// Decoder reads a JSON array one element at a time.
//
// In streamed mode only the current element span is held in memory. Framing
// is verified as the input is consumed: Decode reports io.EOF only after the
// closing "\n]" has been seen and nothing follows it.
type Decoder struct {
	r        *bufio.Reader
	streamed bool
	state    decoderState
	offset   int64
	index    int

	pending      []byte
	pendingStart int64
	hasPending   bool

	// dense mode only
	dense []json.RawMessage

	err error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, streamed bool) *Decoder {
	return &Decoder{
		r:        bufio.NewReader(r),
		streamed: streamed,
	}
}

// NewAutoDecoder peeks at the first bytes of r and picks streamed or dense
// decoding accordingly.
func NewAutoDecoder(r io.Reader) *Decoder {
	br := bufio.NewReader(r)
	prefix, _ := br.Peek(len(streamedOpen))
	return &Decoder{
		r:        br,
		streamed: Detect(prefix),
	}
}

// Detect reports whether data starts with the streamed framing. The empty
// array "[]" is valid in both modes and reports false.
func Detect(data []byte) bool {
	return bytes.HasPrefix(data, streamedOpen)
}

// Streamed reports the mode the decoder runs in.
func (d *Decoder) Streamed() bool {
	return d.streamed
}

// Offset returns the number of input bytes consumed.
func (d *Decoder) Offset() int64 {
	return d.offset
}

// Count returns the number of elements decoded so far.
func (d *Decoder) Count() int {
	return d.index
}

// More reports whether another element is available. Framing errors surface
// from the following Decode call.
func (d *Decoder) More() bool {
	if d.hasPending {
		return true
	}
	if err := d.fill(); err != nil {
		d.err = err
		return err != io.EOF
	}
	return true
}

// Decode stores the next element in v. It returns io.EOF once the array has
// been fully consumed and its framing verified.
func (d *Decoder) Decode(v any) error {
	if !d.hasPending {
		if err := d.fill(); err != nil {
			d.err = err
			return err
		}
	}

	span, start := d.pending, d.pendingStart
	d.pending, d.hasPending = nil, false

	if err := json.Unmarshal(span, v); err != nil {
		d.err = &SyntaxError{Offset: start, Index: d.index, Err: err}
		return d.err
	}
	d.index++
	return nil
}

// fill loads the next element span into pending.
func (d *Decoder) fill() error {
	if d.err != nil {
		return d.err
	}
	if !d.streamed {
		return d.fillDense()
	}

	switch d.state {
	case stateOpen:
		if err := d.readOpen(); err != nil {
			return err
		}
		if d.state == stateDone {
			return io.EOF
		}
	case stateDone:
		return io.EOF
	}

	start := d.offset
	line, err := d.r.ReadBytes(newLine)
	d.offset += int64(len(line))
	if err == io.EOF {
		// "[\n]" is the only way input may end without a newline here.
		if d.index == 0 && len(line) == 1 && line[0] == closeBracket {
			d.state = stateDone
			return io.EOF
		}
		return framingError(d.offset, "unexpected end of input")
	}
	if err != nil {
		return err
	}

	n := len(line)
	if n >= 2 && line[n-2] == comma {
		d.setPending(line[:n-2], start)
		return nil
	}

	// No comma before the newline: this is the last element and only "]"
	// may follow.
	if err := d.readClose(); err != nil {
		return err
	}
	d.setPending(line[:n-1], start)
	d.state = stateDone
	return nil
}

func (d *Decoder) setPending(span []byte, start int64) {
	d.pending = span
	d.pendingStart = start
	d.hasPending = true
}

func (d *Decoder) readOpen() error {
	head := make([]byte, len(streamedOpen))
	n, err := io.ReadFull(d.r, head)
	d.offset += int64(n)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && err != io.EOF {
		return err
	}
	head = head[:n]

	if bytes.Equal(head, emptyArray) {
		if err := d.expectEOF(); err != nil {
			return err
		}
		d.state = stateDone
		return nil
	}
	if !bytes.Equal(head, streamedOpen) {
		return framingError(0, `array must open with "[" and a newline`)
	}

	d.state = stateElements
	return nil
}

func (d *Decoder) readClose() error {
	b, err := d.r.ReadByte()
	if err == io.EOF {
		return framingError(d.offset, `missing closing "]"`)
	}
	if err != nil {
		return err
	}
	d.offset++
	if b != closeBracket {
		return framingError(d.offset-1, `array must close with a newline and "]"`)
	}
	return d.expectEOF()
}

func (d *Decoder) expectEOF() error {
	_, err := d.r.ReadByte()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return framingError(d.offset, "trailing bytes after closing bracket")
}

func (d *Decoder) fillDense() error {
	if d.state == stateOpen {
		data, err := io.ReadAll(d.r)
		d.offset += int64(len(data))
		if err != nil {
			return err
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return &SyntaxError{Offset: syntaxOffset(err), Index: 0, Err: err}
		}
		d.dense = elems
		d.state = stateElements
	}

	if len(d.dense) == 0 {
		d.state = stateDone
		return io.EOF
	}
	d.setPending(d.dense[0], 0)
	d.dense = d.dense[1:]
	return nil
}

func syntaxOffset(err error) int64 {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return se.Offset
	}
	return 0
}

// Decode parses a whole buffer into a slice. The result is never nil on
// success, so an empty array decodes to an empty slice.
func Decode[T any](data []byte, streamed bool) ([]T, error) {
	return DecodeFrom[T](bytes.NewReader(data), streamed)
}

// DecodeFrom reads every element from r.
func DecodeFrom[T any](r io.Reader, streamed bool) ([]T, error) {
	out := []T{}
	err := DecodeEach(NewDecoder(r, streamed), func(v T) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeEach calls fn for every element of dec, stopping at the first error.
func DecodeEach[T any](dec *Decoder, fn func(T) error) error {
	for {
		var v T
		err := dec.Decode(&v)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Copy re-encodes every element of src into dst without interpreting it and
// returns the element count. progress, if set, is called with the running
// count after each element. dst is not closed.
func Copy(dst *Encoder, src *Decoder, progress func(count int)) (int, error) {
	n := 0
	err := DecodeEach(src, func(raw json.RawMessage) error {
		if err := dst.Encode(raw); err != nil {
			return err
		}
		n++
		if progress != nil {
			progress(n)
		}
		return nil
	})
	return n, err
}
