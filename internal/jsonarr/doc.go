// Package jsonarr encodes and decodes JSON arrays in a line-framed layout so
// that very large dumps can be written and read one element at a time.
//
// # Wire Format
//
// A streamed array opens with "[" and a newline, places every element on its
// own line terminated by ",\n", and closes the last element with "\n]":
//
//	[
//	{"name":"a"},
//	{"name":"b"}
//	]
//
// An array with no elements is written as the two bytes "[]". Decoding also
// accepts "[\n]" as an empty array.
//
// Elements are produced by encoding/json, which never emits a raw newline in
// compact output, so a newline is always a frame boundary.
//
// # Dense Mode
//
// Passing streamed=false to the encoder or decoder switches to an ordinary
// JSON array ("[a,b]") for consumers that parse the file in one go.
//
// # Usage
//
//	enc := jsonarr.NewEncoder(f, true)
//	for _, c := range coins {
//		if err := enc.Encode(c); err != nil {
//			return err
//		}
//	}
//	return enc.Close()
//
//	dec := jsonarr.NewDecoder(f, true)
//	for {
//		var c Coin
//		if err := dec.Decode(&c); err == io.EOF {
//			break
//		} else if err != nil {
//			return err
//		}
//	}
package jsonarr
