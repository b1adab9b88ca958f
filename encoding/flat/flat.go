// Package flat implements the bit-packed binary encoding of
// compiled validator programs.
//
// The encoding is bit-level, not byte-aligned: the term tree uses a
// small fixed tag alphabet, integers use zig-zag plus 7-bit
// little-endian chunking, and byte strings are byte-aligned by a
// padding sequence and framed in length-prefixed chunks of at most
// 255 bytes. Encoding is deterministic: equal terms always produce
// identical bytes, which downstream content hashing relies on.
package flat

import "github.com/v0d1ch/aiken/errors"

var (
	// ErrTruncated means the input ended before the program was
	// fully read.
	ErrTruncated = errors.New("unexpected end of input")

	// ErrBadTag means an unknown term, type, or builtin tag value.
	ErrBadTag = errors.New("invalid tag")

	// ErrChunkLength means a chunk length field exceeds the
	// remaining input.
	ErrChunkLength = errors.New("chunk length exceeds remaining input")

	// ErrPadding means a byte-alignment padding sequence is
	// malformed.
	ErrPadding = errors.New("invalid padding")

	// ErrTrailingGarbage means input remained after the root term
	// and final padding were fully read.
	ErrTrailingGarbage = errors.New("trailing garbage after program")

	// ErrRange means a decoded value is out of range.
	ErrRange = errors.New("value out of range")
)
