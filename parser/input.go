// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package parser

import "go4.org/mem"

// An Input is an immutable view of the unparsed remainder of a source text.
// Positions reported by an Input are absolute offsets into the original
// source, so the spans of values and the locations of failures can be
// recovered after parsing.
type Input struct {
	base     mem.RO
	pos, end int
}

// NewInput constructs an Input spanning all of src.  The caller must not
// modify src while the Input, or any Input derived from it, is in use.
func NewInput(src []byte) Input { return Input{base: mem.B(src), end: len(src)} }

// InputString constructs an Input spanning all of src.
func InputString(src string) Input { return Input{base: mem.S(src), end: len(src)} }

// Len reports the number of unparsed bytes remaining in in.
func (in Input) Len() int { return in.end - in.pos }

// Empty reports whether in has no bytes remaining.
func (in Input) Empty() bool { return in.pos >= in.end }

// Pos reports the absolute offset of the first byte of in.
func (in Input) Pos() int { return in.pos }

// End reports the absolute offset just past the last byte of in.
func (in Input) End() int { return in.end }

// At returns the byte at offset i of in, relative to its start.
// It panics if i is out of range.
func (in Input) At(i int) byte {
	if i < 0 || i >= in.Len() {
		panic("parser: input index out of range")
	}
	return in.base.At(in.pos + i)
}

// Advance returns the suffix of in after skipping n bytes.
// It panics if n exceeds the length of in.
func (in Input) Advance(n int) Input {
	if n < 0 || n > in.Len() {
		panic("parser: advance out of range")
	}
	return Input{base: in.base, pos: in.pos + n, end: in.end}
}

// Bytes returns a read-only view of the remaining bytes of in.
func (in Input) Bytes() mem.RO { return in.base.Slice(in.pos, in.end) }

// String returns a copy of the remaining bytes of in as a string.
func (in Input) String() string { return in.Bytes().StringCopy() }

// Slice returns the Input spanning absolute offsets pos to end of the source
// from which in was derived.
func (in Input) Slice(pos, end int) Input {
	if pos < 0 || end > in.base.Len() || pos > end {
		panic("parser: slice out of range")
	}
	return Input{base: in.base, pos: pos, end: end}
}

// Through returns the prefix of in that ends where rest begins. The rest
// value must be a suffix of in, as returned by a parser applied to in.
func (in Input) Through(rest Input) Input {
	if rest.pos < in.pos || rest.pos > in.end {
		panic("parser: rest is not a suffix of input")
	}
	return Input{base: in.base, pos: in.pos, end: rest.pos}
}
