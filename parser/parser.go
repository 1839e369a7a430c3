// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package parser implements a small library of parser combinators.
//
// A Parser for T is a pure function from an Input to an optional pair of a
// parsed T and the remaining Input. Parsers hold no mutable state, so
// composing parsers never modifies the operands, and a failed parser can be
// retried at the same position simply by reusing its Input:
//
//	digit := parser.OneOf("0123456789")
//	num := parser.Many1(digit, 0, func(n int, c byte) int { return 10*n + int(c-'0') })
//	if r, ok := num(parser.InputString("125x")).GetOK(); ok {
//	   log.Printf("value %d, rest %q", r.Value, r.Rest)
//	}
//
// On success, the remaining Input is always a suffix of the Input the parser
// was given. On failure the result is absent, and the caller still holds the
// original Input.
package parser

import "github.com/creachadair/mds/value"

// A Pair is the successful outcome of a parser: a value and the remaining
// unparsed input.
type Pair[T any] struct {
	Value T
	Rest  Input
}

// A Result is the outcome of applying a parser. It is absent if the parser
// failed.
type Result[T any] = value.Maybe[Pair[T]]

// A Parser is a pure function that parses a T from the front of an Input.
type Parser[T any] func(Input) Result[T]

// Ok returns a successful result with value v and remaining input rest.
func Ok[T any](v T, rest Input) Result[T] { return value.Just(Pair[T]{Value: v, Rest: rest}) }

// None returns a failed result.
func None[T any]() Result[T] { return value.Absent[Pair[T]]() }

// Char returns a parser that matches the single byte c.
func Char(c byte) Parser[byte] {
	return func(in Input) Result[byte] {
		if in.Empty() || in.At(0) != c {
			return None[byte]()
		}
		return Ok(c, in.Advance(1))
	}
}

// OneOf returns a parser that matches any single byte contained in chars.
func OneOf(chars string) Parser[byte] {
	set := newByteSet(chars)
	return func(in Input) Result[byte] {
		if in.Empty() || !set.has(in.At(0)) {
			return None[byte]()
		}
		return Ok(in.At(0), in.Advance(1))
	}
}

// NoneOf returns a parser that matches any single byte not contained in chars.
func NoneOf(chars string) Parser[byte] {
	set := newByteSet(chars)
	return func(in Input) Result[byte] {
		if in.Empty() || set.has(in.At(0)) {
			return None[byte]()
		}
		return Ok(in.At(0), in.Advance(1))
	}
}

// Literal returns a parser that matches exactly the bytes of lit, and yields
// lit as its value.
func Literal(lit string) Parser[string] {
	return func(in Input) Result[string] {
		if in.Len() < len(lit) {
			return None[string]()
		}
		for i := 0; i < len(lit); i++ {
			if in.At(i) != lit[i] {
				return None[string]()
			}
		}
		return Ok(lit, in.Advance(len(lit)))
	}
}

// End returns a parser that succeeds without consuming anything if and only
// if its input is empty.
func End() Parser[struct{}] {
	return func(in Input) Result[struct{}] {
		if !in.Empty() {
			return None[struct{}]()
		}
		return Ok(struct{}{}, in)
	}
}

// Lift returns a parser that always succeeds with v, consuming nothing.
func Lift[T any](v T) Parser[T] {
	return func(in Input) Result[T] { return Ok(v, in) }
}

// Fail returns a parser that always fails. The argument fixes the result
// type of the parser, so that it can be used as an alternative.
func Fail[T any](T) Parser[T] {
	return func(Input) Result[T] { return None[T]() }
}

// FailWith returns a parser that always fails, after calling f with the
// input at which it was applied. This allows a grammar to record a
// diagnostic at a position where some token is required.
func FailWith[T any](_ T, f func(Input)) Parser[T] {
	return func(in Input) Result[T] {
		f(in)
		return None[T]()
	}
}

type byteSet [4]uint64

func newByteSet(chars string) *byteSet {
	var s byteSet
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		s[c>>6] |= 1 << (c & 63)
	}
	return &s
}

func (s *byteSet) has(c byte) bool { return s[c>>6]&(1<<(c&63)) != 0 }
