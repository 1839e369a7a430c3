// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package grammar defines the JSON grammar in terms of the combinators of
// package parser.
//
// Scalar productions (Bool, Null, Number, String) are ordinary parsers.
// Arrays and objects are mutually recursive with values, and are built by
// an Env, which bounds nesting depth and records diagnostics for a single
// pass over one input. The package provides two such passes:
//
//   - The sizing pass (SizeValue) computes the number of arena nodes and
//     string bytes a value requires, without building anything.
//   - The extent pass (ExtentValue) finds the span of input occupied by
//     one value, without descending into its elements one by one.
package grammar

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jarena/parser"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the nesting limit used by an Env when none is given.
const DefaultMaxDepth = 1000

// An Env holds the settings and diagnostic state for one pass of a grammar
// over one input. An Env must not be shared among concurrent parses.
//
// When a production fails at a position where a particular token was
// required, the Env records what was expected. The record with the
// furthest offset is the one reported by Failure.
type Env struct {
	maxDepth int
	log      zerolog.Logger

	pos  int    // offset of the furthest failure, or -1
	msg  string // description of the furthest failure
	deep bool   // the nesting limit was exceeded

	expects map[byte]parser.Parser[byte]
	sizes   *Levels[Sizes]
	extents *Levels[parser.Input]
}

// NewEnv constructs an Env that allows up to maxDepth nested arrays and
// objects. If maxDepth <= 0, DefaultMaxDepth is used. If log == nil,
// diagnostics are not logged.
func NewEnv(maxDepth int, log *zerolog.Logger) *Env {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	e := &Env{maxDepth: maxDepth, log: zerolog.Nop(), pos: -1}
	if log != nil {
		e.log = *log
	}
	e.sizes = NewLevels(e.sizeLevel)
	e.extents = NewLevels(e.extentLevel)
	return e
}

// MaxDepth reports the nesting limit of e.
func (e *Env) MaxDepth() int { return e.maxDepth }

// Logger returns the logger associated with e.
func (e *Env) Logger() *zerolog.Logger { return &e.log }

// Failure reports the offset and description of the furthest recorded
// failure. If nothing was recorded, it reports offset 0.
func (e *Env) Failure() (int, string) {
	if e.pos < 0 {
		return 0, "invalid input"
	}
	return e.pos, e.msg
}

// Exceeded reports whether the recorded failure is that the nesting limit
// was exceeded.
func (e *Env) Exceeded() bool { return e.deep }

// Reset discards any recorded failure.
func (e *Env) Reset() { e.pos, e.msg, e.deep = -1, "", false }

func (e *Env) record(pos int, msg string) {
	if e.deep || pos <= e.pos {
		return
	}
	e.pos, e.msg = pos, msg
	e.log.Debug().Int("offset", pos).Str("want", msg).Msg("parse failure")
}

func (e *Env) expected(what string) func(parser.Input) {
	msg := "expected " + what
	return func(in parser.Input) { e.record(in.Pos(), msg) }
}

// Expect returns a parser that matches the byte c, and records that c was
// expected if it is not found.
func (e *Env) Expect(c byte) parser.Parser[byte] {
	if p, ok := e.expects[c]; ok {
		return p
	}
	p := parser.Or(parser.Char(c), parser.FailWith(c, e.expected(strconv.QuoteRune(rune(c)))))
	if e.expects == nil {
		e.expects = make(map[byte]parser.Parser[byte])
	}
	e.expects[c] = p
	return p
}

// StrictQuoted is as Quoted, but once the opening quotation mark has been
// matched, it records a failure if the closing one is missing.
func StrictQuoted[T any](e *Env, body parser.Parser[T]) parser.Parser[T] {
	return parser.Right(parser.Char('"'), parser.Left(body, e.Expect('"')))
}

// Key returns a parser for a quoted object key whose contents are parsed by
// body. If no key is found, it records that a string was expected.
func Key[T any](e *Env, body parser.Parser[T]) parser.Parser[T] {
	var zero T
	return parser.Or(StrictQuoted(e, body), parser.FailWith(zero, e.expected("string")))
}

// Within returns a parser that consumes nothing, and succeeds if a nested
// array or object may be opened at the given depth. Otherwise it fails and
// records that the nesting limit was exceeded.
func (e *Env) Within(depth int) parser.Parser[struct{}] {
	return func(in parser.Input) parser.Result[struct{}] {
		if depth < e.maxDepth {
			return parser.Ok(struct{}{}, in)
		}
		if !e.deep {
			e.pos, e.msg, e.deep = in.Pos(), fmt.Sprintf("nesting depth exceeds %d", e.maxDepth), true
			e.log.Debug().Int("offset", in.Pos()).Int("maxDepth", e.maxDepth).Msg("nesting limit")
		}
		return parser.None[struct{}]()
	}
}

// ExpectValue returns a parser that always fails, recording that a value
// was expected. It is the final alternative of a value production.
func ExpectValue[T any](e *Env) parser.Parser[T] {
	var zero T
	return parser.FailWith(zero, e.expected("value"))
}

// Enclosed returns a parser for body wrapped in the delimiters open and
// close, as an array or object opened at the given depth. Whitespace before
// the close delimiter is skipped.
func Enclosed[T any](e *Env, depth int, open, close byte, body parser.Parser[T]) parser.Parser[T] {
	return parser.Right(parser.Char(open), parser.Right(e.Within(depth),
		parser.Left(parser.Left(body, ws), e.Expect(close))))
}

// Document returns a parser that applies value and then requires that
// nothing but whitespace remains.
func Document[T any](e *Env, value parser.Parser[T]) parser.Parser[T] {
	end := parser.Or(parser.End(), parser.FailWith(struct{}{}, e.expected("end of input")))
	return parser.Left(parser.Left(value, ws), end)
}
