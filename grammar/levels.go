// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package grammar

import "github.com/creachadair/jarena/parser"

// Levels holds one parser for each nesting depth of a recursive production.
// The parser for a depth is constructed the first time it is applied, and is
// reused thereafter, so a grammar is built once per depth rather than once
// per value parsed.
type Levels[T any] struct {
	build func(depth int) parser.Parser[T]
	ps    []parser.Parser[T]
}

// NewLevels returns a Levels that calls build to construct the parser for
// each depth.
func NewLevels[T any](build func(depth int) parser.Parser[T]) *Levels[T] {
	return &Levels[T]{build: build}
}

// At returns the parser for the given depth.
func (l *Levels[T]) At(depth int) parser.Parser[T] {
	for len(l.ps) <= depth {
		l.ps = append(l.ps, nil)
	}
	if l.ps[depth] == nil {
		var p parser.Parser[T]
		l.ps[depth] = func(in parser.Input) parser.Result[T] {
			if p == nil {
				p = l.build(depth)
			}
			return p(in)
		}
	}
	return l.ps[depth]
}
