// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jpath

import "github.com/creachadair/jarena/parser"

// A name is the text of a name and the kind of name it is (Name, QName, or
// Wildcard).
type name struct {
	kind Op
	text string
}

func discard[T any](s struct{}, _ T) struct{} { return s }

func text[T any](p parser.Parser[T]) parser.Parser[string] {
	return parser.Map(parser.Recognize(p), parser.Input.String)
}

var (
	wordChar = parser.OneOf("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz")
	word     = text(parser.Many1(wordChar, struct{}{}, discard[byte]))
	qtext    = parser.Right(parser.Char('\''),
		parser.Left(text(parser.Many(parser.NoneOf("'"), struct{}{}, discard[byte])), parser.Char('\'')))

	integer = parser.Right(parser.ZeroOrOne(parser.Char('-')),
		parser.Many1(parser.OneOf("0123456789"), struct{}{}, discard[byte]))
	index = text(parser.Right(integer,
		parser.Many(parser.Right(parser.Char(','), integer), struct{}{}, discard[struct{}])))

	nameParser = parser.Or(
		parser.Map(parser.Char('*'), func(byte) name { return name{Wildcard, "*"} }),
		parser.Map(word, func(s string) name { return name{Name, s} }),
		parser.Map(qtext, func(s string) name { return name{QName, s} }),
	)

	script = parser.Left(text(parser.Parser[struct{}](balanced)), parser.Char(')'))

	slice = parser.Bind(parser.Combine(
		parser.Option("", index),
		parser.Right(parser.Char(':'), parser.Option("", index)),
		func(lo, hi string) Step { return Step{Op: Slice, Arg1: lo, Arg2: hi} },
	), func(s Step, rest parser.Input) parser.Result[Step] {
		if s.Arg1 == "" && s.Arg2 == "" {
			return parser.None[Step]()
		}
		return parser.Ok(s, rest)
	})

	bracketValue = parser.Or(
		parser.Map(parser.Right(parser.Literal("?("), script), func(s string) Step {
			return Step{Op: Filter, Arg1: s}
		}),
		parser.Map(parser.Right(parser.Char('('), script), func(s string) Step {
			return Step{Op: Script, Arg1: s}
		}),
		slice,
		parser.Map(index, func(s string) Step { return Step{Op: Index, Arg1: s} }),
		parser.Map(nameParser, func(n name) Step { return Step{Op: n.kind, Arg1: n.text} }),
	)

	step = parser.Or(
		parser.Map(parser.Right(parser.Literal(".."), nameParser), func(n name) Step {
			return Step{Op: Recur, Arg1: n.text, Arg2: n.kind.String()}
		}),
		parser.Map(parser.Right(parser.Char('.'), nameParser), func(n name) Step {
			return Step{Op: Member, Arg1: n.text, Arg2: n.kind.String()}
		}),
		parser.Right(parser.Char('['), parser.Left(bracketValue, parser.Char(']'))),
	)

	exprParser = parser.Right(parser.Char('$'),
		parser.Many(step, Expr(nil), func(e Expr, s Step) Expr { return append(e, s) }))
)

// balanced matches text in which parentheses are balanced.
func balanced(in parser.Input) parser.Result[struct{}] {
	return parser.Many(parser.Or(
		parser.Skip(parser.NoneOf("()")),
		parser.Right(parser.Char('('), parser.Left(parser.Parser[struct{}](balanced), parser.Char(')'))),
	), struct{}{}, discard[struct{}])(in)
}
