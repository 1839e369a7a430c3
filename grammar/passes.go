// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package grammar

import "github.com/creachadair/jarena/parser"

// Sizes records the storage required to hold a parsed value in an arena.
type Sizes struct {
	Nodes int // number of nodes
	Bytes int // total bytes of decoded string data
}

// Add returns the element-wise sum of s and t.
func (s Sizes) Add(t Sizes) Sizes {
	return Sizes{Nodes: s.Nodes + t.Nodes, Bytes: s.Bytes + t.Bytes}
}

var scalarSizes = Sizes{Nodes: 1}

// SizeValue returns a parser for a JSON value, preceded by optional
// whitespace, that yields the storage the value requires in an arena:
//
//   - A scalar takes 1 node. A string also takes its decoded length in bytes.
//   - An array takes 1 node plus the sizes of its elements.
//   - An object takes 1 node, plus 1 node and the decoded key length for
//     each member, plus the sizes of the member values.
//
// The depth is the number of arrays and objects enclosing the value.
func (e *Env) SizeValue(depth int) parser.Parser[Sizes] { return e.sizes.At(depth) }

func (e *Env) sizeLevel(depth int) parser.Parser[Sizes] {
	return parser.Right(ws, parser.Or(
		parser.Map(keywordParser, func(string) Sizes { return scalarSizes }),
		parser.Map(numberParser, func(float64) Sizes { return scalarSizes }),
		parser.Map(StrictQuoted(e, stringSizeBody), func(n int) Sizes { return Sizes{Nodes: 1, Bytes: n} }),
		e.sizeArray(depth),
		e.sizeObject(depth),
		ExpectValue[Sizes](e),
	))
}

func (e *Env) sizeArray(depth int) parser.Parser[Sizes] {
	return Enclosed(e, depth, '[', ']',
		parser.SepBy(e.SizeValue(depth+1), comma, scalarSizes, Sizes.Add))
}

func (e *Env) sizeObject(depth int) parser.Parser[Sizes] {
	key := parser.Right(ws, Key(e, stringSizeBody))
	val := parser.Right(ws, parser.Right(e.Expect(':'), e.SizeValue(depth+1)))
	member := parser.Combine(key, val, func(n int, s Sizes) Sizes {
		return Sizes{Nodes: s.Nodes + 1, Bytes: s.Bytes + n}
	})
	return Enclosed(e, depth, '{', '}', parser.SepBy(member, comma, scalarSizes, Sizes.Add))
}

// SizeDocument returns a parser for a complete JSON document that yields
// the storage its value requires in an arena.
func (e *Env) SizeDocument() parser.Parser[Sizes] { return Document(e, e.SizeValue(0)) }

// ExtentValue returns a parser for a JSON value, preceded by optional
// whitespace, that yields the span of input occupied by the value itself,
// not including the leading whitespace. The elements of arrays and objects
// are checked for syntax, but nothing is built.
//
// The depth is the number of arrays and objects enclosing the value.
func (e *Env) ExtentValue(depth int) parser.Parser[parser.Input] { return e.extents.At(depth) }

func (e *Env) extentLevel(depth int) parser.Parser[parser.Input] {
	return parser.Right(ws, parser.Recognize(parser.Or(
		parser.Skip(keywordParser),
		parser.Skip(numberParser),
		parser.Skip(StrictQuoted(e, stringSizeBody)),
		e.extentArray(depth),
		e.extentObject(depth),
		ExpectValue[struct{}](e),
	)))
}

func discard(s struct{}, _ parser.Input) struct{} { return s }

func (e *Env) extentArray(depth int) parser.Parser[struct{}] {
	return Enclosed(e, depth, '[', ']',
		parser.SepBy(e.ExtentValue(depth+1), comma, struct{}{}, discard))
}

func (e *Env) extentObject(depth int) parser.Parser[struct{}] {
	member := parser.Right(ws, parser.Right(Key(e, stringSizeBody),
		parser.Right(ws, parser.Right(e.Expect(':'), e.ExtentValue(depth+1)))))
	return Enclosed(e, depth, '{', '}',
		parser.SepBy(member, comma, struct{}{}, discard))
}
