// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jarena

import (
	"github.com/creachadair/jarena/grammar"
	"github.com/creachadair/jarena/parser"
)

// A builder fills an arena of fixed capacity from one input.
//
// Each array or object is built in two levels. First the delimiters and
// separators of the container are matched, and the text of each element is
// located by the extent pass and recorded as an Unparsed node in the next
// free slot, so the elements occupy a contiguous run. For an object, each
// key is decoded directly into a String node before its value slot. Then
// each Unparsed slot is parsed in turn, in place, and any containers it
// holds reserve their own slots after the ones already written.
type builder struct {
	env    *grammar.Env
	src    parser.Input
	a      *Arena
	chars  parser.Parser[int]
	values *grammar.Levels[node]
}

var ws = parser.Whitespace()

func newBuilder(env *grammar.Env, src parser.Input, nodes, bytes int) *builder {
	b := &builder{
		env: env,
		src: src,
		a:   &Arena{nodes: make([]node, 0, nodes), text: make([]byte, 0, bytes)},
	}
	b.chars = parser.Many(grammar.StringChar(), 0, func(n int, c grammar.Chunk) int {
		b.appendText(c)
		return n + c.Len()
	})
	b.values = grammar.NewLevels(b.value)
	return b
}

// run builds the complete document. It reports false if the input is not
// valid; the reason is recorded in the environment.
func (b *builder) run() (*Arena, bool) {
	b.push(node{})
	r, ok := grammar.Document(b.env, b.values.At(0))(b.src).GetOK()
	if !ok {
		return nil, false
	}
	b.a.nodes[0] = r.Value
	return b.a, true
}

// push adds nd in the next free slot and returns its index. It panics if
// the node capacity is exhausted.
func (b *builder) push(nd node) int {
	if len(b.a.nodes) == cap(b.a.nodes) {
		panic(&CapacityError{Resource: "node", Cap: cap(b.a.nodes), Used: len(b.a.nodes) + 1})
	}
	b.a.nodes = append(b.a.nodes, nd)
	return len(b.a.nodes) - 1
}

func (b *builder) appendText(c grammar.Chunk) {
	if need := len(b.a.text) + c.Len(); need > cap(b.a.text) {
		panic(&CapacityError{Resource: "text", Cap: cap(b.a.text), Used: need})
	}
	b.a.text = c.AppendTo(b.a.text)
}

// value constructs the parser for a value at the given depth, preceded by
// optional whitespace. The node it yields records the span of the value.
func (b *builder) value(depth int) parser.Parser[node] {
	alt := parser.Or(
		parser.Map(grammar.Keyword(), keywordNode),
		parser.Map(grammar.Number(), func(v float64) node { return node{kind: Number, num: v} }),
		parser.Map(grammar.StrictQuoted[View](b.env, b.stringBody), func(v View) node {
			return node{kind: String, view: v}
		}),
		b.array(depth),
		b.object(depth),
		grammar.ExpectValue[node](b.env),
	)
	return parser.Right(ws, parser.Parser[node](func(in parser.Input) parser.Result[node] {
		r, ok := alt(in).GetOK()
		if !ok {
			return parser.None[node]()
		}
		nd := r.Value
		nd.span = Span{Pos: in.Pos(), End: r.Rest.Pos()}
		return parser.Ok(nd, r.Rest)
	}))
}

func keywordNode(kw string) node {
	switch kw {
	case "true":
		return node{kind: Bool, flag: true}
	case "false":
		return node{kind: Bool}
	default:
		return node{kind: Null}
	}
}

// stringBody decodes the body of a string into the arena text, and yields
// the view of the decoded bytes.
func (b *builder) stringBody(in parser.Input) parser.Result[View] {
	off := len(b.a.text)
	r, ok := b.chars(in).GetOK()
	if !ok {
		return parser.None[View]()
	}
	return parser.Ok(View{Offset: off, Extent: r.Value}, r.Rest)
}

// unparsed records the span of an element as a pending slot.
func (b *builder) unparsed(n int, span parser.Input) int {
	b.push(node{kind: Unparsed, span: Span{Pos: span.Pos(), End: span.End()}})
	return n + 1
}

// fill parses the pending value in slot idx.
func (b *builder) fill(depth, idx int) bool {
	sp := b.a.nodes[idx].span
	r, ok := b.values.At(depth)(b.src.Slice(sp.Pos, sp.End)).GetOK()
	if !ok || !r.Rest.Empty() {
		return false
	}
	b.a.nodes[idx] = r.Value
	return true
}

func (b *builder) array(depth int) parser.Parser[node] {
	elems := grammar.Enclosed(b.env, depth, '[', ']',
		parser.SepBy(b.env.ExtentValue(depth+1), grammar.Comma(), 0, b.unparsed))
	return func(in parser.Input) parser.Result[node] {
		off := len(b.a.nodes)
		r, ok := elems(in).GetOK()
		if !ok {
			return parser.None[node]()
		}
		for i := range r.Value {
			if !b.fill(depth+1, off+i) {
				return parser.None[node]()
			}
		}
		return parser.Ok(node{kind: Array, view: View{Offset: off, Extent: r.Value}}, r.Rest)
	}
}

func (b *builder) object(depth int) parser.Parser[node] {
	str := grammar.Key[View](b.env, b.stringBody)
	var key parser.Parser[struct{}] = func(in parser.Input) parser.Result[struct{}] {
		r, ok := str(in).GetOK()
		if !ok {
			return parser.None[struct{}]()
		}
		b.push(node{kind: String, view: r.Value, span: Span{Pos: in.Pos(), End: r.Rest.Pos()}})
		return parser.Ok(struct{}{}, r.Rest)
	}
	member := parser.Right(parser.Right(ws, key),
		parser.Right(ws, parser.Right(b.env.Expect(':'), b.env.ExtentValue(depth+1))))
	members := grammar.Enclosed(b.env, depth, '{', '}',
		parser.SepBy(member, grammar.Comma(), 0, b.unparsed))

	return func(in parser.Input) parser.Result[node] {
		off := len(b.a.nodes)
		r, ok := members(in).GetOK()
		if !ok {
			return parser.None[node]()
		}
		for i := range r.Value {
			if !b.fill(depth+1, off+2*i+1) {
				return parser.None[node]()
			}
		}
		return parser.Ok(node{kind: Object, view: View{Offset: off, Extent: 2 * r.Value}}, r.Rest)
	}
}
