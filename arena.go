// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jarena

import (
	"fmt"
	"iter"

	"go4.org/mem"
)

// Kind is the type tag of a node.
type Kind byte

// Constants defining the node kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object

	// Unparsed marks a slot reserved for a value whose text has been
	// located but not yet parsed. It does not occur in a complete arena.
	Unparsed
)

var kindStr = [...]string{
	Null:     "null",
	Bool:     "bool",
	Number:   "number",
	String:   "string",
	Array:    "array",
	Object:   "object",
	Unparsed: "unparsed",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// A View addresses a contiguous run of an arena: of nodes for an array or
// object, or of text bytes for a string.
type View struct {
	Offset int
	Extent int
}

// node is a single record of an arena. Only the fields relevant to its
// kind are populated.
type node struct {
	kind Kind
	flag bool    // Bool
	num  float64 // Number
	view View    // String, Array, Object
	span Span    // source text of the value; the pending text for Unparsed
}

// An Arena holds a parsed JSON document as a flat sequence of nodes and a
// single buffer of decoded string bytes. Node 0 is the root of the document.
//
// The elements of an array occupy a contiguous run of nodes. The members of
// an object occupy a contiguous run of alternating key and value nodes, in
// source order. An arena is not modified once it has been built, and is safe
// for concurrent use by multiple readers.
type Arena struct {
	nodes []node
	text  []byte
}

// Root returns the root node of the document.
func (a *Arena) Root() Node { return a.Node(0) }

// Node returns the node at index i. It panics if i is out of range.
func (a *Arena) Node(i int) Node {
	if i < 0 || i >= len(a.nodes) {
		panic(fmt.Sprintf("node index %d out of range [0, %d)", i, len(a.nodes)))
	}
	return Node{a: a, i: i}
}

// Len reports the number of nodes in a.
func (a *Arena) Len() int { return len(a.nodes) }

// Cap reports the node capacity of a.
func (a *Arena) Cap() int { return cap(a.nodes) }

// TextLen reports the number of string bytes in a.
func (a *Arena) TextLen() int { return len(a.text) }

// TextCap reports the string byte capacity of a.
func (a *Arena) TextCap() int { return cap(a.text) }

// A Node is a reference to one value in an arena. A Node is only valid for
// the arena that produced it.
type Node struct {
	a *Arena
	i int
}

func (n Node) rec() *node { return &n.a.nodes[n.i] }

// ID reports the position of n in its arena.
func (n Node) ID() int { return n.i }

// Kind reports the kind of value n holds.
func (n Node) Kind() Kind { return n.rec().kind }

// Span reports the location of the source text n was parsed from.
func (n Node) Span() Span { return n.rec().span }

// IsNull reports whether n is the JSON null value.
func (n Node) IsNull() bool { return n.rec().kind == Null }

// Bool returns the value of a Bool node.
func (n Node) Bool() (bool, error) {
	r := n.rec()
	if r.kind != Bool {
		return false, typeMismatch(r.kind, Bool)
	}
	return r.flag, nil
}

// Number returns the value of a Number node.
func (n Node) Number() (float64, error) {
	r := n.rec()
	if r.kind != Number {
		return 0, typeMismatch(r.kind, Number)
	}
	return r.num, nil
}

// TextRO returns a read-only view of the decoded contents of a String node,
// without copying.
func (n Node) TextRO() (mem.RO, error) {
	r := n.rec()
	if r.kind != String {
		return mem.RO{}, typeMismatch(r.kind, String)
	}
	return n.a.textOf(r.view), nil
}

// Text returns a copy of the decoded contents of a String node.
func (n Node) Text() (string, error) {
	ro, err := n.TextRO()
	if err != nil {
		return "", err
	}
	return ro.StringCopy(), nil
}

func (a *Arena) textOf(v View) mem.RO { return mem.B(a.text[v.Offset : v.Offset+v.Extent]) }

// ArrayLen reports the number of elements in an Array node.
func (n Node) ArrayLen() (int, error) {
	r := n.rec()
	if r.kind != Array {
		return 0, typeMismatch(r.kind, Array)
	}
	return r.view.Extent, nil
}

// Index returns the element at offset i of an Array node.
func (n Node) Index(i int) (Node, error) {
	r := n.rec()
	if r.kind != Array {
		return Node{}, typeMismatch(r.kind, Array)
	} else if i < 0 || i >= r.view.Extent {
		return Node{}, outOfRange(i, r.view.Extent)
	}
	return Node{a: n.a, i: r.view.Offset + i}, nil
}

// ObjectLen reports the number of members in an Object node.
func (n Node) ObjectLen() (int, error) {
	r := n.rec()
	if r.kind != Object {
		return 0, typeMismatch(r.kind, Object)
	}
	return r.view.Extent / 2, nil
}

// Member returns the key and value of the member at offset i of an Object
// node, in source order.
func (n Node) Member(i int) (key, val Node, _ error) {
	r := n.rec()
	if r.kind != Object {
		return Node{}, Node{}, typeMismatch(r.kind, Object)
	} else if i < 0 || 2*i >= r.view.Extent {
		return Node{}, Node{}, outOfRange(i, r.view.Extent/2)
	}
	k := r.view.Offset + 2*i
	return Node{a: n.a, i: k}, Node{a: n.a, i: k + 1}, nil
}

// Lookup returns the value of the first member of an Object node whose key
// is equal to key.
func (n Node) Lookup(key string) (Node, error) {
	return n.LookupRO(mem.S(key))
}

// LookupRO is as Lookup, but takes the key as a read-only view.
func (n Node) LookupRO(key mem.RO) (Node, error) {
	r := n.rec()
	if r.kind != Object {
		return Node{}, typeMismatch(r.kind, Object)
	}
	end := r.view.Offset + r.view.Extent
	for k := r.view.Offset; k < end; k += 2 {
		if n.a.textOf(n.a.nodes[k].view).Equal(key) {
			return Node{a: n.a, i: k + 1}, nil
		}
	}
	return Node{}, fmt.Errorf("%w: %q", ErrKeyNotFound, key.StringCopy())
}

// Elements returns an iterator over the offsets and values of the elements
// of an Array node. For any other kind it yields nothing.
func (n Node) Elements() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		r := n.rec()
		if r.kind != Array {
			return
		}
		for i := range r.view.Extent {
			if !yield(i, Node{a: n.a, i: r.view.Offset + i}) {
				return
			}
		}
	}
}

// Members returns an iterator over the keys and values of the members of an
// Object node, in source order. For any other kind it yields nothing.
func (n Node) Members() iter.Seq2[Node, Node] {
	return func(yield func(Node, Node) bool) {
		r := n.rec()
		if r.kind != Object {
			return
		}
		end := r.view.Offset + r.view.Extent
		for k := r.view.Offset; k < end; k += 2 {
			if !yield(Node{a: n.a, i: k}, Node{a: n.a, i: k + 1}) {
				return
			}
		}
	}
}

// String renders a short description of n for diagnostics.
func (n Node) String() string {
	r := n.rec()
	switch r.kind {
	case Bool:
		return fmt.Sprintf("bool(%v)", r.flag)
	case Number:
		return fmt.Sprintf("number(%v)", r.num)
	case String:
		return fmt.Sprintf("string(%q)", n.a.textOf(r.view).StringCopy())
	case Array:
		return fmt.Sprintf("array(%d)", r.view.Extent)
	case Object:
		return fmt.Sprintf("object(%d)", r.view.Extent/2)
	}
	return r.kind.String()
}
