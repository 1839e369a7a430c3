// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the nodes of a JSON arena.
package cursor

import (
	"fmt"

	"github.com/creachadair/jarena"
)

// Path traverses a sequential path into the structure of n where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its node.
func Path(n jarena.Node, path ...any) (jarena.Node, error) {
	c := New(n).Down(path...)
	if err := c.Err(); err != nil {
		return jarena.Node{}, err
	}
	return c.Node(), nil
}

// A Cursor is a pointer that navigates into the structure of an arena.
type Cursor struct {
	org jarena.Node
	stk []jarena.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin jarena.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() jarena.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Node reports the current node under the cursor.
func (c *Cursor) Node() jarena.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of nodes from the origin to the current
// location in c.
func (c *Cursor) Path() []jarena.Node {
	return append([]jarena.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current node, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays or objects), functions (see
// below), or nil. If the path cannot be completely consumed, traversal stops
// at the last node reached and an error is recorded. Use Err to recover the
// error. Down returns c to permit chaining.
//
// If a path element is a string, the current node must be an object, and the
// string selects the value of the first member with that key.
//
// If a path element is an integer, the current node must be an array or
// object, and the integer selects an element of the array, or the value of a
// member of the object in source order. Negative indices count backward from
// the end (-1 is last, -2 second last).
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(jarena.Node) (jarena.Node, error)
//
// If the function reports an error, traversal stops and the error is
// recorded. A nil path element does nothing.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Node()
	for _, elt := range path {
		var next jarena.Node
		var err error

		switch t := elt.(type) {
		case string:
			next, err = cur.Lookup(t)

		case int:
			switch cur.Kind() {
			case jarena.Array:
				n, _ := cur.ArrayLen()
				next, err = cur.Index(fixBound(n, t))
			case jarena.Object:
				n, _ := cur.ObjectLen()
				_, next, err = cur.Member(fixBound(n, t))
			default:
				err = fmt.Errorf("%w: cannot traverse %v with %v", jarena.ErrTypeMismatch, cur.Kind(), elt)
			}

		case func(jarena.Node) (jarena.Node, error):
			next, err = t(cur)

		case nil:
			continue

		default:
			err = fmt.Errorf("invalid path element %T", elt)
		}
		if err != nil {
			c.err = err
			return c
		}
		cur = c.push(next)
	}
	return c
}

func (c *Cursor) push(n jarena.Node) jarena.Node { c.stk = append(c.stk, n); return n }

func fixBound(n, i int) int {
	if i < 0 {
		return i + n
	}
	return i
}
