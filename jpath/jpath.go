// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser, and the
// evaluation of path expressions over the nodes of a JSON arena.
package jpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jarena"
	"github.com/creachadair/jarena/cursor"
	"github.com/creachadair/jarena/parser"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  step = "[" slice "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX
 value = script
 value = filter
 slice = INDEX ":" INDEX
script = "(" TEXT ")"
filter = "?(" TEXT ")"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+(,-?\d+)*`
  TEXT = { all text with nested parentheses }

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// ErrUnsupported is reported by Eval for steps that cannot be evaluated,
// namely filters and scripts.
var ErrUnsupported = errors.New("unsupported path operator")

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	r, ok := exprParser(parser.InputString(s)).GetOK()
	if !ok {
		return Expr{}, errors.New("missing root marker")
	} else if !r.Rest.Empty() {
		return Expr{}, fmt.Errorf("invalid path step at offset %d: %q", r.Rest.Pos(), r.Rest.String())
	}
	return r.Value, nil
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			if s.Arg2 == QName.String() {
				fmt.Fprintf(&buf, "%s'%s'", s.Op, s.Arg1)
			} else {
				fmt.Fprint(&buf, s.Op, s.Arg1)
			}

		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", s.Arg1, s.Arg2)

		case Script:
			fmt.Fprintf(&buf, "[(%s)]", s.Arg1)

		case Filter:
			fmt.Fprintf(&buf, "[?(%s)]", s.Arg1)

		default:
			if s.Op == QName {
				fmt.Fprintf(&buf, "['%s']", s.Arg1)
			} else {
				fmt.Fprintf(&buf, "[%s]", s.Arg1)
			}
		}
	}
	return buf.String()
}

// Path returns e as a sequence of cursor path elements, if e consists only
// of single member names and array indices. Otherwise it reports false.
func (e Expr) Path() ([]any, bool) {
	var path []any
	for _, s := range e {
		switch {
		case s.Op == Member && s.Arg2 != Wildcard.String(), s.Op == Name, s.Op == QName:
			path = append(path, s.Arg1)
		case s.Op == Index && !strings.Contains(s.Arg1, ","):
			i, err := strconv.Atoi(s.Arg1)
			if err != nil {
				return nil, false
			}
			path = append(path, i)
		default:
			return nil, false
		}
	}
	return path, true
}

// Eval evaluates e starting from root, and returns the matching nodes. A
// name or index that does not match contributes no nodes; it is not an
// error. Eval reports ErrUnsupported for filter and script steps.
func (e Expr) Eval(root jarena.Node) ([]jarena.Node, error) {
	cur := []jarena.Node{root}
	for _, s := range e {
		var next []jarena.Node
		for _, n := range cur {
			var err error
			next, err = s.apply(n, next)
			if err != nil {
				return nil, err
			}
		}
		cur = next
	}
	return cur, nil
}

func (s Step) apply(n jarena.Node, out []jarena.Node) ([]jarena.Node, error) {
	switch s.Op {
	case Member:
		return selectName(n, s.Arg1, s.Arg2 == Wildcard.String(), out), nil
	case Name, QName:
		return selectName(n, s.Arg1, false, out), nil
	case Wildcard:
		return appendChildren(n, out), nil
	case Recur:
		wild := s.Arg2 == Wildcard.String()
		for _, d := range descendants(n, nil) {
			out = selectName(d, s.Arg1, wild, out)
		}
		return out, nil
	case Index:
		if n.Kind() != jarena.Array {
			return out, nil
		}
		for _, arg := range strings.Split(s.Arg1, ",") {
			i, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q: %w", arg, err)
			}
			if elt, err := cursor.Path(n, i); err == nil {
				out = append(out, elt)
			}
		}
		return out, nil
	case Slice:
		size, err := n.ArrayLen()
		if err != nil {
			return out, nil
		}
		lo, err := sliceBound(s.Arg1, 0, size)
		if err != nil {
			return nil, err
		}
		hi, err := sliceBound(s.Arg2, size, size)
		if err != nil {
			return nil, err
		}
		for i := lo; i < hi; i++ {
			elt, _ := n.Index(i)
			out = append(out, elt)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, s.Op)
}

func selectName(n jarena.Node, name string, wild bool, out []jarena.Node) []jarena.Node {
	if wild {
		return appendChildren(n, out)
	} else if n.Kind() != jarena.Object {
		return out
	}
	if v, err := cursor.Path(n, name); err == nil {
		out = append(out, v)
	}
	return out
}

func appendChildren(n jarena.Node, out []jarena.Node) []jarena.Node {
	for _, elt := range n.Elements() {
		out = append(out, elt)
	}
	for _, val := range n.Members() {
		out = append(out, val)
	}
	return out
}

// descendants appends n and all the nodes it contains to out, in preorder.
func descendants(n jarena.Node, out []jarena.Node) []jarena.Node {
	out = append(out, n)
	for _, c := range appendChildren(n, nil) {
		out = descendants(c, out)
	}
	return out
}

func sliceBound(arg string, def, size int) (int, error) {
	if arg == "" {
		return def, nil
	}
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid slice bound %q: %w", arg, err)
	}
	if v < 0 {
		v += size
	}
	return min(max(v, 0), size), nil
}

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // member lookup (.)
	Index              // array index lookup
	Slice              // array slice
	Wildcard           // wildcard expansion (*)
	Name               // unquoted name expansion
	QName              // quoted name expansion
	Recur              // recur operator
	Filter             // filter operator
	Script             // script operator
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   ".",
	Index:    "index",
	Slice:    "slice",
	Wildcard: "*",
	Name:     "name",
	QName:    "qname",
	Recur:    "..",
	Filter:   "?(...)",
	Script:   "(...)",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression. For Member and Recur
// steps, Arg2 names the kind of the name (see Op.String).
type Step struct {
	Op   Op
	Arg1 string
	Arg2 string
}
