// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"math"
	"strings"

	"github.com/creachadair/jarena"
	"github.com/tidwall/gjson"
)

// Corpus is a collection of valid JSON documents exercised by tests.
var Corpus = []string{
	`null`,
	`true`,
	`false`,
	`0`,
	`-17.25e+2`,
	`""`,
	`"a \"quoted\" \\ string\twith\nescapes é ☃"`,
	`[]`,
	`{}`,
	`[1,null,true,[2],{"a":3.14},"hello"]`,
	`{"a":1, "b":[true, false, null], "c":{"d":"e", "f":[]}}`,
	`[[[[[]]]], [[{}]], [{"x": [[1], [2, [3]]]}]]`,
	`{"": "", "empty": {}, "list": [{}, [], "", 0]}`,
	`{"dup": 1, "dup": 2, "other": "x"}`,
	`  { "spaced" :  [ 1 , 2 , 3 ] }  `,
	`{"widgets": [
	  {"id": 1, "name": "gizmo", "price": 9.99, "tags": ["small", "blue"]},
	  {"id": 2, "name": "doohickey", "price": 1.5e3, "tags": []},
	  {"id": 3, "name": "thingamajig", "price": -0.25, "tags": null}
	]}`,
}

// Inflate returns a copy of s with pad inserted before and after every
// structural token (brackets, braces, colons, and commas) that is not part
// of a string. If s is valid JSON and pad is JSON whitespace, the result
// denotes the same value as s.
func Inflate(s, pad string) string {
	var sb strings.Builder
	var inString, escaped bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case strings.IndexByte("[]{}:,", c) >= 0:
			sb.WriteString(pad)
			sb.WriteByte(c)
			sb.WriteString(pad)
			continue
		}
		sb.WriteByte(c)
	}
	return pad + sb.String() + pad
}

// A Member is a key/value pair of an object in the output of Tree.
type Member struct {
	Key   string
	Value any
}

// Tree converts the value of n into plain Go values suitable for comparison:
// nil, bool, float64, string, []any for arrays, and []Member for objects.
// Object members are reported in source order, including duplicates.
func Tree(n jarena.Node) any {
	switch n.Kind() {
	case jarena.Bool:
		v, _ := n.Bool()
		return v
	case jarena.Number:
		v, _ := n.Number()
		return v
	case jarena.String:
		v, _ := n.Text()
		return v
	case jarena.Array:
		out := []any{}
		for _, elt := range n.Elements() {
			out = append(out, Tree(elt))
		}
		return out
	case jarena.Object:
		out := []Member{}
		for key, val := range n.Members() {
			k, _ := key.Text()
			out = append(out, Member{Key: k, Value: Tree(val)})
		}
		return out
	case jarena.Null:
		return nil
	}
	panic(fmt.Sprintf("unexpected node kind %v", n.Kind()))
}

// Compare reports an error if the value of n differs from the value of r,
// which is parsed independently by gjson. Numbers are compared with a
// relative tolerance, since the two parsers round differently.
func Compare(n jarena.Node, r gjson.Result) error { return compare("$", n, r) }

func compare(path string, n jarena.Node, r gjson.Result) error {
	mismatch := func(want string) error {
		return fmt.Errorf("at %s: got %v, want %s (%s)", path, n, want, r.Raw)
	}
	switch n.Kind() {
	case jarena.Null:
		if r.Type != gjson.Null {
			return mismatch("null")
		}
	case jarena.Bool:
		v, _ := n.Bool()
		if (r.Type != gjson.True && r.Type != gjson.False) || v != r.Bool() {
			return mismatch("bool")
		}
	case jarena.Number:
		v, _ := n.Number()
		if r.Type != gjson.Number || !closeTo(v, r.Num) {
			return mismatch("number")
		}
	case jarena.String:
		v, _ := n.Text()
		if r.Type != gjson.String || v != r.Str {
			return mismatch("string")
		}
	case jarena.Array:
		if !r.IsArray() {
			return mismatch("array")
		}
		elts := r.Array()
		if m, _ := n.ArrayLen(); m != len(elts) {
			return mismatch(fmt.Sprintf("array of length %d", len(elts)))
		}
		for i, elt := range n.Elements() {
			if err := compare(fmt.Sprintf("%s[%d]", path, i), elt, elts[i]); err != nil {
				return err
			}
		}
	case jarena.Object:
		if !r.IsObject() {
			return mismatch("object")
		}
		var keys, vals []gjson.Result
		r.ForEach(func(k, v gjson.Result) bool {
			keys = append(keys, k)
			vals = append(vals, v)
			return true
		})
		if m, _ := n.ObjectLen(); m != len(keys) {
			return mismatch(fmt.Sprintf("object with %d members", len(keys)))
		}
		var i int
		for key, val := range n.Members() {
			k, _ := key.Text()
			if k != keys[i].Str {
				return fmt.Errorf("at %s: member %d key is %q, want %q", path, i, k, keys[i].Str)
			}
			if err := compare(path+"."+k, val, vals[i]); err != nil {
				return err
			}
			i++
		}
	default:
		return fmt.Errorf("at %s: unexpected node kind %v", path, n.Kind())
	}
	return nil
}

func closeTo(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
