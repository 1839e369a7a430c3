// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jpath_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jarena"
	"github.com/creachadair/jarena/cursor"
	"github.com/creachadair/jarena/jpath"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"$"},
		{"$.store.book[*]..author"},
		{"$..author"},
		{"$.store.*"},
		{"$.store..price"},
		{"$..book[2]"},
		{"$..book[(@.length-1)]"},
		{"$..book[-1:]"},
		{"$..book[0,1]"},
		{"$..book[:2]"},
		{"$..book[?(@.isbn)]"},
		{"$..book[?(@price<10)]"},
		{"$..book[?((@.a+1)*(@.b))]"},
		{"$..*"},
		{"$['apple sauce'].pearPlum..'cherry apple'"},
		{"$[a][1:3][b]['c d e']"},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}

		want := test.input
		if got := e.String(); got != want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"store.book",
		"$.",
		"$[1",
		"$[:]",
		"$['open]",
		"$[(unbalanced]",
		"$.a b",
	}
	for _, input := range tests {
		if e, err := jpath.Parse(input); err == nil {
			t.Errorf("Parse %q: got %v, want error", input, e)
		} else {
			t.Logf("Parse %q: got expected error: %v", input, err)
		}
	}
}

func TestSteps(t *testing.T) {
	e, err := jpath.Parse("$.a['b c'][-1][1:]..d")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := jpath.Expr{
		{Op: jpath.Member, Arg1: "a", Arg2: "name"},
		{Op: jpath.QName, Arg1: "b c"},
		{Op: jpath.Index, Arg1: "-1"},
		{Op: jpath.Slice, Arg1: "1"},
		{Op: jpath.Recur, Arg1: "d", Arg2: "name"},
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("Parse (-want, +got):\n%s", diff)
	}
}

const storeJSON = `{"store": {
  "book": [
    {"category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.5},
    {"category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.25},
    {"category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.75},
    {"category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "isbn": "0-395-19395-8", "price": 22.5}
  ],
  "bicycle": {"color": "red", "price": 19.5}
}}`

func TestEval(t *testing.T) {
	a, err := jarena.ParseString(storeJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tests := []struct {
		path string
		want []string
	}{
		{"$.store.book[*].author", []string{
			`string("Nigel Rees")`, `string("Evelyn Waugh")`,
			`string("Herman Melville")`, `string("J. R. R. Tolkien")`,
		}},
		{"$..author", []string{
			`string("Nigel Rees")`, `string("Evelyn Waugh")`,
			`string("Herman Melville")`, `string("J. R. R. Tolkien")`,
		}},
		{"$.store.*", []string{"array(4)", "object(2)"}},
		{"$.store..price", []string{
			"number(8.5)", "number(12.25)", "number(8.75)", "number(22.5)", "number(19.5)",
		}},
		{"$..book[2].title", []string{`string("Moby Dick")`}},
		{"$..book[-1:].title", []string{`string("The Lord of the Rings")`}},
		{"$..book[0,1].price", []string{"number(8.5)", "number(12.25)"}},
		{"$..book[:2].category", []string{`string("reference")`, `string("fiction")`}},
		{"$..book[1:-2].title", []string{`string("Sword of Honour")`}},
		{"$..book[*].isbn", []string{`string("0-553-21311-3")`, `string("0-395-19395-8")`}},
		{"$['store']['bicycle'].color", []string{`string("red")`}},
		{"$.store.bicycle[0]", nil},
		{"$.nonesuch.book", nil},
		{"$..book[10]", nil},
		{"$", []string{"object(1)"}},
	}
	for _, tc := range tests {
		e, err := jpath.Parse(tc.path)
		if err != nil {
			t.Errorf("Parse %q: %v", tc.path, err)
			continue
		}
		nodes, err := e.Eval(a.Root())
		if err != nil {
			t.Errorf("Eval %q: %v", tc.path, err)
			continue
		}
		var got []string
		for _, n := range nodes {
			got = append(got, n.String())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Eval %q (-want, +got):\n%s", tc.path, diff)
		}
	}

	e, err := jpath.Parse("$..book[?(@.isbn)]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.Eval(a.Root()); !errors.Is(err, jpath.ErrUnsupported) {
		t.Errorf("Eval filter: got %v, want %v", err, jpath.ErrUnsupported)
	}
}

func TestPath(t *testing.T) {
	a, err := jarena.ParseString(storeJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	e, err := jpath.Parse("$.store.book[-1]['title']")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	path, ok := e.Path()
	if !ok {
		t.Fatalf("Path %q: not a simple path", e)
	}
	if diff := cmp.Diff([]any{"store", "book", -1, "title"}, path); diff != "" {
		t.Errorf("Path (-want, +got):\n%s", diff)
	}
	n, err := cursor.Path(a.Root(), path...)
	if err != nil {
		t.Fatalf("cursor.Path: %v", err)
	}
	if s, _ := n.Text(); s != "The Lord of the Rings" {
		t.Errorf("Title: got %q", s)
	}

	for _, expr := range []string{"$..title", "$.store.*", "$.book[0,1]", "$.book[1:]"} {
		e, err := jpath.Parse(expr)
		if err != nil {
			t.Fatalf("Parse %q: %v", expr, err)
		}
		if p, ok := e.Path(); ok {
			t.Errorf("Path %q: got %v, want not simple", expr, p)
		}
	}
}
