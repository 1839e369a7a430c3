// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package grammar_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jarena/grammar"
	"github.com/creachadair/jarena/parser"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func parse[T any](p parser.Parser[T], input string) (T, string, bool) {
	r, ok := p(parser.InputString(input)).GetOK()
	if !ok {
		var zero T
		return zero, "", false
	}
	return r.Value, r.Rest.String(), true
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		rest  string
		ok    bool
	}{
		{"0", 0, "", true},
		{"123", 123, "", true},
		{"-123", -123, "", true},
		{".123", 0, "", false},
		{"456.123e-1", 45.6123, "", true},
		{"0.0625", 0.0625, "", true},
		{"3.14", 3.14, "", true},
		{"-0.5", -0.5, "", true},
		{"-1.5", -1.5, "", true},
		{"1E2", 100, "", true},
		{"1e+2", 100, "", true},
		{"25e-2", 0.25, "", true},
		{"7,", 7, ",", true},

		// Partial matches leave the remainder for the caller to reject.
		{"01", 0, "1", true},
		{"1.", 1, ".", true},
		{"1.e5", 1, ".e5", true},
		{"2e", 2, "e", true},
		{"2e+", 2, "e+", true},

		{"-", 0, "", false},
		{"+1", 0, "", false},
		{"", 0, "", false},
		{"x", 0, "", false},
		{"-.5", 0, "", false},
	}
	for _, tc := range tests {
		got, rest, ok := parse(grammar.Number(), tc.input)
		if ok != tc.ok {
			t.Errorf("Number(%q): got ok=%v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if got != tc.want || rest != tc.rest {
			t.Errorf("Number(%q): got (%v, %q), want (%v, %q)", tc.input, got, rest, tc.want, tc.rest)
		}
	}
}

func TestNumberRange(t *testing.T) {
	if got, _, _ := parse(grammar.Number(), "1e400"); !math.IsInf(got, 1) {
		t.Errorf("1e400: got %v, want +Inf", got)
	}
	if got, _, _ := parse(grammar.Number(), "-1e400"); !math.IsInf(got, -1) {
		t.Errorf("-1e400: got %v, want -Inf", got)
	}
	if got, _, _ := parse(grammar.Number(), "1e-400"); got != 0 {
		t.Errorf("1e-400: got %v, want 0", got)
	}
	if got, _, ok := parse(grammar.Number(), "0e99999999999999999999"); !ok || got != 0 {
		t.Errorf("huge exponent of zero: got %v, %v; want 0, true", got, ok)
	}
	if got, _, _ := parse(grammar.Number(), "-0"); !math.Signbit(got) {
		t.Errorf("-0: got %v, want negative zero", got)
	}
}

func TestConstants(t *testing.T) {
	if v, _, ok := parse(grammar.Bool(), "true"); !ok || !v {
		t.Errorf("Bool(true): got %v, %v", v, ok)
	}
	if v, _, ok := parse(grammar.Bool(), "false"); !ok || v {
		t.Errorf("Bool(false): got %v, %v", v, ok)
	}
	if _, _, ok := parse(grammar.Bool(), "tru"); ok {
		t.Error("Bool(tru): unexpected success")
	}
	if _, rest, ok := parse(grammar.Null(), "null]"); !ok || rest != "]" {
		t.Errorf("Null: got %q, %v", rest, ok)
	}
	if _, _, ok := parse(grammar.Null(), "nil"); ok {
		t.Error("Null(nil): unexpected success")
	}
	for _, kw := range []string{"true", "false", "null"} {
		if v, _, ok := parse(grammar.Keyword(), kw); !ok || v != kw {
			t.Errorf("Keyword(%q): got %q, %v", kw, v, ok)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
		ok    bool
	}{
		{`""`, []byte{}, true},
		{`"hello"`, []byte("hello"), true},
		{`"☃"`, []byte{0xE2, 0x98, 0x83}, true},
		{`"\u2603"`, []byte{0xE2, 0x98, 0x83}, true},
		{`"été"`, []byte("été"), true},
		{`"A\u007f"`, []byte("A\x7f"), true},
		{`"\ud83d\ude00"`, []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, true},
		{`"\"\\\/\b\f\n\r\t"`, []byte("\"\\/\b\f\n\r\t"), true},
		{"\"raw\ttab\"", []byte("raw\ttab"), true},
		{`"snow ☃ man"`, []byte("snow ☃ man"), true},

		{`"unterminated`, nil, false},
		{`"bad \x escape"`, nil, false},
		{`"short \u12"`, nil, false},
		{`"bad \u12g4"`, nil, false},
		{`unquoted`, nil, false},
		{``, nil, false},
	}
	for _, tc := range tests {
		got, _, ok := parse(grammar.String(), tc.input)
		if ok != tc.ok {
			t.Errorf("String(%#q): got ok=%v, want %v", tc.input, ok, tc.ok)
			continue
		} else if !ok {
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("String(%#q) (-want, +got):\n%s", tc.input, diff)
		}

		n, _, ok := parse(grammar.StringSize(), tc.input)
		if !ok || n != len(got) {
			t.Errorf("StringSize(%#q): got %d, %v; want %d", tc.input, n, ok, len(got))
		}
	}
}

func TestStringChar(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
		rest  string
	}{
		{"t", []byte("t"), ""},
		{"\t", []byte("\t"), ""},
		{`\tx`, []byte("\t"), "x"},
		{`☃!`, []byte{0xE2}, "\x98\x83!"},
		{`\u2603!`, []byte("☃"), "!"},
		{`\/`, []byte("/"), ""},
	}
	for _, tc := range tests {
		got, rest, ok := parse(grammar.StringChar(), tc.input)
		if !ok {
			t.Errorf("StringChar(%#q) failed", tc.input)
			continue
		}
		if diff := cmp.Diff(tc.want, got.Bytes()); diff != "" || rest != tc.rest {
			t.Errorf("StringChar(%#q) rest %q (-want, +got):\n%s", tc.input, rest, diff)
		}
		if got.Len() != len(tc.want) {
			t.Errorf("StringChar(%#q): Len %d, want %d", tc.input, got.Len(), len(tc.want))
		}
	}
	for _, bad := range []string{`"`, `\`, `\q`, ``} {
		if got, _, ok := parse(grammar.StringChar(), bad); ok {
			t.Errorf("StringChar(%#q): unexpected success %q", bad, got.Bytes())
		}
	}
	if got, _, ok := parse(grammar.UnicodePoint(), `\u00e9`); !ok || string(got.Bytes()) != "é" {
		t.Errorf(`UnicodePoint(\u00e9): got %q, %v`, got.Bytes(), ok)
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		input string
		want  grammar.Sizes
	}{
		{"true", grammar.Sizes{Nodes: 1}},
		{"null", grammar.Sizes{Nodes: 1}},
		{"-2.5e3", grammar.Sizes{Nodes: 1}},
		{`"a"`, grammar.Sizes{Nodes: 1, Bytes: 1}},
		{`"☃"`, grammar.Sizes{Nodes: 1, Bytes: 3}},
		{"[]", grammar.Sizes{Nodes: 1}},
		{"{}", grammar.Sizes{Nodes: 1}},
		{"[1,2,3,4]", grammar.Sizes{Nodes: 5}},
		{`["a", "b"]`, grammar.Sizes{Nodes: 3, Bytes: 2}},
		{`{"a":1, "b":2}`, grammar.Sizes{Nodes: 5, Bytes: 2}},
		{`{"key":"value"}`, grammar.Sizes{Nodes: 3, Bytes: 8}},
		{`[[], [[]], {"x": [true, "yz"]}]`, grammar.Sizes{Nodes: 9, Bytes: 3}},
		{" \n [ 1 , null , true , [ 2 ] , { \"a\" : 3.14 } , \"hello\" ] \t",
			grammar.Sizes{Nodes: 10, Bytes: 6}},
	}
	for _, tc := range tests {
		env := grammar.NewEnv(0, nil)
		got, rest, ok := parse(env.SizeDocument(), tc.input)
		if !ok {
			pos, msg := env.Failure()
			t.Errorf("Size(%#q) failed at %d: %s", tc.input, pos, msg)
			continue
		}
		if rest != "" {
			t.Errorf("Size(%#q): leftover input %q", tc.input, rest)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Size(%#q) (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestExtent(t *testing.T) {
	tests := []struct {
		input string
		want  string
		rest  string
	}{
		{"true", "true", ""},
		{`"hello"`, `"hello"`, ""},
		{"123.456", "123.456", ""},
		{"[1,2,3]", "[1,2,3]", ""},
		{`{"a":1, "b":2}`, `{"a":1, "b":2}`, ""},
		{"  [1, [2, 3]] , 4", "[1, [2, 3]]", " , 4"},
		{`{"k": {"q": [null]}}]`, `{"k": {"q": [null]}}`, "]"},
		{`"a\"b" x`, `"a\"b"`, " x"},
	}
	for _, tc := range tests {
		env := grammar.NewEnv(0, nil)
		got, rest, ok := parse(env.ExtentValue(0), tc.input)
		if !ok {
			t.Errorf("Extent(%#q) failed", tc.input)
			continue
		}
		if got.String() != tc.want || rest != tc.rest {
			t.Errorf("Extent(%#q): got (%q, %q), want (%q, %q)", tc.input, got.String(), rest, tc.want, tc.rest)
		}
	}
	for _, bad := range []string{"", "[1,", `{"a"}`, "[1,]", "{,}", `"open`} {
		env := grammar.NewEnv(0, nil)
		if got, _, ok := parse(env.ExtentValue(0), bad); ok {
			t.Errorf("Extent(%#q): unexpected success %q", bad, got.String())
		}
	}
}

func TestFailure(t *testing.T) {
	tests := []struct {
		input string
		depth int
		pos   int
		msg   string
	}{
		{"", 0, 0, "expected value"},
		{"   ", 0, 3, "expected value"},
		{"nul", 0, 0, "expected value"},
		{"[1,]", 0, 3, "expected value"},
		{"[1 2]", 0, 3, "expected ']'"},
		{"[1", 0, 2, "expected ']'"},
		{`{"a" 1}`, 0, 5, "expected ':'"},
		{`{"a": }`, 0, 6, "expected value"},
		{`{"a": 1`, 0, 7, "expected '}'"},
		{`"abc`, 0, 4, `expected '"'`},
		{`{"a":1,}`, 0, 7, "expected string"},
		{`{1:2}`, 0, 1, "expected string"},
		{`{"a":1 "b":2}`, 0, 7, "expected '}'"},
		{`[1] x`, 0, 4, "expected end of input"},
		{`[[[1]]]`, 2, 3, "nesting depth exceeds 2"},
		{`{"a":{"b":{}}}`, 2, 11, "nesting depth exceeds 2"},
	}
	for _, tc := range tests {
		env := grammar.NewEnv(tc.depth, nil)
		if _, _, ok := parse(env.SizeDocument(), tc.input); ok {
			t.Errorf("Size(%#q): unexpected success", tc.input)
			continue
		}
		pos, msg := env.Failure()
		if pos != tc.pos || msg != tc.msg {
			t.Errorf("Size(%#q): failed at %d: %s; want %d: %s", tc.input, pos, msg, tc.pos, tc.msg)
		}
	}
}

func TestDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 50) + strings.Repeat("]", 50)
	if _, _, ok := parse(grammar.NewEnv(50, nil).SizeDocument(), deep); !ok {
		t.Error("Depth 50 rejected with limit 50")
	}
	if _, _, ok := parse(grammar.NewEnv(49, nil).SizeDocument(), deep); ok {
		t.Error("Depth 50 accepted with limit 49")
	}
	if got := grammar.NewEnv(0, nil).MaxDepth(); got != grammar.DefaultMaxDepth {
		t.Errorf("Default MaxDepth: got %d, want %d", got, grammar.DefaultMaxDepth)
	}
}

func TestEnvLogging(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	env := grammar.NewEnv(0, &log)
	if _, _, ok := parse(env.SizeDocument(), "[1 2]"); ok {
		t.Fatal("Parse unexpectedly succeeded")
	}
	if out := buf.String(); !strings.Contains(out, `"want":"expected ']'"`) {
		t.Errorf("Log output missing expectation:\n%s", out)
	}

	env.Reset()
	if pos, msg := env.Failure(); pos != 0 || msg != "invalid input" {
		t.Errorf("After Reset: got %d: %s", pos, msg)
	}
}

func TestLevels(t *testing.T) {
	var built []int
	lv := grammar.NewLevels(func(depth int) parser.Parser[int] {
		built = append(built, depth)
		return parser.Lift(depth)
	})
	for range 3 {
		for _, d := range []int{2, 0, 2} {
			if v, _, ok := parse(lv.At(d), ""); !ok || v != d {
				t.Errorf("Level %d: got %d, %v", d, v, ok)
			}
		}
	}
	if diff := cmp.Diff([]int{2, 0}, built); diff != "" {
		t.Errorf("Built levels (-want, +got):\n%s", diff)
	}

	// A level that is never applied is never built.
	lv.At(5)
	if len(built) != 2 {
		t.Errorf("Built levels: got %v, want only [2 0]", built)
	}
}
