// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jarena

import (
	"fmt"

	"github.com/creachadair/jarena/grammar"
	"github.com/creachadair/jarena/parser"
	"github.com/rs/zerolog"
)

// Sizes records the number of nodes and string bytes an arena requires.
type Sizes = grammar.Sizes

// Options control the sizing and parsing of JSON input. A nil *Options is
// ready for use and provides default settings.
type Options struct {
	// MaxDepth is the maximum number of nested arrays and objects allowed.
	// If MaxDepth <= 0, grammar.DefaultMaxDepth is used.
	MaxDepth int

	// If not nil, diagnostic events are written to this logger at debug
	// level: each furthest failure recorded while parsing, and the outcome
	// of each pass.
	Logger *zerolog.Logger
}

func (o *Options) maxDepth() int {
	if o == nil {
		return 0
	}
	return o.MaxDepth
}

func (o *Options) logger() *zerolog.Logger {
	if o == nil || o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

func (o *Options) newEnv() *grammar.Env { return grammar.NewEnv(o.maxDepth(), o.logger()) }

// Size computes the number of nodes and string bytes required to hold the
// value of input in an arena. If input is not valid JSON, the error has
// concrete type *SyntaxError.
func (o *Options) Size(input []byte) (Sizes, error) { return o.size(parser.NewInput(input)) }

// Build parses input into an arena with capacity for the given numbers of
// nodes and string bytes. If input is not valid JSON, the error has concrete
// type *SyntaxError.
//
// Build panics with a *CapacityError if the capacities are too small for the
// value of input. Use Size to compute the capacities. If the capacities run
// out before the input is found to be invalid, Build reports the syntax
// error rather than panicking.
func (o *Options) Build(input []byte, nodes, bytes int) (*Arena, error) {
	return o.build(parser.NewInput(input), nodes, bytes)
}

// Parse sizes and then builds an arena for input. The resulting arena uses
// exactly its capacity. If input is not valid JSON, the error has concrete
// type *SyntaxError.
func (o *Options) Parse(input []byte) (*Arena, error) { return o.parse(parser.NewInput(input)) }

// ParseString is as Parse, but takes its input as a string.
func (o *Options) ParseString(input string) (*Arena, error) {
	return o.parse(parser.InputString(input))
}

func (o *Options) size(in parser.Input) (Sizes, error) {
	env := o.newEnv()
	r, ok := env.SizeDocument()(in).GetOK()
	if !ok {
		return Sizes{}, o.syntaxError(env, in, "size")
	}
	o.logger().Debug().Str("pass", "size").
		Int("nodes", r.Value.Nodes).Int("bytes", r.Value.Bytes).Msg("sized input")
	return r.Value, nil
}

func (o *Options) build(in parser.Input, nodes, bytes int) (_ *Arena, err error) {
	if nodes < 1 || bytes < 0 {
		return nil, fmt.Errorf("invalid arena capacity: %d nodes, %d bytes", nodes, bytes)
	}
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		if _, ok := x.(*CapacityError); ok {
			if _, serr := o.size(in); serr != nil {
				err = serr
				return
			}
		}
		panic(x)
	}()
	env := o.newEnv()
	a, ok := newBuilder(env, in, nodes, bytes).run()
	if !ok {
		return nil, o.syntaxError(env, in, "build")
	}
	o.logger().Debug().Str("pass", "build").
		Int("nodes", a.Len()).Int("bytes", a.TextLen()).Msg("built arena")
	return a, nil
}

func (o *Options) parse(in parser.Input) (*Arena, error) {
	sz, err := o.size(in)
	if err != nil {
		return nil, err
	}
	a, err := o.build(in, sz.Nodes, sz.Bytes)
	if err != nil {
		return nil, err
	}
	if a.Len() != sz.Nodes {
		panic(&CapacityError{Resource: "node", Cap: sz.Nodes, Used: a.Len()})
	} else if a.TextLen() != sz.Bytes {
		panic(&CapacityError{Resource: "text", Cap: sz.Bytes, Used: a.TextLen()})
	}
	return a, nil
}

func (o *Options) syntaxError(env *grammar.Env, in parser.Input, pass string) error {
	pos, msg := env.Failure()
	serr := &SyntaxError{
		Location: lineColAt(in.Bytes(), pos),
		Offset:   pos,
		Message:  msg,
	}
	if env.Exceeded() {
		serr.err = ErrTooDeep
	}
	o.logger().Debug().Str("pass", pass).Int("offset", pos).Str("error", msg).Msg("invalid input")
	return serr
}

// Size computes the storage required for input using default options.
func Size(input []byte) (Sizes, error) { return (*Options)(nil).Size(input) }

// Build parses input into an arena of the given capacity using default
// options.
func Build(input []byte, nodes, bytes int) (*Arena, error) {
	return (*Options)(nil).Build(input, nodes, bytes)
}

// Parse parses input into an arena using default options.
func Parse(input []byte) (*Arena, error) { return (*Options)(nil).Parse(input) }

// ParseString parses input into an arena using default options.
func ParseString(input string) (*Arena, error) { return (*Options)(nil).ParseString(input) }
