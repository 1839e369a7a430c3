// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jarena parses JSON text into a flat, fixed-capacity arena.
//
// # Arenas
//
// An Arena holds a parsed document as a sequence of tagged nodes plus one
// buffer of decoded string bytes. Arrays and objects refer to their contents
// by a View, an offset and extent into the node sequence, rather than by
// pointers. Node 0 is the root of the document:
//
//	a, err := jarena.ParseString(`{"name": "snow", "tags": [1, 2]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	tags, err := a.Root().Lookup("tags")
//	...
//	n, err := tags.ArrayLen()
//
// Accessors report ErrTypeMismatch when applied to a node of the wrong kind,
// ErrKeyNotFound for a missing object key, and ErrIndexOutOfRange for an
// index out of bounds. Lookup returns the first member with a given key.
//
// # Sizing and building
//
// Storage is computed before anything is built. Size runs a sizing pass
// over the input that counts the nodes and string bytes its value needs:
//
//	sz, err := jarena.Size(input)
//	if err != nil {
//	   log.Fatalf("Invalid input: %v", err)
//	}
//	a, err := jarena.Build(input, sz.Nodes, sz.Bytes)
//
// Parse combines these two steps. Build fills the arena one container at a
// time: it locates the text of each element of an array or object, reserves
// a contiguous run of slots for them, and only then parses each element into
// its slot. Once written, a node is never moved.
//
// If the input is not valid JSON, the error has concrete type *SyntaxError,
// which reports the furthest position the parser reached and what it
// expected there. Building into an arena that is too small is a program
// defect, and panics with a *CapacityError.
//
// The grammar used by the passes is defined in package grammar, in terms of
// the parser combinators of package parser.
package jarena
