// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jarena

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is reported when an accessor is applied to a node of
	// the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrKeyNotFound is reported by Lookup when an object has no member with
	// the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange is reported when an array element or object member
	// index is out of bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTooDeep is wrapped by a *SyntaxError when the input nests arrays
	// and objects more deeply than allowed.
	ErrTooDeep = errors.New("nesting too deep")
)

// SyntaxError is the concrete type of errors reported when the input is
// not valid JSON. The location is the furthest position the parser reached
// before it failed.
type SyntaxError struct {
	Location LineCol
	Offset   int
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// CapacityError is the panic value reported when an arena build uses more
// storage than was reserved, or when a parse uses less than its own sizing
// pass computed. Either indicates a defect, not a problem with the input.
type CapacityError struct {
	Resource string // "node" or "text"
	Cap      int    // the reserved capacity
	Used     int    // the amount of storage required
}

func (c *CapacityError) Error() string {
	return fmt.Sprintf("arena %s capacity %d does not match use %d", c.Resource, c.Cap, c.Used)
}

func typeMismatch(got, want Kind) error {
	return fmt.Errorf("%w: %v is not %v", ErrTypeMismatch, got, want)
}

func outOfRange(i, n int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
}
