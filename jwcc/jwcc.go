// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jwcc parses JSON With Commas and Comments (JWCC) into arenas, as
// defined by https://nigeltao.github.io/blog/2021/json-with-commas-comments.html
//
// Comments and trailing commas are replaced by spaces before parsing, so the
// offsets and line numbers reported for the standardized text, including the
// spans of nodes and the locations of syntax errors, also apply to the
// original input.
package jwcc

import (
	"bytes"
	"fmt"

	"github.com/creachadair/jarena"
	"github.com/tailscale/hujson"
)

// Standardize returns a copy of src in which every comment and trailing
// comma is replaced by spaces, so that the result is standard JSON. Line
// breaks inside comments are preserved. The contents of src are not
// modified.
func Standardize(src []byte) ([]byte, error) {
	v, err := hujson.Parse(bytes.Clone(src))
	if err != nil {
		return nil, fmt.Errorf("jwcc: %w", err)
	}
	v.Standardize()
	return v.Pack(), nil
}

// IsStandard reports whether src is already standard JSON, having no
// comments or trailing commas.
func IsStandard(src []byte) (bool, error) {
	v, err := hujson.Parse(src)
	if err != nil {
		return false, fmt.Errorf("jwcc: %w", err)
	}
	return v.IsStandard(), nil
}

// Parse standardizes src and parses the result into an arena using opts.
// A nil *jarena.Options provides default settings.
func Parse(src []byte, opts *jarena.Options) (*jarena.Arena, error) {
	std, err := Standardize(src)
	if err != nil {
		return nil, err
	}
	if opts != nil && opts.Logger != nil && !bytes.Equal(std, src) {
		opts.Logger.Debug().Int("bytes", len(src)).Msg("standardized JWCC input")
	}
	return opts.Parse(std)
}

// ParseString is as Parse, but takes its input as a string.
func ParseString(src string, opts *jarena.Options) (*jarena.Arena, error) {
	return Parse([]byte(src), opts)
}
