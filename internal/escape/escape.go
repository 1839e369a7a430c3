// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the decoding of JSON string escapes.
package escape

// MaxCodePoint is the largest code point Encode will pack.
const MaxCodePoint = 0x10FFFF

// Control maps the letter of a single-character JSON escape to the byte it
// denotes. It reports false if c does not name a single-character escape.
func Control(c byte) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// HexValue reports the value of the hexadecimal digit b, or false if b is
// not a hexadecimal digit.
func HexValue(b byte) (rune, bool) {
	switch {
	case '0' <= b && b <= '9':
		return rune(b - '0'), true
	case 'a' <= b && b <= 'f':
		return rune(b - 'a' + 10), true
	case 'A' <= b && b <= 'F':
		return rune(b - 'A' + 10), true
	}
	return 0, false
}

// Len reports the number of bytes Encode uses for cp.
func Len(cp rune) int {
	switch {
	case cp <= 0x7F:
		return 1
	case cp <= 0x7FF:
		return 2
	case cp <= 0xFFFF:
		return 3
	case cp <= MaxCodePoint:
		return 4
	}
	return 0
}

// Encode packs cp into UTF-8 and reports the number of bytes used.
//
// Unlike utf8.EncodeRune, Encode packs each code point by its range alone:
// surrogate halves from a \u escape are written as three-byte sequences
// rather than replaced. Code points above MaxCodePoint encode as empty.
func Encode(cp rune) (buf [4]byte, n int) {
	switch {
	case cp <= 0x7F:
		buf[0] = byte(cp)
		return buf, 1
	case cp <= 0x7FF:
		buf[0] = 0xC0 | byte(cp>>6)
		buf[1] = 0x80 | byte(cp&0x3F)
		return buf, 2
	case cp <= 0xFFFF:
		buf[0] = 0xE0 | byte(cp>>12)
		buf[1] = 0x80 | byte((cp>>6)&0x3F)
		buf[2] = 0x80 | byte(cp&0x3F)
		return buf, 3
	case cp <= MaxCodePoint:
		buf[0] = 0xF0 | byte(cp>>18)
		buf[1] = 0x80 | byte((cp>>12)&0x3F)
		buf[2] = 0x80 | byte((cp>>6)&0x3F)
		buf[3] = 0x80 | byte(cp&0x3F)
		return buf, 4
	}
	return buf, 0
}
