// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package grammar

import (
	"math"

	"github.com/creachadair/jarena/internal/escape"
	"github.com/creachadair/jarena/parser"
)

// maxExponent bounds the accumulated decimal exponent of a number. Beyond
// it every finite mantissa has already scaled to zero or infinity.
const maxExponent = 1 << 20

var (
	ws       = parser.Whitespace()
	comma    = parser.Right(ws, parser.Char(','))
	digit    = parser.OneOf("0123456789")
	nonzero  = parser.OneOf("123456789")
	hexDigit = parser.OneOf("0123456789abcdefABCDEF")

	boolParser = parser.Or(
		parser.Map(parser.Literal("true"), func(string) bool { return true }),
		parser.Map(parser.Literal("false"), func(string) bool { return false }),
	)
	nullParser    = parser.Skip(parser.Literal("null"))
	keywordParser = parser.Or(parser.Literal("true"), parser.Literal("false"), parser.Literal("null"))
	numberParser  = newNumberParser()

	escapedByte = parser.Map(parser.Right(parser.Char('\\'), parser.OneOf(`"\/bfnrt`)), func(c byte) byte {
		b, _ := escape.Control(c)
		return b
	})
	codePoint = parser.Right(parser.Char('\\'), parser.Right(parser.Char('u'),
		parser.ExactlyN(hexDigit, 4, rune(0), func(cp rune, c byte) rune {
			v, _ := escape.HexValue(c)
			return cp<<4 | v
		})))
	rawByte = parser.NoneOf(`\"`)

	unicodePoint = parser.Map(codePoint, func(cp rune) Chunk {
		buf, n := escape.Encode(cp)
		return Chunk{buf: buf, n: uint8(n)}
	})
	stringChar = parser.Or(
		parser.Map(escapedByte, byteChunk),
		unicodePoint,
		parser.Map(rawByte, byteChunk),
	)
	stringCharSize = parser.Or(
		parser.Map(escapedByte, func(byte) int { return 1 }),
		parser.Map(codePoint, escape.Len),
		parser.Map(rawByte, func(byte) int { return 1 }),
	)
	stringBody     = parser.Many(stringChar, []byte{}, func(buf []byte, c Chunk) []byte { return c.AppendTo(buf) })
	stringSizeBody = parser.Many(stringCharSize, 0, func(n, m int) int { return n + m })
)

// Bool returns a parser for the JSON constants true and false.
func Bool() parser.Parser[bool] { return boolParser }

// Null returns a parser for the JSON constant null.
func Null() parser.Parser[struct{}] { return nullParser }

// Keyword returns a parser for any of the JSON constants true, false, and
// null, yielding the matched text.
func Keyword() parser.Parser[string] { return keywordParser }

// Comma returns a parser for a value separator, including any whitespace
// that precedes it.
func Comma() parser.Parser[byte] { return comma }

// Number returns a parser for a JSON number.
//
// The grammar is an optional minus sign, an integer part that is either 0
// or a run of digits not beginning with 0, an optional fraction, and an
// optional exponent. Fraction digits are folded from the rightmost digit
// leftward, d = (d + digit)/10, and the exponent is applied by repeated
// multiplication or division by 10.
func Number() parser.Parser[float64] { return numberParser }

func newNumberParser() parser.Parser[float64] {
	sign := parser.Option('+', parser.Char('-'))
	integral := parser.Or(
		parser.Map(parser.Char('0'), func(byte) float64 { return 0 }),
		parser.Map(parser.Recognize(parser.Right(nonzero, parser.Many(digit, struct{}{}, skipByte))), foldIntegral),
	)
	fraction := parser.Right(parser.Char('.'),
		parser.Map(parser.Recognize(parser.Many1(digit, struct{}{}, skipByte)), foldFraction))
	mantissa := parser.Combine(integral, parser.Option(0.0, fraction), func(i, f float64) float64 {
		return i + f
	})
	exponent := parser.Right(parser.OneOf("eE"), parser.Combine(
		parser.Option('+', parser.OneOf("+-")),
		parser.Many1(digit, 0, func(n int, c byte) int {
			if n >= maxExponent {
				return n
			}
			return n*10 + int(c-'0')
		}),
		func(sign byte, n int) int {
			if sign == '-' {
				return -n
			}
			return n
		}))
	magnitude := parser.Combine(mantissa, parser.Option(0, exponent), scale)
	return parser.Combine(sign, magnitude, func(sign byte, v float64) float64 {
		if sign == '-' {
			return -v
		}
		return v
	})
}

func skipByte(s struct{}, _ byte) struct{} { return s }

// foldIntegral computes the value of the integer digits in span.
func foldIntegral(span parser.Input) float64 {
	var v float64
	for i := 0; i < span.Len(); i++ {
		v = v*10 + float64(span.At(i)-'0')
	}
	return v
}

// foldFraction computes the value of the fraction digits in span, which
// follow a decimal point.
func foldFraction(span parser.Input) float64 {
	var d float64
	for i := span.Len() - 1; i >= 0; i-- {
		d = (d + float64(span.At(i)-'0')) / 10
	}
	return d
}

// scale applies a decimal exponent to m by repeated multiplication or
// division. Once m reaches zero or infinity further steps cannot change it.
func scale(m float64, exp int) float64 {
	for ; exp > 0 && m != 0 && !math.IsInf(m, 0); exp-- {
		m *= 10
	}
	for ; exp < 0 && m != 0; exp++ {
		m /= 10
	}
	return m
}

// A Chunk is the UTF-8 encoding of one decoded string character: a single
// byte for a plain or escaped character, or up to four bytes for a \uXXXX
// escape.
type Chunk struct {
	buf [4]byte
	n   uint8
}

func byteChunk(b byte) Chunk { return Chunk{buf: [4]byte{b}, n: 1} }

// Len reports the number of bytes in c.
func (c Chunk) Len() int { return int(c.n) }

// Bytes returns a copy of the bytes of c.
func (c Chunk) Bytes() []byte { return c.buf[:c.n:c.n] }

// AppendTo appends the bytes of c to buf and returns the extended slice.
func (c Chunk) AppendTo(buf []byte) []byte { return append(buf, c.buf[:c.n]...) }

// StringChar returns a parser for a single character of the body of a JSON
// string: a backslash escape, a \uXXXX escape, or any byte other than a
// backslash or double quote.
func StringChar() parser.Parser[Chunk] { return stringChar }

// UnicodePoint returns a parser for a \uXXXX escape, yielding its code point
// encoded as UTF-8.
func UnicodePoint() parser.Parser[Chunk] { return unicodePoint }

// String returns a parser for a quoted JSON string, yielding its decoded
// contents.
func String() parser.Parser[[]byte] { return Quoted(stringBody) }

// StringSize returns a parser for a quoted JSON string, yielding the number
// of bytes its decoded contents occupy.
func StringSize() parser.Parser[int] { return Quoted(stringSizeBody) }

// Quoted returns a parser that applies body between double quotation marks.
func Quoted[T any](body parser.Parser[T]) parser.Parser[T] {
	q := parser.Char('"')
	return parser.Right(q, parser.Left(body, q))
}
