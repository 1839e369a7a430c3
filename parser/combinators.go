// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package parser

// Map returns a parser that applies p and transforms its value with f.
// The remaining input is that of p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in Input) Result[U] {
		r, ok := p(in).GetOK()
		if !ok {
			return None[U]()
		}
		return Ok(f(r.Value), r.Rest)
	}
}

// Bind returns a parser that applies p, and if it succeeds, passes its value
// and remaining input to f to continue parsing.
func Bind[T, U any](p Parser[T], f func(T, Input) Result[U]) Parser[U] {
	return func(in Input) Result[U] {
		r, ok := p(in).GetOK()
		if !ok {
			return None[U]()
		}
		return f(r.Value, r.Rest)
	}
}

// Combine returns a parser that applies p1 and then p2 to the input
// remaining from p1. Both must succeed; their values are merged by f.
func Combine[T, U, V any](p1 Parser[T], p2 Parser[U], f func(T, U) V) Parser[V] {
	return func(in Input) Result[V] {
		r1, ok := p1(in).GetOK()
		if !ok {
			return None[V]()
		}
		r2, ok := p2(r1.Rest).GetOK()
		if !ok {
			return None[V]()
		}
		return Ok(f(r1.Value, r2.Value), r2.Rest)
	}
}

// Left returns a parser that applies p1 then p2, and keeps the value of p1.
func Left[T, U any](p1 Parser[T], p2 Parser[U]) Parser[T] {
	return Combine(p1, p2, func(t T, _ U) T { return t })
}

// Right returns a parser that applies p1 then p2, and keeps the value of p2.
func Right[T, U any](p1 Parser[T], p2 Parser[U]) Parser[U] {
	return Combine(p1, p2, func(_ T, u U) U { return u })
}

// Or returns a parser that tries each of ps in order on the same input, and
// returns the result of the first to succeed. The first success wins even if
// a later alternative would also succeed. If all fail, Or fails.
func Or[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		for _, p := range ps {
			if r := p(in); r.Present() {
				return r
			}
		}
		return None[T]()
	}
}

// ZeroOrOne returns a parser that applies p at most once and yields the span
// of input it consumed, which is empty if p failed. It never fails.
func ZeroOrOne[T any](p Parser[T]) Parser[Input] {
	return func(in Input) Result[Input] {
		r, ok := p(in).GetOK()
		if !ok {
			return Ok(in.Through(in), in)
		}
		return Ok(in.Through(r.Rest), r.Rest)
	}
}

// Recognize returns a parser that applies p and yields the span of input
// consumed by p in place of its value.
func Recognize[T any](p Parser[T]) Parser[Input] {
	return func(in Input) Result[Input] {
		r, ok := p(in).GetOK()
		if !ok {
			return None[Input]()
		}
		return Ok(in.Through(r.Rest), r.Rest)
	}
}

// Option returns a parser that applies p, or yields def without consuming
// any input if p fails. It never fails.
func Option[T any](def T, p Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		if r := p(in); r.Present() {
			return r
		}
		return Ok(def, in)
	}
}

// Skip returns a parser that applies p and discards its value.
func Skip[T any](p Parser[T]) Parser[struct{}] {
	return Map(p, func(T) struct{} { return struct{}{} })
}

// Many returns a parser that applies p zero or more times, folding each
// value into an accumulator starting from init. It stops at the first
// failure of p, leaving the input as it was before the failed attempt.
// Many never fails.
//
// If p succeeds without consuming input, Many folds that value and stops.
func Many[T, A any](p Parser[T], init A, f func(A, T) A) Parser[A] {
	return func(in Input) Result[A] {
		acc, rest, _ := accumulate(in, p, -1, init, f)
		return Ok(acc, rest)
	}
}

// Many1 is as Many, but fails if p does not succeed at least once.
func Many1[T, A any](p Parser[T], init A, f func(A, T) A) Parser[A] {
	return func(in Input) Result[A] {
		r, ok := p(in).GetOK()
		if !ok {
			return None[A]()
		}
		acc := f(init, r.Value)
		if r.Rest.Pos() == in.Pos() {
			return Ok(acc, r.Rest)
		}
		acc, rest, _ := accumulate(r.Rest, p, -1, acc, f)
		return Ok(acc, rest)
	}
}

// ExactlyN returns a parser that applies p exactly n times, folding the
// values as Many does. It fails if p succeeds fewer than n times.
func ExactlyN[T, A any](p Parser[T], n int, init A, f func(A, T) A) Parser[A] {
	return func(in Input) Result[A] {
		acc, rest, count := accumulate(in, p, n, init, f)
		if count < n {
			return None[A]()
		}
		return Ok(acc, rest)
	}
}

// SepBy returns a parser that applies p zero or more times, with sep
// between consecutive occurrences, folding the values of p into an
// accumulator starting from init. A separator is consumed only if an
// element follows it. SepBy never fails.
func SepBy[T, S, A any](p Parser[T], sep Parser[S], init A, f func(A, T) A) Parser[A] {
	next := Right(sep, p)
	return func(in Input) Result[A] {
		r, ok := p(in).GetOK()
		if !ok {
			return Ok(init, in)
		}
		acc, rest, _ := accumulate(r.Rest, next, -1, f(init, r.Value), f)
		return Ok(acc, rest)
	}
}

// SepBy1 is as SepBy, but fails unless p succeeds at least once.
func SepBy1[T, S, A any](p Parser[T], sep Parser[S], init A, f func(A, T) A) Parser[A] {
	next := Right(sep, p)
	return func(in Input) Result[A] {
		r, ok := p(in).GetOK()
		if !ok {
			return None[A]()
		}
		acc, rest, _ := accumulate(r.Rest, next, -1, f(init, r.Value), f)
		return Ok(acc, rest)
	}
}

// Whitespace returns a parser that skips zero or more JSON whitespace bytes
// (space, tab, newline, carriage return). It never fails.
func Whitespace() Parser[struct{}] { return whitespace }

var whitespace = Many(OneOf(" \t\n\r"), struct{}{}, func(s struct{}, _ byte) struct{} { return s })

// accumulate applies p repeatedly starting at in, folding its values with f.
// If limit >= 0, at most limit values are folded. It reports the final value
// and the number of successful applications. The remaining input is the
// position just before the first failed application.
func accumulate[T, A any](in Input, p Parser[T], limit int, acc A, f func(A, T) A) (A, Input, int) {
	var n int
	for limit < 0 || n < limit {
		r, ok := p(in).GetOK()
		if !ok {
			break
		}
		acc = f(acc, r.Value)
		n++
		stuck := r.Rest.Pos() == in.Pos()
		in = r.Rest
		if stuck && limit < 0 {
			break // no progress; stop rather than loop
		}
	}
	return acc, in, n
}
