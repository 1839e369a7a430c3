// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jarena

import (
	"fmt"

	"go4.org/mem"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the number of bytes spanned by s.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// lineColAt returns the line and column of the given byte offset in text.
func lineColAt(text mem.RO, offset int) LineCol {
	lc := LineCol{Line: 1}
	for {
		i := mem.IndexByte(text, '\n')
		if i < 0 || i >= offset {
			break
		}
		lc.Line++
		text = text.SliceFrom(i + 1)
		offset -= i + 1
	}
	lc.Column = offset
	return lc
}
