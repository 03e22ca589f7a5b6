package parser

import (
	"fmt"

	"go4.org/mem"

	"github.com/yaklabco/marcup/pkg/mdast"
)

// A Span is an immutable cursor over source text. It covers the bytes
// [offset, end) of the source and knows the line and column of its first byte.
// Every operation returns a new Span; none mutates the receiver.
type Span struct {
	src    mem.RO
	offset int
	end    int
	line   int // 1-based
	column int // 1-based, in bytes
}

// NewSpan creates a cursor at the start of s.
func NewSpan(s string) Span {
	return newSpan(mem.S(s))
}

// NewSpanBytes creates a cursor at the start of b. The caller must not modify b
// while the span or anything parsed from it is in use.
func NewSpanBytes(b []byte) Span {
	return newSpan(mem.B(b))
}

func newSpan(src mem.RO) Span {
	return Span{src: src, offset: 0, end: src.Len(), line: 1, column: 1}
}

// Len returns the number of unconsumed bytes.
func (s Span) Len() int { return s.end - s.offset }

// IsEmpty reports whether no bytes remain.
func (s Span) IsEmpty() bool { return s.offset >= s.end }

// Offset returns the 0-based byte offset of the cursor in the source.
func (s Span) Offset() int { return s.offset }

// EndOffset returns the offset just past the last byte covered by the span.
func (s Span) EndOffset() int { return s.end }

// Line returns the 1-based line of the cursor.
func (s Span) Line() int { return s.line }

// Column returns the 1-based column of the cursor.
func (s Span) Column() int { return s.column }

// Point returns the cursor's location.
func (s Span) Point() mdast.Point {
	return mdast.Point{Line: s.line, Column: s.column, Offset: s.offset}
}

// Peek returns the next byte, or false at the end of the span.
func (s Span) Peek() (byte, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.src.At(s.offset), true
}

// At returns the byte i positions past the cursor. It panics if i is out of range.
func (s Span) At(i int) byte {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("parser: span index %d out of range [0,%d)", i, s.Len()))
	}
	return s.src.At(s.offset + i)
}

// HasPrefix reports whether the remaining text starts with prefix.
func (s Span) HasPrefix(prefix string) bool {
	return mem.HasPrefix(s.bytes(), mem.S(prefix))
}

// IndexByte returns the index of the first c in the remaining text, or -1.
func (s Span) IndexByte(c byte) int {
	return mem.IndexByte(s.bytes(), c)
}

// Index returns the index of the first occurrence of substr in the remaining text, or -1.
func (s Span) Index(substr string) int {
	return mem.Index(s.bytes(), mem.S(substr))
}

// String returns an owned copy of the remaining text.
func (s Span) String() string {
	return s.bytes().StringCopy()
}

func (s Span) bytes() mem.RO {
	return s.src.Slice(s.offset, s.end)
}

// Take returns a span over the first n bytes. It starts at the same location as s.
func (s Span) Take(n int) Span {
	s.checkLen(n)
	s.end = s.offset + n
	return s
}

// DropEnd returns s without its last n bytes.
func (s Span) DropEnd(n int) Span {
	s.checkLen(n)
	s.end -= n
	return s
}

// TakeEnd returns a span over the last n bytes, advancing to reach them.
func (s Span) TakeEnd(n int) Span {
	s.checkLen(n)
	return s.Advance(s.Len() - n)
}

// Advance returns a cursor n bytes further on. Line and column are updated by
// scanning only the n bytes consumed.
func (s Span) Advance(n int) Span {
	s.checkLen(n)
	stop := s.offset + n
	for i := s.offset; i < stop; i++ {
		if s.src.At(i) == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
	}
	s.offset = stop
	return s
}

// Until returns the region of s consumed to reach exit, which must be a cursor
// derived from s by advancing.
func (s Span) Until(exit Span) Span {
	if exit.offset < s.offset || exit.offset > s.end {
		panic(fmt.Sprintf("parser: exit offset %d outside span [%d,%d]", exit.offset, s.offset, s.end))
	}
	s.end = exit.offset
	return s
}

func (s Span) checkLen(n int) {
	if n < 0 || n > s.Len() {
		panic(fmt.Sprintf("parser: length %d out of range [0,%d]", n, s.Len()))
	}
}
