package mdast

import "fmt"

// Point represents one place in a source file.
type Point struct {
	// Line is the 1-based line number.
	Line int `json:"line" yaml:"line"`

	// Column is the 1-based column, counted in bytes.
	Column int `json:"column" yaml:"column"`

	// Offset is the 0-based byte offset from the start of the source.
	Offset int `json:"offset" yaml:"offset"`
}

// NewPoint creates a Point, panicking if line or column is below 1 or offset is negative.
func NewPoint(line, column, offset int) Point {
	if line < 1 {
		panic(fmt.Sprintf("mdast: point line must be >= 1, got %d", line))
	}
	if column < 1 {
		panic(fmt.Sprintf("mdast: point column must be >= 1, got %d", column))
	}
	if offset < 0 {
		panic(fmt.Sprintf("mdast: point offset must be >= 0, got %d", offset))
	}
	return Point{Line: line, Column: column, Offset: offset}
}

// IsValid returns true if this point has valid (positive) line and column values.
func (p Point) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position represents the location of a node in a source file.
// Start is the first character of the region; End is the first character after it.
type Position struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`

	// Indent is the 1-based start column of each line after the first,
	// for regions that span multiple lines. Nil when not tracked.
	Indent *int `json:"indent,omitempty" yaml:"indent,omitempty"`
}

// NewPosition creates a Position spanning start to end.
// It panics if end precedes start.
func NewPosition(start, end Point) Position {
	if end.Offset < start.Offset {
		panic(fmt.Sprintf("mdast: position end offset %d precedes start offset %d", end.Offset, start.Offset))
	}
	return Position{Start: start, End: end}
}

// NewPositionWithIndent creates a Position with an indent column, which must be at least 1.
func NewPositionWithIndent(start, end Point, indent int) Position {
	return NewPosition(start, end).WithIndent(indent)
}

// WithIndent returns a copy of the position with its indent set.
func (p Position) WithIndent(indent int) Position {
	if indent < 1 {
		panic(fmt.Sprintf("mdast: position indent must be >= 1, got %d", indent))
	}
	p.Indent = &indent
	return p
}

// StartOffset returns the byte offset where the region begins (inclusive).
func (p Position) StartOffset() int {
	return p.Start.Offset
}

// EndOffset returns the byte offset where the region ends (exclusive).
func (p Position) EndOffset() int {
	return p.End.Offset
}

// Len returns the length of the region in bytes.
func (p Position) Len() int {
	return p.End.Offset - p.Start.Offset
}

// IsEmpty returns true if the region has zero length.
func (p Position) IsEmpty() bool {
	return p.Len() == 0
}

// Contains returns true if the given offset is within this region.
func (p Position) Contains(offset int) bool {
	return offset >= p.Start.Offset && offset < p.End.Offset
}

// IsSingleLine returns true if start and end are on the same line.
func (p Position) IsSingleLine() bool {
	return p.Start.Line == p.End.Line
}

func (p Position) String() string {
	return fmt.Sprintf("%s-%s", p.Start, p.End)
}
