package parser

import "github.com/yaklabco/marcup/pkg/mdast"

// Captured pairs a parser's result with the exact region of input it consumed.
type Captured[T any] struct {
	Value T

	// Span covers the consumed text and starts at its first byte.
	Span Span

	end mdast.Point
}

// Position resolves the captured region to a source position.
func (c Captured[T]) Position() mdast.Position {
	return mdast.NewPosition(c.Span.Point(), c.end)
}

// Locatable converts the capture into a located value.
func (c Captured[T]) Locatable() mdast.Locatable[T] {
	return mdast.NewLocatable(c.Value, c.Position())
}

// Capture records the region of input consumed by p.
func Capture[T any](p Parser[T]) Parser[Captured[T]] {
	return func(s Span) (Span, Captured[T], error) {
		rest, v, err := p(s)
		if err != nil {
			return s, Captured[T]{}, err
		}
		return rest, Captured[T]{Value: v, Span: s.Until(rest), end: rest.Point()}, nil
	}
}

// LocateCaptured turns a capturing parser into one that yields located values.
func LocateCaptured[T any](p Parser[Captured[T]]) Parser[mdast.Locatable[T]] {
	return Map(p, Captured[T].Locatable)
}

// Locate wraps the result of p with the position of the input it consumed.
func Locate[T any](p Parser[T]) Parser[mdast.Locatable[T]] {
	return LocateCaptured(Capture(p))
}
