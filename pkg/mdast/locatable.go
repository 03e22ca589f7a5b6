package mdast

import (
	"fmt"
	"hash/maphash"

	"github.com/google/go-cmp/cmp"
)

//nolint:gochecknoglobals // Seed must be shared so equal values hash identically.
var hashSeed = maphash.MakeSeed()

// Locatable pairs a value with the region of source it was parsed from.
//
// Equality and hashing consider only the wrapped value: two locatables holding
// equal values at different positions are equal and hash identically. This lets
// trees be compared structurally regardless of where they appeared.
type Locatable[T any] struct {
	inner    T
	position Position
}

// NewLocatable wraps value with the given position.
func NewLocatable[T any](value T, position Position) Locatable[T] {
	return Locatable[T]{inner: value, position: position}
}

// Generated wraps a value that has no source location.
func Generated[T any](value T) Locatable[T] {
	return Locatable[T]{inner: value}
}

// Value returns the wrapped value.
func (l Locatable[T]) Value() T {
	return l.inner
}

// Position returns the source region of the wrapped value.
func (l Locatable[T]) Position() Position {
	return l.position
}

// Equal reports whether both locatables wrap equal values. Positions are ignored,
// including the positions of any locatables nested inside the values.
func (l Locatable[T]) Equal(other Locatable[T]) bool {
	return cmp.Equal(l.inner, other.inner)
}

// EqualValue reports whether the wrapped value equals v.
func (l Locatable[T]) EqualValue(v T) bool {
	return cmp.Equal(l.inner, v)
}

// Hash returns a hash of the wrapped value only.
func (l Locatable[T]) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	fmt.Fprintf(&h, "%#v", l.inner)
	return h.Sum64()
}

// GoString prints only the wrapped value so that nested positions do not leak
// into %#v output (and therefore into Hash).
func (l Locatable[T]) GoString() string {
	return fmt.Sprintf("%#v", l.inner)
}

func (l Locatable[T]) String() string {
	return fmt.Sprintf("%v@%s", l.inner, l.position)
}

// Map transforms the wrapped value while keeping its position.
func Map[T, U any](l Locatable[T], f func(T) U) Locatable[U] {
	return NewLocatable(f(l.inner), l.position)
}

// Transpose turns a locatable optional value into an optional locatable.
func Transpose[T any](l Locatable[*T]) (Locatable[T], bool) {
	if l.inner == nil {
		return Locatable[T]{}, false
	}
	return NewLocatable(*l.inner, l.position), true
}
