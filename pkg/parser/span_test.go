package parser_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
)

func TestSpan_Advance(t *testing.T) {
	t.Parallel()

	s := parser.NewSpan("ab\ncd\r\nef")
	assert.Equal(t, mdast.Point{Line: 1, Column: 1, Offset: 0}, s.Point())

	s2 := s.Advance(2)
	assert.Equal(t, mdast.Point{Line: 1, Column: 3, Offset: 2}, s2.Point())

	s3 := s2.Advance(1)
	assert.Equal(t, mdast.Point{Line: 2, Column: 1, Offset: 3}, s3.Point())

	s4 := s3.Advance(4)
	assert.Equal(t, mdast.Point{Line: 3, Column: 1, Offset: 7}, s4.Point())
	assert.Equal(t, "ef", s4.String())

	// The receiver is never modified.
	assert.Equal(t, 0, s.Offset())
	assert.Equal(t, 9, s.Len())
}

func TestSpan_TakeAndDrop(t *testing.T) {
	t.Parallel()

	s := parser.NewSpan("hello world").Advance(6)

	head := s.Take(3)
	assert.Equal(t, "wor", head.String())
	assert.Equal(t, s.Point(), head.Point())
	assert.Equal(t, 9, head.EndOffset())

	assert.Equal(t, "wo", s.DropEnd(3).String())

	tail := s.TakeEnd(2)
	assert.Equal(t, "ld", tail.String())
	assert.Equal(t, 10, tail.Column())

	mtest.MustPanic(t, func() { s.Take(6) })
	mtest.MustPanic(t, func() { s.Advance(-1) })
	mtest.MustPanic(t, func() { s.At(5) })
}

func TestSpan_Until(t *testing.T) {
	t.Parallel()

	s := parser.NewSpan("key: value")
	rest := s.Advance(3)
	assert.Equal(t, "key", s.Until(rest).String())

	mtest.MustPanic(t, func() { rest.Until(s) })
}

func TestSpan_Queries(t *testing.T) {
	t.Parallel()

	s := parser.NewSpanBytes([]byte("**bold**"))

	b, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, byte('*'), b)
	assert.True(t, s.HasPrefix("**"))
	assert.Equal(t, 2, s.IndexByte('b'))
	assert.Equal(t, 6, s.Advance(2).Index("**")+2)
	assert.Equal(t, -1, s.Index("__"))

	empty := s.Advance(s.Len())
	assert.True(t, empty.IsEmpty())
	_, ok = empty.Peek()
	assert.False(t, ok)
	assert.Equal(t, "", empty.String())
}

func TestSpan_StringIsOwned(t *testing.T) {
	t.Parallel()

	buf := []byte("abc")
	got := parser.NewSpanBytes(buf).String()
	buf[0] = 'x'
	assert.Equal(t, "abc", got)
}
