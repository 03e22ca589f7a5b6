package mdast_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/marcup/pkg/mdast"
)

func TestNewPoint(t *testing.T) {
	t.Parallel()

	p := mdast.NewPoint(2, 3, 10)
	assert.Equal(t, mdast.Point{Line: 2, Column: 3, Offset: 10}, p)
	assert.True(t, p.IsValid())
	assert.Equal(t, "2:3", p.String())

	assert.False(t, mdast.Point{}.IsValid())

	mtest.MustPanic(t, func() { mdast.NewPoint(0, 1, 0) })
	mtest.MustPanic(t, func() { mdast.NewPoint(1, 0, 0) })
	mtest.MustPanic(t, func() { mdast.NewPoint(1, 1, -1) })
}

func TestPosition(t *testing.T) {
	t.Parallel()

	start := mdast.NewPoint(1, 1, 0)
	end := mdast.NewPoint(1, 6, 5)
	pos := mdast.NewPosition(start, end)

	assert.Equal(t, 5, pos.Len())
	assert.Equal(t, 0, pos.StartOffset())
	assert.Equal(t, 5, pos.EndOffset())
	assert.False(t, pos.IsEmpty())
	assert.True(t, pos.IsSingleLine())
	assert.Nil(t, pos.Indent)
	assert.Equal(t, "1:1-1:6", pos.String())

	assert.True(t, pos.Contains(0))
	assert.True(t, pos.Contains(4))
	assert.False(t, pos.Contains(5), "end is exclusive")
	assert.False(t, pos.Contains(-1))

	empty := mdast.NewPosition(start, start)
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Contains(0))
}

func TestPosition_Invariants(t *testing.T) {
	t.Parallel()

	start := mdast.NewPoint(1, 5, 4)
	before := mdast.NewPoint(1, 1, 0)

	mtest.MustPanic(t, func() { mdast.NewPosition(start, before) })
	mtest.MustPanic(t, func() { mdast.NewPositionWithIndent(before, start, 0) })

	pos := mdast.NewPositionWithIndent(before, mdast.NewPoint(3, 2, 20), 3)
	if assert.NotNil(t, pos.Indent) {
		assert.Equal(t, 3, *pos.Indent)
	}
	assert.False(t, pos.IsSingleLine())
}
