package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
)

func TestCapture(t *testing.T) {
	t.Parallel()

	word := parser.Map(parser.TakeWhile1(func(b byte) bool { return b != ' ' }), parser.Span.String)
	input := parser.NewSpan("skip hello rest").Advance(5)

	rest, captured, err := parser.Capture(word)(input)
	require.NoError(t, err)

	assert.Equal(t, "hello", captured.Value)
	assert.Equal(t, "hello", captured.Span.String())
	assert.Equal(t, 10, rest.Offset())
	assert.Equal(t, mdast.NewPosition(
		mdast.Point{Line: 1, Column: 6, Offset: 5},
		mdast.Point{Line: 1, Column: 11, Offset: 10},
	), captured.Position())
}

func TestLocate_MultiLine(t *testing.T) {
	t.Parallel()

	twoLines := parser.Recognize(parser.Preceded(parser.TakeUntilEndOfLineOrInput,
		parser.Preceded(parser.LineEnding, parser.TakeUntilEndOfLineOrInput)))

	_, located, err := parser.Locate(twoLines)(parser.NewSpan("first\nsecond\nthird"))
	require.NoError(t, err)

	assert.Equal(t, "first\nsecond", located.Value().String())
	assert.Equal(t, mdast.Point{Line: 1, Column: 1, Offset: 0}, located.Position().Start)
	assert.Equal(t, mdast.Point{Line: 2, Column: 7, Offset: 12}, located.Position().End)
	assert.Equal(t, 12, located.Position().Len())
}

func TestLocate_PropagatesErrors(t *testing.T) {
	t.Parallel()

	input := parser.NewSpan("abc")
	rest, _, err := parser.Locate(parser.Tag("x"))(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrMismatch)
	assert.Equal(t, input, rest)

	_, _, err = parser.Locate(parser.Cut(parser.Tag("x")))(input)
	assert.True(t, parser.IsFatal(err))
}

func TestLocate_EmptyMatch(t *testing.T) {
	t.Parallel()

	input := parser.NewSpan("ab").Advance(1)
	_, located, err := parser.Locate(parser.Space0)(input)
	require.NoError(t, err)
	assert.True(t, located.Position().IsEmpty())
	assert.Equal(t, 1, located.Position().StartOffset())
}
