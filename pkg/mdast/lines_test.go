package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []mdast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []mdast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "multiple lines CRLF",
			content: "line1\r\nline2\r\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 12, EndOffset: 14},
				{StartOffset: 14, NewlineStart: 14, EndOffset: 14},
			},
		},
		{
			name:    "only newline",
			content: "\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 1},
				{StartOffset: 1, NewlineStart: 1, EndOffset: 1},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, mdast.BuildLines([]byte(testCase.content)))
		})
	}
}

func TestFileSnapshot_PointAt(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("test.md", []byte("line1\nline2\nline3"))

	tests := []struct {
		name     string
		offset   int
		expected mdast.Point
	}{
		{"start of file", 0, mdast.Point{Line: 1, Column: 1, Offset: 0}},
		{"middle of line 1", 2, mdast.Point{Line: 1, Column: 3, Offset: 2}},
		{"newline of line 1", 5, mdast.Point{Line: 1, Column: 6, Offset: 5}},
		{"start of line 2", 6, mdast.Point{Line: 2, Column: 1, Offset: 6}},
		{"start of line 3", 12, mdast.Point{Line: 3, Column: 1, Offset: 12}},
		{"end of file", 17, mdast.Point{Line: 3, Column: 6, Offset: 17}},
		{"past end of file clamps", 40, mdast.Point{Line: 3, Column: 6, Offset: 17}},
		{"negative offset clamps", -1, mdast.Point{Line: 1, Column: 1, Offset: 0}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, snapshot.PointAt(testCase.offset))
		})
	}
}

func TestFileSnapshot_PointAtTrailingNewline(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("", []byte("a\n"))
	assert.Equal(t, mdast.Point{Line: 2, Column: 1, Offset: 2}, snapshot.PointAt(2))

	empty := mdast.NewFileSnapshot("", nil)
	assert.Equal(t, mdast.Point{Line: 1, Column: 1, Offset: 0}, empty.PointAt(0))
}

func TestFileSnapshot_PositionOf(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("test.md", []byte("ab\ncd"))

	pos := snapshot.PositionOf(1, 4)
	assert.Equal(t, mdast.Point{Line: 1, Column: 2, Offset: 1}, pos.Start)
	assert.Equal(t, mdast.Point{Line: 2, Column: 2, Offset: 4}, pos.End)
	assert.Equal(t, 3, pos.Len())

	inverted := snapshot.PositionOf(3, 1)
	assert.True(t, inverted.IsEmpty())
}

func TestFileSnapshot_LineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty", "", 0},
		{"single line no newline", "hello", 1},
		{"single line with newline", "hello\n", 2},
		{"three lines", "a\nb\nc", 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snapshot := mdast.NewFileSnapshot("test.md", []byte(testCase.content))
			assert.Equal(t, testCase.expected, snapshot.LineCount())
		})
	}
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("test.md", []byte("first\r\nsecond\nthird"))
	require.Equal(t, 3, snapshot.LineCount())

	assert.Equal(t, "first", string(snapshot.LineContent(1)))
	assert.Equal(t, "second", string(snapshot.LineContent(2)))
	assert.Equal(t, "third", string(snapshot.LineContent(3)))
	assert.Nil(t, snapshot.LineContent(0))
	assert.Nil(t, snapshot.LineContent(4))
}
