package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// The last line may not have a trailing newline.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// PointAt converts a byte offset to a Point. Columns count bytes.
// Offsets past the end of content clamp to the end of the last line.
func (f *FileSnapshot) PointAt(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if len(f.Lines) == 0 {
		return Point{Line: 1, Column: 1, Offset: 0}
	}
	if offset >= len(f.Content) {
		offset = len(f.Content)
		last := len(f.Lines) - 1
		return Point{Line: last + 1, Column: offset - f.Lines[last].StartOffset + 1, Offset: offset}
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	return Point{
		Line:   lineIdx + 1,
		Column: offset - f.Lines[lineIdx].StartOffset + 1,
		Offset: offset,
	}
}

// PositionOf converts a byte range to a Position.
func (f *FileSnapshot) PositionOf(start, end int) Position {
	if end < start {
		end = start
	}
	return NewPosition(f.PointAt(start), f.PointAt(end))
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	lineInfo := f.Lines[line-1]
	return f.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}
