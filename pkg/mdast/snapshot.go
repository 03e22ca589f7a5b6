// Package mdast defines the Markdown syntax tree produced by marcup's parsers.
// Its shape follows the unist/mdast conventions: a Root holds Blocks, Blocks
// hold Inlines, and every child is wrapped in a Locatable carrying its source
// Position.
package mdast

// FileSnapshot is a parsed view of a Markdown file at a specific time.
// It holds the raw content, line metadata and the located AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the located document.
	Root Locatable[Root]
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot from content and builds its line index.
// The root is left empty; parsers fill it in.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
