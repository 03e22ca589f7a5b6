package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/marcup/pkg/mdast"
)

// maxIndent is the deepest indentation of a block marker before it becomes indented code.
const maxIndent = 3

// mapper converts a goldmark AST into a located mdast tree. Nodes the mdast
// model has no counterpart for are flattened: container blocks contribute their
// children, and inline nodes degrade to their text.
type mapper struct {
	snapshot *mdast.FileSnapshot

	// cursor is the end offset of the last mapped block. It is used to find the
	// source line of blocks goldmark records no segments for, such as "#".
	cursor int
}

// newMapper creates a mapper over a snapshot whose line index is built.
func newMapper(snapshot *mdast.FileSnapshot) *mapper {
	return &mapper{snapshot: snapshot}
}

func (m *mapper) content() []byte {
	return m.snapshot.Content
}

// mapDocument converts a goldmark document into a root spanning the whole input.
func (m *mapper) mapDocument(doc ast.Node) mdast.Locatable[mdast.Root] {
	var blocks []mdast.Locatable[mdast.Block]
	m.mapBlocks(doc, &blocks)
	return mdast.NewLocatable(mdast.NewRoot(blocks), m.snapshot.PositionOf(0, len(m.content())))
}

// mapBlocks appends the blocks for each child of parent.
func (m *mapper) mapBlocks(parent ast.Node, out *[]mdast.Locatable[mdast.Block]) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		block, ok := m.mapBlock(child, out)
		if !ok {
			continue
		}
		*out = append(*out, block)
		m.cursor = max(m.cursor, block.Position().EndOffset())
	}
}

// mapBlock converts a single block. Container nodes without an mdast
// counterpart append their children to out directly and report false.
func (m *mapper) mapBlock(node ast.Node, out *[]mdast.Locatable[mdast.Block]) (mdast.Locatable[mdast.Block], bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return m.mapHeading(n)

	case *ast.Paragraph, *ast.TextBlock:
		return m.mapParagraph(n)

	case *ast.FencedCodeBlock:
		return m.mapFencedCode(n), true

	case *ast.CodeBlock:
		return m.mapIndentedCode(n)

	case *ast.Blockquote:
		return m.mapBlockQuote(n), true

	case *ast.HTMLBlock:
		return m.mapRawLines(n)

	case *ast.ThematicBreak:
		return mdast.Locatable[mdast.Block]{}, false

	default:
		if first := node.FirstChild(); first != nil && first.Type() == ast.TypeInline {
			return m.mapParagraph(node)
		}
		m.mapBlocks(node, out)
		return mdast.Locatable[mdast.Block]{}, false
	}
}

func (m *mapper) mapHeading(h *ast.Heading) (mdast.Locatable[mdast.Block], bool) {
	children := m.mapInlines(h)

	var start, end int
	setext := false
	if lines := h.Lines(); lines.Len() > 0 {
		first, last := lines.At(0), lines.At(lines.Len()-1)
		lineStart := m.lineStartOf(first.Start)
		start = m.skipIndent(lineStart)
		setext = !m.isATX(start)
		if setext {
			end = m.lineEndAfter(last.Start, 1)
		} else {
			end = m.lineEndAfter(last.Start, 0)
		}
	} else {
		start, end = m.nextLine()
	}

	maxDepth := mdast.MaxHeadingDepth
	if setext {
		maxDepth = mdast.MaxSetextDepth
	}
	heading, err := mdast.NewHeading(min(h.Level, maxDepth), setext, children)
	if err != nil {
		return mdast.Locatable[mdast.Block]{}, false
	}
	return m.locate(heading, start, end), true
}

func (m *mapper) mapParagraph(node ast.Node) (mdast.Locatable[mdast.Block], bool) {
	children := m.mapInlines(node)
	p, err := mdast.NewParagraph(children)
	if err != nil {
		return mdast.Locatable[mdast.Block]{}, false
	}

	start, end, ok := m.linesRange(node.Lines())
	if !ok {
		start, end = containerRange(children)
	}
	return m.locate(p, start, end), true
}

func (m *mapper) mapFencedCode(cb *ast.FencedCodeBlock) mdast.Locatable[mdast.Block] {
	code := mdast.Code{Value: m.linesValue(cb.Lines())}
	if cb.Info != nil {
		info := bytes.TrimSpace(cb.Info.Value(m.content()))
		lang := cb.Language(m.content())
		code.Lang = string(lang)
		code.Meta = string(bytes.TrimSpace(info[min(len(lang), len(info)):]))
	}

	var openStart, openEnd int
	lines := cb.Lines()
	if lines.Len() > 0 {
		openLine := max(m.lineIndexOf(lines.At(0).Start)-1, 0)
		openStart = m.skipIndent(m.snapshot.Lines[openLine].StartOffset)
		openEnd = m.snapshot.Lines[openLine].NewlineStart
	} else {
		openStart, openEnd = m.nextLine()
	}

	fenceChar, fenceLen := m.fenceAt(openStart)
	lastLine := m.lineIndexOf(openEnd)
	if lines.Len() > 0 {
		lastLine = m.lineIndexOf(lines.At(lines.Len() - 1).Start)
	}
	end := m.snapshot.Lines[lastLine].NewlineStart
	if next := lastLine + 1; fenceChar != 0 && next < len(m.snapshot.Lines) {
		start := m.skipIndent(m.snapshot.Lines[next].StartOffset)
		if c, n := m.fenceAt(start); c == fenceChar && n >= fenceLen {
			end = m.snapshot.Lines[next].NewlineStart
		}
	}
	return m.locate(code, openStart, end)
}

func (m *mapper) mapIndentedCode(cb *ast.CodeBlock) (mdast.Locatable[mdast.Block], bool) {
	start, end, ok := m.linesRange(cb.Lines())
	if !ok {
		return mdast.Locatable[mdast.Block]{}, false
	}
	start = m.lineStartOf(start)
	return m.locate(mdast.Code{Value: m.linesValue(cb.Lines())}, start, end), true
}

// mapBlockQuote flattens the lines of every block inside the quote into raw lines.
func (m *mapper) mapBlockQuote(bq *ast.Blockquote) mdast.Locatable[mdast.Block] {
	var lines []mdast.Locatable[string]

	//nolint:errcheck // The walker never fails.
	ast.Walk(bq, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock || n.FirstChild() != nil && n.FirstChild().Type() == ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		segs := n.Lines()
		for i := range segs.Len() {
			seg := segs.At(i)
			stop := m.trimLineEnd(seg.Start, seg.Stop)
			lines = append(lines, mdast.NewLocatable(
				string(m.content()[seg.Start:stop]),
				m.snapshot.PositionOf(seg.Start, stop),
			))
		}
		return ast.WalkSkipChildren, nil
	})

	var start, end int
	if len(lines) > 0 {
		start = m.skipIndent(m.lineStartOf(lines[0].Position().StartOffset()))
		end = lines[len(lines)-1].Position().EndOffset()
	} else {
		start, end = m.nextLine()
	}
	return m.locate(mdast.NewBlockQuote(lines), start, end)
}

// mapRawLines turns a block of raw lines (HTML) into a paragraph of text lines.
func (m *mapper) mapRawLines(node ast.Node) (mdast.Locatable[mdast.Block], bool) {
	segs := node.Lines()
	var elements []mdast.Locatable[mdast.Inline]
	for i := range segs.Len() {
		seg := segs.At(i)
		stop := m.trimLineEnd(seg.Start, seg.Stop)
		if stop == seg.Start {
			continue
		}
		elements = append(elements, mdast.NewLocatable[mdast.Inline](
			mdast.NewText(string(m.content()[seg.Start:stop])),
			m.snapshot.PositionOf(seg.Start, stop),
		))
	}
	p, err := mdast.NewParagraph(mdast.NewInlineElementContainer(elements...))
	if err != nil {
		return mdast.Locatable[mdast.Block]{}, false
	}
	start, end := containerRange(p.Children)
	return m.locate(p, start, end), true
}

// mapInlines converts the inline children of parent. Adjacent text that is
// contiguous in the source is merged into one Text node.
func (m *mapper) mapInlines(parent ast.Node) mdast.InlineElementContainer {
	var out []mdast.Locatable[mdast.Inline]
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		m.appendInline(child, &out)
	}
	return mdast.NewInlineElementContainer(out...)
}

func (m *mapper) appendInline(node ast.Node, out *[]mdast.Locatable[mdast.Inline]) {
	switch n := node.(type) {
	case *ast.Text:
		m.appendText(out, n.Segment.Start, n.Segment.Stop)

	case *ast.Emphasis:
		children := m.mapInlines(n)
		if children.Len() == 0 {
			return
		}
		start, end := containerRange(children)
		start = max(start-n.Level, 0)
		end = min(end+n.Level, len(m.content()))

		var inline mdast.Inline = mdast.Emphasis{Children: children}
		if n.Level >= 2 {
			inline = mdast.Strong{Children: children}
		}
		*out = append(*out, mdast.NewLocatable(inline, m.snapshot.PositionOf(start, end)))

	case *ast.AutoLink:
		label := n.Label(m.content())
		if i := bytes.Index(m.content()[m.cursor:], label); i >= 0 {
			m.appendText(out, m.cursor+i, m.cursor+i+len(label))
		}

	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			m.appendText(out, seg.Start, seg.Stop)
		}

	case *ast.String:
		// Strings carry no segment; they take the position of what precedes them.
		pos := m.snapshot.PositionOf(m.cursor, m.cursor)
		if len(*out) > 0 {
			last := (*out)[len(*out)-1].Position()
			pos = m.snapshot.PositionOf(last.EndOffset(), last.EndOffset())
		}
		*out = append(*out, mdast.NewLocatable[mdast.Inline](mdast.NewText(string(n.Value)), pos))

	default:
		// Code spans, links and images degrade to the text they contain.
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			m.appendInline(child, out)
		}
	}
}

func (m *mapper) appendText(out *[]mdast.Locatable[mdast.Inline], start, stop int) {
	if stop <= start {
		return
	}
	if n := len(*out); n > 0 {
		prev := (*out)[n-1]
		if t, ok := prev.Value().(mdast.Text); ok && prev.Position().EndOffset() == start {
			merged := mdast.NewText(t.Value + string(m.content()[start:stop]))
			(*out)[n-1] = mdast.NewLocatable[mdast.Inline](merged, m.snapshot.PositionOf(prev.Position().StartOffset(), stop))
			return
		}
	}
	*out = append(*out, mdast.NewLocatable[mdast.Inline](
		mdast.NewText(string(m.content()[start:stop])),
		m.snapshot.PositionOf(start, stop),
	))
}

func (m *mapper) locate(block mdast.Block, start, end int) mdast.Locatable[mdast.Block] {
	return mdast.NewLocatable(block, m.snapshot.PositionOf(start, end))
}

// linesValue joins line segments and drops the final line terminator.
func (m *mapper) linesValue(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content()))
	}
	return string(bytes.TrimSuffix(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\r")))
}

// linesRange returns the byte range covered by line segments, excluding the
// final line terminator.
func (m *mapper) linesRange(lines *text.Segments) (int, int, bool) {
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	return first.Start, m.trimLineEnd(last.Start, last.Stop), true
}

func (m *mapper) trimLineEnd(start, stop int) int {
	for stop > start && (m.content()[stop-1] == '\n' || m.content()[stop-1] == '\r') {
		stop--
	}
	return stop
}

// lineIndexOf returns the 0-based line containing offset.
func (m *mapper) lineIndexOf(offset int) int {
	return m.snapshot.PointAt(offset).Line - 1
}

func (m *mapper) lineStartOf(offset int) int {
	return m.snapshot.Lines[m.lineIndexOf(offset)].StartOffset
}

// lineEndAfter returns the end of the content of the line n lines below offset.
func (m *mapper) lineEndAfter(offset, n int) int {
	idx := min(m.lineIndexOf(offset)+n, len(m.snapshot.Lines)-1)
	return m.snapshot.Lines[idx].NewlineStart
}

// skipIndent advances past up to three leading spaces.
func (m *mapper) skipIndent(offset int) int {
	for i := 0; i < maxIndent && offset < len(m.content()) && m.content()[offset] == ' '; i++ {
		offset++
	}
	return offset
}

// nextLine returns the content range of the first non-blank line at or after the cursor.
func (m *mapper) nextLine() (int, int) {
	for idx := m.lineIndexOf(m.cursor); idx < len(m.snapshot.Lines); idx++ {
		line := m.snapshot.Lines[idx]
		if line.StartOffset < m.cursor {
			continue
		}
		content := m.content()[line.StartOffset:line.NewlineStart]
		if len(bytes.TrimSpace(content)) > 0 {
			return m.skipIndent(line.StartOffset), line.NewlineStart
		}
	}
	return m.cursor, m.cursor
}

// isATX reports whether offset starts an ATX heading marker.
func (m *mapper) isATX(offset int) bool {
	content := m.content()
	n := 0
	for offset+n < len(content) && content[offset+n] == '#' {
		n++
	}
	if n == 0 || n > mdast.MaxHeadingDepth {
		return false
	}
	if offset+n == len(content) {
		return true
	}
	switch content[offset+n] {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// fenceAt reports the fence character and run length at offset.
func (m *mapper) fenceAt(offset int) (byte, int) {
	content := m.content()
	if offset >= len(content) || (content[offset] != '`' && content[offset] != '~') {
		return 0, 0
	}
	c, n := content[offset], 0
	for offset+n < len(content) && content[offset+n] == c {
		n++
	}
	return c, n
}

// containerRange returns the byte range spanned by inline elements.
func containerRange(c mdast.InlineElementContainer) (int, int) {
	if c.Len() == 0 {
		return 0, 0
	}
	start, end := c.Elements[0].Position().StartOffset(), 0
	for _, e := range c.Elements {
		start = min(start, e.Position().StartOffset())
		end = max(end, e.Position().EndOffset())
	}
	return start, end
}
