package pretty

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/term"

	"github.com/yaklabco/marcup/pkg/mdast"
)

const (
	// branchWidth is the width of one level of tree indentation ("├── ").
	branchWidth = 4

	// minValueWidth is the narrowest a node value is truncated to.
	minValueWidth = 8
)

// TreeOptions controls tree rendering.
type TreeOptions struct {
	// Positions appends each node's source position to its label.
	Positions bool

	// Width truncates node values so labels fit the given number of
	// columns. Zero disables truncation.
	Width int
}

// RenderTree renders a unist tree as an indented tree diagram.
func (s *Styles) RenderTree(node *mdast.UnistNode, opts TreeOptions) string {
	if node == nil {
		return ""
	}
	return s.buildTree(node, opts, 0).String()
}

func (s *Styles) buildTree(node *mdast.UnistNode, opts TreeOptions, depth int) *tree.Tree {
	t := tree.Root(s.label(node, opts, depth)).
		Enumerator(tree.DefaultEnumerator).
		EnumeratorStyle(s.Branch.PaddingRight(1))

	if node.Children == nil {
		return t
	}
	for _, child := range *node.Children {
		if child.Children == nil {
			t.Child(s.label(child, opts, depth+1))
			continue
		}
		t.Child(s.buildTree(child, opts, depth+1))
	}
	return t
}

// label formats one node as "type attrs "value" position".
func (s *Styles) label(node *mdast.UnistNode, opts TreeOptions, depth int) string {
	var parts, plain []string

	add := func(style lipgloss.Style, text string) {
		parts = append(parts, style.Render(text))
		plain = append(plain, text)
	}

	if isInlineType(node.Type) {
		add(s.Inline, node.Type)
	} else {
		add(s.Block, node.Type)
	}
	if node.Depth != nil {
		add(s.Attr, "depth="+strconv.Itoa(*node.Depth))
	}
	if node.Setext != nil && *node.Setext {
		add(s.Attr, "setext")
	}
	if node.Lang != nil {
		add(s.Attr, "lang="+*node.Lang)
	}
	if node.Meta != nil {
		add(s.Attr, "meta="+strconv.Quote(*node.Meta))
	}

	var position string
	if opts.Positions && node.Position != nil {
		position = node.Position.String()
	}

	if node.Value != nil {
		value := strconv.Quote(*node.Value)
		if opts.Width > 0 {
			used := branchWidth*depth + lipgloss.Width(strings.Join(plain, " ")) + 1
			if position != "" {
				used += len(position) + 1
			}
			value = truncate(value, max(opts.Width-used, minValueWidth))
		}
		add(s.Value, value)
	}

	if position != "" {
		add(s.Position, position)
	}
	return strings.Join(parts, " ")
}

func isInlineType(typ string) bool {
	switch typ {
	case mdast.TypeText, mdast.TypeEmphasis, mdast.TypeStrong:
		return true
	default:
		return false
	}
}

// truncate shortens s to at most width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// TerminalWidth returns the column count of the terminal behind w, or 0
// when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	fd := int(f.Fd()) //nolint:gosec // File descriptors fit in int.
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
