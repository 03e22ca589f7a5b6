package mdast

import (
	"errors"
	"fmt"
)

// Heading depth bounds.
const (
	MinHeadingDepth = 1
	MaxHeadingDepth = 6

	// MaxSetextDepth is the deepest level a setext (underlined) heading can express.
	MaxSetextDepth = 2
)

// Node type discriminators, as used in the unist "type" field.
const (
	TypeRoot       = "root"
	TypeHeading    = "heading"
	TypeParagraph  = "paragraph"
	TypeCode       = "code"
	TypeBlockQuote = "blockquote"
	TypeEmphasis   = "emphasis"
	TypeStrong     = "strong"
	TypeText       = "text"
)

// ErrInvalidHeadingDepth is returned when a heading depth is out of range for its style.
var ErrInvalidHeadingDepth = errors.New("invalid heading depth")

// ErrEmptyParagraph is returned when a paragraph is constructed without content.
var ErrEmptyParagraph = errors.New("paragraph must contain at least one inline element")

// Node is implemented by every AST node.
type Node interface {
	// Type returns the unist type discriminator.
	Type() string
}

// Block is a structural node: one of Heading, Paragraph, Code or BlockQuote.
type Block interface {
	Node
	blockNode()
}

// Inline is a node of textual content: one of Emphasis, Strong or Text.
type Inline interface {
	Node
	inlineNode()
}

// Root is the document. It is never the child of another node.
type Root struct {
	Children []Locatable[Block]
}

// NewRoot creates a document from its blocks.
func NewRoot(children []Locatable[Block]) Root {
	return Root{Children: children}
}

func (Root) Type() string { return TypeRoot }

// Heading is a section heading.
type Heading struct {
	// Depth is 1-6 for ATX headings, 1 or 2 for setext headings.
	Depth int

	// Setext is true for underlined headings.
	Setext bool

	Children InlineElementContainer
}

// NewHeading creates a heading, rejecting depths outside the range allowed for its style.
func NewHeading(depth int, setext bool, children InlineElementContainer) (Heading, error) {
	maxDepth := MaxHeadingDepth
	if setext {
		maxDepth = MaxSetextDepth
	}
	if depth < MinHeadingDepth || depth > maxDepth {
		return Heading{}, fmt.Errorf("%w: %d (setext=%t, want %d-%d)",
			ErrInvalidHeadingDepth, depth, setext, MinHeadingDepth, maxDepth)
	}
	return Heading{Depth: depth, Setext: setext, Children: children}, nil
}

// MustHeading is like NewHeading but panics on an invalid depth.
func MustHeading(depth int, setext bool, children InlineElementContainer) Heading {
	h, err := NewHeading(depth, setext, children)
	if err != nil {
		panic(err)
	}
	return h
}

func (Heading) Type() string { return TypeHeading }
func (Heading) blockNode()   {}

// Paragraph is a run of inline content.
type Paragraph struct {
	Children InlineElementContainer
}

// NewParagraph creates a paragraph; it must hold at least one inline element.
func NewParagraph(children InlineElementContainer) (Paragraph, error) {
	if children.Len() == 0 {
		return Paragraph{}, ErrEmptyParagraph
	}
	return Paragraph{Children: children}, nil
}

func (Paragraph) Type() string { return TypeParagraph }
func (Paragraph) blockNode()   {}

// BlockQuote holds quoted lines. The lines are kept as raw text and are not
// parsed for markup.
type BlockQuote struct {
	Children []Locatable[string]
}

// NewBlockQuote creates a block quote from its lines.
func NewBlockQuote(lines []Locatable[string]) BlockQuote {
	return BlockQuote{Children: lines}
}

// Lines returns the quoted lines without positions.
func (b BlockQuote) Lines() []string {
	lines := make([]string, len(b.Children))
	for i, line := range b.Children {
		lines[i] = line.Value()
	}
	return lines
}

func (BlockQuote) Type() string { return TypeBlockQuote }
func (BlockQuote) blockNode()   {}

// Code is a block of literal code. Empty Lang or Meta means the field is absent.
type Code struct {
	Lang  string
	Meta  string
	Value string
}

func (Code) Type() string { return TypeCode }
func (Code) blockNode()   {}

// Text is a literal run of text.
type Text struct {
	Value string
}

// NewText creates a text node.
func NewText(value string) Text {
	return Text{Value: value}
}

func (Text) Type() string { return TypeText }
func (Text) inlineNode()  {}

// Emphasis is single-delimiter decorated text (italic).
type Emphasis struct {
	Children InlineElementContainer
}

func (Emphasis) Type() string { return TypeEmphasis }
func (Emphasis) inlineNode()  {}

// Strong is double-delimiter decorated text (bold).
type Strong struct {
	Children InlineElementContainer
}

func (Strong) Type() string { return TypeStrong }
func (Strong) inlineNode()  {}
