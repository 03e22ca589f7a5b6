package mdast

import (
	"encoding/json"
	"fmt"
	"io"
)

// UnistNode is the serialisable unist form of a node.
type UnistNode struct {
	Type     string        `json:"type" yaml:"type"`
	Depth    *int          `json:"depth,omitempty" yaml:"depth,omitempty"`
	Setext   *bool         `json:"setext,omitempty" yaml:"setext,omitempty"`
	Lang     *string       `json:"lang,omitempty" yaml:"lang,omitempty"`
	Meta     *string       `json:"meta,omitempty" yaml:"meta,omitempty"`
	Value    *string       `json:"value,omitempty" yaml:"value,omitempty"`
	Children *[]*UnistNode `json:"children,omitempty" yaml:"children,omitempty"`
	Position *Position     `json:"position,omitempty" yaml:"position,omitempty"`
}

// EncodeOptions controls unist encoding.
type EncodeOptions struct {
	// Positions includes source positions on every node.
	Positions bool
}

// ToUnist converts a located document to its unist form.
func ToUnist(root Locatable[Root], opts EncodeOptions) *UnistNode {
	children := make([]*UnistNode, 0, len(root.Value().Children))
	for _, child := range root.Value().Children {
		children = append(children, blockToUnist(child, opts))
	}

	node := &UnistNode{Type: TypeRoot, Children: &children}
	setPosition(node, root.Position(), opts)
	return node
}

func blockToUnist(b Locatable[Block], opts EncodeOptions) *UnistNode {
	node := &UnistNode{Type: b.Value().Type()}

	switch n := b.Value().(type) {
	case Heading:
		depth, setext := n.Depth, n.Setext
		node.Depth = &depth
		node.Setext = &setext
		node.Children = inlinesToUnist(n.Children, opts)
	case Paragraph:
		node.Children = inlinesToUnist(n.Children, opts)
	case BlockQuote:
		lines := make([]*UnistNode, 0, len(n.Children))
		for _, line := range n.Children {
			value := line.Value()
			text := &UnistNode{Type: TypeText, Value: &value}
			setPosition(text, line.Position(), opts)
			lines = append(lines, text)
		}
		node.Children = &lines
	case Code:
		if n.Lang != "" {
			lang := n.Lang
			node.Lang = &lang
		}
		if n.Meta != "" {
			meta := n.Meta
			node.Meta = &meta
		}
		value := n.Value
		node.Value = &value
	}

	setPosition(node, b.Position(), opts)
	return node
}

func inlinesToUnist(c InlineElementContainer, opts EncodeOptions) *[]*UnistNode {
	nodes := make([]*UnistNode, 0, c.Len())
	for _, e := range c.Elements {
		node := &UnistNode{Type: e.Value().Type()}
		switch n := e.Value().(type) {
		case Text:
			value := n.Value
			node.Value = &value
		case Emphasis:
			node.Children = inlinesToUnist(n.Children, opts)
		case Strong:
			node.Children = inlinesToUnist(n.Children, opts)
		}
		setPosition(node, e.Position(), opts)
		nodes = append(nodes, node)
	}
	return &nodes
}

func setPosition(node *UnistNode, pos Position, opts EncodeOptions) {
	if !opts.Positions {
		return
	}
	p := pos
	node.Position = &p
}

// EncodeJSON writes the unist form of the document as indented JSON.
func EncodeJSON(w io.Writer, root Locatable[Root], opts EncodeOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToUnist(root, opts)); err != nil {
		return fmt.Errorf("encode unist json: %w", err)
	}
	return nil
}
