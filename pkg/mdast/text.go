package mdast

import "strings"

// PlainText renders inline content to its text, dropping decoration.
func PlainText(c InlineElementContainer) string {
	var sb strings.Builder
	writePlainText(&sb, c)
	return sb.String()
}

func writePlainText(sb *strings.Builder, c InlineElementContainer) {
	for _, e := range c.Elements {
		switch n := e.Value().(type) {
		case Text:
			sb.WriteString(n.Value)
		case Emphasis:
			writePlainText(sb, n.Children)
		case Strong:
			writePlainText(sb, n.Children)
		}
	}
}
