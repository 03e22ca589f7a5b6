package mdast

// InlineElementContainer is an ordered collection of inline nodes.
// Order is render order.
type InlineElementContainer struct {
	Elements []Locatable[Inline]
}

// NewInlineElementContainer creates a container from a sequence of inline nodes.
func NewInlineElementContainer(elements ...Locatable[Inline]) InlineElementContainer {
	return InlineElementContainer{Elements: elements}
}

// ConcatContainers joins containers in order, e.g. the lines of a paragraph.
func ConcatContainers(containers ...InlineElementContainer) InlineElementContainer {
	total := 0
	for _, c := range containers {
		total += len(c.Elements)
	}
	elements := make([]Locatable[Inline], 0, total)
	for _, c := range containers {
		elements = append(elements, c.Elements...)
	}
	return InlineElementContainer{Elements: elements}
}

// Len returns the number of elements.
func (c InlineElementContainer) Len() int {
	return len(c.Elements)
}

// Inlines returns the elements without positions.
func (c InlineElementContainer) Inlines() []Inline {
	inlines := make([]Inline, len(c.Elements))
	for i, e := range c.Elements {
		inlines[i] = e.Value()
	}
	return inlines
}
