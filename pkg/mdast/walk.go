package mdast

// WalkFunc is the function signature for Walk callbacks. It receives the node,
// its position and its depth in the tree (0 for the root).
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node, pos Position, depth int) error

// Walk performs a pre-order traversal of a located document.
// If walkFunc returns a non-nil error, the walk stops immediately and returns that error.
func Walk(root Locatable[Root], walkFunc WalkFunc) error {
	if err := walkFunc(root.Value(), root.Position(), 0); err != nil {
		return err
	}
	for _, child := range root.Value().Children {
		if err := walkBlock(child, 1, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

func walkBlock(b Locatable[Block], depth int, walkFunc WalkFunc) error {
	if err := walkFunc(b.Value(), b.Position(), depth); err != nil {
		return err
	}

	switch n := b.Value().(type) {
	case Heading:
		return walkInlines(n.Children, depth+1, walkFunc)
	case Paragraph:
		return walkInlines(n.Children, depth+1, walkFunc)
	case BlockQuote:
		for _, line := range n.Children {
			if err := walkFunc(NewText(line.Value()), line.Position(), depth+1); err != nil {
				return err
			}
		}
	case Code:
		// Leaf.
	}
	return nil
}

func walkInlines(c InlineElementContainer, depth int, walkFunc WalkFunc) error {
	for _, e := range c.Elements {
		if err := walkFunc(e.Value(), e.Position(), depth); err != nil {
			return err
		}

		var children InlineElementContainer
		switch n := e.Value().(type) {
		case Emphasis:
			children = n.Children
		case Strong:
			children = n.Children
		case Text:
			continue
		}
		if err := walkInlines(children, depth+1, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes of each type in the document.
func Count(root Locatable[Root]) map[string]int {
	counts := make(map[string]int)

	//nolint:errcheck // The callback never fails.
	Walk(root, func(n Node, _ Position, _ int) error {
		counts[n.Type()]++
		return nil
	})

	return counts
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(root Locatable[Root], predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck // The callback never fails.
	Walk(root, func(n Node, _ Position, _ int) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindByType returns all nodes with the given unist type.
func FindByType(root Locatable[Root], typ string) []Node {
	return FindAll(root, func(n Node) bool {
		return n.Type() == typ
	})
}
