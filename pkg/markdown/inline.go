package markdown

import (
	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
)

// Emphasis and strong delimiters.
const delimiters = "*_"

// reserved holds the bytes that may start something other than plain text.
// Text scanning stops at them and only accepts one if no construct begins there.
//
//nolint:gochecknoglobals // Read-only lookup table.
var reserved = func() (t [256]bool) {
	t['\n'] = true
	t['\r'] = true
	for i := range len(delimiters) {
		t[delimiters[i]] = true
	}
	return t
}()

func isReserved(b byte) bool {
	return reserved[b]
}

// inlineContainer parses one or more inline elements. It does not consume a
// line terminator.
func inlineContainer(s parser.Span) (parser.Span, mdast.Locatable[mdast.InlineElementContainer], error) {
	return parser.Context("Inline Element Container",
		parser.Locate(parser.Map(parser.Many1(inlineElement), func(elements []mdast.Locatable[mdast.Inline]) mdast.InlineElementContainer {
			return mdast.NewInlineElementContainer(elements...)
		})),
	)(s)
}

// inlineElement tries emphasis, then strong, then plain text.
func inlineElement(s parser.Span) (parser.Span, mdast.Locatable[mdast.Inline], error) {
	return parser.Alt(emphasis, strong, text)(s)
}

// parseInlineSpan parses all of s as inline content.
func parseInlineSpan(s parser.Span) (mdast.InlineElementContainer, error) {
	rest, container, err := inlineContainer(s)
	if err != nil {
		return mdast.InlineElementContainer{}, err
	}
	if !rest.IsEmpty() {
		return mdast.InlineElementContainer{}, parser.Fail(rest, "unparsed inline content")
	}
	return container.Value(), nil
}

func emphasis(s parser.Span) (parser.Span, mdast.Locatable[mdast.Inline], error) {
	return parser.Context("Emphasis", parser.Locate(parser.Alt(
		decorated("*", newEmphasis),
		decorated("_", newEmphasis),
	)))(s)
}

func strong(s parser.Span) (parser.Span, mdast.Locatable[mdast.Inline], error) {
	return parser.Context("Strong", parser.Locate(parser.Alt(
		decorated("**", newStrong),
		decorated("__", newStrong),
	)))(s)
}

func newEmphasis(c mdast.InlineElementContainer) mdast.Inline { return mdast.Emphasis{Children: c} }
func newStrong(c mdast.InlineElementContainer) mdast.Inline   { return mdast.Strong{Children: c} }

// decorated matches marker, an interior on the same line, and marker again.
// The interior must not be empty: "**" never matches as empty single-delimiter
// emphasis, which leaves it for the strong production. It must also not begin
// or end with whitespace. The interior is parsed recursively as inline content.
func decorated(marker string, build func(mdast.InlineElementContainer) mdast.Inline) parser.Parser[mdast.Inline] {
	return parser.Context("Decorated Text", func(s parser.Span) (parser.Span, mdast.Inline, error) {
		rest, _, err := parser.Tag(marker)(s)
		if err != nil {
			return s, nil, err
		}

		_, line, _ := parser.NotLineEnding(rest)
		n := line.Index(marker)
		switch {
		case n < 0:
			return s, nil, parser.Fail(rest, "expected closing %q", marker)
		case n == 0:
			return s, nil, parser.Fail(rest, "expected content after %q", marker)
		}

		interior := rest.Take(n)
		if parser.IsSpace(interior.At(0)) || parser.IsSpace(interior.At(n-1)) {
			return s, nil, parser.Fail(rest, "decorated text must not start or end with whitespace")
		}

		children, err := parseInlineSpan(interior)
		if err != nil {
			return s, nil, err
		}

		return rest.Advance(n + len(marker)), build(children), nil
	})
}

// text consumes plain text. Runs of unreserved bytes are taken in one step;
// a reserved byte is taken alone, and only when it does not start a line
// ending, emphasis or strong text.
func text(s parser.Span) (parser.Span, mdast.Locatable[mdast.Inline], error) {
	plain := parser.TakeTill1(isReserved)
	single := parser.Preceded(isText, parser.Take(1))

	return parser.Context("Text", parser.Locate(parser.Map(
		parser.Recognize(parser.Many1(parser.Alt(plain, single))),
		func(run parser.Span) mdast.Inline { return mdast.NewText(run.String()) },
	)))(s)
}

func isText(s parser.Span) (parser.Span, struct{}, error) {
	for _, guard := range []parser.Parser[struct{}]{
		parser.Not(parser.LineEnding),
		parser.Not(emphasis),
		parser.Not(strong),
	} {
		if _, _, err := guard(s); err != nil {
			return s, struct{}{}, err
		}
	}
	return s, struct{}{}, nil
}
