package markdown_test

import (
	"github.com/yaklabco/marcup/pkg/mdast"
)

func txt(v string) mdast.Locatable[mdast.Inline] {
	return mdast.Generated[mdast.Inline](mdast.NewText(v))
}

func em(children ...mdast.Locatable[mdast.Inline]) mdast.Locatable[mdast.Inline] {
	return mdast.Generated[mdast.Inline](mdast.Emphasis{Children: mdast.NewInlineElementContainer(children...)})
}

func strong(children ...mdast.Locatable[mdast.Inline]) mdast.Locatable[mdast.Inline] {
	return mdast.Generated[mdast.Inline](mdast.Strong{Children: mdast.NewInlineElementContainer(children...)})
}

func heading(depth int, setext bool, children ...mdast.Locatable[mdast.Inline]) mdast.Locatable[mdast.Block] {
	return mdast.Generated[mdast.Block](mdast.MustHeading(depth, setext, mdast.NewInlineElementContainer(children...)))
}

func para(children ...mdast.Locatable[mdast.Inline]) mdast.Locatable[mdast.Block] {
	p, err := mdast.NewParagraph(mdast.NewInlineElementContainer(children...))
	if err != nil {
		panic(err)
	}
	return mdast.Generated[mdast.Block](p)
}

func quote(lines ...string) mdast.Locatable[mdast.Block] {
	located := make([]mdast.Locatable[string], len(lines))
	for i, line := range lines {
		located[i] = mdast.Generated(line)
	}
	return mdast.Generated[mdast.Block](mdast.NewBlockQuote(located))
}

func code(lang, meta, value string) mdast.Locatable[mdast.Block] {
	return mdast.Generated[mdast.Block](mdast.Code{Lang: lang, Meta: meta, Value: value})
}

func root(blocks ...mdast.Locatable[mdast.Block]) mdast.Locatable[mdast.Root] {
	return mdast.Generated(mdast.NewRoot(blocks))
}

func pos(startLine, startCol, startOffset, endLine, endCol, endOffset int) mdast.Position {
	return mdast.NewPosition(
		mdast.NewPoint(startLine, startCol, startOffset),
		mdast.NewPoint(endLine, endCol, endOffset),
	)
}
