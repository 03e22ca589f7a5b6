package goldmark_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/markdown"
	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser/goldmark"
)

// TestParse_MatchesMarkdownGrammar checks that on the syntax both engines
// understand, they produce the same tree with the same positions.
func TestParse_MatchesMarkdownGrammar(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Header World",
		"## Two\n",
		"plain text",
		"line one\nline two",
		"first\n\nsecond",
		"a *b* c",
		"*alpha*",
		"**alpha**",
		"2 * 3 * 4",
		"Title\n=====",
		"Title\n---",
		"> line one\n> line two",
		"```go\nfmt.Println()\n```",
		"```\nplain\n```\n\nafter",
		"# Heading\n\nParagraph\n",
	}

	opts := mdast.EncodeOptions{Positions: true}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			want, err := markdown.Parse(input)
			require.NoError(t, err)

			got := parse(t, goldmark.FlavorCommonMark, input)

			if diff := cmp.Diff(mdast.ToUnist(want, opts), mdast.ToUnist(got.Root, opts)); diff != "" {
				t.Errorf("goldmark tree differs (-markdown +goldmark):\n%s", diff)
			}
		})
	}
}
