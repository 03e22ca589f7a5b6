package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/internal/ui/pretty"
	"github.com/yaklabco/marcup/pkg/markdown"
)

func TestFormatParseError_Syntax(t *testing.T) {
	styles := pretty.NewStyles(false)
	source := "para\n\n## \n"

	_, err := markdown.Parse(source)
	require.Error(t, err)

	out := styles.FormatParseError("doc.md", err, []byte(source))

	assert.Contains(t, out, "doc.md:3:")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "(Block > Header")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "        ## ", lines[1])
	assert.Equal(t, "^", strings.TrimSpace(lines[2]))
}

func TestFormatParseError_WithoutSource(t *testing.T) {
	styles := pretty.NewStyles(false)

	_, err := markdown.Parse("# ")
	require.Error(t, err)

	out := styles.FormatParseError("doc.md", err, nil)

	assert.Contains(t, out, "doc.md:1:")
	assert.NotContains(t, out, "^")
}

func TestFormatParseError_Plain(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatParseError("missing.md", errors.New("file not found"), nil)

	assert.Equal(t, "  missing.md  error  file not found\n", out)
}

func TestFormatSourceContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatSourceContext("## Heading", 3)

	assert.Equal(t, "        ## Heading\n          ^\n", out)
}
