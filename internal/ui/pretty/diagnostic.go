package pretty

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/marcup/pkg/parser"
)

// FormatParseError formats a file failure for terminal output. Syntax errors
// are shown with their location, the enclosing productions and, when source
// is given, the offending line with a caret under the failing column.
func (s *Styles) FormatParseError(path string, err error, source []byte) string {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return fmt.Sprintf("  %s  %s  %s\n",
			s.FilePath.Render(path),
			s.Error.Render("error"),
			s.Message.Render(err.Error()),
		)
	}

	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), perr.Line, perr.Column)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s", location, s.Error.Render("error"), s.Message.Render(perr.Message)))
	if len(perr.Contexts) > 0 {
		builder.WriteString("  " + s.Context.Render("("+strings.Join(perr.Contexts, " > ")+")"))
	}
	builder.WriteString("\n")

	if line := sourceLine(source, perr.Line); line != "" {
		builder.WriteString(s.FormatSourceContext(line, perr.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string) string {
	return s.FilePath.Render(path)
}

// sourceLine returns the 1-based line of source without its terminator.
func sourceLine(source []byte, line int) string {
	if line < 1 || len(source) == 0 {
		return ""
	}
	for i := 1; i < line; i++ {
		idx := bytes.IndexByte(source, '\n')
		if idx < 0 {
			return ""
		}
		source = source[idx+1:]
	}
	if idx := bytes.IndexByte(source, '\n'); idx >= 0 {
		source = source[:idx]
	}
	return string(bytes.TrimRight(source, "\r"))
}
