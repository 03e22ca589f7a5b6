package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/marcup/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 12 blocks, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s parsed", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles)),
		fmt.Sprintf("%d %s", stats.Blocks(), plural(stats.Blocks(), "block", "blocks")),
	}

	if stats.FilesErrored == 0 {
		return s.Success.Render(parts[0]) + ", " + strings.Join(parts[1:], ", ") + "\n"
	}

	parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.ParseErrors > 0 {
		builder.WriteString("    Syntax errors:   " +
			s.Error.Render(strconv.Itoa(stats.ParseErrors)) + "\n")
	}

	builder.WriteString("  Bytes:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.Bytes)) + "\n")

	if len(stats.Nodes) > 0 {
		builder.WriteString("\n")
		types := make([]string, 0, len(stats.Nodes))
		for typ := range stats.Nodes {
			types = append(types, typ)
		}
		slices.Sort(types)
		for _, typ := range types {
			builder.WriteString(fmt.Sprintf("  %-19s%s\n", typ+":", s.SummaryValue.Render(strconv.Itoa(stats.Nodes[typ]))))
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Parse failed"))
	default:
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
