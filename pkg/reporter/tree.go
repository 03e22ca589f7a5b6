package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/marcup/internal/ui/pretty"
	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/runner"
)

// TreeReporter formats results as styled tree diagrams, one per file.
type TreeReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	treeOpts := pretty.TreeOptions{Positions: r.opts.Positions, Width: r.width()}
	showHeaders := len(result.Files) > 1

	first := true
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}

		path := relativePath(r.opts.WorkingDir, file.Path)
		if file.Error != nil {
			fmt.Fprint(r.opts.ErrorWriter, r.errStyles.FormatParseError(path, file.Error, file.Content))
			continue
		}
		if file.Snapshot == nil {
			continue
		}

		if !first {
			fmt.Fprintln(r.bw)
		}
		first = false

		if showHeaders {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path))
		}
		node := mdast.ToUnist(file.Snapshot.Root, mdast.EncodeOptions{Positions: r.opts.Positions})
		fmt.Fprintln(r.bw, r.styles.RenderTree(node, treeOpts))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failures(result), nil
}

func (r *TreeReporter) width() int {
	switch {
	case r.opts.Width > 0:
		return r.opts.Width
	case r.opts.Width < 0:
		return 0
	default:
		return pretty.TerminalWidth(r.opts.Writer)
	}
}
