package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/marcup/internal/ui/pretty"
	"github.com/yaklabco/marcup/pkg/runner"
)

// SummaryReporter writes aggregate statistics without the trees.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		if file.Error != nil {
			path := relativePath(r.opts.WorkingDir, file.Path)
			fmt.Fprint(r.opts.ErrorWriter, r.errStyles.FormatParseError(path, file.Error, file.Content))
		}
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	return failures(result), nil
}
