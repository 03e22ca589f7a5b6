package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/marcup/pkg/fsutil"
	"github.com/yaklabco/marcup/pkg/mdast"
)

// Parser turns file content into a located tree. Both parser engines satisfy it.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// Runner parses many files with a worker pool.
type Runner struct {
	// Parser parses each file.
	Parser Parser

	// Logger receives per-file debug events. Defaults to a discarding logger.
	Logger *log.Logger
}

// New creates a Runner around parser.
func New(parser Parser) *Runner {
	return &Runner{Parser: parser, Logger: log.New(io.Discard)}
}

// Run discovers files under opts.Paths and parses them concurrently.
// It returns outcomes in path order together with aggregate stats.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.ParseFiles(ctx, files, opts.Jobs)
}

// ParseFiles parses the given files with up to jobs workers. Per-file failures
// are recorded in the outcomes; the returned error is only set on cancellation.
func (r *Runner) ParseFiles(ctx context.Context, files []string, jobs int) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each worker writes only its own slot.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			for i := range work {
				if ctx.Err() != nil {
					continue
				}
				outcomes[i] = r.parseFile(ctx, files[i])
				done[i] = true
			}
		})
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// ParseContent parses content already in memory, such as standard input,
// as a single-file run.
func (r *Runner) ParseContent(ctx context.Context, path string, content []byte) *Result {
	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1
	result.accumulate(r.parseContent(ctx, path, content, time.Now()))
	return result
}

func (r *Runner) parseFile(ctx context.Context, path string) FileOutcome {
	start := time.Now()

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		r.logger().Debug("read failed", "path", path, "error", err)
		return FileOutcome{Path: path, Error: err}
	}

	return r.parseContent(ctx, path, content, start)
}

func (r *Runner) parseContent(ctx context.Context, path string, content []byte, start time.Time) FileOutcome {
	outcome := FileOutcome{Path: path}

	snapshot, err := r.Parser.Parse(ctx, path, content)
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, err)
		outcome.Content = content
		r.logger().Debug("parse failed", "path", path, "error", err)
		return outcome
	}

	outcome.Snapshot = snapshot
	r.logger().Debug("parsed file",
		"path", path,
		"bytes", len(content),
		"blocks", len(snapshot.Root.Value().Children),
		"duration", time.Since(start),
	)
	return outcome
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}
