package runner

import (
	"errors"

	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot holds the content and tree. Nil if Error is set.
	Snapshot *mdast.FileSnapshot

	// Error is set if the file could not be read or parsed.
	Error error

	// Content holds the bytes that failed to parse, for error context.
	// Nil unless parsing (not reading) failed.
	Content []byte
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed successfully.
	FilesParsed int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// ParseErrors is the number of FilesErrored caused by invalid syntax
	// rather than I/O.
	ParseErrors int

	// Bytes is the total size of the parsed files.
	Bytes int

	// Nodes counts nodes of each unist type across all parsed files, root excluded.
	Nodes map[string]int
}

// Blocks returns the number of top-level blocks across all parsed files.
func (s Stats) Blocks() int {
	return s.Nodes[mdast.TypeHeading] + s.Nodes[mdast.TypeParagraph] +
		s.Nodes[mdast.TypeCode] + s.Nodes[mdast.TypeBlockQuote]
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in path order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to read or parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasParseErrors reports whether any file contained invalid syntax.
func (r *Result) HasParseErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.ParseErrors > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{Nodes: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		var perr *parser.Error
		if errors.As(outcome.Error, &perr) {
			r.Stats.ParseErrors++
		}
		return
	}

	if outcome.Snapshot == nil {
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Bytes += len(outcome.Snapshot.Content)
	for typ, n := range mdast.Count(outcome.Snapshot.Root) {
		if typ != mdast.TypeRoot {
			r.Stats.Nodes[typ] += n
		}
	}
}
