package reporter

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
	"github.com/yaklabco/marcup/pkg/runner"
)

// documentVersion is bumped when the multi-file document layout changes.
const documentVersion = "1"

// Document is the machine-readable form of a run. A run of exactly one
// successfully parsed file is written as its bare unist tree instead.
type Document struct {
	Version string         `json:"version" yaml:"version"`
	Files   []FileDocument `json:"files" yaml:"files"`
	Summary SummaryDocument `json:"summary" yaml:"summary"`
}

// FileDocument holds either the tree or the failure of one file.
type FileDocument struct {
	Path  string           `json:"path" yaml:"path"`
	Tree  *mdast.UnistNode `json:"tree,omitempty" yaml:"tree,omitempty"`
	Error *ErrorDocument   `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrorDocument describes a file failure. Point and Contexts are set for
// syntax errors only.
type ErrorDocument struct {
	Message  string       `json:"message" yaml:"message"`
	Point    *mdast.Point `json:"point,omitempty" yaml:"point,omitempty"`
	Contexts []string     `json:"contexts,omitempty" yaml:"contexts,omitempty"`
}

// SummaryDocument contains aggregate statistics.
type SummaryDocument struct {
	FilesDiscovered int            `json:"filesDiscovered" yaml:"filesDiscovered"`
	FilesParsed     int            `json:"filesParsed" yaml:"filesParsed"`
	FilesErrored    int            `json:"filesErrored" yaml:"filesErrored"`
	ParseErrors     int            `json:"parseErrors" yaml:"parseErrors"`
	Bytes           int            `json:"bytes" yaml:"bytes"`
	Nodes           map[string]int `json:"nodes" yaml:"nodes"`
}

// buildOutput returns the value to encode for result: a bare tree for a
// single parsed file, a Document otherwise.
func buildOutput(result *runner.Result, opts Options) any {
	encodeOpts := mdast.EncodeOptions{Positions: opts.Positions}

	if result != nil && len(result.Files) == 1 && result.Files[0].Snapshot != nil {
		return mdast.ToUnist(result.Files[0].Snapshot.Root, encodeOpts)
	}

	doc := &Document{
		Version: documentVersion,
		Files:   make([]FileDocument, 0),
		Summary: SummaryDocument{Nodes: make(map[string]int)},
	}
	if result == nil {
		return doc
	}

	for _, file := range result.Files {
		fileDoc := FileDocument{Path: relativePath(opts.WorkingDir, file.Path)}
		switch {
		case file.Error != nil:
			fileDoc.Error = newErrorDocument(file.Error)
		case file.Snapshot != nil:
			fileDoc.Tree = mdast.ToUnist(file.Snapshot.Root, encodeOpts)
		}
		doc.Files = append(doc.Files, fileDoc)
	}

	stats := result.Stats
	doc.Summary.FilesDiscovered = stats.FilesDiscovered
	doc.Summary.FilesParsed = stats.FilesParsed
	doc.Summary.FilesErrored = stats.FilesErrored
	doc.Summary.ParseErrors = stats.ParseErrors
	doc.Summary.Bytes = stats.Bytes
	for typ, n := range stats.Nodes {
		doc.Summary.Nodes[typ] = n
	}

	return doc
}

func newErrorDocument(err error) *ErrorDocument {
	errDoc := &ErrorDocument{Message: err.Error()}

	var perr *parser.Error
	if errors.As(err, &perr) {
		errDoc.Point = &mdast.Point{Line: perr.Line, Column: perr.Column, Offset: perr.Offset}
		errDoc.Contexts = perr.Contexts
	}
	return errDoc
}

// relativePath makes path relative to workingDir when it lies beneath it.
func relativePath(workingDir, path string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// failures returns the number of files in result that failed.
func failures(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesErrored
}
