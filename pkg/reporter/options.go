package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for file failures in the tree and
	// summary formats (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Positions includes source positions on every node.
	Positions bool

	// ShowSummary appends run statistics to tree output.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// Width truncates tree labels to this many columns. Zero detects the
	// terminal width of Writer, and a negative value disables truncation.
	Width int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatJSON,
		Color:       "auto",
	}
}
