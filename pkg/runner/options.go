// Package runner discovers Markdown files and parses them concurrently.
package runner

// Options selects the files a run parses and how many parse at once.
type Options struct {
	// Paths are files or directories. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ExcludeGlobs.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions (with leading dot) select files inside directories.
	// Empty means DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip files and whole directories; "**" crosses separators.
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the parser workers. Zero or less means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the extensions parsed when none are configured.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	return orDefault(o.Extensions, DefaultExtensions())
}

func (o Options) effectivePaths() []string {
	return orDefault(o.Paths, []string{"."})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
