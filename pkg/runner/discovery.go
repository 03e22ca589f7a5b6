package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// matcher holds compiled exclude patterns.
type matcher []glob.Glob

// compileExcludes compiles glob patterns with '/' as the separator, so "*"
// stays within one directory and "**" crosses directories.
func compileExcludes(patterns []string) (matcher, error) {
	m := make(matcher, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		variants := []string{pattern}
		// A leading "**/" also matches at the top level.
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
			}
			m = append(m, g)
		}
	}
	return m, nil
}

// excludes reports whether relPath, or its base name, matches a pattern.
// Directories are also tried with a trailing slash so "vendor/**" prunes "vendor".
func (m matcher) excludes(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath, filepath.Base(relPath)}
	if isDir {
		candidates = append(candidates, relPath+"/")
	}
	for _, g := range m {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

// Discover finds Markdown files matching opts.
// It returns a deterministically sorted, de-duplicated list of absolute file paths.
// Files named explicitly are kept regardless of their extension.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileExcludes(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if !w.excludes.excludes(w.rel(absPath), false) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

// walker accumulates discovered files.
type walker struct {
	workDir    string
	extensions []string
	excludes   matcher
	follow     bool
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk recursively collects Markdown files under root. Hidden entries are skipped.
func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.excludes.excludes(w.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !w.follow || w.excludes.excludes(w.rel(path), true) {
					return nil
				}
				// Walk the target; WalkDir does not descend into symlinked roots.
				return w.walk(ctx, realPath)
			}
		}

		if hasMatchingExtension(path, w.extensions) && !w.excludes.excludes(w.rel(path), false) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// hasMatchingExtension checks if the file has one of the extensions, ignoring case.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
