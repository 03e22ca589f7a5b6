package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/runner"
)

// writeTree creates files under dir from a map of relative path to content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// relAll makes discovered paths relative to dir, with forward slashes.
func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":              "# Readme",
		"notes.txt":              "not markdown",
		"docs/guide.markdown":    "Guide",
		"docs/UPPER.MD":          "Upper",
		"docs/deep/nested.md":    "Nested",
		".hidden/secret.md":      "Hidden dir",
		"docs/.draft.md":         "Hidden file",
		"vendor/lib/README.md":   "Vendored",
		"node_modules/x/docs.md": "Modules",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{
				"README.md", "docs/UPPER.MD", "docs/deep/nested.md", "docs/guide.markdown",
				"node_modules/x/docs.md", "vendor/lib/README.md",
			},
		},
		{
			name: "double star excludes",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/node_modules/**"}},
			want: []string{"README.md", "docs/UPPER.MD", "docs/deep/nested.md", "docs/guide.markdown"},
		},
		{
			name: "base name exclude",
			opts: runner.Options{ExcludeGlobs: []string{"README.md"}},
			want: []string{"docs/UPPER.MD", "docs/deep/nested.md", "docs/guide.markdown", "node_modules/x/docs.md"},
		},
		{
			name: "single star stays in one directory",
			opts: runner.Options{Paths: []string{"docs"}, ExcludeGlobs: []string{"docs/*.markdown", "docs/*.MD"}},
			want: []string{"docs/deep/nested.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".txt"}},
			want: []string{"notes.txt"},
		},
		{
			name: "explicit file ignores extension and dedupes",
			opts: runner.Options{Paths: []string{"notes.txt", "docs/deep", "docs/deep/nested.md"}},
			want: []string{"docs/deep/nested.md", "notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat missing")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"linked.md": "Linked"})
	writeTree(t, dir, map[string]string{"a.md": "A"})
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
