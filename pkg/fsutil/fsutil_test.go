package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n"), 0o644))

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()

		content, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), dir)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFileLimit(context.Background(), path, 3)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fsutil.ReadFile(ctx, path)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	content, err := fsutil.ReadAll(context.Background(), strings.NewReader("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	_, err = fsutil.ReadAll(context.Background(), strings.NewReader("hello!"), 5)
	require.ErrorIs(t, err, fsutil.ErrTooLarge)

	content, err = fsutil.ReadAll(context.Background(), strings.NewReader("unbounded"), 0)
	require.NoError(t, err)
	assert.Equal(t, "unbounded", string(content))
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("{}"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "out.json")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "out"), []byte("x"), 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}
