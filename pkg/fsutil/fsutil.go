// Package fsutil provides context-aware file reading and atomic writes for marcup.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxFileSize is the largest input ReadFile accepts by default.
const DefaultMaxFileSize int64 = 64 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
)

// ReadFile reads a regular file, refusing files larger than DefaultMaxFileSize.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	return ReadFileLimit(ctx, path, DefaultMaxFileSize)
}

// ReadFileLimit reads a regular file of at most limit bytes. A limit of 0 or
// less disables the check.
func ReadFileLimit(ctx context.Context, path string, limit int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, "stat", err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if limit > 0 && stat.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), limit)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, "read", err)
	}

	return content, nil
}

// ReadAll reads r to the end, for input streamed on stdin.
func ReadAll(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if limit > 0 && int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrTooLarge, limit)
	}
	return content, nil
}

func classify(path, op string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
