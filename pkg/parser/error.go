package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is the cause of every recoverable grammar mismatch.
var ErrMismatch = errors.New("no match")

// Error describes where and why a parser stopped matching.
type Error struct {
	// Offset, Line and Column locate the failure in the source.
	Offset int
	Line   int
	Column int

	// Message describes what was expected.
	Message string

	// Fatal is set once a production has committed past an unambiguous marker.
	// Alternations do not try further options after a fatal error.
	Fatal bool

	// Contexts lists the labels of the enclosing productions, outermost first.
	Contexts []string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	var sb strings.Builder
	if len(e.Contexts) > 0 {
		sb.WriteString(strings.Join(e.Contexts, " > "))
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	fmt.Fprintf(&sb, " at %d:%d (offset %d)", e.Line, e.Column, e.Offset)
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// mismatch creates a recoverable error at the cursor.
func mismatch(s Span, format string, args ...any) error {
	return &Error{
		Offset:  s.offset,
		Line:    s.line,
		Column:  s.column,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrMismatch,
	}
}

// Fail returns a recoverable mismatch error at the cursor.
func Fail(s Span, format string, args ...any) error {
	return mismatch(s, format, args...)
}

// IsFatal reports whether err is a committed (non-recoverable) parse failure.
func IsFatal(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Fatal
}

// withContext returns a copy of err with label prepended to its context chain.
// Errors that are not *Error are wrapped unchanged.
func withContext(err error, label string) error {
	var perr *Error
	if !errors.As(err, &perr) {
		return fmt.Errorf("%s: %w", label, err)
	}
	cp := *perr
	cp.Contexts = append([]string{label}, perr.Contexts...)
	return &cp
}

// commit returns a fatal copy of err.
func commit(err error) error {
	var perr *Error
	if !errors.As(err, &perr) {
		return err
	}
	cp := *perr
	cp.Fatal = true
	return &cp
}
