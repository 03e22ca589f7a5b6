package parser

// BeginningOfLine succeeds without consuming input when the cursor is at column 1.
func BeginningOfLine(s Span) (Span, struct{}, error) {
	if s.column != 1 {
		return s, struct{}{}, mismatch(s, "expected beginning of line")
	}
	return s, struct{}{}, nil
}

// EndOfInput succeeds without consuming input when nothing remains.
func EndOfInput(s Span) (Span, struct{}, error) {
	if !s.IsEmpty() {
		return s, struct{}{}, mismatch(s, "expected end of input")
	}
	return s, struct{}{}, nil
}

// LineEnding consumes "\n" or "\r\n".
func LineEnding(s Span) (Span, Span, error) {
	switch {
	case s.HasPrefix("\n"):
		return s.Advance(1), s.Take(1), nil
	case s.HasPrefix("\r\n"):
		return s.Advance(2), s.Take(2), nil
	default:
		return s, Span{}, mismatch(s, "expected line ending")
	}
}

// EndOfLineOrInput consumes a line terminator or succeeds at the end of input.
func EndOfLineOrInput(s Span) (Span, struct{}, error) {
	if s.IsEmpty() {
		return s, struct{}{}, nil
	}
	rest, _, err := LineEnding(s)
	if err != nil {
		return s, struct{}{}, mismatch(s, "expected end of line or input")
	}
	return rest, struct{}{}, nil
}

// lineLength returns the number of bytes before the line terminator.
func lineLength(s Span) int {
	n := s.IndexByte('\n')
	if n < 0 {
		return s.Len()
	}
	if n > 0 && s.At(n-1) == '\r' {
		n--
	}
	return n
}

// NotLineEnding consumes the rest of the current line, excluding its terminator.
// It may match nothing.
func NotLineEnding(s Span) (Span, Span, error) {
	n := lineLength(s)
	return s.Advance(n), s.Take(n), nil
}

// TakeUntilEndOfLineOrInput consumes at least one byte of the current line,
// excluding its terminator.
func TakeUntilEndOfLineOrInput(s Span) (Span, Span, error) {
	n := lineLength(s)
	if n == 0 {
		return s, Span{}, mismatch(s, "expected line content")
	}
	return s.Advance(n), s.Take(n), nil
}

// BlankLine consumes a line that is empty or holds only spaces and tabs,
// including its terminator. It does not match at the end of input.
func BlankLine(s Span) (Span, struct{}, error) {
	if s.IsEmpty() {
		return s, struct{}{}, mismatch(s, "expected blank line")
	}
	rest, _, _ := Space0(s)
	rest, _, err := EndOfLineOrInput(rest)
	if err != nil {
		return s, struct{}{}, mismatch(s, "expected blank line")
	}
	return rest, struct{}{}, nil
}

// CountTrailingWhitespace counts the spaces and tabs at the end of s.
func CountTrailingWhitespace(s Span) int {
	n := 0
	for n < s.Len() && IsSpace(s.At(s.Len()-1-n)) {
		n++
	}
	return n
}

// TrimTrailingWhitespace drops trailing spaces and tabs from s.
func TrimTrailingWhitespace(s Span) Span {
	return s.DropEnd(CountTrailingWhitespace(s))
}

// TrimWhitespace drops leading and trailing spaces and tabs from s.
func TrimWhitespace(s Span) Span {
	rest, _, _ := Space0(s)
	return TrimTrailingWhitespace(rest)
}
