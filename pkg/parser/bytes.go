package parser

// Tag matches the literal text t.
func Tag(t string) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		if !s.HasPrefix(t) {
			return s, Span{}, mismatch(s, "expected %q", t)
		}
		return s.Advance(len(t)), s.Take(len(t)), nil
	}
}

// Char matches the single byte c.
func Char(c byte) Parser[byte] {
	return func(s Span) (Span, byte, error) {
		if b, ok := s.Peek(); ok && b == c {
			return s.Advance(1), c, nil
		}
		return s, 0, mismatch(s, "expected %q", c)
	}
}

// Take consumes exactly n bytes.
func Take(n int) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		if s.Len() < n {
			return s, Span{}, mismatch(s, "expected %d more bytes", n)
		}
		return s.Advance(n), s.Take(n), nil
	}
}

// TakeWhile0 consumes the longest (possibly empty) run of bytes accepted by pred.
func TakeWhile0(pred func(byte) bool) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		n := 0
		for n < s.Len() && pred(s.At(n)) {
			n++
		}
		return s.Advance(n), s.Take(n), nil
	}
}

// TakeWhile1 is like TakeWhile0 but requires at least one byte.
func TakeWhile1(pred func(byte) bool) Parser[Span] {
	return Verify(TakeWhile0(pred), func(m Span) bool { return !m.IsEmpty() }, "at least one matching byte")
}

// TakeTill1 consumes at least one byte, stopping before the first byte accepted by pred.
func TakeTill1(pred func(byte) bool) Parser[Span] {
	return TakeWhile1(func(b byte) bool { return !pred(b) })
}

// Rest consumes everything that remains.
func Rest(s Span) (Span, Span, error) {
	return s.Advance(s.Len()), s, nil
}

// IsSpace reports whether b is a space or tab.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// IsLineEnding reports whether b starts a line terminator.
func IsLineEnding(b byte) bool {
	return b == '\n' || b == '\r'
}

// Space0 consumes any run of spaces and tabs.
func Space0(s Span) (Span, Span, error) {
	return TakeWhile0(IsSpace)(s)
}

// Space1 consumes at least one space or tab.
func Space1(s Span) (Span, Span, error) {
	return TakeWhile1(IsSpace)(s)
}
