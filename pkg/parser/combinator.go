// Package parser provides a small parser-combinator toolkit over an immutable,
// position-tracking cursor.
//
// A Parser consumes a Span and returns the unconsumed remainder together with
// its result. On failure a parser returns its input unchanged and an error;
// alternations always retry from the cursor they were given, so a failed branch
// can never shift the position seen by its siblings.
package parser

// Parser is a parsing step over a Span.
type Parser[T any] func(Span) (Span, T, error)

// Alt tries each parser in order from the same cursor and returns the first success.
// A fatal error stops the alternation. When every option fails, the error that got
// furthest into the input is returned.
func Alt[T any](parsers ...Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		var zero T
		var best error
		bestOffset := -1
		for _, p := range parsers {
			rest, v, err := p(s)
			if err == nil {
				return rest, v, nil
			}
			if IsFatal(err) {
				return s, zero, err
			}
			if off := errorOffset(err, s); off > bestOffset {
				best, bestOffset = err, off
			}
		}
		if best == nil {
			best = mismatch(s, "no alternative matched")
		}
		return s, zero, best
	}
}

func errorOffset(err error, s Span) int {
	if perr, ok := err.(*Error); ok {
		return perr.Offset
	}
	return s.offset
}

// Many0 applies p until it fails and collects the results. A step that succeeds
// without consuming input ends the repetition, so Many0 always terminates.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return func(s Span) (Span, []T, error) {
		var out []T
		cur := s
		for {
			rest, v, err := p(cur)
			if err != nil {
				if IsFatal(err) {
					return s, nil, err
				}
				return cur, out, nil
			}
			if rest.offset == cur.offset {
				return cur, out, nil
			}
			out = append(out, v)
			cur = rest
		}
	}
}

// Many1 is like Many0 but requires at least one consuming match.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(s Span) (Span, []T, error) {
		rest, first, err := p(s)
		if err != nil {
			return s, nil, err
		}
		if rest.offset == s.offset {
			return s, nil, mismatch(s, "repetition made no progress")
		}
		rest, more, err := Many0(p)(rest)
		if err != nil {
			return s, nil, err
		}
		return rest, append([]T{first}, more...), nil
	}
}

// Optional applies p, yielding the zero value without consuming input if it does not match.
func Optional[T any](p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			if IsFatal(err) {
				return s, v, err
			}
			var zero T
			return s, zero, nil
		}
		return rest, v, nil
	}
}

// Not succeeds without consuming input only if p does not match.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return func(s Span) (Span, struct{}, error) {
		_, _, err := p(s)
		if err == nil {
			return s, struct{}{}, mismatch(s, "unexpected match")
		}
		if IsFatal(err) {
			return s, struct{}{}, err
		}
		return s, struct{}{}, nil
	}
}

// Peek applies p without consuming input.
func Peek[T any](p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		_, v, err := p(s)
		return s, v, err
	}
}

// Verify applies p and fails unless pred accepts its result.
func Verify[T any](p Parser[T], pred func(T) bool, expected string) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			return s, v, err
		}
		if !pred(v) {
			var zero T
			return s, zero, mismatch(s, "expected %s", expected)
		}
		return rest, v, nil
	}
}

// Map transforms the result of p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(s Span) (Span, U, error) {
		rest, v, err := p(s)
		if err != nil {
			var zero U
			return s, zero, err
		}
		return rest, f(v), nil
	}
}

// TryMap transforms the result of p with a fallible function. An error from f
// becomes a mismatch at the start of p.
func TryMap[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return func(s Span) (Span, U, error) {
		var zero U
		rest, v, err := p(s)
		if err != nil {
			return s, zero, err
		}
		u, err := f(v)
		if err != nil {
			return s, zero, mismatch(s, "%v", err)
		}
		return rest, u, nil
	}
}

// Value replaces the result of p with v.
func Value[T, U any](p Parser[T], v U) Parser[U] {
	return Map(p, func(T) U { return v })
}

// Preceded applies first then second and keeps the second result.
func Preceded[A, B any](first Parser[A], second Parser[B]) Parser[B] {
	return func(s Span) (Span, B, error) {
		var zero B
		rest, _, err := first(s)
		if err != nil {
			return s, zero, err
		}
		rest, v, err := second(rest)
		if err != nil {
			return s, zero, err
		}
		return rest, v, nil
	}
}

// Terminated applies first then second and keeps the first result.
func Terminated[A, B any](first Parser[A], second Parser[B]) Parser[A] {
	return func(s Span) (Span, A, error) {
		var zero A
		rest, v, err := first(s)
		if err != nil {
			return s, zero, err
		}
		rest, _, err = second(rest)
		if err != nil {
			return s, zero, err
		}
		return rest, v, nil
	}
}

// Delimited applies open, p and closing in sequence and keeps the result of p.
func Delimited[A, T, C any](open Parser[A], p Parser[T], closing Parser[C]) Parser[T] {
	return Preceded(open, Terminated(p, closing))
}

// Recognize returns the span consumed by p instead of its result.
func Recognize[T any](p Parser[T]) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		rest, _, err := p(s)
		if err != nil {
			return s, Span{}, err
		}
		return rest, s.Until(rest), nil
	}
}

// Cut marks a commit point: a mismatch inside p becomes fatal, so enclosing
// alternations report it instead of trying other options.
func Cut[T any](p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			return s, v, commit(err)
		}
		return rest, v, nil
	}
}

// Context labels failures of p so errors carry the chain of productions that failed.
func Context[T any](label string, p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			return s, v, withContext(err, label)
		}
		return rest, v, nil
	}
}
