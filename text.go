package pcomb

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
)

// Regex matches re against the buffer from the current position and, on
// success, consumes the matched text. This combinator does not itself
// restore the cursor on failure: Run already guarantees that for every
// activation, so a second restore here would just be redundant (see
// DESIGN.md, "Open Questions resolved").
//
// A failed match is reported at the position where it was attempted, not
// wherever the regex engine's read-ahead left the scanner, so Or treats a
// failed Regex as having consumed no input.
func Regex(re *regexp.Regexp) Parser[string] {
	return newParser(label("regex", re.String()), func(c *Context) (string, error) {
		start := c.scan.Pos()

		m, err := c.scan.MatchRegexp(re)
		if err != nil {
			return "", &parseFailure{pos: start, cause: err}
		}

		return m, nil
	})
}

// Literal matches s exactly. When caseSensitive is false it matches s
// case-insensitively.
func Literal(s string, caseSensitive bool) Parser[string] {
	if caseSensitive {
		return newParser(label("literal", s), func(c *Context) (string, error) {
			return c.scan.MatchString(s)
		})
	}

	return newParser(label("literal", s, "case_sensitive=false"), func(c *Context) (string, error) {
		return c.scan.MatchStringFold(s)
	})
}

// Space parses a single valid Unicode whitespace rune.
var Space = Satisfy(unicode.IsSpace).WithLabel("space")

// SkipWS ignores any whitespace surrounding p's value.
func SkipWS[A any](p Parser[A]) Parser[A] {
	return Wrap(SkipMany(Space), p, SkipMany(Space)).WithLabel(label("spaced", p))
}

// Spaced is an alias for SkipWS.
func Spaced[A any](p Parser[A]) Parser[A] {
	return SkipWS(p)
}

// TrailingWS requires at least one whitespace rune after p and discards it.
func TrailingWS[A any](p Parser[A]) Parser[A] {
	return DiscardRight(p, SkipMany1(Space)).WithLabel(label("trailing_ws", p))
}

// PrecedingWS requires at least one whitespace rune before p and discards
// it.
func PrecedingWS[A any](p Parser[A]) Parser[A] {
	return DiscardLeft(SkipMany1(Space), p).WithLabel(label("preceding_ws", p))
}

// Whitespace matches zero or more of space, tab, LF, CR.
var Whitespace = SkipMany(CharIn(" \t\n\r")).WithLabel("whitespace")

// Whitespace1 matches one or more of space, tab, LF, CR.
var Whitespace1 = SkipMany1(CharIn(" \t\n\r")).WithLabel("whitespace_1")

// Rune matches r exactly and returns it.
func Rune(r rune) Parser[rune] {
	return newParser(label("rune", r), func(c *Context) (rune, error) {
		return c.scan.MatchRune(func(o rune) error {
			if r != o {
				return fmt.Errorf("expected %q, got %q", r, o)
			}

			return nil
		})
	})
}

// Runes builds a membership predicate over the provided runes.
func Runes(rs ...rune) func(rune) bool {
	set := make(map[rune]struct{}, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}

	return func(r rune) bool {
		_, ok := set[r]
		return ok
	}
}

// CharIn succeeds iff the next rune appears in the union of the provided
// ranges/strings.
func CharIn(sets ...string) Parser[rune] {
	members := make(map[rune]struct{})
	for _, set := range sets {
		for _, r := range set {
			members[r] = struct{}{}
		}
	}

	return Satisfy(func(r rune) bool {
		_, ok := members[r]
		return ok
	}).WithLabel(label("char_in", sets))
}

// Range accepts any rune between lo and hi, inclusive.
func Range(lo, hi rune) Parser[rune] {
	return newParser(label("range", lo, hi), func(c *Context) (rune, error) {
		return c.scan.MatchRune(func(r rune) error {
			if lo > r || r > hi {
				return fmt.Errorf("rune %q not between %q and %q", r, lo, hi)
			}

			return nil
		})
	})
}

// NotRune accepts any rune that is not r and returns the matched rune.
func NotRune(r rune) Parser[rune] {
	return newParser(label("not_rune", r), func(c *Context) (rune, error) {
		return c.scan.MatchRune(func(o rune) error {
			if r == o {
				return fmt.Errorf("unexpected %q", r)
			}

			return nil
		})
	})
}

// AnyRune accepts any rune and returns it, failing on EOF. This is
// `any_char`.
var AnyRune = newParser("any_char", func(c *Context) (rune, error) {
	r, _, err := c.scan.ReadRune()
	return r, err
})

// AnyChar is an alias for AnyRune.
var AnyChar = AnyRune.WithLabel("any_char")

// EOF succeeds with Unit{} iff the scanner is at the logical end of input.
var EOF = newParser("eof", func(c *Context) (Unit, error) {
	if !c.scan.EOF() {
		return Unit{}, errors.New("expected end of input")
	}

	return Unit{}, nil
})

// CharMatching accepts one rune for which pattern matches and returns it.
func CharMatching(pattern *regexp.Regexp) Parser[rune] {
	return Satisfy(func(r rune) bool {
		return pattern.MatchString(string(r))
	}).WithLabel(label("char_matching", pattern.String()))
}

// Satisfy accepts any rune for which f returns true.
func Satisfy(f func(rune) bool) Parser[rune] {
	return newParser("satisfy", func(c *Context) (rune, error) {
		return c.scan.MatchRune(func(r rune) error {
			if !f(r) {
				return fmt.Errorf("rune %q does not match required predicate", r)
			}

			return nil
		})
	})
}

// Skip accepts any rune for which f returns true and discards it.
func Skip(f func(rune) bool) Parser[Unit] {
	return DiscardLeft(Satisfy(f), Return(Unit{})).WithLabel("skip")
}

// SkipWhile accepts input for as long as f returns true and discards it.
func SkipWhile(f func(rune) bool) Parser[Unit] {
	return DiscardLeft(Many(Satisfy(f)), Return(Unit{})).WithLabel("skip_while")
}

// Take accepts exactly n runes of input and returns them as a string.
func Take(n int) Parser[string] {
	return Consumed(Count(n, AnyRune)).WithLabel(label("take", n))
}

// TakeWhile accepts input for as long as f returns true and returns it as a
// string. It never fails: an immediate false returns an empty string.
func TakeWhile(f func(rune) bool) Parser[string] {
	return Consumed(Many(Satisfy(f))).WithLabel("take_while")
}

// TakeWhile1 accepts input for as long as f returns true and returns it as a
// string, requiring at least one matching rune.
func TakeWhile1(f func(rune) bool) Parser[string] {
	return Consumed(Many1(Satisfy(f))).WithLabel("take_while_1")
}

// TakeTill accepts input for as long as f returns false and returns it as a
// string.
func TakeTill(f func(rune) bool) Parser[string] {
	return TakeWhile(negate(f)).WithLabel("take_till")
}

// TakeTill1 is TakeTill, but requires at least one matching rune.
func TakeTill1(f func(rune) bool) Parser[string] {
	return Assert(
		TakeTill(f),
		func(s string) bool { return len(s) > 0 },
		func(string) error {
			return errors.New("input must match at least one rune before predicate fails")
		},
	).WithLabel("take_till_1")
}

// Consumed runs p and returns the input it consumed, as a string, instead of
// p's own result.
func Consumed[A any](p Parser[A]) Parser[string] {
	return newParser("consumed", func(c *Context) (string, error) {
		start := c.scan.Pos()

		_, err := p.Run(c)
		if err != nil {
			return "", err
		}

		return c.scan.Source()[start:c.scan.Pos()], nil
	})
}

// Position returns the current source position.
var Position = newParser("position", func(c *Context) (int, error) {
	return c.scan.Pos(), nil
})

// Location runs p and passes its start and end positions together with its
// parsed value to f, letting a grammar attach source spans to its own AST
// nodes without reimplementing position tracking.
func Location[A, B any](p Parser[A], f func(start, end int, parsed A) B) Parser[B] {
	return newParser(label("location", p), func(c *Context) (B, error) {
		start := c.scan.Pos()

		val, err := p.Run(c)
		if err != nil {
			var zero B
			return zero, err
		}

		return f(start, c.scan.Pos(), val), nil
	})
}

// Input returns the untouched, full input text.
var Input = newParser("input", func(c *Context) (string, error) {
	return c.scan.Source(), nil
})

// Remaining returns the remaining unconsumed input text.
var Remaining = newParser("remaining", func(c *Context) (string, error) {
	return c.scan.Remaining(), nil
})

func negate[T any](f func(T) bool) func(T) bool {
	return func(t T) bool {
		return !f(t)
	}
}
