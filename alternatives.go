package pcomb

import (
	"errors"

	"go.uber.org/multierr"
)

// Or runs p and returns its result if it succeeds. If p fails having
// consumed no input, the input is reset and q is tried instead. If p fails
// having consumed at least one unit, the failure is propagated and q is
// never tried.
//
// This is committed-choice alternation: q is only attempted when p fails
// without having moved the cursor, unlike an always-retry Or that tries q
// regardless of how much p consumed (see DESIGN.md). To force unconditional
// backtracking on the left, wrap it in Backtrack first: Or(Backtrack(p), q).
func Or[A any](p, q Parser[A]) Parser[A] {
	return newParser(label("or", p, q), func(c *Context) (A, error) {
		start := c.scan.Pos()

		val, err := p.Run(c)
		if err == nil {
			return val, nil
		}

		var pf *parseFailure
		errors.As(err, &pf)

		if pf != nil && pf.pos != start {
			var zero A
			return zero, err
		}

		val2, err2 := q.Run(c)
		if err2 != nil {
			var zero A
			return zero, multierr.Combine(err, err2)
		}

		return val2, nil
	})
}

// Choice runs each parser in ps in order, applying the same committed-choice
// rule as Or at every step, and returns the first to succeed. If none
// succeeds, the parser fails with a combination of every branch's error. An
// empty ps is equivalent to Unparseable.
func Choice[A any](ps ...Parser[A]) Parser[A] {
	if len(ps) == 0 {
		return newParser("choice()", func(c *Context) (A, error) {
			var zero A
			return zero, errors.New("no alternatives")
		})
	}

	reprs := make([]any, len(ps))
	for i, p := range ps {
		reprs[i] = p
	}

	acc := ps[0]
	for _, p := range ps[1:] {
		acc = Or(acc, p)
	}

	return acc.WithLabel(label("choice", reprs...))
}
