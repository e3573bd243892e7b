package pcomb

// Option runs p, returning its result if it succeeds and fallback if it
// fails without having consumed input; a failure that consumed input still
// propagates, consistent with the committed-choice rule Or implements.
func Option[A any](fallback A, p Parser[A]) Parser[A] {
	return Or(p, Return(fallback)).WithLabel(label("option", fallback, p))
}

// Both runs p followed by q and returns both results as a Pair.
func Both[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return Lift2(Error2(MakePair[A, B]), p, q).WithLabel(label("both", p, q))
}

// List runs each parser in ps in sequence, returning a slice of their
// results.
func List[A any](ps []Parser[A]) Parser[[]A] {
	reprs := make([]any, len(ps))
	for i, p := range ps {
		reprs[i] = p
	}

	return newParser(label("list", reprs...), func(c *Context) ([]A, error) {
		out := make([]A, len(ps))
		for i, p := range ps {
			val, err := p.Run(c)
			if err != nil {
				return nil, err
			}

			out[i] = val
		}

		return out, nil
	})
}

// Count runs p exactly n times, returning a slice of the results. This is
// repetition-by-count (`p * n`); see also Parser.Times.
func Count[A any](n int, p Parser[A]) Parser[[]A] {
	return newParser(label("count", n, p), func(c *Context) ([]A, error) {
		out := make([]A, 0, n)
		for i := 0; i < n; i++ {
			val, err := p.Run(c)
			if err != nil {
				return nil, err
			}

			out = append(out, val)
		}

		return out, nil
	})
}

// Many runs p zero or more times and returns a slice of its results. Many
// never fails; it stops at the first failure of p or at EOF.
//
// The EOF check happens *before* attempting another iteration of p, not
// after a failed attempt: this is the safe interpretation, since a parser
// that can succeed at EOF while consuming nothing (Pure, for instance)
// would otherwise loop forever.
func Many[A any](p Parser[A]) Parser[[]A] {
	return newParser(label("many", p), func(c *Context) ([]A, error) {
		out := make([]A, 0)

		for {
			if c.scan.EOF() {
				return out, nil
			}

			val, err := p.Run(c)
			if err != nil {
				return out, nil
			}

			out = append(out, val)
		}
	})
}

// Many1 runs p one or more times and returns a slice of its results.
func Many1[A any](p Parser[A]) Parser[[]A] {
	return Lift2(Error2(prepend[A]), p, Many(p)).WithLabel(label("many1", p))
}

// ManyTill runs p zero or more times until e succeeds, and returns the
// slice of p's results.
func ManyTill[A, B any](p Parser[A], e Parser[B]) Parser[[]A] {
	return newParser(label("many_till", p, e), func(c *Context) ([]A, error) {
		var acc []A

		for {
			if _, err := Peek(e).Run(c); err == nil {
				return acc, nil
			}

			el, err := p.Run(c)
			if err != nil {
				return nil, err
			}

			acc = append(acc, el)
		}
	})
}

// SepBy runs p zero or more times, interspersing runs of sep in between; it
// never fails.
func SepBy[S, A any](sep Parser[S], p Parser[A]) Parser[[]A] {
	return Or(
		Backtrack(Lift2(Error2(prepend[A]), p, Many(DiscardLeft(sep, p)))),
		Return([]A{}),
	).WithLabel(label("sep_by", sep, p))
}

// SepBy1 runs p one or more times, interspersing runs of sep in between.
func SepBy1[S, A any](sep Parser[S], p Parser[A]) Parser[[]A] {
	return Lift2(
		Error2(prepend[A]),
		p,
		Many(DiscardLeft(sep, p)),
	).WithLabel(label("sep_by1", sep, p))
}

// SkipMany runs p zero or more times, discarding the results.
func SkipMany[A any](p Parser[A]) Parser[Unit] {
	return DiscardLeft(Many(p), Return(Unit{})).WithLabel(label("skip_many", p))
}

// SkipMany1 runs p one or more times, discarding the results.
func SkipMany1[A any](p Parser[A]) Parser[Unit] {
	return DiscardLeft(Many1(p), Return(Unit{})).WithLabel(label("skip_many1", p))
}

// ChainL1 parses one or more occurrences of p, separated by op, and returns
// a value obtained by left-associative application of every function op
// returns to the values p returns.
//
// This is an alternative to Reduce/Fix for eliminating left recursion in
// expression grammars; see SPEC_FULL.md §4's supplemental-features list.
//
// Example:
//
//	expr := Recursive(func(expr Parser[int]) Parser[int] {
//		add := DiscardLeft(SkipWS(Rune('+')), Return(func(a, b int) int { return a + b }))
//		sub := DiscardLeft(SkipWS(Rune('-')), Return(func(a, b int) int { return a - b }))
//		mul := DiscardLeft(SkipWS(Rune('*')), Return(func(a, b int) int { return a * b }))
//		div := DiscardLeft(SkipWS(Rune('/')), Return(func(a, b int) int { return a / b }))
//
//		factor := Or(Wrap(Rune('('), expr, Rune(')')), Decimal)
//		term := ChainL1(factor, Or(mul, div))
//
//		return ChainL1(term, Or(add, sub))
//	})
func ChainL1[A any](p Parser[A], op Parser[func(A, A) A]) Parser[A] {
	var chain func(A) Parser[A]
	chain = func(acc A) Parser[A] {
		return Or(
			Bind(
				Lift2(
					Error2(func(f func(A, A) A, x A) A {
						return f(acc, x)
					}),
					op,
					p,
				),
				chain,
			),
			Return(acc),
		)
	}

	return Bind(p, chain).WithLabel(label("chain_l1", p, op))
}

func prepend[T any](first T, rest []T) []T {
	return append([]T{first}, rest...)
}
