package pcomb

// Error wraps a non-error returning function to match
// the expected Lift function signature.
func Error[A, B any](f func(A) B) func(A) (B, error) {
	return func(a A) (B, error) {
		return f(a), nil
	}
}

// Error2 wraps a non-error returning function to match
// the expected Lift function signature.
func Error2[A, B, C any](f func(A, B) C) func(A, B) (C, error) {
	return func(a A, b B) (C, error) {
		return f(a, b), nil
	}
}

// Error3 wraps a non-error returning function to match
// the expected Lift function signature.
func Error3[A, B, C, D any](f func(A, B, C) D) func(A, B, C) (D, error) {
	return func(a A, b B, c C) (D, error) {
		return f(a, b, c), nil
	}
}

// Error4 wraps a non-error returning function to match
// the expected Lift function signature.
func Error4[A, B, C, D, E any](f func(A, B, C, D) E) func(A, B, C, D) (E, error) {
	return func(a A, b B, c C, d D) (E, error) {
		return f(a, b, c, d), nil
	}
}

// Lift promotes a fallible function into a parser. The returned parser
// first runs p, then transforms p's value with f; a failure from either
// propagates.
func Lift[A, B any](f func(A) (B, error), p Parser[A]) Parser[B] {
	return newParser(label("lift", p), func(c *Context) (B, error) {
		vala, err := p.Run(c)
		if err != nil {
			var zero B
			return zero, err
		}

		return f(vala)
	})
}

// Lift2 promotes 2-ary fallible functions into a parser.
func Lift2[A, B, C any](
	f func(A, B) (C, error),
	p1 Parser[A],
	p2 Parser[B],
) Parser[C] {
	return newParser(label("lift2", p1, p2), func(c *Context) (C, error) {
		vala, err := p1.Run(c)
		if err != nil {
			var zero C
			return zero, err
		}

		valb, err := p2.Run(c)
		if err != nil {
			var zero C
			return zero, err
		}

		return f(vala, valb)
	})
}

// Lift3 promotes 3-ary fallible functions into a parser.
func Lift3[A, B, C, D any](
	f func(A, B, C) (D, error),
	p1 Parser[A],
	p2 Parser[B],
	p3 Parser[C],
) Parser[D] {
	return newParser(label("lift3", p1, p2, p3), func(c *Context) (D, error) {
		vala, err := p1.Run(c)
		if err != nil {
			var zero D
			return zero, err
		}

		valb, err := p2.Run(c)
		if err != nil {
			var zero D
			return zero, err
		}

		valc, err := p3.Run(c)
		if err != nil {
			var zero D
			return zero, err
		}

		return f(vala, valb, valc)
	})
}

// Lift4 promotes 4-ary fallible functions into a parser.
func Lift4[A, B, C, D, E any](
	f func(A, B, C, D) (E, error),
	p1 Parser[A],
	p2 Parser[B],
	p3 Parser[C],
	p4 Parser[D],
) Parser[E] {
	return newParser(label("lift4", p1, p2, p3, p4), func(c *Context) (E, error) {
		vala, err := p1.Run(c)
		if err != nil {
			var zero E
			return zero, err
		}

		valb, err := p2.Run(c)
		if err != nil {
			var zero E
			return zero, err
		}

		valc, err := p3.Run(c)
		if err != nil {
			var zero E
			return zero, err
		}

		vald, err := p4.Run(c)
		if err != nil {
			var zero E
			return zero, err
		}

		return f(vala, valb, valc, vald)
	})
}
