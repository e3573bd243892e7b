package pcomb

// Reduce is the library's shift-reduce hook for LR-style grammars: it
// parses init to obtain an initial accumulator, then repeatedly parses
// f(accum) to obtain the next accumulator, stopping at the first failure of
// f(accum) and yielding the *last* successful accumulator — never the
// partial result of the failing attempt. The only way Reduce itself can
// fail is if init fails.
func Reduce[A any](init Parser[A], f func(A) Parser[A]) Parser[A] {
	return newParser(label("reduce", init), func(c *Context) (A, error) {
		accum, err := init.Run(c)
		if err != nil {
			var zero A
			return zero, err
		}

		for {
			next, err := f(accum).Run(c)
			if err != nil {
				return accum, nil
			}

			accum = next
		}
	})
}
