package pcomb

import "sync"

// Lazy defers construction of a parser until parse time, which is what
// makes recursive grammars representable at all: a grammar can refer to a
// parser that doesn't exist yet by wrapping the reference in Lazy.
func Lazy[A any](thunk func() Parser[A]) Parser[A] {
	var (
		once sync.Once
		p    Parser[A]
	)

	return newParser("lazy", func(c *Context) (A, error) {
		once.Do(func() {
			p = thunk()
		})

		return p.Run(c)
	})
}

// Recursive computes the fix-point of f: given f, which takes a parser and
// returns a parser built in terms of it, Recursive produces a parser r such
// that r behaves as f(r).
//
// It uses the same sync.Once pattern as Lazy: a lazily-initialized cell
// filled once, on the first run of r, with the inner parser holding only a
// closure back to the cell rather than owning it, so no true reference
// cycle is formed.
func Recursive[A any](f func(Parser[A]) Parser[A]) Parser[A] {
	var (
		once sync.Once
		p    Parser[A]
	)

	var r Parser[A]
	r = newParser("recursive", func(c *Context) (A, error) {
		once.Do(func() {
			p = f(r)
		})

		return p.Run(c)
	})

	return r
}

// Fix is an alias for Recursive, matching the conventional fix-point name
// used by expression-grammar combinators.
func Fix[A any](f func(Parser[A]) Parser[A]) Parser[A] {
	return Recursive(f)
}
