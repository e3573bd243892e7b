package pcomb

// Must converts a function that takes a single argument and returns a
// single value and error into a function that panics instead of returning
// an error.
//
// This is provided for working with utilities that can't accept a fallible
// signature, most often alongside Lift: once a value has survived a parse,
// a conversion over it is assumed not to fail.
func Must[A, B any](f func(A) (B, error)) func(A) B {
	return func(a A) B {
		b, err := f(a)
		if err != nil {
			panic(err)
		}

		return b
	}
}
