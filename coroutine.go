package pcomb

// Coroutine builds a parser whose body is written with ordinary Go control
// flow instead of combinator algebra: block receives the active Context and
// drives nested parsers directly through Invoke. Its return value is the
// combinator's result, and a failure from any parser it invokes propagates
// out of the block exactly as it would from any other parser body.
//
// No true coroutines are needed for this: block is a callback closed over
// the current context, and Coroutine is the direct invocation of it. name
// is the label the resulting parser's activations are recorded under.
func Coroutine[A any](name string, block func(c *Context) (A, error)) Parser[A] {
	return newParser(name, block)
}

// Invoke runs p against c and returns its result, for use inside a Coroutine
// block (or any other hand-written parser body holding a *Context).
func Invoke[A any](c *Context, p Parser[A]) (A, error) {
	return p.Run(c)
}
