package result

import "github.com/corvidlabs/pcomb"

// Unwrap takes a pcomb Parser returning a Result-wrapped value
// and unwraps the returned result, passing the potentially wrapped
// error through the Parser's error handling chain.
func Unwrap[A any](p pcomb.Parser[Result[A]]) pcomb.Parser[A] {
	return pcomb.Bind(p, func(res Result[A]) pcomb.Parser[A] {
		value, err := res.Unwrap()
		if err != nil {
			return pcomb.Fail[A](err)
		}

		return pcomb.Return(value)
	})
}
