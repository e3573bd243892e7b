package pcomb

// Group runs ps in order and returns their results as a sequence. A
// single-argument call collapsing to that argument's own unwrapped result
// isn't representable as an overload of Group in a statically typed
// language, since a Parser's result type is fixed at compile time — calling
// Group with one parser is simply List([]Parser[A]{p}), and a caller that
// wants the bare unwrapped value should use p directly instead of wrapping
// it in Group.
func Group[A any](ps ...Parser[A]) Parser[[]A] {
	return List(ps).WithLabel(label("group", toAnySlice(ps)...))
}

// Single wraps p's result in a one-element sequence.
func Single[A any](p Parser[A]) Parser[[]A] {
	return Lift(func(a A) ([]A, error) { return []A{a}, nil }, p).WithLabel(label("single", p))
}

func toAnySlice[A any](ps []Parser[A]) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p
	}

	return out
}
