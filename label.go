package pcomb

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// repr is implemented by any value that knows how to render itself for a
// synthesized label. Parser[T] implements it (see parser.go's reprString):
// its repr is its own label, never its structural representation, which is
// why labels built by label() resemble the source expression that produced
// them.
type repr interface {
	reprString() string
}

// label is the library's label-synthesis helper: invoking a combinator
// named name with arguments args produces the composite label
// "name(repr(a1), …, repr(an))". Each combinator that wants a synthesized
// label just calls label with its own name and its arguments, and reprOf
// below knows how to render parsers, strings, ordered sequences, and plain
// values.
func label(name string, args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = reprOf(a)
	}

	return name + "(" + strings.Join(parts, ", ") + ")"
}

// reprOf renders a single label argument. A Parser's repr is its own label
// (via the repr interface); a string is quoted the way source-level string
// literals are; an ordered sequence (slice) is rendered as the sequence of
// its elements' reprs; everything else falls back to fmt's default
// formatting.
func reprOf(a any) string {
	if r, ok := a.(repr); ok {
		return r.reprString()
	}

	switch v := a.(type) {
	case string:
		return strconv.Quote(v)
	case rune:
		return strconv.QuoteRune(v)
	}

	rv := reflect.ValueOf(a)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = reprOf(rv.Index(i).Interface())
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		parts := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			parts = append(parts, fmt.Sprintf("%s: %s", reprOf(iter.Key().Interface()), reprOf(iter.Value().Interface())))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", a)
	}
}
