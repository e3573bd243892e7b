package pcomb

import (
	"errors"
)

// Unit is the empty value type, returned by parsers that run for effect only.
type Unit struct{}

// Context is the aggregate threaded through every parser invocation: the
// backtracking input, the live parse-tree recorder, and (implicitly, via the
// recorder) the activation currently being recorded. A Context is created
// fresh for every call to Parse and must never be shared across concurrent
// parses.
type Context struct {
	scan *Scanner
	rec  *recorder
}

// Scanner returns the context's backtracking input. Exposed for combinators
// and Coroutine bodies that need to drive the input directly.
func (c *Context) Scanner() *Scanner {
	return c.scan
}

// Pos returns the context's current cursor position.
func (c *Context) Pos() int {
	return c.scan.Pos()
}

// Splicer opens access to the scoped splice-region construct, for
// hand-written parser bodies that invoke several sub-parsers directly and
// want the intermediate activations elided from diagnostics.
func (c *Context) Splicer() *Splicer {
	return &Splicer{ctx: c}
}

// Parser parses input text held in a Context and produces a value of type T.
// It is a pair of a label (a human-readable string resembling the source
// expression that produced it) and a body. Parsers are immutable once
// constructed; Ignore returns a new Parser value rather than mutating one
// in place, so a Parser can safely be shared across concurrently running
// parses.
type Parser[T any] struct {
	label  string
	body   func(*Context) (T, error)
	ignore bool
}

// newParser constructs a Parser from a label and body. Every combinator in
// this library is built by calling newParser (directly, or indirectly
// through another combinator), so every parser application is automatically
// recorded as an activation when it runs — there is no separate opt-in step.
func newParser[T any](label string, body func(*Context) (T, error)) Parser[T] {
	return Parser[T]{label: label, body: body}
}

// Run invokes the parser against the context. This is the single point
// through which every parser application passes: it pushes an activation
// onto the recorder before running the body and closes it on exit.
//
// On failure, the cursor is always restored to the activation's start
// position before Run returns: a failed activation's effect on the input
// is always undone, including composite combinators whose inner parsers
// consumed more than the activation that ultimately failed.
func (p Parser[T]) Run(c *Context) (T, error) {
	act := c.rec.enter(p.label, c.scan.Pos())
	act.ignore = p.ignore

	val, err := p.body(c)
	if err != nil {
		pf := asFailure(c.scan.Pos(), err)
		c.scan.RestoreTo(act.start)
		c.rec.exit(act, act.start, false)

		var zero T
		return zero, pf
	}

	c.rec.exit(act, c.scan.Pos(), true)

	return val, nil
}

// Label returns the parser's label.
func (p Parser[T]) Label() string {
	return p.label
}

// WithLabel returns a new parser with the same body but an overridden label.
func (p Parser[T]) WithLabel(label string) Parser[T] {
	p.label = label
	return p
}

// Ignore returns a new parser whose activation is omitted from rendered
// diagnostics; its activation's children are re-parented to its parent.
// Because Parser values are otherwise immutable, Ignore is applied once at
// grammar-construction time and the resulting value carries the flag for
// its whole lifetime, set at construction and never mutated thereafter, so
// the value stays safe to share across concurrent parses.
func (p Parser[T]) Ignore() Parser[T] {
	p.ignore = true
	return p
}

// reprString implements the repr interface used by label synthesis
// (label.go): a Parser's repr is its own label.
func (p Parser[T]) reprString() string {
	return p.label
}

// Times runs p exactly n times, returning a slice of the results. This is
// repetition-by-count, spelled as a method for a direct Go call, alongside
// the free function Count.
func (p Parser[A]) Times(n int) Parser[[]A] {
	return Count(n, p)
}

// asFailure wraps a freshly produced leaf error into a *parseFailure, or
// passes an already-wrapped failure through unchanged so that its recorded
// position — the deepest point actually reached before backtracking began —
// survives every level it bubbles through.
func asFailure(pos int, err error) error {
	var pf *parseFailure
	if errors.As(err, &pf) {
		return pf
	}

	return &parseFailure{pos: pos, cause: err}
}

// parseFailure is a structured failure value carrying the position at
// which it was first raised and its underlying cause. The full activation
// tree it needs for
// rendering lives on the recorder, not on the failure itself, because the
// recorder already retains every activation until the top-level parse
// returns.
type parseFailure struct {
	pos   int
	cause error
}

func (f *parseFailure) Error() string {
	return f.cause.Error()
}

func (f *parseFailure) Unwrap() error {
	return f.cause
}

// Parse is the top-level entry point for a Parser: it wraps source in a
// fresh backtracking Scanner, attaches a fresh recorder, and runs the
// parser. On success it returns the parsed value; on failure it returns a
// *ParseError carrying the rendered multi-line diagnostic.
func (p Parser[T]) Parse(source string) (T, error) {
	scan := NewScanner(source)
	ctx := &Context{scan: scan, rec: newRecorder()}

	val, err := p.Run(ctx)
	if err != nil {
		var pf *parseFailure
		errors.As(err, &pf)

		return val, newParseError(scan, ctx.rec, pf)
	}

	return val, nil
}

// Name associates name with parser p, which will be reported in the case of
// failure. It is the non-synthesizing twin of WithLabel: Name always wins
// over whatever label p already carried, while combinators built through
// label.go's synthesis helper compose a label out of p's existing one.
func Name[A any](name string, p Parser[A]) Parser[A] {
	return p.WithLabel(name)
}

// Backtrack constructs a new parser that always restores the scanner to its
// entry position on failure, even if p partially consumed input before
// failing. Ordinary sequencing only undoes a *single* failing activation's
// own consumption (Run's own restore); Backtrack extends that guarantee to
// everything p did internally, making it the explicit adapter for forcing
// unconditional backtracking on the left side of an alternation.
//
// The failure Backtrack returns is re-stamped to its own entry position
// rather than passed through unchanged. Or decides whether to fall through
// to its right-hand branch by checking whether the failure's recorded
// position equals the branch's start (alternatives.go); if Backtrack left
// p's own deeper position on the failure, Or would still see it as having
// consumed input and would never try the right-hand branch, defeating the
// whole point of wrapping p in Backtrack.
func Backtrack[A any](p Parser[A]) Parser[A] {
	return newParser(label("backtrack", p), func(c *Context) (A, error) {
		checkpoint := c.scan.Pos()

		val, err := p.Run(c)
		if err != nil {
			c.scan.RestoreTo(checkpoint)

			var zero A
			return zero, &parseFailure{pos: checkpoint, cause: err}
		}

		return val, nil
	})
}

// Optional returns a pointer to p's result on success, or nil if p fails.
// p runs under Backtrack, so nil is returned (with the cursor restored)
// even when p consumed input before failing. An Optional parser never
// fails.
func Optional[A any](p Parser[A]) Parser[*A] {
	bp := Backtrack(p)

	return newParser(label("optional", p), func(c *Context) (*A, error) {
		val, err := bp.Run(c)
		if err != nil {
			return nil, nil
		}

		return &val, nil
	})
}

// Peek runs p without committing any cursor movement, regardless of whether
// p succeeds or fails: the cursor is always back at the entry position once
// Peek returns, and the returned value equals p's own when p succeeds.
func Peek[A any](p Parser[A]) Parser[A] {
	return newParser(label("peek", p), func(c *Context) (A, error) {
		checkpoint := c.scan.Pos()
		val, err := p.Run(c)
		c.scan.RestoreTo(checkpoint)

		return val, err
	})
}

// Failing succeeds with p's result iff q would fail at the current position;
// otherwise it fails without consuming input.
func Failing[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return newParser(label("failing", p, q), func(c *Context) (A, error) {
		if _, err := Peek(q).Run(c); err == nil {
			var zero A
			return zero, errors.New("unexpected match")
		}

		return p.Run(c)
	})
}

// Return creates a parser that always succeeds with v, consuming no input.
// This is `pure(x)`.
func Return[A any](v A) Parser[A] {
	return newParser("pure(value)", func(c *Context) (A, error) {
		return v, nil
	})
}

// Pure is an alias for Return.
func Pure[A any](v A) Parser[A] {
	return Return(v)
}

// Fail returns a parser that always fails with err, consuming no input.
func Fail[A any](err error) Parser[A] {
	return newParser("fail", func(c *Context) (A, error) {
		var zero A
		return zero, err
	})
}

// Unparseable always fails, consuming nothing.
var Unparseable = Fail[any](errors.New("unparseable"))

// Bind creates a parser that runs p, passes its result to f to obtain a new
// parser, and runs that parser at the current position.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return newParser(label("bind", p), func(c *Context) (B, error) {
		val, err := p.Run(c)
		if err != nil {
			var zero B
			return zero, err
		}

		return f(val).Run(c)
	})
}

// Then is an alias for Bind.
func Then[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return Bind(p, f)
}

// DiscardLeft runs p, discards its result, then runs q and returns q's
// result. A failure in either fails the composite with the cursor restored
// to before p.
func DiscardLeft[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return newParser(label("discard_left", p, q), func(c *Context) (B, error) {
		if _, err := p.Run(c); err != nil {
			var zero B
			return zero, err
		}

		return q.Run(c)
	})
}

// DiscardRight runs p, then runs q, discards q's result, and returns p's
// result.
func DiscardRight[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return newParser(label("discard_right", p, q), func(c *Context) (A, error) {
		vala, err := p.Run(c)
		if err != nil {
			var zero A
			return zero, err
		}

		if _, err := q.Run(c); err != nil {
			var zero A
			return zero, err
		}

		return vala, nil
	})
}

// Wrap runs left, discards its result, runs p, runs right, discards its
// result, and returns the result of p. This is `between`.
func Wrap[A, B, C any](left Parser[A], p Parser[B], right Parser[C]) Parser[B] {
	return DiscardRight(DiscardLeft(left, p), right)
}

// Between is an alias for Wrap.
func Between[A, B, C any](left Parser[A], right Parser[C], p Parser[B]) Parser[B] {
	return Wrap(left, p, right)
}

// Assert runs p and validates its result with pred; if pred returns false,
// fail is called to produce the error. Distinct from the purely syntactic
// combinators above, Assert layers semantic validation over an otherwise
// successful parse.
func Assert[A any](p Parser[A], pred func(A) bool, fail func(A) error) Parser[A] {
	return newParser(label("assert", p), func(c *Context) (A, error) {
		out, err := p.Run(c)
		if err != nil {
			var zero A
			return zero, err
		}

		if !pred(out) {
			var zero A
			return zero, fail(out)
		}

		return out, nil
	})
}
