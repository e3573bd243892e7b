package pcomb_test

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	. "github.com/corvidlabs/pcomb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type file []line

type line interface {
	calcline()
}

func (assignment) calcline() {}
func (printstmt) calcline()  {}
func (resetstmt) calcline()  {}

func lineify[a line](p Parser[a]) Parser[line] {
	return Lift(Error(func(x a) line {
		return x
	}), p)
}

type variable string

type assignment struct {
	variable variable
	expr     expression
}

type expression struct {
	lhs term
	op  addop
	rhs *expression
}

type addop int

const (
	plus addop = iota
	minus
)

type term struct {
	lhs factor
	op  mulop
	rhs *term
}

type mulop int

const (
	star mulop = iota
)

type factor interface {
	factor()
}

type number int

func (expression) factor() {}
func (variable) factor()   {}
func (number) factor()     {}

func factorify[a factor](p Parser[a]) Parser[factor] {
	return Lift(Error(func(x a) factor {
		return x
	}), p)
}

type printstmt struct {
	variable variable
}

type resetstmt struct{}

var (
	parseLetter = Regex(regexp.MustCompile(`[A-Za-z]`))
	parseDigit  = Regex(regexp.MustCompile(`\d`))
)

var parsevariable = Lift2(Error2(func(first string, rest []string) variable {
	return variable(first + strings.Join(rest, ""))
}), parseLetter, Many(Or(parseLetter, parseDigit)))

var parseExpression = Recursive(func(parse Parser[expression]) Parser[expression] {
	parsenumber := Lift2(Error2(func(sgn rune, digits []string) number {
		num, err := strconv.Atoi(strings.Join(digits, ""))
		if err != nil {
			panic(err)
		}

		if sgn == '-' {
			num *= -1
		}

		return number(num)
	}), Or(Rune('-'), Return[rune](-1)), Many1(parseDigit))

	parsemulop := SkipWS(Lift(Error(func(r rune) mulop {
		switch r {
		case '*':
			return star
		default:
			panic("bad mul rune")
		}
	}), Rune('*')))

	parseaddop := SkipWS(Lift(Error(func(r rune) addop {
		switch r {
		case '+':
			return plus
		case '-':
			return minus
		default:
			panic("bad add op rune")
		}
	}), Or(Rune('+'), Rune('-'))))

	parsefactor := Choice(
		factorify(Wrap(Rune('('), parse, Rune(')'))),
		factorify(parsevariable),
		factorify(parsenumber),
	)

	parseterm := Lift2(Error2(func(lhs factor, rest []Pair[mulop, factor]) term {
		var rhs term
		for i := len(rest) - 1; i >= 0; i-- {
			rhs.lhs = rest[i].Right

			rhs = term{
				op:  rest[i].Left,
				rhs: &rhs,
			}
		}

		rhs.lhs = lhs
		return rhs
	}), parsefactor, Many(Lift2(Error2(MakePair[mulop, factor]), parsemulop, parsefactor)))

	return Lift2(Error2(func(lhs term, rest []Pair[addop, term]) expression {
		var rhs expression
		for i := len(rest) - 1; i >= 0; i-- {
			right := rest[i].Right
			op := rest[i].Left
			rhs.lhs = right

			nrhs := expression{
				op:  op,
				rhs: &rhs,
			}

			rhs = nrhs
		}

		rhs.lhs = lhs

		return rhs
	}), parseterm, Many(Lift2(Error2(MakePair[addop, term]), parseaddop, parseterm)))
})

var parseAssignment = Lift2(Error2(func(v variable, expr expression) assignment {
	return assignment{
		variable: v,
		expr:     expr,
	}
}), parsevariable, DiscardLeft(SkipWS(Literal(":=", true)), parseExpression))

var parseprint = Lift(Error(func(v variable) printstmt {
	return printstmt{
		variable: v,
	}
}), DiscardLeft(SkipWS(Literal("PRINT", true)), parsevariable))

var parsereset = DiscardLeft(Literal("RESET", true), Return(resetstmt{}))

// parseAssignment is wrapped in Backtrack because it shares a prefix with
// both other line kinds: it starts by consuming a bare variable name, which
// happily eats "PRINT" or "RESET" too before failing on the missing ":=".
// Under Choice's committed-choice rule that partial consumption would
// otherwise stop the PRINT/RESET branches from ever being tried.
var parseline = DiscardRight(
	Choice(
		lineify(Backtrack(parseAssignment)),
		lineify(parseprint),
		lineify(parsereset),
	),
	Rune('\n'),
)

var parseFile = Many1(parseline)

type calculator struct {
	scope map[variable]expression
	lines []line
}

func (c calculator) run() {
	for _, line := range c.lines {
		switch v := line.(type) {
		case assignment:
			c.scope[v.variable] = v.expr
		case printstmt:
			expr, ok := c.scope[v.variable]
			if !ok {
				fmt.Println("UNDEF")
				continue
			}

			res, ok := c.resolveExpr(expr)
			if !ok {
				fmt.Println("UNDEF")
				continue
			}

			fmt.Println(res)

		case resetstmt:
			c.scope = make(map[variable]expression)
		}
	}
}

func (c calculator) resolveExpr(e expression) (int, bool) {
	lhs, ok := c.resolveTerm(e.lhs)
	if !ok {
		return 0, false
	}

	if e.rhs != nil {
		rhs, ok := c.resolveExpr(*e.rhs)
		if !ok {
			return 0, false
		}

		switch e.op {
		case plus:
			lhs += rhs
		case minus:
			lhs -= rhs
		}
	}

	return lhs, true
}

func (c calculator) resolveTerm(e term) (int, bool) {
	lhs, ok := c.resolveFactor(e.lhs)
	if !ok {
		return 0, false
	}

	if e.rhs != nil {
		rhs, ok := c.resolveTerm(*e.rhs)
		if !ok {
			return 0, false
		}

		switch e.op {
		case star:
			lhs *= rhs
		}
	}

	return lhs, true
}

func (c calculator) resolveFactor(f factor) (int, bool) {
	switch v := f.(type) {
	case expression:
		return c.resolveExpr(v)
	case variable:
		res, ok := c.scope[v]
		if !ok {
			return 0, false
		}

		return c.resolveExpr(res)
	case number:
		return int(v), true
	}

	return -1, false
}

func TestCalculator(t *testing.T) {
	input := `a := b + c
`

	f, err := parseFile.Parse(input)
	if err != nil {
		panic(err)
	}

	c := calculator{
		scope: make(map[variable]expression),
		lines: f,
	}
	c.run()
}

// TestCalculatorPrintAndReset exercises the PRINT and RESET line kinds,
// which share a leading-identifier prefix with assignment (see parseline's
// Backtrack wrapping above): without it, Choice's committed-choice rule
// would never let these two branches run.
func TestCalculatorPrintAndReset(t *testing.T) {
	input := `a := 1
PRINT a
RESET
`

	f, err := parseFile.Parse(input)
	require.NoError(t, err)
	require.Len(t, f, 3)

	assign, ok := f[0].(assignment)
	require.True(t, ok, "expected line 1 to be an assignment")
	assert.Equal(t, variable("a"), assign.variable)

	prnt, ok := f[1].(printstmt)
	require.True(t, ok, "expected line 2 to be a PRINT statement")
	assert.Equal(t, variable("a"), prnt.variable)

	_, ok = f[2].(resetstmt)
	require.True(t, ok, "expected line 3 to be a RESET statement")

	c := calculator{
		scope: make(map[variable]expression),
		lines: f,
	}
	c.run()
}
