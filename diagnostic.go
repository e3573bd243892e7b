package pcomb

import (
	"fmt"
	"strings"
)

// ParseError is the library's structured failure type: it carries both the
// position of the failure and the rendered multi-line diagnostic that is
// the canonical way to understand why a parse failed.
type ParseError struct {
	Pos        int
	Line       int
	Col        int
	Diagnostic string
}

// Error returns the rendered diagnostic, so a *ParseError is usable directly
// wherever an error is expected.
func (e *ParseError) Error() string {
	return e.Diagnostic
}

// newParseError renders the diagnostic from the recorder's completed
// activation tree and the position at which the parse ultimately failed.
func newParseError(scan *Scanner, rec *recorder, pf *parseFailure) *ParseError {
	if pf == nil {
		return &ParseError{Diagnostic: "parse failed"}
	}

	line, col := scan.LineCol(pf.pos)
	path := findFailurePath(rec.root, pf.pos)
	rows := collectDiagnosticRows(path)

	var b strings.Builder

	fmt.Fprintf(&b, "line %d:\n", line)
	fmt.Fprintf(&b, "  %s\n", scan.LineText(line))

	lineStart := pf.pos - col
	gutterWidth := len(scan.LineText(line)) + 2

	for _, act := range rows {
		fmt.Fprintf(&b, "  %s   * %s: %s\n", gutterSpan(act, lineStart, gutterWidth), outcomeWord(act.outcome), act.label)
	}

	if len(rows) == 0 {
		fmt.Fprintf(&b, "  * failure: %s\n", pf.cause.Error())
	}

	return &ParseError{
		Pos:        pf.pos,
		Line:       line,
		Col:        col,
		Diagnostic: b.String(),
	}
}

// findFailurePath walks the recorder's activation tree from its synthetic
// root down to the deepest activation that both failed and whose recorded
// start lies at or before the failure position, which is exactly the
// activation that the propagated failure is "about".
func findFailurePath(root *activation, pos int) []*activation {
	var path []*activation

	cur := root
	for {
		var next *activation

		for _, ch := range cur.children {
			if ch.outcome == failed && ch.start <= pos {
				next = ch
			}
		}

		if next == nil {
			break
		}

		path = append(path, next)
		cur = next
	}

	return path
}

// collectDiagnosticRows turns an ancestor path into the ordered rows the
// renderer prints: the failing chain itself (innermost first, so the
// deepest failure sits closest to the source line), followed by
// already-completed sibling activations at the point of failure (also
// innermost/most-recent first), skipping anything marked ignore or elided
// by splicing.
func collectDiagnosticRows(path []*activation) []*activation {
	var rows []*activation

	visible := func(act *activation) bool {
		return !act.ignore && !act.splicedUnder
	}

	for i := len(path) - 1; i >= 0; i-- {
		if visible(path[i]) {
			rows = append(rows, path[i])
		}
	}

	if len(path) > 0 {
		leaf := path[len(path)-1]
		if leaf.parent != nil {
			for j := len(leaf.parent.children) - 1; j >= 0; j-- {
				sib := leaf.parent.children[j]
				if sib == leaf {
					continue
				}

				if (sib.outcome == succeeded || sib.outcome == failed) && visible(sib) {
					rows = append(rows, sib)
				}
			}
		}
	}

	return rows
}

func outcomeWord(o outcome) string {
	if o == succeeded {
		return "success"
	}

	return "failure"
}

// gutterSpan draws the left-hand column of a diagnostic row: spaces up to
// the activation's start column, then a span marker from start to end
// column inclusive, using 'V' for a single-column (zero-width) span or
// '\', '-', '/' for a multi-column one.
func gutterSpan(act *activation, lineStart, width int) string {
	startCol := act.start - lineStart
	endCol := act.end - lineStart

	if startCol < 0 {
		startCol = 0
	}

	truncated := false
	if endCol > width {
		endCol = width
		truncated = true
	}

	if endCol < startCol {
		endCol = startCol
	}

	buf := make([]byte, width)
	for i := range buf {
		buf[i] = ' '
	}

	switch {
	case startCol == endCol:
		if startCol < width {
			buf[startCol] = 'V'
		}
	default:
		if startCol < width {
			buf[startCol] = '\\'
		}

		for i := startCol + 1; i < endCol && i < width; i++ {
			buf[i] = '-'
		}

		if endCol < width {
			buf[endCol] = '/'
		}
	}

	out := string(buf)
	if truncated {
		out += "…"
	}

	return out
}
