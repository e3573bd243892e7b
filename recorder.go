package pcomb

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// outcome is the terminal state of an activation.
type outcome int

const (
	inProgress outcome = iota
	succeeded
	failed
)

// activation is one node in the live parse tree: a single invocation of a
// parser, tracked from entry to exit.
type activation struct {
	label    string
	start    int
	end      int
	outcome  outcome
	parent   *activation
	children []*activation

	ignore bool // suppressed from rendering; children re-parented to parent
	splice bool // subtree collapsed to this single node for rendering

	splicedUnder bool // true if an enclosing Splicer region elided this node
}

// spliceFrame is one open Splicer region.
type spliceFrame struct {
	boundary *activation
}

// recorder maintains the live activation tree for a single parse call. It is
// strictly private to that call.
type recorder struct {
	root    *activation
	current *activation
	splices *arraystack.Stack
}

func newRecorder() *recorder {
	root := &activation{label: "<root>", outcome: inProgress}
	return &recorder{
		root:    root,
		current: root,
		splices: arraystack.New(),
	}
}

// enter pushes a new activation as a child of the currently active one and
// makes it current.
func (r *recorder) enter(label string, start int) *activation {
	act := &activation{
		label:   label,
		start:   start,
		outcome: inProgress,
		parent:  r.current,
	}

	if !r.splices.Empty() {
		if top, ok := r.splices.Peek(); ok {
			frame := top.(*spliceFrame)
			if frame.boundary != r.current || r.current.ignore {
				act.splicedUnder = true
			}
		}
	}

	r.current.children = append(r.current.children, act)
	r.current = act

	return act
}

// exit closes the currently active activation with the given end position
// and outcome, and pops back to its parent.
func (r *recorder) exit(act *activation, end int, ok bool) {
	act.end = end
	if ok {
		act.outcome = succeeded
	} else {
		act.outcome = failed
	}

	r.current = act.parent
}

// startSplice opens a new splicer region rooted at the currently active
// activation, returning a Marker the caller must close with End. Regions
// must be well-nested: closing out of order panics, enforcing scoped
// acquisition with guaranteed release.
func (r *recorder) startSplice() *Marker {
	frame := &spliceFrame{boundary: r.current}
	r.splices.Push(frame)

	return &Marker{rec: r, frame: frame}
}

// Marker is the handle returned by a Splicer's Start, closed by a matching
// call to End.
type Marker struct {
	rec    *recorder
	frame  *spliceFrame
	closed bool
}

// end closes the splice region, marking the boundary activation as a
// collapsed subtree and popping the region's frame off the recorder's
// splice stack.
func (m *Marker) end() {
	if m.closed {
		panic("pcomb: Marker.End called twice")
	}

	top, ok := m.rec.splices.Peek()
	if !ok || top.(*spliceFrame) != m.frame {
		panic("pcomb: splicer regions closed out of order")
	}

	m.rec.splices.Pop()
	m.frame.boundary.splice = true
	m.closed = true
}

// Splicer is the scoped marker-pair construct that lets an author of a
// hand-written parser body elide the intermediate activations it creates
// internally from rendered diagnostics, collapsing them into the single
// activation the Splicer was opened from.
type Splicer struct {
	ctx *Context
}

// Start begins a new splice region.
func (s *Splicer) Start() *Marker {
	return s.ctx.rec.startSplice()
}

// End closes the marker's splice region and then runs the designated
// parser p outside it, so p's activation and its whole subtree survive
// rendering. Inside the region, activations opened directly under the
// boundary node stay visible; deeper ones are elided.
func End[A any](m *Marker, c *Context, p Parser[A]) (A, error) {
	m.end()

	return p.Run(c)
}
