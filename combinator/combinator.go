/*
File    : go-trash/combinator/combinator.go
*/

// Package combinator implements a minimalistic backtracking
// parser-combinator runtime for the Trash language toolchain.
//
// A parser is a pure function from an input State to a Result. A Result
// is either a success carrying an output value, the remaining input and
// a consumed-input flag, or a Failure carrying a position, an
// expectation set, a message and an optional context.
//
// The consumed-input flag is what makes alternatives "committed": an
// Either choice only moves on to later branches if the earlier branch
// failed WITHOUT consuming input. Try converts a committed failure back
// into an uncommitted one, restoring backtracking at a chosen point.
package combinator

import (
	"fmt"
	"strings"
)

// Position is a (line, column) pair into the source, both 0-based.
type Position struct {
	Line   int // Line number in source (0-based)
	Column int // Column number in source (0-based)
}

// LaterThan reports whether p lies strictly after q in the source.
// Positions are totally ordered; this order drives error merging.
func (p Position) LaterThan(q Position) bool {
	if p.Line != q.Line {
		return p.Line > q.Line
	}
	return p.Column > q.Column
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// State is the abstract input a parser consumes. Concrete inputs (a
// character view for the lexer, a token view for the parser) are value
// types: advancing produces a new State and never mutates the old one.
type State interface {
	// Empty reports whether no more input remains.
	Empty() bool
	// Pos returns the position of the next element of the input.
	Pos() Position
}

// Failure describes a failed parse: where it happened, whether input
// was consumed getting there, what was expected, and an optional
// context naming the enclosing grammar production.
type Failure struct {
	Pos      Position // Position of the offending input
	Consumed bool     // Whether input was consumed before failing
	Expected []string // Set of expected constructs, in discovery order
	Message  string   // Human-readable message ("unexpected token", ...)
	Context  string   // Optional production name ("statement", ...)
}

// Error renders the failure in the canonical form
// "error on line L:C: <message>[, expected A or B][ while parsing <context>]".
func (f *Failure) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error on line %s: %s", f.Pos, f.Message)
	if len(f.Expected) > 0 {
		fmt.Fprintf(&sb, ", expected %s", strings.Join(f.Expected, " or "))
	}
	if f.Context != "" {
		fmt.Fprintf(&sb, " while parsing %s", f.Context)
	}
	return sb.String()
}

// clone returns a shallow copy of the failure with its own expectation
// slice, so merging never aliases a failure owned by another Result.
func (f *Failure) clone() *Failure {
	c := *f
	c.Expected = append([]string(nil), f.Expected...)
	return &c
}

// mergeExpected unions b into a, preserving first-seen order.
func mergeExpected(a, b []string) []string {
	out := append([]string(nil), a...)
	for _, e := range b {
		found := false
		for _, have := range out {
			if have == e {
				found = true
				break
			}
		}
		if !found {
			out = append(out, e)
		}
	}
	return out
}

// pickFarther merges two failures: the one whose position lies strictly
// farther in the input wins outright; at equal positions the
// expectation sets are unioned. Either argument may be nil.
func pickFarther(a, b *Failure) *Failure {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Pos.LaterThan(b.Pos) {
		return a
	}
	if b.Pos.LaterThan(a.Pos) {
		return b
	}
	c := a.clone()
	c.Expected = mergeExpected(a.Expected, b.Expected)
	return c
}

// Result is the outcome of running a parser: a success carrying Output,
// the remaining input and a consumed flag, or a non-nil Err. A success
// may additionally carry Alt, the best error produced by an alternative
// branch that reached farther than the success did; Seq surfaces it
// when a later parser fails at the same or an earlier position.
type Result[S State, O any] struct {
	Output   O        // Parsed value (success only)
	Rest     S        // Remaining input (success only)
	Consumed bool     // Whether the parser advanced past its start
	Alt      *Failure // Best alternative error attached to a success
	Err      *Failure // Non-nil on failure
}

// Failed reports whether the result is an error.
func (r Result[S, O]) Failed() bool {
	return r.Err != nil
}

// succeed builds a success result.
func succeed[S State, O any](out O, rest S, consumed bool) Result[S, O] {
	return Result[S, O]{Output: out, Rest: rest, Consumed: consumed}
}

// failed builds a failure result.
func failed[S State, O any](err *Failure) Result[S, O] {
	return Result[S, O]{Err: err}
}

// Parser is the common signature of every parser: pure State to Result.
type Parser[S State, O any] func(S) Result[S, O]

// Pure emits v without looking at the input. Never fails, never
// consumes.
func Pure[S State, O any](v O) Parser[S, O] {
	return func(s S) Result[S, O] {
		return succeed(v, s, false)
	}
}

// Fail always fails at the current position without consuming input.
func Fail[S State, O any](msg string) Parser[S, O] {
	return func(s S) Result[S, O] {
		return failed[S, O](&Failure{Pos: s.Pos(), Message: msg})
	}
}

// Eof succeeds only at the end of the input. The success is reported as
// consuming (so surrounding sequences treat the end as reached), the
// failure expects "end of input" at the offending position.
func Eof[S State]() Parser[S, struct{}] {
	return func(s S) Result[S, struct{}] {
		if s.Empty() {
			return succeed(struct{}{}, s, true)
		}
		return failed[S, struct{}](&Failure{
			Pos:      s.Pos(),
			Message:  "unexpected input",
			Expected: []string{"end of input"},
		})
	}
}

// Map applies f to the output of p. Errors pass through unchanged.
func Map[S State, A, B any](p Parser[S, A], f func(A) B) Parser[S, B] {
	return func(s S) Result[S, B] {
		r := p(s)
		if r.Failed() {
			return failed[S, B](r.Err)
		}
		return Result[S, B]{Output: f(r.Output), Rest: r.Rest, Consumed: r.Consumed, Alt: r.Alt}
	}
}

// Bind feeds the output of p into f and runs the produced parser on the
// remaining input, with the same error merging as Seq.
func Bind[S State, A, B any](p Parser[S, A], f func(A) Parser[S, B]) Parser[S, B] {
	return func(s S) Result[S, B] {
		ra := p(s)
		if ra.Failed() {
			return failed[S, B](ra.Err)
		}
		rb := f(ra.Output)(ra.Rest)
		return sequenced(ra.Consumed, ra.Alt, rb)
	}
}

// Seq runs p then q and combines their outputs. If q fails, the
// combined error is the farther of q's error and p's attached best
// alternative (expectation sets are unioned at equal positions), and it
// is committed if either side consumed input. A combined success is
// reported as consuming only if both sub-parsers consumed.
func Seq[S State, A, B, C any](p Parser[S, A], q Parser[S, B], combine func(A, B) C) Parser[S, C] {
	return func(s S) Result[S, C] {
		ra := p(s)
		if ra.Failed() {
			return failed[S, C](ra.Err)
		}
		rb := sequenced(ra.Consumed, ra.Alt, q(ra.Rest))
		if rb.Failed() {
			return failed[S, C](rb.Err)
		}
		return Result[S, C]{
			Output:   combine(ra.Output, rb.Output),
			Rest:     rb.Rest,
			Consumed: rb.Consumed,
			Alt:      rb.Alt,
		}
	}
}

// sequenced applies the Seq/Bind merging rules to the second result of
// a sequence, given the first result's consumed flag and alternative.
func sequenced[S State, B any](aConsumed bool, aAlt *Failure, rb Result[S, B]) Result[S, B] {
	if rb.Failed() {
		e := rb.Err.clone()
		e.Consumed = e.Consumed || aConsumed
		win := pickFarther(e, aAlt)
		if win != e {
			win = win.clone()
			win.Consumed = e.Consumed
		}
		return failed[S, B](win)
	}
	return Result[S, B]{
		Output:   rb.Output,
		Rest:     rb.Rest,
		Consumed: aConsumed && rb.Consumed,
		Alt:      pickFarther(aAlt, rb.Alt),
	}
}

// Either tries each parser in turn and returns the first success.
//
// While iterating it retains a best-so-far error: the first error is
// adopted; a later error replaces it only if it consumed input and
// reached strictly farther; errors at the same position union their
// expectation sets; everything else is discarded. A branch that fails
// after consuming input commits the choice: no later branch is tried.
//
// When a branch succeeds while the best-so-far error consumed input and
// reached farther than the success's remaining input, the error is
// attached to the success as its best alternative so that a later Seq
// can still surface it.
func Either[S State, O any](ps ...Parser[S, O]) Parser[S, O] {
	return func(s S) Result[S, O] {
		var best *Failure
		for _, p := range ps {
			r := p(s)
			if !r.Failed() {
				if best != nil && best.Consumed && best.Pos.LaterThan(r.Rest.Pos()) {
					r.Alt = pickFarther(r.Alt, best)
				}
				return r
			}
			e := r.Err
			switch {
			case best == nil:
				best = e
			case e.Consumed && e.Pos.LaterThan(best.Pos):
				best = e
			case !e.Pos.LaterThan(best.Pos) && !best.Pos.LaterThan(e.Pos):
				best = best.clone()
				best.Expected = mergeExpected(best.Expected, e.Expected)
			}
			if e.Consumed {
				// Committed failure: stop trying alternatives.
				return failed[S, O](best)
			}
		}
		if best == nil {
			best = &Failure{Pos: s.Pos(), Message: "no alternatives"}
		}
		return failed[S, O](best)
	}
}

// Optional runs p and falls back to def if p fails without consuming
// input. A committed failure propagates.
func Optional[S State, O any](def O, p Parser[S, O]) Parser[S, O] {
	return func(s S) Result[S, O] {
		r := p(s)
		if !r.Failed() {
			return r
		}
		if r.Err.Consumed {
			return r
		}
		return succeed(def, s, false)
	}
}

// Many folds zero or more outputs of p, stopping at the first
// uncommitted failure or at the end of the input. A committed failure
// mid-stream propagates. The final uncommitted failure is kept on the
// success as its best alternative so a following parser failing at the
// same position unions its expectations with it.
func Many[S State, O, A any](p Parser[S, O], seed func() A, fold func(A, O) A) Parser[S, A] {
	return func(s S) Result[S, A] {
		acc := seed()
		consumed := false
		cur := s
		var alt *Failure
		for !cur.Empty() {
			r := p(cur)
			if r.Failed() {
				if r.Err.Consumed {
					return failed[S, A](r.Err)
				}
				alt = r.Err
				break
			}
			acc = fold(acc, r.Output)
			consumed = consumed || r.Consumed
			if r.Rest.Pos() == cur.Pos() && !r.Consumed {
				// Zero-width success: stop rather than loop forever.
				cur = r.Rest
				break
			}
			cur = r.Rest
		}
		return Result[S, A]{Output: acc, Rest: cur, Consumed: consumed, Alt: alt}
	}
}

// Many1 is Many requiring at least one occurrence: the mandatory first
// output is folded into the seed before the remaining zero-or-more run.
func Many1[S State, O, A any](p Parser[S, O], seed func() A, fold func(A, O) A) Parser[S, A] {
	return Bind(p, func(first O) Parser[S, A] {
		return Many(p, func() A { return fold(seed(), first) }, fold)
	})
}

// Collect is the (seed, fold) pair accumulating outputs into a slice,
// for use with Many and Many1.
func Collect[O any]() (func() []O, func([]O, O) []O) {
	return func() []O { return nil },
		func(acc []O, o O) []O { return append(acc, o) }
}

// Separated parses one or more p separated by sep, returning the list
// of p outputs.
func Separated[S State, O, X any](p Parser[S, O], sep Parser[S, X]) Parser[S, []O] {
	seed, fold := Collect[O]()
	tail := Many(Then(sep, p), seed, fold)
	return Seq(p, tail, func(head O, rest []O) []O {
		return append([]O{head}, rest...)
	})
}

// Enclosed parses l, then p, then r, discarding the delimiters.
func Enclosed[S State, L, O, R any](l Parser[S, L], p Parser[S, O], r Parser[S, R]) Parser[S, O] {
	return Then(l, Skip(p, r))
}

// Then runs p then q, keeping q's output.
func Then[S State, A, B any](p Parser[S, A], q Parser[S, B]) Parser[S, B] {
	return Seq(p, q, func(_ A, b B) B { return b })
}

// Skip runs p then q, keeping p's output.
func Skip[S State, A, B any](p Parser[S, A], q Parser[S, B]) Parser[S, A] {
	return Seq(p, q, func(a A, _ B) A { return a })
}

// Tagged names a production. On an uncommitted failure the expectation
// set is replaced with the given name, so errors read in grammar terms
// rather than token terms. On a committed failure the name is attached
// as the context if none is set yet. Successes pass through unchanged.
func Tagged[S State, O any](p Parser[S, O], name string) Parser[S, O] {
	return func(s S) Result[S, O] {
		r := p(s)
		if !r.Failed() {
			return r
		}
		e := r.Err.clone()
		if !e.Consumed {
			e.Expected = []string{name}
		} else if e.Context == "" {
			e.Context = name
		}
		return failed[S, O](e)
	}
}

// Try makes p's outcome uncommitted: a success is reported as not
// consuming, and a failure has its consumed flag cleared so an
// enclosing Either can still backtrack.
func Try[S State, O any](p Parser[S, O]) Parser[S, O] {
	return func(s S) Result[S, O] {
		r := p(s)
		if r.Failed() {
			e := r.Err.clone()
			e.Consumed = false
			return failed[S, O](e)
		}
		r.Consumed = false
		return r
	}
}

// Positioned pairs a parsed value with the position it started at.
type Positioned[O any] struct {
	Pos   Position
	Value O
}

// Positional augments p's output with the input position at which p
// began.
func Positional[S State, O any](p Parser[S, O]) Parser[S, Positioned[O]] {
	return func(s S) Result[S, Positioned[O]] {
		start := s.Pos()
		r := p(s)
		if r.Failed() {
			return failed[S, Positioned[O]](r.Err)
		}
		return Result[S, Positioned[O]]{
			Output:   Positioned[O]{Pos: start, Value: r.Output},
			Rest:     r.Rest,
			Consumed: r.Consumed,
			Alt:      r.Alt,
		}
	}
}

// Lazy defers construction of a parser until it is first used, breaking
// the cycles between mutually recursive grammar non-terminals.
func Lazy[S State, O any](build func() Parser[S, O]) Parser[S, O] {
	var p Parser[S, O]
	return func(s S) Result[S, O] {
		if p == nil {
			p = build()
		}
		return p(s)
	}
}
