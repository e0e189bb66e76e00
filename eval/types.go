/*
File    : go-trash/eval/types.go
*/
package eval

import (
	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/values"
)

// signal enumerates the non-local control-flow outcomes a statement can
// produce. Signals bubble through block execution as ordinary return
// values of the statement walker; loops and function-call sites
// intercept them. This keeps unwinding visible in the types instead of
// using panics for normal control flow.
type signal int

const (
	signalNone signal = iota // Normal completion
	signalBreak
	signalContinue
	signalReturn
)

// flow pairs a signal with the value carried by a return.
type flow struct {
	kind  signal
	value values.Value // Return value (signalReturn only)
}

// flowNone is the normal-completion flow.
var flowNone = flow{kind: signalNone}

// reference is an L-value handle: a readable and writable storage
// location. It is produced only when an identifier, dot access or
// bracket access appears somewhere an L-value makes sense; every other
// context dereferences it immediately.
type reference interface {
	read() (values.Value, error)
	write(v values.Value) error
}

// variableRef is the L-value of an identifier: the environment that was
// current when the identifier was evaluated, plus the name.
type variableRef struct {
	env  *scope.Environment
	name string
}

func (r *variableRef) read() (values.Value, error) {
	v, ok := r.env.LookUp(r.name)
	if !ok {
		return nil, &RuntimeError{
			Kind:    ErrUndeclaredAccess,
			Message: "undeclared variable '" + r.name + "'",
		}
	}
	return v, nil
}

func (r *variableRef) write(v values.Value) error {
	if !r.env.Assign(r.name, v) {
		return &RuntimeError{
			Kind:    ErrUndeclaredAccess,
			Message: "assignment to undeclared variable '" + r.name + "'",
		}
	}
	return nil
}

// accessorRef is the L-value of a dot or bracket access: an indexable
// plus the key value.
type accessorRef struct {
	obj values.Indexable
	key values.Value
}

func (r *accessorRef) read() (values.Value, error) {
	return r.obj.Get(r.key), nil
}

func (r *accessorRef) write(v values.Value) error {
	r.obj.Set(r.key, v)
	return nil
}

// result is the outcome of evaluating an expression: either a plain
// value or an L-value reference. Exactly one of the fields is set.
type result struct {
	value values.Value
	ref   reference
}

// deref collapses a result to its R-value, reading through the
// reference when present.
func (r result) deref() (values.Value, error) {
	if r.ref != nil {
		return r.ref.read()
	}
	return r.value, nil
}

// rvalue wraps a plain value as a result.
func rvalue(v values.Value) result {
	return result{value: v}
}
