/*
File    : go-trash/eval/evaluator.go
*/

// Package eval implements the tree-walking evaluator of the Trash
// language. Two walkers share an Evaluator: the expression walker
// yields an L-value reference or a plain value, and the statement
// walker yields a control-flow signal. The evaluator keeps a single
// mutable current-environment register and restores it on every exit
// path from a block, loop or function body, including error paths.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/themartin/go-trash/function"
	"github.com/themartin/go-trash/lexer"
	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/values"
)

// ErrorKind classifies a runtime error.
type ErrorKind string

const (
	// ErrTypeMismatch: operand of the wrong kind for an operator or operation
	ErrTypeMismatch ErrorKind = "TypeMismatch"
	// ErrUndeclaredAccess: read or assignment of an unbound identifier
	ErrUndeclaredAccess ErrorKind = "UndeclaredAccess"
	// ErrDoubleDeclaration: var on a name already bound in the current frame
	ErrDoubleDeclaration ErrorKind = "DoubleDeclaration"
	// ErrArity: function called with the wrong argument count
	ErrArity ErrorKind = "Arity"
	// ErrNotAssignable: assignment target is not a variable or indexed access
	ErrNotAssignable ErrorKind = "NotAssignable"
	// ErrStrayBreakContinue: break or continue with no enclosing loop
	ErrStrayBreakContinue ErrorKind = "StrayBreakContinue"
	// ErrNative: a host-supplied native function reported an error
	ErrNative ErrorKind = "NativeFunction"
	// ErrInternal: invariant violation inside the evaluator
	ErrInternal ErrorKind = "Internal"
)

// RuntimeError is the structured error every evaluator failure
// surfaces to the host. Failures are fatal to the current Execute call;
// no recovery is attempted.
type RuntimeError struct {
	Kind    ErrorKind    // Classification of the failure
	Message string       // Human-readable description
	Token   *lexer.Token // Offending token, when one is known
}

// Error renders the runtime error, with the token position when known.
func (e *RuntimeError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("runtime error on line %s: %s", e.Token.Pos, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// newError creates a RuntimeError anchored at a token.
func newError(kind ErrorKind, tok lexer.Token, format string, a ...any) *RuntimeError {
	t := tok
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, a...), Token: &t}
}

// Evaluator holds the state for executing Trash AST nodes: the
// current-environment register and the output writer handed to native
// functions. An Evaluator must not be shared between concurrent
// Execute calls; the environment register is mutable.
type Evaluator struct {
	Env *scope.Environment // Current environment frame
	Out io.Writer          // Output writer for native functions
}

// NewEvaluator creates an evaluator writing to standard output.
func NewEvaluator() *Evaluator {
	return &Evaluator{Out: os.Stdout}
}

// SetWriter redirects the output of native functions, which is how
// tests capture program output.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Out = w
}

// Writer returns the output writer. This implements values.Runtime.
func (e *Evaluator) Writer() io.Writer {
	return e.Out
}

// Execute runs a parsed program against the given environment. The
// program's top-level statements execute directly in env, so bindings
// they create remain visible to the host afterwards. The evaluator's
// environment register is restored to its previous value on every exit
// path, including failures.
func (e *Evaluator) Execute(root *parser.RootNode, env *scope.Environment) error {
	prev := e.Env
	e.Env = env
	defer func() { e.Env = prev }()

	for _, stmt := range root.Statements {
		sig, err := e.execStatement(stmt)
		if err != nil {
			return err
		}
		if sig.kind != signalNone {
			return &RuntimeError{
				Kind:    ErrStrayBreakContinue,
				Message: "control-flow statement outside of any function or loop",
			}
		}
	}
	return nil
}

// InvokeFunction calls a user-defined function: it checks the arity,
// extends the captured closure environment with a frame binding each
// parameter, and executes the body. A Return signal yields the returned
// value, normal completion yields nil, and a Break or Continue escaping
// the body is an error. This implements function.Executor.
func (e *Evaluator) InvokeFunction(fn *function.Function, args []values.Value) (values.Value, error) {
	if len(args) != len(fn.Def.Params) {
		return nil, &RuntimeError{
			Kind:    ErrArity,
			Message: fmt.Sprintf("function expects %d arguments, got %d", len(fn.Def.Params), len(args)),
		}
	}

	prev := e.Env
	e.Env = fn.Env.Extend()
	defer func() { e.Env = prev }()

	for i, param := range fn.Def.Params {
		// Parameter names are distinct frames from body locals, so a
		// clash can only come from duplicated parameters.
		if !e.Env.Bind(param.Literal, args[i]) {
			return nil, newError(ErrDoubleDeclaration, param, "duplicate parameter '%s'", param.Literal)
		}
	}

	sig, err := e.execStatement(fn.Def.Body)
	if err != nil {
		return nil, err
	}
	switch sig.kind {
	case signalReturn:
		return sig.value, nil
	case signalNone:
		return values.NIL, nil
	default:
		return nil, &RuntimeError{
			Kind:    ErrStrayBreakContinue,
			Message: "break or continue outside of any loop",
		}
	}
}
