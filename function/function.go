/*
File    : go-trash/function/function.go
*/

// Package function defines the user-defined function value of the
// Trash language: a function literal's AST paired with the environment
// frame it was constructed in. The captured environment is shared, not
// copied, so mutations in outer scopes stay visible through captures.
package function

import (
	"fmt"
	"strings"

	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/values"
)

// Function represents a user-defined function object: a closure over
// the frame that was current when the function literal was evaluated.
type Function struct {
	Def *parser.FunctionExpressionNode // The function literal AST
	Env *scope.Environment             // Captured environment for closure access
}

// Executor is the part of the evaluator a Function needs in order to
// run its body. Keeping it as an interface here avoids an import cycle
// between this package and the evaluator.
type Executor interface {
	values.Runtime
	InvokeFunction(fn *Function, args []values.Value) (values.Value, error)
}

// Type returns the type of the Function value ("function").
func (f *Function) Type() values.ValueType {
	return values.FunctionType
}

// ToString returns a compact rendering listing the parameter names.
//
// Example:
//
//	For function(a, b) { ... } this returns: "function(a, b)"
func (f *Function) ToString() string {
	params := make([]string, 0, len(f.Def.Params))
	for _, p := range f.Def.Params {
		params = append(params, p.Literal)
	}
	return fmt.Sprintf("function(%s)", strings.Join(params, ", "))
}

// Inspect returns a detailed representation of the function.
func (f *Function) Inspect() string {
	return fmt.Sprintf("<%s>", f.ToString())
}

// Call implements the Callable contract. The runtime passed in by the
// evaluator must be an Executor; any other runtime cannot run a
// user-defined body.
func (f *Function) Call(rt values.Runtime, args []values.Value) (values.Value, error) {
	ex, ok := rt.(Executor)
	if !ok {
		return nil, fmt.Errorf("runtime cannot execute user-defined functions")
	}
	return ex.InvokeFunction(f, args)
}
