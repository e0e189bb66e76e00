/*
File    : go-trash/std/builtins.go
*/

// Package std provides the native standard library of the Trash
// interpreter. Every builtin implements the values.Callable contract
// the evaluator consumes, and Register preloads them into a global
// environment; hosts can register further natives the same way.
package std

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/values"
)

// Builtin represents a native function: a name, a fixed arity (or -1
// for variadic) and the Go callback implementing it.
type Builtin struct {
	Name     string // Name the builtin is registered under
	Arity    int    // Required argument count, -1 for variadic
	Callback func(rt values.Runtime, args []values.Value) (values.Value, error)
}

// Type returns the type of the Builtin value ("function").
func (b *Builtin) Type() values.ValueType {
	return values.FunctionType
}

// ToString returns a compact rendering of the builtin.
func (b *Builtin) ToString() string {
	return fmt.Sprintf("builtin(%s)", b.Name)
}

// Inspect returns a detailed representation of the builtin.
func (b *Builtin) Inspect() string {
	return fmt.Sprintf("<%s>", b.ToString())
}

// Call implements the Callable contract: it checks the arity and
// delegates to the callback.
func (b *Builtin) Call(rt values.Runtime, args []values.Value) (values.Value, error) {
	if b.Arity >= 0 && len(args) != b.Arity {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", b.Name, b.Arity, len(args))
	}
	return b.Callback(rt, args)
}

// Builtins lists every native function of the standard library.
var Builtins = []*Builtin{
	{Name: "print", Arity: -1, Callback: printBuiltin},
	{Name: "type", Arity: 1, Callback: typeBuiltin},
	{Name: "str", Arity: 1, Callback: strBuiltin},
	{Name: "num", Arity: 1, Callback: numBuiltin},
	{Name: "len", Arity: 1, Callback: lenBuiltin},
}

// Register binds every builtin into the given environment, typically a
// fresh global frame.
func Register(env *scope.Environment) {
	for _, builtin := range Builtins {
		env.Bind(builtin.Name, builtin)
	}
}

// Bindings returns the builtins as a name-to-value map, for use with
// scope.NewGlobal.
func Bindings() map[string]values.Value {
	out := make(map[string]values.Value, len(Builtins))
	for _, builtin := range Builtins {
		out[builtin.Name] = builtin
	}
	return out
}

// printBuiltin writes its arguments, space-separated and terminated by
// a newline, to the runtime's writer.
//
// Syntax: print(a, b, ...)
func printBuiltin(rt values.Runtime, args []values.Value) (values.Value, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.ToString())
	}
	if _, err := fmt.Fprintln(rt.Writer(), strings.Join(parts, " ")); err != nil {
		return nil, err
	}
	return values.NIL, nil
}

// typeBuiltin returns the type name of its argument as a string.
//
// Syntax: type(x)
func typeBuiltin(rt values.Runtime, args []values.Value) (values.Value, error) {
	return &values.String{Value: string(args[0].Type())}, nil
}

// strBuiltin converts any value to its string rendering.
//
// Syntax: str(x)
func strBuiltin(rt values.Runtime, args []values.Value) (values.Value, error) {
	return &values.String{Value: args[0].ToString()}, nil
}

// numBuiltin converts a string or number to a number; anything that
// does not parse yields nil.
//
// Syntax: num(x)
func numBuiltin(rt values.Runtime, args []values.Value) (values.Value, error) {
	switch arg := args[0].(type) {
	case *values.Number:
		return arg, nil
	case *values.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(arg.Value), 64)
		if err != nil {
			return values.NIL, nil
		}
		return &values.Number{Value: v}, nil
	default:
		return values.NIL, nil
	}
}

// lenBuiltin returns the length of a string or the entry count of an
// object.
//
// Syntax: len(x)
func lenBuiltin(rt values.Runtime, args []values.Value) (values.Value, error) {
	switch arg := args[0].(type) {
	case *values.String:
		return &values.Number{Value: float64(len(arg.Value))}, nil
	case *values.Object:
		return &values.Number{Value: float64(arg.Len())}, nil
	default:
		return nil, fmt.Errorf("len expects a string or an object, got %s", args[0].Type())
	}
}
