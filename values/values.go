/*
File    : go-trash/values/values.go
*/

// Package values defines the runtime data model of the Trash language:
// the Value interface with its concrete types (nil, booleans, numbers,
// strings, functions, objects), the Callable and Indexable capability
// contracts through which hosts plug in native functions and custom
// typed objects, and the shared truthiness and equality rules.
package values

import (
	"io"
	"strconv"
)

// ValueType identifies the kind of a Trash value as a string constant,
// enabling type checking and readable error messages.
type ValueType string

const (
	// NilType represents the absence of a value
	NilType ValueType = "nil"
	// BooleanType represents boolean (true/false) values
	BooleanType ValueType = "bool"
	// NumberType represents IEEE-754 double values
	NumberType ValueType = "number"
	// StringType represents string values
	StringType ValueType = "string"
	// FunctionType represents callable values (closures and natives)
	FunctionType ValueType = "function"
	// ObjectType represents indexable key/value objects
	ObjectType ValueType = "object"
)

// Value is the core interface every Trash runtime value implements.
type Value interface {
	// Type returns the ValueType of the value, used for type checking
	Type() ValueType
	// ToString returns the human-readable rendering of the value
	ToString() string
	// Inspect returns a detailed rendering including type information,
	// useful for debugging
	Inspect() string
}

// Runtime is the contract the evaluator presents to callables: the
// output sink for side-effecting natives. Hosts never implement it;
// the evaluator does.
type Runtime interface {
	Writer() io.Writer
}

// Callable is the capability contract of function-like values. User
// native functions implement it; the evaluator invokes it for every
// call expression.
type Callable interface {
	Value
	Call(rt Runtime, args []Value) (Value, error)
}

// Indexable is the capability contract of object-like values. Get on a
// missing key returns Nil.
type Indexable interface {
	Value
	Get(key Value) Value
	Set(key Value, v Value)
}

// Nil represents the absence of a value.
type Nil struct{}

// Type returns the type of the Nil value
func (n *Nil) Type() ValueType { return NilType }

// ToString returns "nil"
func (n *Nil) ToString() string { return "nil" }

// Inspect returns a detailed representation of nil
func (n *Nil) Inspect() string { return "<nil>" }

// NIL is the shared nil value; all nils are interchangeable.
var NIL = &Nil{}

// Boolean represents a true/false value.
type Boolean struct {
	Value bool // The underlying boolean value
}

// Type returns the type of the Boolean value
func (b *Boolean) Type() ValueType { return BooleanType }

// ToString returns "true" or "false"
func (b *Boolean) ToString() string { return strconv.FormatBool(b.Value) }

// Inspect returns a detailed representation (e.g. "<bool(true)>")
func (b *Boolean) Inspect() string { return "<bool(" + b.ToString() + ")>" }

// Number represents an IEEE-754 double value.
type Number struct {
	Value float64 // The underlying floating-point value
}

// Type returns the type of the Number value
func (n *Number) Type() ValueType { return NumberType }

// ToString returns the shortest decimal rendering of the number
// (e.g. "3", "1.5", "-0")
func (n *Number) ToString() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Inspect returns a detailed representation (e.g. "<number(3)>")
func (n *Number) Inspect() string { return "<number(" + n.ToString() + ")>" }

// String represents a string value.
type String struct {
	Value string // The underlying string value
}

// Type returns the type of the String value
func (s *String) Type() ValueType { return StringType }

// ToString returns the string contents verbatim
func (s *String) ToString() string { return s.Value }

// Inspect returns the quoted string (e.g. `<string("abc")>`)
func (s *String) Inspect() string { return "<string(" + strconv.Quote(s.Value) + ")>" }

// Truthy returns the boolean coercion of a value: false, nil and 0 are
// falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case *Nil:
		return false
	case *Boolean:
		return val.Value
	case *Number:
		return val.Value != 0
	default:
		return true
	}
}

// Equals implements structural value equality: same type tag and same
// payload. Functions and objects compare by identity.
func Equals(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case *Nil:
		return true
	case *Boolean:
		return av.Value == b.(*Boolean).Value
	case *Number:
		return av.Value == b.(*Number).Value
	case *String:
		return av.Value == b.(*String).Value
	default:
		// Functions and objects: identity equality.
		return a == b
	}
}
