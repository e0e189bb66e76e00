/*
File    : go-trash/values/object.go
*/
package values

import "fmt"

// objectKey reduces a Value to a comparable map key. Primitive values
// compare by tag and payload; objects and functions compare by
// reference identity, carried in the ref field.
type objectKey struct {
	kind ValueType
	num  float64
	str  string
	ref  any
}

// keyOf derives the map key for a value.
func keyOf(v Value) objectKey {
	switch val := v.(type) {
	case *Nil:
		return objectKey{kind: NilType}
	case *Boolean:
		return objectKey{kind: BooleanType, str: val.ToString()}
	case *Number:
		return objectKey{kind: NumberType, num: val.Value}
	case *String:
		return objectKey{kind: StringType, str: val.Value}
	default:
		return objectKey{kind: v.Type(), ref: v}
	}
}

// Object is the built-in Indexable: a mapping from full Values to
// Values. Missing keys read as nil. Iteration order is not exposed.
type Object struct {
	entries map[objectKey]Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{entries: make(map[objectKey]Value)}
}

// Type returns the type of the Object value
func (o *Object) Type() ValueType { return ObjectType }

// ToString returns a placeholder rendering; objects do not expose
// their contents positionally
func (o *Object) ToString() string { return "<object>" }

// Inspect returns a detailed representation including the entry count
func (o *Object) Inspect() string { return fmt.Sprintf("<object(%d entries)>", len(o.entries)) }

// Get returns the value bound to key, or nil for a missing key.
func (o *Object) Get(key Value) Value {
	if v, ok := o.entries[keyOf(key)]; ok {
		return v
	}
	return NIL
}

// Set binds key to v, replacing any previous binding.
func (o *Object) Set(key Value, v Value) {
	o.entries[keyOf(key)] = v
}

// Len returns the number of entries in the object.
func (o *Object) Len() int {
	return len(o.entries)
}
