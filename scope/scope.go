/*
File    : go-trash/scope/scope.go
*/

// Package scope implements the lexical environment chain of the Trash
// evaluator.
//
// An Environment is a linked frame: a local name-to-value mapping plus
// an optional parent pointer. Frames are shared by reference, which is
// what gives closures their semantics: every closure created in a
// scope sees mutations made through any other capture of that scope.
// Frames are never copied on capture.
package scope

import "github.com/themartin/go-trash/values"

// Environment defines one frame of the lexical scope chain.
type Environment struct {
	// vars maps variable names to their current values in this frame
	vars map[string]values.Value

	// parent points to the enclosing frame, forming the scope chain;
	// nil indicates the global (root) frame
	parent *Environment
}

// NewEnvironment creates a frame with the given parent. A nil parent
// creates a global (root) frame.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]values.Value),
		parent: parent,
	}
}

// NewGlobal constructs a top-level frame preloaded with host-supplied
// globals, typically native functions.
func NewGlobal(bindings map[string]values.Value) *Environment {
	env := NewEnvironment(nil)
	for name, v := range bindings {
		env.vars[name] = v
	}
	return env
}

// Extend produces a child frame sharing this frame as its parent. Used
// on block, for-loop and function entry.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Parent returns the enclosing frame, or nil for the root frame.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// LookUp searches for a variable by name in this frame and all parent
// frames. Inner bindings shadow outer ones.
//
// Returns the bound value and true when found, or nil and false when
// the name is unresolved anywhere in the chain (the evaluator turns
// that into an UndeclaredAccess error).
func (e *Environment) LookUp(name string) (values.Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.LookUp(name)
	}
	return nil, false
}

// Assign updates an existing variable in the nearest enclosing frame
// that holds it. Unlike Bind it never creates a new binding, which is
// what lets closures mutate variables of their captured scope.
//
// Returns false when the name is not bound anywhere in the chain.
func (e *Environment) Assign(name string, v values.Value) bool {
	if _, ok := e.vars[name]; ok {
		e.vars[name] = v
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, v)
	}
	return false
}

// Bind creates a new variable binding in this frame only. Shadowing a
// parent binding is allowed; rebinding a name already present in THIS
// frame is not.
//
// Returns false when the name is already bound locally (the evaluator
// turns that into a DoubleDeclaration error).
func (e *Environment) Bind(name string, v values.Value) bool {
	if _, ok := e.vars[name]; ok {
		return false
	}
	e.vars[name] = v
	return true
}
