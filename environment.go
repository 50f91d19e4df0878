package lox

import "github.com/dolthub/swiss"

// Environment is a single frame in the lexically-nested chain of scopes:
// a name→Value map plus an optional link to the enclosing frame. Frames
// are shared — several closures may capture and later read or write the
// same frame — so Environment is always handled through a pointer.
type Environment struct {
	// values backs the frame's variable bindings with a swiss-table hash
	// map rather than a builtin map; this is the hottest data structure in
	// the interpreter, touched on every variable read and write.
	values *swiss.Map[string, Value]

	// enclosing is this frame's parent. The global frame has none.
	enclosing *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, Value](8), enclosing: parent}
}

// Define defines a new variable in the current innermost scope. Redefining
// an existing name in the same frame (legal at the top level) just
// overwrites it.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get looks up a variable in the environment. It starts by looking into the
// innermost environment and goes up until it reaches the global scope.
func (e *Environment) Get(name Token) (Value, error) {
	if val, ok := e.values.Get(name.Lexeme); ok {
		return val, nil
	}

	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}

	return nil, NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// Assign will assign value to the variable. If the variable is not available
// in the current environment, it tries recursively in the outer
// environments until it reaches the global environment.
func (e *Environment) Assign(name Token, value Value) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}

	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}

	return NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// GetAt gets the exact environment where the variable is defined in the
// chain, by distance, and returns the value. distance 0 is the current
// frame.
func (e *Environment) GetAt(distance int, name string) Value {
	val, _ := e.ancestor(distance).values.Get(name)
	return val
}

// AssignAt walks a fixed number of steps and stuffs the variable into that
// frame's map directly, with no further search.
func (e *Environment) AssignAt(distance int, name Token, value Value) {
	e.ancestor(distance).values.Put(name.Lexeme, value)
}

// ancestor walks a fixed number of hops up the parent chain and returns the
// environment there.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}

	return env
}
