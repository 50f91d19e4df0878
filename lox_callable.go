package lox

// Callable is implemented by any Lox value that can be called like a
// function: user-defined functions/methods, classes (construction), and
// natives.
type Callable interface {
	// Call evaluates the call. The interpreter is passed along in case the
	// implementation needs it (e.g. a user function executing its body).
	Call(interpreter *Interpreter, arguments []Value) (Value, error)

	// Arity is the number of arguments this callable expects.
	Arity() int
}
