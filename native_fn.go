package lox

import "time"

// NativeFunction wraps a Go function as a Lox Callable. clock() is the only
// one the language ships. It is always handed around as a pointer so Value
// equality (`==`) treats two distinct natives as distinct, even though
// there is today only ever one instance of each.
type NativeFunction struct {
	name  string
	arity int
	fn    func(interpreter *Interpreter, arguments []Value) (Value, error)
}

func (n *NativeFunction) Call(interpreter *Interpreter, arguments []Value) (Value, error) {
	return n.fn(interpreter, arguments)
}

func (n *NativeFunction) Arity() int {
	return n.arity
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// clockNative returns seconds since the Unix epoch, arity 0.
func clockNative() *NativeFunction {
	return &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(interpreter *Interpreter, arguments []Value) (Value, error) {
			return float64(time.Now().Unix()), nil
		},
	}
}
