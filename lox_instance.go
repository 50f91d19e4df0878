package lox

import "github.com/dolthub/swiss"

// Instance is a runtime class instance: a reference to its class and a
// mutable field table. Field writes and reads operate on this table
// directly; method access falls through to the class for lookup and
// returns a freshly bound method.
type Instance struct {
	klass  *Class
	fields *swiss.Map[string, Value]
}

func NewInstance(klass *Class) *Instance {
	return &Instance{klass: klass, fields: swiss.NewMap[string, Value](4)}
}

func (li *Instance) String() string {
	return li.klass.Name + " instance"
}

// Get reads a field first, then a method (bound to this instance).
func (li *Instance) Get(name Token) (Value, error) {
	if val, ok := li.fields.Get(name.Lexeme); ok {
		return val, nil
	}

	if method, ok := li.klass.findMethod(name.Lexeme); ok {
		return method.Bind(li), nil
	}

	return nil, NewRuntimeError(name, "Undefined property '"+name.Lexeme+"'.")
}

func (li *Instance) Set(name Token, value Value) {
	li.fields.Put(name.Lexeme, value)
}
