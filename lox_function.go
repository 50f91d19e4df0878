package lox

// Function is a runtime closure: a FunctionObject (the shared syntactic
// function) paired with the environment frame that was active where it was
// declared. A bound method is a fresh Function whose closure is a new
// frame (parent = the original closure) that defines `this`.
type Function struct {
	declaration   *FunctionObject
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *FunctionObject, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Call executes the function body with the given arguments. Parameters
// belong exclusively to the call: each invocation gets its own fresh
// environment, parented on the closure, not on whatever frame happens to be
// current at the call site.
func (lf *Function) Call(interpreter *Interpreter, arguments []Value) (Value, error) {
	env := NewEnvironment(lf.closure)
	for i, param := range lf.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := interpreter.executeBlock(lf.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			// An initializer always yields the receiver, even if `return;`
			// (with no value) is used to bail out early.
			if lf.isInitializer {
				return lf.closure.GetAt(0, "this"), nil
			}

			return ret.Value, nil
		}

		return nil, err
	}

	if lf.isInitializer {
		return lf.closure.GetAt(0, "this"), nil
	}

	return nil, nil
}

func (lf *Function) Arity() int {
	return len(lf.declaration.Params)
}

func (lf *Function) String() string {
	return "<fn " + lf.declaration.Name.Lexeme + ">"
}

// Bind returns a new Function sharing this one's FunctionObject and
// is_initializer flag, whose closure is a fresh frame (parent = this
// function's closure) defining `this` → instance. This keeps `this` at
// scope distance 0 inside every method body.
func (lf *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(lf.closure)
	env.Define("this", instance)
	return NewFunction(lf.declaration, env, lf.isInitializer)
}
