package lox

import "fmt"

// Interpreter walks the AST produced by the parser (and annotated by the
// resolver) and evaluates it directly, with no intermediate bytecode.
type Interpreter struct {
	reporter *Reporter

	// globals is the outermost environment. Native functions like clock()
	// live here, and every name the resolver found in no local scope is
	// looked up here.
	globals *Environment

	// environment is the currently active frame; it moves as blocks,
	// function calls and loops push and pop scopes.
	environment *Environment

	// locals maps a resolved node's stamped id to the scope distance the
	// resolver computed for it. Nodes absent from this map are treated as
	// global lookups.
	locals map[int]int
}

func NewInterpreter(reporter *Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockNative())

	return &Interpreter{
		reporter:    reporter,
		globals:     globals,
		environment: globals,
		locals:      make(map[int]int),
	}
}

// Interpret runs a program top to bottom. A runtime error aborts execution
// of the remaining statements and is reported through the Reporter rather
// than returned, matching how the REPL and file runner both want to keep
// going (or exit with the right status) without propagating a Go error up
// through cmd/lox.
func (i *Interpreter) Interpret(statements []Stmt) {
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			if runtimeErr, ok := err.(*RuntimeError); ok {
				i.reporter.RuntimeError(runtimeErr)
				return
			}

			i.reporter.RuntimeError(NewRuntimeError(Token{}, err.Error()))
			return
		}
	}
}

// resolve records the scope distance the resolver computed for the node
// with the given stamped id.
func (i *Interpreter) resolve(id int, depth int) {
	i.locals[id] = depth
}

func (i *Interpreter) execute(stmt Stmt) error {
	return stmt.Accept(i)
}

func (i *Interpreter) VisitBlockStmt(stmt *Block) error {
	return i.executeBlock(stmt.Statements, NewEnvironment(i.environment))
}

func (i *Interpreter) executeBlock(statements []Stmt, env *Environment) error {
	previousEnv := i.environment
	i.environment = env

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			i.environment = previousEnv
			return err
		}
	}

	i.environment = previousEnv
	return nil
}

// VisitClassStmt evaluates a class declaration. The superclass expression
// (if any) is evaluated first; the class's name is then declared as nil
// before the methods are built, so that a method body can refer to its own
// class, and assigned the class value at the end. The superclass (if any) is
// bound in its own environment frame so `super` resolves at a fixed
// distance regardless of how many methods the class declares.
func (i *Interpreter) VisitClassStmt(stmt *ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		val, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}

		sc, ok := val.(*Class)
		if !ok {
			return NewRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.environment.Define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		i.environment = NewEnvironment(i.environment)
		i.environment.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, method := range stmt.Methods {
		fn := NewFunction(method, i.environment, method.Name.Lexeme == "init")
		methods[method.Name.Lexeme] = fn
	}

	class := NewClass(stmt.Name.Lexeme, superclass, methods)

	if stmt.Superclass != nil {
		i.environment = i.environment.enclosing
	}

	return i.environment.Assign(stmt.Name, class)
}

// VisitVarStmt interprets a variable declaration. An uninitialized
// variable (`var a;`) is bound to nil rather than left undefined.
func (i *Interpreter) VisitVarStmt(stmt *VarStmt) error {
	var val Value
	if stmt.Initializer != nil {
		v, err := i.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
		val = v
	}

	i.environment.Define(stmt.Name.Lexeme, val)
	return nil
}

func (i *Interpreter) VisitVariableExpr(expr *Variable) (interface{}, error) {
	return i.lookUpVariable(expr.Name, expr.ID)
}

// lookUpVariable consults the resolver's distance table by node id; a miss
// means the name was never resolved to a local, so it is looked up in the
// global environment instead.
func (i *Interpreter) lookUpVariable(name Token, id int) (Value, error) {
	if distance, ok := i.locals[id]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}

	return i.globals.Get(name)
}

// VisitAssignExpr evaluates the right-hand side and stores it in the
// already-declared variable, using the resolver's distance when the name
// was resolved locally and falling back to the global environment
// otherwise. Returns the assigned value, since assignment is itself an
// expression.
func (i *Interpreter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[expr.ID]; ok {
		i.environment.AssignAt(distance, expr.Name, val)
	} else if err := i.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}

	return val, nil
}

// VisitExpressionStmt interprets an expression statement, discarding the
// produced value since statements don't themselves produce one.
func (i *Interpreter) VisitExpressionStmt(stmt *Expression) error {
	_, err := i.evaluate(stmt.Expression)
	return err
}

func (i *Interpreter) VisitIfStmt(stmt *IfStmt) error {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if truthy(condition) {
		return i.execute(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}

	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *WhileStmt) error {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !truthy(condition) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitPrintStmt(stmt *Print) error {
	val, err := i.evaluate(stmt.Expression)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.reporter.Stdout, stringify(val))
	return nil
}

// VisitFunctionStmt declares a function in the current environment,
// capturing that environment as the closure so the function can later
// read and write variables that were in scope at its declaration site.
func (i *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) error {
	fn := NewFunction(stmt.Function, i.environment, false)
	i.environment.Define(stmt.Function.Name.Lexeme, fn)
	return nil
}

// VisitReturnStmt signals a return by producing a returnSignal error,
// caught exactly once, at the enclosing Function.Call.
func (i *Interpreter) VisitReturnStmt(stmt *ReturnStmt) error {
	var val Value
	if stmt.Value != nil {
		v, err := i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
		val = v
	}

	return newReturnSignal(val)
}

func (i *Interpreter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	// Short-circuit without evaluating the right operand: `or` returns as
	// soon as it finds a truthy value, `and` as soon as it finds a falsy
	// one.
	if expr.Operator.Type == Or {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}

	return i.evaluate(expr.Right)
}

func (i *Interpreter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Greater:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) > right.(float64), nil
	case GreaterEqual:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) >= right.(float64), nil
	case Less:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) < right.(float64), nil
	case LessEqual:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) <= right.(float64), nil
	case BangEqual:
		return !valuesEqual(left, right), nil
	case EqualEqual:
		return valuesEqual(left, right), nil
	case Minus:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) - right.(float64), nil
	case Plus:
		// `+` overloads string concatenation and numeric addition; mixed
		// operands are a runtime error rather than an implicit conversion.
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}

		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}

		return nil, NewRuntimeError(expr.Operator, "Operands must be two numbers or two strings.")
	case Slash:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) / right.(float64), nil
	case Star:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) * right.(float64), nil
	}

	// unreachable
	return nil, nil
}

// VisitCallExpr evaluates the callee and arguments, then invokes the
// callee if it implements Callable with a matching arity.
func (i *Interpreter) VisitCallExpr(expr *Call) (interface{}, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, val)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, NewRuntimeError(expr.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, NewRuntimeError(expr.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments)))
	}

	return callable.Call(i, arguments)
}

// VisitGetExpr reads a property off an instance. Only instances have
// fields or methods; reading a property off anything else is a runtime
// error.
func (i *Interpreter) VisitGetExpr(expr *Get) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	if instance, ok := object.(*Instance); ok {
		return instance.Get(expr.Name)
	}

	return nil, NewRuntimeError(expr.Name, "Only instances have properties.")
}

// VisitSetExpr evaluates the object, then the value, then writes the
// field. The object is evaluated first so `a().b = c` still only calls
// `a()` once even if setting the field fails.
func (i *Interpreter) VisitSetExpr(expr *Set) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*Instance)
	if !ok {
		return nil, NewRuntimeError(expr.Name, "Only instances have fields.")
	}

	val, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(expr.Name, val)
	return val, nil
}

// VisitSuperExpr resolves `super.method` against the superclass recorded
// at the scope distance the resolver computed for `super`, then binds the
// method to `this` — which always sits exactly one scope closer than
// `super` (see Bind/VisitClassStmt for how the two frames are related).
func (i *Interpreter) VisitSuperExpr(expr *Super) (interface{}, error) {
	distance, ok := i.locals[expr.ID]
	if !ok {
		return nil, NewRuntimeError(expr.Keyword, "Can't use 'super' outside of a class.")
	}

	superclass := i.environment.GetAt(distance, "super").(*Class)
	object := i.environment.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.findMethod(expr.Method.Lexeme)
	if !ok {
		return nil, NewRuntimeError(expr.Method, "Undefined property '"+expr.Method.Lexeme+"'.")
	}

	return method.Bind(object), nil
}

func (i *Interpreter) VisitThisExpr(expr *This) (interface{}, error) {
	return i.lookUpVariable(expr.Keyword, expr.ID)
}

func (i *Interpreter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return i.evaluate(expr.Expression)
}

func (i *Interpreter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return expr.Value, nil
}

func (i *Interpreter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Bang:
		return !truthy(right), nil
	case Minus:
		if err := i.checkNumberOperand(expr.Operator, right); err != nil {
			return nil, err
		}
		return -right.(float64), nil
	}

	// unreachable
	return nil, nil
}

func (i *Interpreter) evaluate(expr Expr) (Value, error) {
	return expr.Accept(i)
}

func (i *Interpreter) checkNumberOperand(operator Token, operand Value) error {
	if _, ok := operand.(float64); ok {
		return nil
	}

	return NewRuntimeError(operator, "Operand must be a number.")
}

func (i *Interpreter) checkNumberOperands(operator Token, left, right Value) error {
	_, lok := left.(float64)
	_, rok := right.(float64)
	if lok && rok {
		return nil
	}

	return NewRuntimeError(operator, "Operands must be numbers.")
}
