package lox

import (
	"github.com/pinebranch/lox/internal/stack"
)

type FunctionType int

type ClassType int

const (
	FunctionTypeNone FunctionType = iota
	FunctionTypeFunction
	FunctionTypeMethod
	FunctionTypeInitializer
)

const (
	ClassTypeNone ClassType = iota
	ClassTypeClass
	ClassTypeSubclass
)

// Resolver is a static pass over the AST that runs between parsing and
// interpretation. For every Variable, Assign, This and Super node it
// computes how many enclosing block scopes separate the use from the
// scope that declares the name, and records that distance under the
// node's id in the interpreter's locals table. Names never found locally
// are left unresolved and treated as global at runtime.
type Resolver struct {
	interpreter *Interpreter

	// scopes is the stack of block scopes currently open. Each scope maps a
	// name to whether its initializer has finished resolving. Top-level
	// (global) declarations are never pushed here: Lox globals are late
	// bound and resolved directly by the interpreter's global environment.
	scopes *stack.Stack[map[string]bool]

	currentFunction FunctionType
	currentClass    ClassType

	reporter *Reporter
}

func NewResolver(i *Interpreter, reporter *Reporter) *Resolver {
	return &Resolver{
		interpreter:     i,
		scopes:          stack.New[map[string]bool](),
		reporter:        reporter,
		currentFunction: FunctionTypeNone,
		currentClass:    ClassTypeNone,
	}
}

func (r *Resolver) Resolve(statements []Stmt) error {
	return r.resolveStatements(statements)
}

// VisitAssignExpr resolves the assigned value first (it may itself
// reference other variables), then resolves the assignment target.
func (r *Resolver) VisitAssignExpr(expr *Assign) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Value); err != nil {
		return nil, err
	}

	r.resolveLocal(expr.ID, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	// Static analysis does no control flow or short-circuiting, so a
	// logical expression resolves exactly like any other binary operator.
	if _, err := r.resolveExpr(expr.Left); err != nil {
		return nil, err
	}

	return r.resolveExpr(expr.Right)
}

func (r *Resolver) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Left); err != nil {
		return nil, err
	}

	return r.resolveExpr(expr.Right)
}

func (r *Resolver) VisitCallExpr(expr *Call) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Callee); err != nil {
		return nil, err
	}

	for _, argument := range expr.Arguments {
		if _, err := r.resolveExpr(argument); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return r.resolveExpr(expr.Expression)
}

// VisitLiteralExpr does nothing: a literal mentions no variables and
// contains no subexpressions.
func (r *Resolver) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	return r.resolveExpr(expr.Right)
}

// VisitVariableExpr resolves a name reference. If the variable exists in
// the current scope but is still marked unready, the user is reading a
// local variable from inside its own initializer — a reported error.
func (r *Resolver) VisitVariableExpr(expr *Variable) (interface{}, error) {
	if !r.scopes.IsEmpty() {
		if scope, err := r.scopes.Peek(); err == nil {
			if val, ok := scope[expr.Name.Lexeme]; ok && !val {
				r.reporter.TokenError(expr.Name, "Can't read local variable in its own initializer.")
			}
		}
	}

	r.resolveLocal(expr.ID, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitClassStmt(stmt *ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = ClassTypeClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil && stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
		r.reporter.TokenError(stmt.Superclass.Name, "A class can't inherit from itself.")
	}

	if stmt.Superclass != nil {
		r.currentClass = ClassTypeSubclass
		if _, err := r.resolveExpr(stmt.Superclass); err != nil {
			return err
		}

		r.beginScope()
		scope, err := r.scopes.Peek()
		if err != nil {
			return err
		}
		scope["super"] = true
	}

	// "this" resolves exactly like any other local variable: push a scope,
	// define "this" in it, resolve every method body, then discard it.
	r.beginScope()

	scope, err := r.scopes.Peek()
	if err != nil {
		return err
	}
	scope["this"] = true

	for _, method := range stmt.Methods {
		declaration := FunctionTypeMethod
		if method.Name.Lexeme == "init" {
			declaration = FunctionTypeInitializer
		}

		if err := r.resolveFunction(method, declaration); err != nil {
			return err
		}
	}

	r.endScope()

	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) VisitThisExpr(expr *This) (interface{}, error) {
	if r.currentClass == ClassTypeNone {
		r.reporter.TokenError(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}

	r.resolveLocal(expr.ID, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *Super) (interface{}, error) {
	if r.currentClass == ClassTypeNone {
		r.reporter.TokenError(expr.Keyword, "Can't use 'super' outside of a class.")
	} else if r.currentClass != ClassTypeSubclass {
		r.reporter.TokenError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}

	r.resolveLocal(expr.ID, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *Get) (interface{}, error) {
	return r.resolveExpr(expr.Object)
}

func (r *Resolver) VisitSetExpr(expr *Set) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Value); err != nil {
		return nil, err
	}

	return r.resolveExpr(expr.Object)
}

// VisitBlockStmt introduces a new lexical scope, resolves the statements
// inside it, then discards the scope.
func (r *Resolver) VisitBlockStmt(stmt *Block) error {
	r.beginScope()
	err := r.resolveStatements(stmt.Statements)
	r.endScope()
	return err
}

func (r *Resolver) VisitExpressionStmt(stmt *Expression) error {
	_, err := r.resolveExpr(stmt.Expression)
	return err
}

func (r *Resolver) VisitPrintStmt(stmt *Print) error {
	_, err := r.resolveExpr(stmt.Expression)
	return err
}

// VisitVarStmt resolves a variable declaration. The name is declared
// (added to scope as not-yet-ready) before its initializer is resolved, so
// `var a = a;` is caught, then defined once the initializer is done.
func (r *Resolver) VisitVarStmt(stmt *VarStmt) error {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		if _, err := r.resolveExpr(stmt.Initializer); err != nil {
			return err
		}
	}

	r.define(stmt.Name)
	return nil
}

// VisitIfStmt resolves the condition and both branches unconditionally;
// static analysis has no control flow.
func (r *Resolver) VisitIfStmt(stmt *IfStmt) error {
	if _, err := r.resolveExpr(stmt.Condition); err != nil {
		return err
	}

	if err := r.resolveStmt(stmt.ThenBranch); err != nil {
		return err
	}

	if stmt.ElseBranch != nil {
		return r.resolveStmt(stmt.ElseBranch)
	}

	return nil
}

// VisitWhileStmt resolves the condition and the body exactly once.
func (r *Resolver) VisitWhileStmt(stmt *WhileStmt) error {
	if _, err := r.resolveExpr(stmt.Condition); err != nil {
		return err
	}

	return r.resolveStmt(stmt.Body)
}

// VisitFunctionStmt binds the function's name eagerly, before resolving
// its body, so the function can recursively refer to itself.
func (r *Resolver) VisitFunctionStmt(stmt *FunctionStmt) error {
	r.declare(stmt.Function.Name)
	r.define(stmt.Function.Name)

	return r.resolveFunction(stmt.Function, FunctionTypeFunction)
}

func (r *Resolver) VisitReturnStmt(stmt *ReturnStmt) error {
	if r.currentFunction == FunctionTypeNone {
		r.reporter.TokenError(stmt.Keyword, "Can't return from top-level code.")
	}

	if stmt.Value != nil {
		if r.currentFunction == FunctionTypeInitializer {
			r.reporter.TokenError(stmt.Keyword, "Can't return a value from an initializer.")
			return nil
		}

		_, err := r.resolveExpr(stmt.Value)
		return err
	}

	return nil
}

func (r *Resolver) resolveStatements(statements []Stmt) error {
	for _, stmt := range statements {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) resolveStmt(statement Stmt) error {
	return statement.Accept(r)
}

func (r *Resolver) resolveExpr(expr Expr) (interface{}, error) {
	return expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes.Push(make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes.Pop()
}

// declare adds a name to the innermost scope, marked not-yet-ready.
// Redeclaring a name already present in the same local scope is an error;
// shadowing an outer scope is fine.
func (r *Resolver) declare(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	scope, _ := r.scopes.Peek()

	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.TokenError(name, "Already a variable with this name in this scope.")
	}

	scope[name.Lexeme] = false
}

// define marks a previously declared name as ready for use.
func (r *Resolver) define(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	scope, _ := r.scopes.Peek()
	scope[name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost to outermost looking
// for name. If found at stack index i, the distance recorded is the
// number of scopes between the current innermost scope and i. A name
// never found in any local scope is left unresolved, so the interpreter
// falls back to looking it up in the global environment.
func (r *Resolver) resolveLocal(id int, name Token) {
	for i := r.scopes.Size() - 1; i >= 0; i-- {
		scope, err := r.scopes.Get(i)
		if err != nil {
			continue
		}

		if _, ok := scope[name.Lexeme]; ok {
			r.interpreter.resolve(id, r.scopes.Size()-1-i)
			return
		}
	}
}

// resolveFunction resolves a function's body in its own scope, with its
// parameters bound as locals. Unlike the interpreter, which doesn't touch
// a function's body until it's called, the resolver walks into it
// immediately.
func (r *Resolver) resolveFunction(function *FunctionObject, funcType FunctionType) error {
	enclosingFunction := r.currentFunction
	r.currentFunction = funcType

	r.beginScope()
	for _, param := range function.Params {
		r.declare(param)
		r.define(param)
	}

	err := r.resolveStatements(function.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
	return err
}
