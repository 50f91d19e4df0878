// Package astgen regenerates expr.go and stmt.go from a small textual
// grammar description. It exists purely as a development tool: the
// checked-in AST files are not produced by running this at build time,
// but it is kept in sync with them so a future grammar change (a new
// expression or statement form) can be generated rather than hand-typed.
package astgen

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidArgumentList is returned when the arguments don't match the
// expected "<output dir>" form.
var ErrInvalidArgumentList = errors.New("invalid arguments provided")

// exprTypes and stmtTypes mirror the node types expr.go and stmt.go
// declare by hand today. The FunctionObject struct in stmt.go is not a
// node type and is not generated.
var exprTypes = []string{
	"Assign : Name Token, Value Expr, ID int",
	"Binary : Left Expr, Operator Token, Right Expr",
	"Call : Callee Expr, Paren Token, Arguments []Expr",
	"Get : Object Expr, Name Token",
	"Grouping : Expression Expr",
	"Literal : Value interface{}",
	"Logical : Left Expr, Operator Token, Right Expr",
	"Set : Object Expr, Name Token, Value Expr",
	"Super : Keyword Token, Method Token, ID int",
	"This : Keyword Token, ID int",
	"Unary : Operator Token, Right Expr",
	"Variable : Name Token, ID int",
}

var stmtTypes = []string{
	"Block : Statements []Stmt",
	"ClassStmt : Name Token, Superclass *Variable, Methods []*FunctionObject",
	"Expression : Expression Expr",
	"FunctionStmt : Function *FunctionObject",
	"IfStmt : Condition Expr, ThenBranch Stmt, ElseBranch Stmt",
	"Print : Expression Expr",
	"ReturnStmt : Keyword Token, Value Expr",
	"VarStmt : Name Token, Initializer Expr",
	"WhileStmt : Condition Expr, Body Stmt",
}

// Generate writes expr.go and stmt.go (named "<lower(baseName)>.go") into
// outputDir, one per call. args must be exactly [outputDir].
func Generate(args []string) error {
	if len(args) != 1 {
		return ErrInvalidArgumentList
	}

	outputDir := args[0]

	if err := defineAst(outputDir, "Expr", exprTypes, true); err != nil {
		return err
	}

	return defineAst(outputDir, "Stmt", stmtTypes, false)
}

func defineAst(outputDir, baseName string, astTypes []string, returnsValue bool) error {
	path := outputDir + "/" + strings.ToLower(baseName) + ".go"

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprint(w, "package lox\n\n")

	acceptSig := "Accept(visitor " + baseName + "Visitor) error"
	if returnsValue {
		acceptSig = "Accept(visitor " + baseName + "Visitor) (interface{}, error)"
	}

	fmt.Fprintf(w, "type %s interface {\n\t%s\n}\n\n", baseName, acceptSig)

	defineVisitor(w, baseName, astTypes, returnsValue)

	for _, astType := range astTypes {
		typeName := strings.TrimSpace(strings.Split(astType, ":")[0])
		fields := strings.TrimSpace(strings.Split(astType, ":")[1])
		defineType(w, baseName, typeName, fields, returnsValue)
	}

	return w.Flush()
}

func defineVisitor(w *bufio.Writer, baseName string, astTypes []string, returnsValue bool) {
	fmt.Fprintf(w, "type %sVisitor interface {\n", baseName)

	for _, astType := range astTypes {
		typeName := strings.TrimSpace(strings.Split(astType, ":")[0])
		if returnsValue {
			fmt.Fprintf(w, "\tVisit%s%s(expr *%s) (interface{}, error)\n", typeName, baseName, typeName)
		} else {
			fmt.Fprintf(w, "\tVisit%s%s(stmt *%s) error\n", typeName, baseName, typeName)
		}
	}

	fmt.Fprint(w, "}\n\n")
}

func defineType(w *bufio.Writer, baseName, typeName, fieldList string, returnsValue bool) {
	fmt.Fprintf(w, "type %s struct {\n", typeName)

	for _, field := range strings.Split(fieldList, ", ") {
		fmt.Fprintf(w, "\t%s\n", field)
	}

	fmt.Fprint(w, "}\n\n")

	recv := strings.ToLower(typeName[:1])

	if returnsValue {
		fmt.Fprintf(w, "func (%s *%s) Accept(visitor %sVisitor) (interface{}, error) {\n", recv, typeName, baseName)
		fmt.Fprintf(w, "\treturn visitor.Visit%s%s(%s)\n}\n\n", typeName, baseName, recv)
		return
	}

	fmt.Fprintf(w, "func (%s *%s) Accept(visitor %sVisitor) error {\n", recv, typeName, baseName)
	fmt.Fprintf(w, "\treturn visitor.Visit%s%s(%s)\n}\n\n", typeName, baseName, recv)
}
