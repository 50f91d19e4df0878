package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) ([]Stmt, *Reporter) {
	t.Helper()

	reporter := &Reporter{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, reporter)
	return parser.Parse(), reporter
}

func TestParserPrecedence(t *testing.T) {
	statements, reporter := parseSource(t, "1 + 2 * 3;")
	require.False(t, reporter.HadError)
	require.Len(t, statements, 1)

	exprStmt, ok := statements[0].(*Expression)
	require.True(t, ok)

	binary, ok := exprStmt.Expression.(*Binary)
	require.True(t, ok)
	assert.Equal(t, Plus, binary.Operator.Type)

	right, ok := binary.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, Star, right.Operator.Type)
}

func TestParserForDesugarsToWhile(t *testing.T) {
	statements, reporter := parseSource(t, `
		for (var i = 0; i < 3; i = i + 1) print i;
	`)
	require.False(t, reporter.HadError)
	require.Len(t, statements, 1)

	outer, ok := statements[0].(*Block)
	require.True(t, ok)
	require.Len(t, outer.Statements, 2)

	_, ok = outer.Statements[0].(*VarStmt)
	assert.True(t, ok)

	whileStmt, ok := outer.Statements[1].(*WhileStmt)
	require.True(t, ok)

	body, ok := whileStmt.Body.(*Block)
	require.True(t, ok)
	require.Len(t, body.Statements, 2)

	_, ok = body.Statements[0].(*Print)
	assert.True(t, ok)
	_, ok = body.Statements[1].(*Expression)
	assert.True(t, ok)
}

func TestParserInvalidAssignmentTargetIsReportedNotFatal(t *testing.T) {
	statements, reporter := parseSource(t, `1 + 2 = 3;`)
	assert.True(t, reporter.HadError)
	// Parsing continues and still yields a statement built from the
	// left-hand side, rather than aborting the whole parse.
	require.Len(t, statements, 1)
}

func TestParserTooManyArgumentsIsReportedNotFatal(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 256; i++ {
		buf.WriteString("1,")
	}
	source := "f(" + buf.String()[:buf.Len()-1] + ");"

	_, reporter := parseSource(t, source)
	assert.True(t, reporter.HadError)
}

func TestParserClassWithSuperclass(t *testing.T) {
	statements, reporter := parseSource(t, `
		class A {}
		class B < A {
			method() {}
		}
	`)
	require.False(t, reporter.HadError)
	require.Len(t, statements, 2)

	classB, ok := statements[1].(*ClassStmt)
	require.True(t, ok)
	require.NotNil(t, classB.Superclass)
	assert.Equal(t, "A", classB.Superclass.Name.Lexeme)
	require.Len(t, classB.Methods, 1)
	assert.Equal(t, "method", classB.Methods[0].Name.Lexeme)
}

func TestParserSynchronizeRecoversAfterError(t *testing.T) {
	statements, reporter := parseSource(t, `
		var = 1;
		var a = 2;
	`)
	assert.True(t, reporter.HadError)
	// The first declaration is unparseable ("var" with no name), but the
	// parser should recover and still pick up the second one.
	require.Len(t, statements, 1)

	varStmt, ok := statements[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "a", varStmt.Name.Lexeme)
}
