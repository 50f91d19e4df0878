package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAstPrinterParenthesizesNestedExpressions(t *testing.T) {
	expr := &Binary{
		Left: &Unary{
			Operator: NewToken(Minus, "-", nil, 1),
			Right:    &Literal{Value: 123.0},
		},
		Operator: NewToken(Star, "*", nil, 1),
		Right: &Grouping{
			Expression: &Literal{Value: 45.67},
		},
	}

	printer := &AstPrinter{}
	assert.Equal(t, "(* (- 123) (group 45.67))", printer.Print(expr))
}

func TestAstPrinterLiteralNil(t *testing.T) {
	printer := &AstPrinter{}
	assert.Equal(t, "nil", printer.Print(&Literal{Value: nil}))
}
