package lib

import (
	"fmt"
	"strconv"
)

type Operator int

const (
	OperatorPlus Operator = iota
	OperatorMinus
	OperatorStar
	OperatorSlash
)

func (o Operator) String() string {
	switch o {
	case OperatorPlus:
		return "+"
	case OperatorMinus:
		return "-"
	case OperatorStar:
		return "*"
	case OperatorSlash:
		return "/"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// operatorFromText maps the text of a token to an operator.
func operatorFromText(text string) (Operator, bool) {
	switch text {
	case "+":
		return OperatorPlus, true
	case "-":
		return OperatorMinus, true
	case "*":
		return OperatorStar, true
	case "/":
		return OperatorSlash, true
	}
	return 0, false
}

// Operand is either a NumberLiteral or a nested *Expression. The current
// grammar only ever produces NumberLiteral.
type Operand interface {
	isOperand()
	String() string
}

func (n NumberLiteral) isOperand() {}
func (e *Expression) isOperand()   {}

type NumberLiteral struct {
	Value int64
}

func (n NumberLiteral) String() string {
	return strconv.FormatInt(n.Value, 10)
}

// Expression is a binary operation.
type Expression struct {
	Left     Operand
	Operator Operator
	Right    Operand

	// Location of the opening parenthesis.
	Location CharLocation
}

func (e *Expression) String() string {
	return fmt.Sprintf("(%s %s %s)", operandString(e.Left), e.Operator, operandString(e.Right))
}

func operandString(o Operand) string {
	if o == nil {
		return "<nil>"
	}
	return o.String()
}
