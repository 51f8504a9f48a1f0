package lib

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ExpectedShape is the only form the expression builder accepts.
const ExpectedShape = "'(' number operator number ')'"

type ErrorKind int

const (
	MissingOpenParen ErrorKind = iota
	MissingLeftOperand
	InvalidOperator
	MissingRightOperand
	MissingCloseParen
	NumberOverflow
	InvalidNumber
)

var errorKindNames = map[ErrorKind]string{
	MissingOpenParen:    "MissingOpenParen",
	MissingLeftOperand:  "MissingLeftOperand",
	InvalidOperator:     "InvalidOperator",
	MissingRightOperand: "MissingRightOperand",
	MissingCloseParen:   "MissingCloseParen",
	NumberOverflow:      "NumberOverflow",
	InvalidNumber:       "InvalidNumber",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError is returned when the tokens do not form ExpectedShape.
type SyntaxError struct {
	Kind     ErrorKind
	Message  string
	Token    Token
	Location CharLocation

	// Skipped is the closest unrecognized character dropped before Token,
	// if there was one. Its Kind is TokenBad.
	Skipped *Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Location, e.Message)
}

func newSyntaxError(kind ErrorKind, tok Token, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Token:    tok,
		Location: tok.Location,
	}
}

// numberError classifies the parse failure carried by a number token.
func numberError(tok Token) *SyntaxError {
	if errors.Is(tok.Err, strconv.ErrRange) {
		return newSyntaxError(NumberOverflow, tok, "number %s does not fit in a 64-bit signed integer", tok.Text)
	}
	return newSyntaxError(InvalidNumber, tok, "%s is not a valid decimal integer", tok.Text)
}

// AsSyntaxError finds a *SyntaxError in err's chain.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr, true
	}
	return nil, false
}
