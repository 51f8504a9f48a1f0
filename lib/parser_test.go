package lib

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func tokenKinds(tokens []Token) []TokenKind {
	kinds := []TokenKind{}
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func requireSyntaxError(t *testing.T, err error, kind ErrorKind, line int, col int) *SyntaxError {
	require.Error(t, err)
	syntaxErr, ok := AsSyntaxError(err)
	require.True(t, ok, "expected a *SyntaxError, got %T", err)
	require.Equal(t, kind, syntaxErr.Kind, syntaxErr.Error())
	require.Equal(t, line, syntaxErr.Location.Line, "error line")
	require.Equal(t, col, syntaxErr.Location.Col, "error col")
	return syntaxErr
}

func TestParserWhitespaceOnly(t *testing.T) {
	for _, src := range []string{"", " ", "\n\t  \r\n"} {
		p := NewParser(src)
		p.Parse()
		require.Empty(t, p.Tokens(), "%q", src)
	}
}

func TestParserKeepsParens(t *testing.T) {
	p := NewParser("(1+2)")
	p.Parse()
	require.Equal(t,
		[]TokenKind{TokenOpenParen, TokenNumber, TokenPlus, TokenNumber, TokenCloseParen},
		tokenKinds(p.Tokens()))
}

func TestParserDropsBadTokens(t *testing.T) {
	p := NewParser("(9 % 3)")
	p.Parse()
	require.Equal(t,
		[]TokenKind{TokenOpenParen, TokenNumber, TokenNumber, TokenCloseParen},
		tokenKinds(p.Tokens()))

	skipped := p.Skipped()
	require.Len(t, skipped, 1)
	require.Equal(t, '%', skipped[0].Raw)
	require.Equal(t, 3, skipped[0].Location.Offset)
}

func TestParserParseTwice(t *testing.T) {
	p := NewParser("( 4 - 5 )")
	p.Parse()
	first := p.Tokens()
	p.Parse()
	require.Equal(t, first, p.Tokens())
}

func TestParserPeek(t *testing.T) {
	p := NewParser("(1+2)")
	p.Parse()
	require.Equal(t, TokenOpenParen, p.Current().Kind)
	require.Equal(t, "+", p.Peek(2).Text)
	require.Equal(t, TokenCloseParen, p.Peek(4).Kind)

	for _, offset := range []int{5, 6, 1 << 20} {
		require.NotPanics(t, func() {
			tok := p.Peek(offset)
			require.Equal(t, TokenEndOfFile, tok.Kind)
			require.Equal(t, 6, tok.Location.Col)
		})
	}
	require.Equal(t, TokenOpenParen, p.Current().Kind)
}

func TestParseExpression(t *testing.T) {
	expr, err := Parse("(1+2)")
	require.NoError(t, err)
	require.Equal(t, NumberLiteral{Value: 1}, expr.Left)
	require.Equal(t, OperatorPlus, expr.Operator)
	require.Equal(t, NumberLiteral{Value: 2}, expr.Right)
	require.Equal(t, "(1 + 2)", expr.String())
}

func TestParseExpressionInteriorWhitespace(t *testing.T) {
	expr, err := Parse("( 10 * 4 )")
	require.NoError(t, err)
	require.Equal(t, NumberLiteral{Value: 10}, expr.Left)
	require.Equal(t, OperatorStar, expr.Operator)
	require.Equal(t, NumberLiteral{Value: 4}, expr.Right)
}

func TestParseExpressionAllOperators(t *testing.T) {
	for src, op := range map[string]Operator{
		"(6 + 3)": OperatorPlus,
		"(6 - 3)": OperatorMinus,
		"(6 * 3)": OperatorStar,
		"(6 / 3)": OperatorSlash,
	} {
		expr, err := Parse(src)
		require.NoError(t, err, src)
		require.Equal(t, op, expr.Operator, src)
	}
}

func TestParseExpressionIgnoresSurroundingTokens(t *testing.T) {
	expr, err := Parse("7 (8 / 2) 5")
	require.NoError(t, err)
	require.Equal(t, "(8 / 2)", expr.String())
	require.Equal(t, 3, expr.Location.Col)
}

func TestParseExpressionMultiLine(t *testing.T) {
	expr, err := Parse("\n\n  (\n  100\n  -\n  1\n)\n")
	require.NoError(t, err)
	require.Equal(t, "(100 - 1)", expr.String())
	require.Equal(t, 3, expr.Location.Line)
}

func TestParseMissingOpenParen(t *testing.T) {
	_, err := Parse("1+2")
	syntaxErr := requireSyntaxError(t, err, MissingOpenParen, 1, 1)
	require.Equal(t, TokenNumber, syntaxErr.Token.Kind)
}

func TestParseEmptySource(t *testing.T) {
	_, err := Parse("   ")
	syntaxErr := requireSyntaxError(t, err, MissingOpenParen, 1, 4)
	require.Equal(t, TokenEndOfFile, syntaxErr.Token.Kind)
}

func TestParseInvalidOperator(t *testing.T) {
	_, err := Parse("(9 % 3)")
	syntaxErr := requireSyntaxError(t, err, InvalidOperator, 1, 6)
	require.Equal(t, "3", syntaxErr.Token.Text)
	require.NotNil(t, syntaxErr.Skipped)
	require.Equal(t, '%', syntaxErr.Skipped.Raw)
	require.Equal(t, 4, syntaxErr.Skipped.Location.Col)
}

func TestParseMissingLeftOperand(t *testing.T) {
	_, err := Parse("(+ 2)")
	requireSyntaxError(t, err, MissingLeftOperand, 1, 2)

	_, err = Parse("(")
	syntaxErr := requireSyntaxError(t, err, MissingLeftOperand, 1, 2)
	require.Equal(t, TokenEndOfFile, syntaxErr.Token.Kind)
}

func TestParseMissingRightOperand(t *testing.T) {
	_, err := Parse("(1 +)")
	syntaxErr := requireSyntaxError(t, err, MissingRightOperand, 1, 5)
	require.Nil(t, syntaxErr.Skipped)
}

func TestParseMissingCloseParen(t *testing.T) {
	_, err := Parse("(1 + 2")
	requireSyntaxError(t, err, MissingCloseParen, 1, 7)

	_, err = Parse("(1 + 2 3)")
	requireSyntaxError(t, err, MissingCloseParen, 1, 8)
}

func TestParseNumberOverflow(t *testing.T) {
	_, err := Parse("(99999999999999999999 + 1)")
	requireSyntaxError(t, err, NumberOverflow, 1, 2)

	_, err = Parse("(1 + 99999999999999999999)")
	requireSyntaxError(t, err, NumberOverflow, 1, 6)
}

func TestParseInvalidNumber(t *testing.T) {
	_, err := Parse("(1 + ٣)")
	requireSyntaxError(t, err, InvalidNumber, 1, 6)
}

func TestSyntaxErrorSurvivesWrapping(t *testing.T) {
	_, err := Parse("1+2")
	wrapped := errors.Wrapf(err, "building %s", "main.ph")

	syntaxErr, ok := AsSyntaxError(wrapped)
	require.True(t, ok)
	require.Equal(t, MissingOpenParen, syntaxErr.Kind)
	require.Contains(t, wrapped.Error(), "main.ph")
	require.Contains(t, wrapped.Error(), "MissingOpenParen at 1:1")
}
