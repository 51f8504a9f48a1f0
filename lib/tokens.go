package lib

import "fmt"

type TokenKind int

const (
	TokenWhitespace TokenKind = iota
	TokenNumber
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenOpenParen
	TokenCloseParen
	TokenBad
	TokenEndOfFile
)

var tokenKindNames = map[TokenKind]string{
	TokenWhitespace: "whitespace",
	TokenNumber:     "number",
	TokenPlus:       "'+'",
	TokenMinus:      "'-'",
	TokenStar:       "'*'",
	TokenSlash:      "'/'",
	TokenOpenParen:  "'('",
	TokenCloseParen: "')'",
	TokenBad:        "bad token",
	TokenEndOfFile:  "end of file",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// CharLocation points at a character in the source. Offset is in bytes, Line
// and Col are 1-based and Col counts runes.
type CharLocation struct {
	Offset int
	Line   int
	Col    int
}

func (c CharLocation) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Col)
}

// Token is a value type. The lexer overwrites its current token on every
// step, so a copy taken before advancing stays valid.
type Token struct {
	Kind     TokenKind
	Text     string
	Location CharLocation

	// Set for TokenNumber. Err is non-nil when Text does not fit in an int64
	// or is not made of ASCII digits.
	Value int64
	Err   error

	// Set for TokenBad: the character that was dropped.
	Raw rune
}

// Int returns the parsed value of a number token.
func (t Token) Int() (int64, error) {
	if t.Kind != TokenNumber {
		return 0, fmt.Errorf("%s is not a number", tokenString(t))
	}
	return t.Value, t.Err
}

func tokenString(tok Token) string {
	switch tok.Kind {
	case TokenNumber:
		return fmt.Sprintf("number %s", tok.Text)
	case TokenBad:
		return fmt.Sprintf("bad token %q", string(tok.Raw))
	case TokenWhitespace, TokenEndOfFile:
		return tok.Kind.String()
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}
