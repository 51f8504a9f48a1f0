package lib

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type charInfo struct {
	ch       rune
	location CharLocation
}

// Lex runs a lexer over src and returns every token it produces, whitespace
// and bad tokens included. The end of file token is not part of the result.
func Lex(src string) []Token {
	l := NewLexer(src)
	tokens := []Token{}
	for {
		l.Next()
		tok := l.Token()
		if tok.Kind == TokenEndOfFile {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Lexer turns source text into tokens one at a time. It never fails:
// characters it does not recognize become TokenBad and numbers that do not fit
// in an int64 carry their error inside the token.
type Lexer struct {
	src              string
	length           int
	currentCharIndex int
	currentLocation  CharLocation
	token            Token
}

func NewLexer(src string) *Lexer {
	l := &Lexer{
		src:    src,
		length: len(src),
	}
	l.Reset()
	return l
}

// Reset rewinds the lexer to the start of its source.
func (l *Lexer) Reset() {
	l.currentCharIndex = 0
	l.currentLocation = CharLocation{Offset: 0, Line: 1, Col: 1}
	l.token = Token{Kind: TokenBad, Location: l.currentLocation}
}

// Token returns the token produced by the last call to Next.
func (l *Lexer) Token() Token {
	return l.token
}

func (l *Lexer) peek() (charInfo, int, bool) {
	if l.currentCharIndex >= l.length {
		return charInfo{location: l.currentLocation}, 0, false
	}
	ch, size := utf8.DecodeRuneInString(l.src[l.currentCharIndex:])
	return charInfo{ch: ch, location: l.currentLocation}, size, true
}

func (l *Lexer) advance() (charInfo, bool) {
	info, size, ok := l.peek()
	if !ok {
		// Past the end only the index moves; the location stays on the
		// end of input so every end of file token points at the same place.
		l.currentCharIndex++
		return info, false
	}
	l.currentCharIndex += size
	l.currentLocation.Offset += size
	if info.ch == '\n' {
		l.currentLocation.Line++
		l.currentLocation.Col = 1
	} else {
		l.currentLocation.Col++
	}
	return info, true
}

// Next advances by one token. The result is read with Token.
func (l *Lexer) Next() {
	start := l.currentCharIndex
	chInfo, ok := l.advance()
	if !ok {
		l.token = Token{Kind: TokenEndOfFile, Location: chInfo.location}
		return
	}
	ch := chInfo.ch

	switch {
	case unicode.IsSpace(ch):
		l.skipWhile(unicode.IsSpace)
		l.token = Token{
			Kind:     TokenWhitespace,
			Text:     l.src[start:l.currentCharIndex],
			Location: chInfo.location,
		}
		return
	case unicode.IsDigit(ch):
		l.skipWhile(unicode.IsDigit)
		l.token = numberToken(l.src[start:l.currentCharIndex], chInfo.location)
		return
	}

	switch ch {
	case '+':
		l.token = Token{Kind: TokenPlus, Text: "+", Location: chInfo.location}
	case '-':
		l.token = Token{Kind: TokenMinus, Text: "-", Location: chInfo.location}
	case '*':
		l.token = Token{Kind: TokenStar, Text: "*", Location: chInfo.location}
	case '/':
		l.token = Token{Kind: TokenSlash, Text: "/", Location: chInfo.location}
	case '(':
		l.token = Token{Kind: TokenOpenParen, Text: "(", Location: chInfo.location}
	case ')':
		l.token = Token{Kind: TokenCloseParen, Text: ")", Location: chInfo.location}
	default:
		l.token = Token{Kind: TokenBad, Raw: ch, Location: chInfo.location}
	}
}

func (l *Lexer) skipWhile(match func(rune) bool) {
	for {
		next, _, ok := l.peek()
		if !ok || !match(next.ch) {
			return
		}
		_, _ = l.advance()
	}
}

func numberToken(text string, location CharLocation) Token {
	tok := Token{Kind: TokenNumber, Text: text, Location: location}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		tok.Err = err
		return tok
	}
	tok.Value = value
	return tok
}
