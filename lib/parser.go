package lib

// Parse builds the single expression held in src.
func Parse(src string) (*Expression, error) {
	p := NewParser(src)
	p.Parse()
	return p.ParseExpression()
}

// Parser collects the meaningful tokens of one source text and builds an
// expression from them. A Parser is not safe for concurrent use.
type Parser struct {
	lexer   *Lexer
	buffer  *tokenBuffer
	reader  tokenReader
	skipped []Token
}

func NewParser(src string) *Parser {
	buffer := newTokenBuffer()
	return &Parser{
		lexer:   NewLexer(src),
		buffer:  buffer,
		reader:  buffer,
		skipped: []Token{},
	}
}

// Parse drains the lexer into the token buffer. Whitespace is dropped, bad
// tokens are dropped from the buffer but remembered for diagnostics, and the
// end of file token is not stored. Calling Parse again starts over.
func (p *Parser) Parse() {
	p.lexer.Reset()
	p.buffer.reset()
	p.skipped = p.skipped[:0]

	for {
		p.lexer.Next()
		tok := p.lexer.Token()

		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenBad:
			p.skipped = append(p.skipped, tok)
			continue
		case TokenEndOfFile:
			p.buffer.Done(tok.Location)
			return
		}

		p.buffer.Write(tok)
	}
}

// Tokens returns the buffered tokens.
func (p *Parser) Tokens() []Token {
	return append([]Token(nil), p.buffer.tokens...)
}

// Skipped returns the bad tokens dropped by Parse, in source order.
func (p *Parser) Skipped() []Token {
	return append([]Token(nil), p.skipped...)
}

// Peek returns the token offset positions from the cursor, or an end of file
// token if there is none. It never moves the cursor.
func (p *Parser) Peek(offset int) Token {
	return p.buffer.Peek(offset)
}

func (p *Parser) Current() Token {
	return p.Peek(0)
}

// ParseExpression reads `'(' number operator number ')'` from the token
// buffer. Anything before the first '(' and after the matching ')' is
// ignored.
func (p *Parser) ParseExpression() (*Expression, error) {
	open := -1
	for i, tok := range p.buffer.tokens {
		if tok.Kind == TokenOpenParen {
			open = i
			break
		}
	}
	if open < 0 {
		p.buffer.seek(0)
		return nil, p.fail(MissingOpenParen, p.Current(), "expected '(' but got %s", tokenString(p.Current()))
	}
	p.buffer.seek(open)
	openTok := p.reader.Next()

	left, err := p.requireNumber(MissingLeftOperand, "left operand")
	if err != nil {
		return nil, err
	}

	op, err := p.requireOperator()
	if err != nil {
		return nil, err
	}

	right, err := p.requireNumber(MissingRightOperand, "right operand")
	if err != nil {
		return nil, err
	}

	_, err = p.requireToken(TokenCloseParen, MissingCloseParen)
	if err != nil {
		return nil, err
	}

	return &Expression{
		Left:     NumberLiteral{Value: left},
		Operator: op,
		Right:    NumberLiteral{Value: right},
		Location: openTok.Location,
	}, nil
}

func (p *Parser) requireToken(kind TokenKind, failure ErrorKind) (Token, error) {
	next := p.reader.Next()
	if next.Kind != kind {
		return Token{}, p.fail(failure, next, "expected %s but got %s", kind, tokenString(next))
	}
	return next, nil
}

func (p *Parser) requireNumber(failure ErrorKind, what string) (int64, error) {
	next := p.reader.Next()
	if next.Kind != TokenNumber {
		return 0, p.fail(failure, next, "expected a number as the %s but got %s", what, tokenString(next))
	}
	value, err := next.Int()
	if err != nil {
		return 0, p.attachSkipped(numberError(next))
	}
	return value, nil
}

func (p *Parser) requireOperator() (Operator, error) {
	next := p.reader.Next()
	op, ok := operatorFromText(next.Text)
	if !ok {
		return 0, p.fail(InvalidOperator, next, "expected '+', '-', '*' or '/' but got %s", tokenString(next))
	}
	return op, nil
}

func (p *Parser) fail(kind ErrorKind, tok Token, format string, args ...interface{}) error {
	return p.attachSkipped(newSyntaxError(kind, tok, format, args...))
}

// attachSkipped records the last dropped character that came before the
// offending token, since dropping it is the usual reason the shape broke.
func (p *Parser) attachSkipped(err *SyntaxError) error {
	for i := len(p.skipped) - 1; i >= 0; i-- {
		if p.skipped[i].Location.Offset < err.Location.Offset {
			skipped := p.skipped[i]
			err.Skipped = &skipped
			break
		}
	}
	return err
}
