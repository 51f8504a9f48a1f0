package lib

// tokenBuffer is an ordered list of tokens with a read cursor. Reads past the
// end return a synthetic end of file token located at eof.
type tokenBuffer struct {
	tokens   []Token
	position int
	eof      CharLocation
}

func newTokenBuffer() *tokenBuffer {
	return &tokenBuffer{
		tokens:   []Token{},
		position: 0,
	}
}

// Write appends a token. The cursor is unaffected.
func (tb *tokenBuffer) Write(tok Token) {
	tb.tokens = append(tb.tokens, tok)
}

// Done marks the end of input.
func (tb *tokenBuffer) Done(eof CharLocation) {
	tb.eof = eof
}

// Peek returns the token offset positions from the cursor without moving it.
func (tb *tokenBuffer) Peek(offset int) Token {
	i := tb.position + offset
	if offset < 0 || i < 0 || i >= len(tb.tokens) {
		return Token{Kind: TokenEndOfFile, Location: tb.eof}
	}
	return tb.tokens[i]
}

// Next returns the token under the cursor and moves past it. The cursor never
// moves beyond the end of the buffer.
func (tb *tokenBuffer) Next() Token {
	tok := tb.Peek(0)
	if tb.position < len(tb.tokens) {
		tb.position++
	}
	return tok
}

func (tb *tokenBuffer) seek(position int) {
	if position < 0 {
		position = 0
	}
	if position > len(tb.tokens) {
		position = len(tb.tokens)
	}
	tb.position = position
}

func (tb *tokenBuffer) reset() {
	tb.tokens = tb.tokens[:0]
	tb.position = 0
	tb.eof = CharLocation{}
}
