package lib

type tokenReader interface {
	Next() Token
	Peek(offset int) Token
}
