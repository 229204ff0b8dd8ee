package calc

import (
	"errors"
	"io"
	"strconv"
)

// Token is a classified lexical unit of an input line.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + t.Span.String()
}

// Equal reports whether t and u have the same kind and text. Spans are not
// compared.
func (t Token) Equal(u Token) bool {
	return t.Kind == u.Kind && t.Text == u.Text
}

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	TokenPlus TokenKind = iota
	TokenMinus
	TokenStar
	TokenSlash
	TokenKarat
	TokenComma
	// TokenWord is a run of ASCII letters, naming a variable or function.
	TokenWord
	TokenEquals
	TokenOpenParen
	TokenCloseParen
	// TokenNumber is an integer or decimal literal.
	TokenNumber
)

//go:generate stringer -type=TokenKind -trimprefix=Token

// symbols maps each single-character token to its kind.
var symbols = map[rune]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'^': TokenKarat,
	'=': TokenEquals,
	'(': TokenOpenParen,
	')': TokenCloseParen,
	',': TokenComma,
}

// eof is the rune peek returns past the end of the input.
const eof rune = -1

type lexer struct {
	src []rune
	pos int
}

func lex(line string) *lexer {
	return &lexer{src: []rune(line)}
}

// peek returns the rune n positions ahead of the cursor without consuming
// it, so peek(0) is the next rune. Past the end of input it returns eof.
func (l *lexer) peek(n int) rune {
	if l.pos+n >= len(l.src) {
		return eof
	}
	return l.src[l.pos+n]
}

// accept consumes runes as long as ok holds for them.
func (l *lexer) accept(ok func(rune) bool) {
	for r := l.peek(0); r != eof && ok(r); r = l.peek(0) {
		l.pos++
	}
}

// next scans the next token from the input. Once the input is exhausted, the
// result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	l.accept(isSpace)
	start := l.pos
	r := l.peek(0)
	switch {
	case r == eof:
		return Token{}, io.EOF
	case isAlpha(r):
		l.accept(isAlpha)
		return l.token(TokenWord, start), nil
	case isDigit(r):
		l.accept(isDigit)
		// A dot is part of the number only if a digit follows it.
		if l.peek(0) == '.' && isDigit(l.peek(1)) {
			l.pos++
			l.accept(isDigit)
		}
		return l.token(TokenNumber, start), nil
	}
	l.pos++
	if k, ok := symbols[r]; ok {
		return l.token(k, start), nil
	}
	return Token{}, &LexError{
		Span:    Span{Begin: start, End: l.pos},
		Message: "Unrecognized Input Token",
		Char:    r,
	}
}

func (l *lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind: kind,
		Text: string(l.src[start:l.pos]),
		Span: Span{Begin: start, End: l.pos},
	}
}

// all scans every remaining token, stopping at the first error.
func (l *lexer) all() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// Tokenize converts a line into its tokens. The result is empty if the line
// contains only whitespace. The returned error, if any, is a *LexError
// locating the first character that begins no token.
func Tokenize(line string) ([]Token, error) {
	return lex(line).all()
}

func isSpace(r rune) bool {
	return r <= 0x20 || r == 0x7f
}

func isAlpha(r rune) bool {
	return 'A' <= r && r <= 'Z' || 'a' <= r && r <= 'z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// LexError indicates a character that cannot begin any token. It implements
// InputError.
type LexError struct {
	// Span covers exactly the offending character.
	Span Span
	// Message describes the error.
	Message string
	// Char is the offending character.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Span, err.Message+" "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() Span {
	return err.Span
}
