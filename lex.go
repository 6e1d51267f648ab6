package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is anything that should be a number. It is not checked until
	// evaluation.
	tokenNum
	// tokenOp is one of the operators.
	tokenOp
	// tokenOpen is an open bracket, (.
	tokenOpen
	// tokenClose is a close bracket, ).
	tokenClose
	// tokenBad is a lone symbol that looks like an operator but isn't one,
	// e.g. %.
	tokenBad
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenBad:
		return "Bad"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// OpenBracket and CloseBracket group infix subexpressions.
const (
	OpenBracket  = '('
	CloseBracket = ')'
)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read so far.
	col int
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// next scans the next whitespace-delimited token from the input. The first
// time EOF is encountered, the result is an EOF token with a nil error.
// Subsequent calls return an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	var tok lexToken
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				tok.pos = l.col + 1
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		if !unicode.IsSpace(r) {
			tok.pos = l.col
			l.buf.WriteRune(r)
			break
		}
	}
	if err := l.scanWord(); err != nil {
		return tok, err
	}
	tok.kind, tok.text = classify(l.buf.String())
	return tok, nil
}

// scanWord reads the remainder of a token up to and including the next
// whitespace or the end of input.
func (l *lexer) scanWord() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The EOF is seen again by the next call to next.
				return nil
			}
			return err
		}
		if unicode.IsSpace(r) {
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// classify decides the kind of a token from its first rune. Operator and
// bracket tokens are reduced to that rune.
func classify(word string) (tokenKind, string) {
	r, sz := utf8.DecodeRuneInString(word)
	switch {
	case strings.ContainsRune(Operators, r):
		return tokenOp, word[:sz]
	case r == OpenBracket:
		return tokenOpen, word[:sz]
	case r == CloseBracket:
		return tokenClose, word[:sz]
	case r == utf8.RuneError:
		// Invalid encodings are never operators.
		return tokenNum, word
	case sz == len(word) && r != '.' && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
		return tokenBad, word
	default:
		return tokenNum, word
	}
}

// lexAll scans every token from src, not including the EOF token.
func lexAll(src io.RuneScanner) ([]lexToken, error) {
	scan := lex(src)
	var toks []lexToken
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
