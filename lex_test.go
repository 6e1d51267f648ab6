package calc

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}},
		{".5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}}},
		{".", []lexToken{{text: ".", kind: tokenNum, pos: 1}}},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}}},
		{"x", []lexToken{{text: "x", kind: tokenNum, pos: 1}}},
		{"3+4", []lexToken{{text: "3+4", kind: tokenNum, pos: 1}}},
		{"  12   3", []lexToken{{text: "12", kind: tokenNum, pos: 3}, {text: "3", kind: tokenNum, pos: 8}}},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}},
		{"- * / ^", []lexToken{
			{text: "-", kind: tokenOp, pos: 1},
			{text: "*", kind: tokenOp, pos: 3},
			{text: "/", kind: tokenOp, pos: 5},
			{text: "^", kind: tokenOp, pos: 7},
		}},
		{"-2", []lexToken{{text: "-", kind: tokenOp, pos: 1}}},
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}}},
		// brackets
		{"( )", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 3}}},
		{"(3", []lexToken{{text: "(", kind: tokenOpen, pos: 1}}},
		// unknown operators
		{"%", []lexToken{{text: "%", kind: tokenBad, pos: 1}}},
		{"×", []lexToken{{text: "×", kind: tokenBad, pos: 1}}},
		{"1 × 2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "×", kind: tokenBad, pos: 3}, {text: "2", kind: tokenNum, pos: 5}}},
		{"%%", []lexToken{{text: "%%", kind: tokenNum, pos: 1}}},
		// invalid encodings
		{"\xff", []lexToken{{text: "\uFFFD", kind: tokenNum, pos: 1}}},
		{"3 \xff", []lexToken{{text: "3", kind: tokenNum, pos: 1}, {text: "\uFFFD", kind: tokenNum, pos: 3}}},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		got, err := scan.next()
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v instead of EOF token", c.src, err)
		}
		if got.kind != tokenEOF {
			t.Errorf("scanning %q: extra token %v", c.src, got)
		}
		if _, err := scan.next(); err != io.EOF {
			t.Errorf("scanning %q: want io.EOF after EOF token, got %v", c.src, err)
		}
	}
}

func TestLexEOFPos(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"", 1},
		{"1", 2},
		{"1 ", 3},
		{"1 2 +", 6},
		{"π ×", 4},
	}
	for _, c := range cases {
		toks, err := lexAll(strings.NewReader(c.src))
		if err != nil {
			t.Fatalf("lexing %q: %v", c.src, err)
		}
		scan := lex(strings.NewReader(c.src))
		for range toks {
			scan.next()
		}
		tok, err := scan.next()
		if err != nil {
			t.Fatalf("lexing %q: %v", c.src, err)
		}
		if tok.kind != tokenEOF || tok.pos != c.pos {
			t.Errorf("lexing %q: want EOF at %d, got %v", c.src, c.pos, tok)
		}
	}
}

type errReader struct {
	*strings.Reader
}

func (r errReader) ReadRune() (rune, int, error) {
	c, sz, err := r.Reader.ReadRune()
	if err == io.EOF {
		return 0, 0, io.ErrUnexpectedEOF
	}
	return c, sz, err
}

func TestLexReadError(t *testing.T) {
	_, err := lexAll(errReader{strings.NewReader("1 2 +")})
	if err != io.ErrUnexpectedEOF {
		t.Errorf("want io.ErrUnexpectedEOF, got %v", err)
	}
}
