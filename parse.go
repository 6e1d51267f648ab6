package calc

import (
	"io"
	"strings"
)

// Expr is a parsed expression in postfix order that can be evaluated with a
// context. An Expr is never modified after parsing, so it is safe to evaluate
// concurrently with different contexts.
type Expr struct {
	// toks is the expression in postfix order.
	toks []lexToken
	// end is the position of the end of the source.
	end int
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order. Infix sources are converted to postfix.
//
// Since operands are checked only during evaluation, the only errors from
// parsing are I/O errors from src and unmatched close brackets in infix
// sources.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	scan := lex(src)
	switch p.notation {
	case Postfix:
		return parsepostfix(scan)
	case Infix:
		return parseinfix(scan, &p)
	default:
		panic("calc: invalid notation " + p.notation.String())
	}
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// Convert converts an infix expression to postfix. The result has one space
// between each token.
func Convert(infix string, opts ...ParseOption) (string, error) {
	opts = append(opts[:len(opts):len(opts)], Infix)
	e, err := ParseString(infix, opts...)
	if err != nil {
		return "", err
	}
	return e.String(), nil
}

func parsepostfix(scan *lexer) (*Expr, error) {
	var e Expr
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			e.end = tok.pos
			return &e, nil
		}
		e.toks = append(e.toks, tok)
	}
}

// parseinfix converts an infix token stream to postfix using the
// shunting-yard algorithm.
func parseinfix(scan *lexer, p *parsectx) (*Expr, error) {
	var e Expr
	var ops []lexToken
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			// Unmatched open brackets are emitted too. They fail evaluation.
			for len(ops) > 0 {
				e.toks = append(e.toks, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			e.end = tok.pos
			return &e, nil
		case tokenOp:
			prec := binop(tok.text, p)
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != tokenOp || prec.moreBinding(binop(top.text, p)) {
					break
				}
				e.toks = append(e.toks, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		case tokenOpen:
			ops = append(ops, tok)
		case tokenClose:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: tok.pos, Right: tok.text}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.kind == tokenOpen {
					break
				}
				e.toks = append(e.toks, top)
			}
		case tokenNum, tokenBad:
			// Unknown operators are operands here. Evaluation rejects them.
			e.toks = append(e.toks, tok)
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// String returns the postfix form of the expression with one space between
// each token.
func (e *Expr) String() string {
	var b strings.Builder
	for i, tok := range e.toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}

// Tokens returns the tokens of the expression in postfix order.
func (e *Expr) Tokens() []string {
	r := make([]string, len(e.toks))
	for i, tok := range e.toks {
		r[i] = tok.text
	}
	return r
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// moreBinding returns whether p binds more tightly than an operator to its
// left, i.e. whether the operator to the left must wait for p.
func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has a prec of 0.
func binop(text string, p *parsectx) operator {
	switch text {
	case "+", "-":
		return operator{1, false}
	case "*", "/":
		return operator{2, false}
	case "^":
		return operator{3, p.rightpow}
	default:
		return operator{}
	}
}
