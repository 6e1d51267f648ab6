package calc

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack  []float64
	strict bool
	popts  []ParseOption
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The returned
// context shares nothing with the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack:  make([]float64, 0, cap(ctx.stack)),
		strict: ctx.strict,
		popts:  append([]ParseOption(nil), ctx.popts...),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case strictopt:
			n.strict = bool(opt)
		case parseopts:
			n.popts = append(n.popts, opt...)
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Eval evaluates an expression and returns the result. Evaluation stops at
// the first error.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	ctx.stack = ctx.stack[:0]
	for _, tok := range e.toks {
		switch tok.kind {
		case tokenNum:
			x, err := num(tok)
			if err != nil {
				return 0, err
			}
			ctx.push(x)
		case tokenOp, tokenBad:
			// Unknown operators still need two operands before they are
			// rejected.
			if len(ctx.stack) < 2 {
				return 0, &UnderflowError{Col: tok.pos, Operator: tok.text, Have: len(ctx.stack)}
			}
			y := ctx.pop()
			x := ctx.pop()
			r, err := apply(tok, x, y)
			if err != nil {
				return 0, err
			}
			ctx.push(r)
		case tokenOpen:
			return 0, &BracketError{Col: tok.pos, Left: tok.text}
		case tokenClose:
			return 0, &BracketError{Col: tok.pos, Right: tok.text}
		default:
			panic("calc: invalid token " + tok.String())
		}
	}
	switch len(ctx.stack) {
	case 0:
		return 0, &EmptyExpressionError{Col: e.end}
	case 1: // do nothing
	default:
		if ctx.strict {
			return 0, &LeftoverError{Col: e.end, Len: len(ctx.stack)}
		}
	}
	return ctx.pop(), nil
}

// Evaluate parses an expression in the given notation using the context's
// parse options and evaluates it.
func (ctx *Context) Evaluate(src string, n Notation) (float64, error) {
	opts := append(ctx.popts[:len(ctx.popts):len(ctx.popts)], n)
	e, err := ParseString(src, opts...)
	if err != nil {
		return 0, err
	}
	return ctx.Eval(e)
}

func (ctx *Context) push(x float64) {
	ctx.stack = append(ctx.stack, x)
}

func (ctx *Context) pop() float64 {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// num parses a number token. Numbers too large in magnitude are infinite.
func num(tok lexToken) (float64, error) {
	x, err := strconv.ParseFloat(tok.text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &NumberError{Col: tok.pos, Text: tok.text, Err: err}
	}
	return x, nil
}

// apply computes x op y.
func apply(op lexToken, x, y float64) (float64, error) {
	switch op.text {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return 0, &DivisionError{Col: op.pos, X: x}
		}
		return x / y, nil
	case "^":
		return math.Pow(x, y), nil
	default:
		return 0, &OperatorError{Col: op.pos, Operator: op.text}
	}
}

// Eval is a shortcut to parse a postfix expression and return its result.
func Eval(src io.RuneScanner, opts ...ContextOption) (float64, error) {
	e, err := Parse(src, Postfix)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(e)
}

// EvalString is a shortcut to parse and evaluate a postfix string expression.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// Evaluate parses an expression in the given notation and returns its
// result. Infix expressions are converted to postfix before evaluation.
func Evaluate(src string, n Notation, opts ...ContextOption) (float64, error) {
	return NewContext(opts...).Evaluate(src, n)
}
