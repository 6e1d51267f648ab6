package calc

import (
	"errors"
	"strconv"
)

// Kind classifies errors resulting from invalid input.
type Kind int

const (
	// NotInput is the kind of errors that are not caused by the expression,
	// e.g. I/O errors from the source.
	NotInput Kind = iota
	// InvalidExpression is the kind of errors for token streams that cannot be
	// evaluated structurally: unparsable numbers, too few operands, or
	// unmatched brackets.
	InvalidExpression
	// UnsupportedOperation is the kind of errors for structurally valid
	// operations that cannot be performed: division by zero or an unknown
	// operator.
	UnsupportedOperation
)

func (k Kind) String() string {
	switch k {
	case NotInput:
		return "Not Input"
	case InvalidExpression:
		return "Invalid Expression"
	case UnsupportedOperation:
		return "Unsupported Operation"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
	// Kind classifies the error.
	Kind() Kind
}

// KindOf returns the kind of the first InputError in err's chain, or NotInput
// if there is none.
func KindOf(err error) Kind {
	var ie InputError
	if errors.As(err, &ie) {
		return ie.Kind()
	}
	return NotInput
}

// OperatorError is an error indicating a symbol in operator position that is
// not a supported operator. Its message is always "Unknown operator".
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return "Unknown operator"
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Kind() Kind {
	return UnsupportedOperation
}

// DivisionError is an error indicating division by zero. Its message is
// always "Cannot divide by zero".
type DivisionError struct {
	// Col is the position of the division operator.
	Col int
	// X is the dividend.
	X float64
}

func (err *DivisionError) Error() string {
	return "Cannot divide by zero"
}

func (err *DivisionError) Pos() int {
	return err.Col
}

func (err *DivisionError) Kind() Kind {
	return UnsupportedOperation
}

// BracketError is an error indicating mismatched brackets in the input.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket, if it exists.
	Left string
	// Right is the closing bracket, if it exists.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Kind() Kind {
	return InvalidExpression
}

// UnderflowError is an error indicating an operator without enough operands.
type UnderflowError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator.
	Operator string
	// Have is the number of operands that were available.
	Have int
}

func (err *UnderflowError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs 2 operands, have "+strconv.Itoa(err.Have))
}

func (err *UnderflowError) Pos() int {
	return err.Col
}

func (err *UnderflowError) Kind() Kind {
	return InvalidExpression
}

// NumberError is an error indicating an operand that is not a number.
// NumberError unwraps to the error from strconv.
type NumberError struct {
	// Col is the position of the operand.
	Col int
	// Text is the operand.
	Text string
	// Err is the parsing error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Kind() Kind {
	return InvalidExpression
}

// EmptyExpressionError is an error indicating an expression with no tokens.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Kind() Kind {
	return InvalidExpression
}

// LeftoverError is an error indicating that evaluation ended with more than
// one value. It is only returned by contexts created with Strict.
type LeftoverError struct {
	// Col is the position of the end of the input.
	Col int
	// Len is the number of values that were left.
	Len int
}

func (err *LeftoverError) Error() string {
	return errpos(err.Col, strconv.Itoa(err.Len)+" values left with no operator")
}

func (err *LeftoverError) Pos() int {
	return err.Col
}

func (err *LeftoverError) Kind() Kind {
	return InvalidExpression
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*DivisionError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*UnderflowError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LeftoverError)(nil)
)
