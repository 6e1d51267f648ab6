package calc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// notation is the notation of the source.
	notation Notation
	// rightpow indicates that ^ is right-associative.
	rightpow bool
}

// Notation is the order of operators and operands in an expression. A
// Notation is also a ParseOption which sets the notation of the source.
type Notation int

const (
	// Postfix notation, or reverse Polish notation, places operators after
	// their operands, e.g. "3 4 +".
	Postfix Notation = iota
	// Infix notation places operators between their operands, e.g. "3 + 4".
	Infix
)

func (n Notation) String() string {
	switch n {
	case Postfix:
		return "postfix"
	case Infix:
		return "infix"
	default:
		return "invalid notation"
	}
}

func (n Notation) parseOption(p parsectx) parsectx {
	p.notation = n
	return p
}

type rightpowopt bool

// RightAssocPow makes ^ right-associative when converting infix expressions,
// so that "2 ^ 3 ^ 2" means "2 ^ (3 ^ 2)". By default, ^ is left-associative
// like the other operators.
func RightAssocPow() ParseOption {
	return rightpowopt(true)
}

func (o rightpowopt) parseOption(p parsectx) parsectx {
	p.rightpow = bool(o)
	return p
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type strictopt bool

func (strictopt) ctxOption() {}

// Strict makes evaluation fail with a LeftoverError when more than one value
// remains at the end of an expression. By default, the top value is the
// result and the others are discarded.
func Strict() ContextOption {
	return strictopt(true)
}

type parseopts []ParseOption

func (parseopts) ctxOption() {}

// ParseOptions sets the options a context uses to parse sources in Evaluate.
// Notation options are overridden by the notation passed to Evaluate.
func ParseOptions(opts ...ParseOption) ContextOption {
	return parseopts(opts)
}
