package ast

// UnaryOperator is the operator of a UnaryOp.
type UnaryOperator int

const (
	UAdd   UnaryOperator = iota + 1 // +x
	USub                            // -x
	Not                             // not x
	Invert                          // ~x
)

var unaryNames = map[UnaryOperator]string{UAdd: "UAdd", USub: "USub", Not: "Not", Invert: "Invert"}
var unarySymbols = map[UnaryOperator]string{UAdd: "+", USub: "-", Not: "not ", Invert: "~"}

func (op UnaryOperator) String() string { return nameOr(unaryNames, op) }

// Symbol returns the source spelling of op.
func (op UnaryOperator) Symbol() string { return nameOr(unarySymbols, op) }

// BinaryOperator is the operator of a BinOp.
type BinaryOperator int

const (
	Add BinaryOperator = iota + 1
	Sub
	Mult
	MatMult
	Div
	FloorDiv
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
)

var binaryNames = map[BinaryOperator]string{
	Add: "Add", Sub: "Sub", Mult: "Mult", MatMult: "MatMult", Div: "Div",
	FloorDiv: "FloorDiv", Mod: "Mod", Pow: "Pow", LShift: "LShift",
	RShift: "RShift", BitOr: "BitOr", BitXor: "BitXor", BitAnd: "BitAnd",
}

var binarySymbols = map[BinaryOperator]string{
	Add: "+", Sub: "-", Mult: "*", MatMult: "@", Div: "/",
	FloorDiv: "//", Mod: "%", Pow: "**", LShift: "<<",
	RShift: ">>", BitOr: "|", BitXor: "^", BitAnd: "&",
}

func (op BinaryOperator) String() string { return nameOr(binaryNames, op) }

// Symbol returns the source spelling of op.
func (op BinaryOperator) Symbol() string { return nameOr(binarySymbols, op) }

// BoolOperator is the operator of a BoolOp.
type BoolOperator int

const (
	And BoolOperator = iota + 1
	Or
)

func (op BoolOperator) String() string {
	return nameOr(map[BoolOperator]string{And: "And", Or: "Or"}, op)
}

// CmpOperator is one operator of a Compare chain.
type CmpOperator int

const (
	Eq CmpOperator = iota + 1
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpNames = map[CmpOperator]string{
	Eq: "Eq", NotEq: "NotEq", Lt: "Lt", LtE: "LtE", Gt: "Gt", GtE: "GtE",
	Is: "Is", IsNot: "IsNot", In: "In", NotIn: "NotIn",
}

func (op CmpOperator) String() string { return nameOr(cmpNames, op) }

func nameOr[K comparable](names map[K]string, k K) string {
	if s, ok := names[k]; ok {
		return s
	}
	return "?"
}
