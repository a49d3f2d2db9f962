// Package ast declares the expression tree consumed by the literal converter.
//
// Trees come from the parser, which records a source position on every
// node, or are built by hand, in which case positions are usually zero.
// A zero Line means "no line information".
package ast

import (
	"fmt"

	"github.com/podhmo/literaleval/value"
)

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

// Position returns p. Embedding Pos gives every node its Position method.
func (p Pos) Position() Pos { return p }

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is any element of the tree.
type Node interface {
	Position() Pos
}

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	Node
	exprNode()
}

// Expression is the root returned when parsing in expression mode.
type Expression struct {
	Body Expr
}

func (e *Expression) Position() Pos {
	if e.Body == nil {
		return Pos{}
	}
	return e.Body.Position()
}

type (
	// Constant holds a literal value: number, string, bytes, bool, None or "...".
	Constant struct {
		Pos
		Value value.Value
	}

	// Tuple is "(a, b)".
	Tuple struct {
		Pos
		Elts []Expr
	}

	// List is "[a, b]".
	List struct {
		Pos
		Elts []Expr
	}

	// Set is "{a, b}".
	Set struct {
		Pos
		Elts []Expr
	}

	// Dict is "{k: v}". A nil key marks a "**mapping" unpacking entry.
	Dict struct {
		Pos
		Keys   []Expr
		Values []Expr
	}

	// Call is "f(args, name=value)".
	Call struct {
		Pos
		Func     Expr
		Args     []Expr
		Keywords []*Keyword
	}

	// Name is an identifier.
	Name struct {
		Pos
		ID string
	}

	// Attribute is "value.attr".
	Attribute struct {
		Pos
		Value Expr
		Attr  string
	}

	// Subscript is "value[index]".
	Subscript struct {
		Pos
		Value Expr
		Index Expr
	}

	// Slice is "lower:upper:step" inside a subscript. Each part may be nil.
	Slice struct {
		Pos
		Lower Expr
		Upper Expr
		Step  Expr
	}

	// Starred is "*value" inside a display or call.
	Starred struct {
		Pos
		Value Expr
	}

	// UnaryOp is "op operand".
	UnaryOp struct {
		Pos
		Op      UnaryOperator
		Operand Expr
	}

	// BinOp is "left op right".
	BinOp struct {
		Pos
		Op    BinaryOperator
		Left  Expr
		Right Expr
	}

	// BoolOp is "a and b and c" or "a or b".
	BoolOp struct {
		Pos
		Op     BoolOperator
		Values []Expr
	}

	// Compare is a comparison chain "a < b <= c".
	Compare struct {
		Pos
		Left        Expr
		Ops         []CmpOperator
		Comparators []Expr
	}

	// IfExp is "body if test else orelse".
	IfExp struct {
		Pos
		Test   Expr
		Body   Expr
		OrElse Expr
	}

	// JoinedStr is an f-string. Its parts are kept unparsed.
	JoinedStr struct {
		Pos
		Raw string
	}

	// ListComp is "[elt for target in iter]".
	ListComp struct {
		Pos
		Elt        Expr
		Generators []*Comprehension
	}

	// SetComp is "{elt for target in iter}".
	SetComp struct {
		Pos
		Elt        Expr
		Generators []*Comprehension
	}

	// DictComp is "{key: value for target in iter}".
	DictComp struct {
		Pos
		Key        Expr
		Value      Expr
		Generators []*Comprehension
	}

	// GeneratorExp is "(elt for target in iter)", also as the sole call argument.
	GeneratorExp struct {
		Pos
		Elt        Expr
		Generators []*Comprehension
	}

	// Lambda is "lambda params: body". Params keep their source spelling
	// ("x", "*args", "**kw", "*", "/"); Defaults lists default values in order.
	Lambda struct {
		Pos
		Params   []string
		Defaults []Expr
		Body     Expr
	}

	// Yield is "yield" or "yield value" inside parentheses.
	Yield struct {
		Pos
		Value Expr
	}

	// YieldFrom is "yield from value" inside parentheses.
	YieldFrom struct {
		Pos
		Value Expr
	}

	// Await is "await value".
	Await struct {
		Pos
		Value Expr
	}

	// NamedExpr is "target := value".
	NamedExpr struct {
		Pos
		Target Expr
		Value  Expr
	}
)

// Comprehension is one "for target in iter if cond" clause.
type Comprehension struct {
	Pos
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// Keyword is a "name=value" call argument. An empty Arg marks "**value".
type Keyword struct {
	Pos
	Arg   string
	Value Expr
}

func (*Constant) exprNode()     {}
func (*Tuple) exprNode()        {}
func (*List) exprNode()         {}
func (*Set) exprNode()          {}
func (*Dict) exprNode()         {}
func (*Call) exprNode()         {}
func (*Name) exprNode()         {}
func (*Attribute) exprNode()    {}
func (*Subscript) exprNode()    {}
func (*Slice) exprNode()        {}
func (*Starred) exprNode()      {}
func (*UnaryOp) exprNode()      {}
func (*BinOp) exprNode()        {}
func (*BoolOp) exprNode()       {}
func (*Compare) exprNode()      {}
func (*IfExp) exprNode()        {}
func (*JoinedStr) exprNode()    {}
func (*ListComp) exprNode()     {}
func (*SetComp) exprNode()      {}
func (*DictComp) exprNode()     {}
func (*GeneratorExp) exprNode() {}
func (*Lambda) exprNode()       {}
func (*Yield) exprNode()        {}
func (*YieldFrom) exprNode()    {}
func (*Await) exprNode()        {}
func (*NamedExpr) exprNode()    {}

// TypeName returns the node type name, e.g. "UnaryOp".
func TypeName(n Node) string {
	switch n.(type) {
	case *Expression:
		return "Expression"
	case *Constant:
		return "Constant"
	case *Tuple:
		return "Tuple"
	case *List:
		return "List"
	case *Set:
		return "Set"
	case *Dict:
		return "Dict"
	case *Call:
		return "Call"
	case *Name:
		return "Name"
	case *Attribute:
		return "Attribute"
	case *Subscript:
		return "Subscript"
	case *Slice:
		return "Slice"
	case *Starred:
		return "Starred"
	case *UnaryOp:
		return "UnaryOp"
	case *BinOp:
		return "BinOp"
	case *BoolOp:
		return "BoolOp"
	case *Compare:
		return "Compare"
	case *IfExp:
		return "IfExp"
	case *JoinedStr:
		return "JoinedStr"
	case *ListComp:
		return "ListComp"
	case *SetComp:
		return "SetComp"
	case *DictComp:
		return "DictComp"
	case *GeneratorExp:
		return "GeneratorExp"
	case *Lambda:
		return "Lambda"
	case *Yield:
		return "Yield"
	case *YieldFrom:
		return "YieldFrom"
	case *Await:
		return "Await"
	case *NamedExpr:
		return "NamedExpr"
	case *Keyword:
		return "Keyword"
	case *Comprehension:
		return "comprehension"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", n)
	}
}
