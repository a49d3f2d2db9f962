// Package convert turns an expression tree into a value, accepting only
// literal shapes: constants, tuple/list/set/dict displays, the empty set()
// call, unary +/- on numeric constants and real±imaginary complex pairs.
//
// Recursive and Stack implement the same contract. Stack never grows the
// goroutine stack with the depth of the input.
package convert

import (
	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/value"
)

// Converter converts a tree into a value or a *MalformedLiteralError.
type Converter interface {
	Convert(root ast.Expr) (value.Value, error)
}

var (
	_ Converter = Recursive{}
	_ Converter = Stack{}
)

func constant(n *ast.Constant) (value.Value, error) {
	if n.Value == nil {
		return nil, reject(n)
	}
	return n.Value, nil
}

// unary accepts +c and -c where c is an int, float or complex constant.
// Booleans are numbers in the literal language but are rejected here.
func unary(n *ast.UnaryOp) (value.Value, error) {
	c, ok := n.Operand.(*ast.Constant)
	if !ok || c == nil || !value.IsNumber(c.Value) {
		return nil, reject(n)
	}
	switch n.Op {
	case ast.UAdd:
		return c.Value, nil
	case ast.USub:
		return negate(c.Value), nil
	}
	return nil, reject(n)
}

func negate(v value.Value) value.Value {
	switch v := v.(type) {
	case value.Int:
		return v.Neg()
	case value.Float:
		return -v
	case value.Complex:
		return -v
	}
	return v
}

// isEmptySetCall reports whether n is exactly "set()".
func isEmptySetCall(n *ast.Call) bool {
	name, ok := n.Func.(*ast.Name)
	return ok && name != nil && name.ID == "set" && len(n.Args) == 0 && len(n.Keywords) == 0
}

// isPlainDict reports whether keys and values pair up with no "**" entry.
func isPlainDict(n *ast.Dict) bool {
	if len(n.Keys) != len(n.Values) {
		return false
	}
	for _, k := range n.Keys {
		if k == nil {
			return false
		}
	}
	return true
}

// isComplexPair checks the shape of "real ± imag": the left operand is a
// constant or unary op, the right one a constant. Operand kinds are
// checked after conversion by complexPair.
func isComplexPair(n *ast.BinOp) bool {
	switch n.Left.(type) {
	case *ast.Constant, *ast.UnaryOp:
	default:
		return false
	}
	_, ok := n.Right.(*ast.Constant)
	return ok
}

func complexPair(n *ast.BinOp, left, right value.Value) (value.Value, error) {
	im, ok := right.(value.Complex)
	if !ok || !value.IsRealNumber(left) {
		return nil, reject(n)
	}
	if n.Op != ast.Add && n.Op != ast.Sub {
		return nil, reject(n)
	}

	var re float64
	switch left := left.(type) {
	case value.Int:
		f, err := left.Float64()
		if err != nil {
			return nil, err
		}
		re = f
	case value.Float:
		re = float64(left)
	}
	// the real operand is promoted to complex(re, 0) before the operation
	if n.Op == ast.Add {
		return value.Complex(complex(re+real(im), 0+imag(im))), nil
	}
	return value.Complex(complex(re-real(im), 0-imag(im))), nil
}

func makeTuple(vals []value.Value) value.Value {
	return value.Tuple(append(make([]value.Value, 0, len(vals)), vals...))
}

func makeList(vals []value.Value) value.Value {
	return value.List(append(make([]value.Value, 0, len(vals)), vals...))
}

func makeSet(vals []value.Value) (value.Value, error) {
	s := value.NewSet()
	for _, v := range vals {
		if err := s.Add(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// makeDict builds a dict from interleaved key, value, key, value... items.
func makeDict(kv []value.Value) (value.Value, error) {
	d := value.NewDict()
	for i := 0; i+1 < len(kv); i += 2 {
		if err := d.Set(kv[i], kv[i+1]); err != nil {
			return nil, err
		}
	}
	return d, nil
}
