package convert

import (
	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/value"
)

// Recursive converts by direct recursive descent. Each nesting level of the
// input costs one Go stack frame.
type Recursive struct{}

// Convert implements Converter.
func (Recursive) Convert(root ast.Expr) (value.Value, error) {
	return convertNode(root)
}

func convertNode(node ast.Expr) (value.Value, error) {
	if ast.IsNil(node) {
		return nil, reject(node)
	}
	switch n := node.(type) {
	case *ast.Constant:
		return constant(n)
	case *ast.Tuple:
		vals, err := convertAll(n.Elts)
		if err != nil {
			return nil, err
		}
		return makeTuple(vals), nil
	case *ast.List:
		vals, err := convertAll(n.Elts)
		if err != nil {
			return nil, err
		}
		return makeList(vals), nil
	case *ast.Set:
		vals, err := convertAll(n.Elts)
		if err != nil {
			return nil, err
		}
		return makeSet(vals)
	case *ast.Call:
		if isEmptySetCall(n) {
			return value.NewSet(), nil
		}
	case *ast.Dict:
		if isPlainDict(n) {
			kv := make([]value.Value, 0, 2*len(n.Keys))
			for i := range n.Keys {
				k, err := convertNode(n.Keys[i])
				if err != nil {
					return nil, err
				}
				v, err := convertNode(n.Values[i])
				if err != nil {
					return nil, err
				}
				kv = append(kv, k, v)
			}
			return makeDict(kv)
		}
	case *ast.BinOp:
		if isComplexPair(n) {
			left, err := convertNode(n.Left)
			if err != nil {
				return nil, err
			}
			right, err := convertNode(n.Right)
			if err != nil {
				return nil, err
			}
			return complexPair(n, left, right)
		}
	case *ast.UnaryOp:
		return unary(n)
	}
	return nil, reject(node)
}

func convertAll(elts []ast.Expr) ([]value.Value, error) {
	vals := make([]value.Value, 0, len(elts))
	for _, elt := range elts {
		v, err := convertNode(elt)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
