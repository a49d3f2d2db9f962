package convert

import (
	"fmt"

	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/value"
)

// Stack converts with an explicit worklist of frames and a value stack
// instead of recursion, so deeply nested input grows the heap, not the
// goroutine stack.
//
// A container node is visited twice. The first visit schedules a post
// frame for the node and then one frame per child, pushed in reverse so
// that children are reduced left to right. The post visit pops the
// children's values and pushes the combined value. Leaves push their value
// on the first visit. The walk stops at the first rejected node and drops
// whatever partial values were accumulated.
type Stack struct {
	// MaxFrames caps the worklist length. Zero means no limit.
	MaxFrames int
}

type phase uint8

const (
	phasePre phase = iota
	phasePost
)

type frame struct {
	node  ast.Expr
	phase phase
}

// Convert implements Converter.
func (s Stack) Convert(root ast.Expr) (value.Value, error) {
	frames := []frame{{node: root, phase: phasePre}}
	var values []value.Value

	for len(frames) > 0 {
		f := frames[len(frames)-1]
		frames = frames[:len(frames)-1]

		if f.phase == phasePost {
			var err error
			values, err = reduce(f.node, values)
			if err != nil {
				return nil, err
			}
			continue
		}

		if ast.IsNil(f.node) {
			return nil, reject(f.node)
		}
		switch n := f.node.(type) {
		case *ast.Constant:
			v, err := constant(n)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case *ast.Tuple:
			frames = schedule(frames, n, n.Elts)
		case *ast.List:
			frames = schedule(frames, n, n.Elts)
		case *ast.Set:
			frames = schedule(frames, n, n.Elts)
		case *ast.Call:
			if !isEmptySetCall(n) {
				return nil, reject(n)
			}
			values = append(values, value.NewSet())
		case *ast.Dict:
			if !isPlainDict(n) {
				return nil, reject(n)
			}
			frames = append(frames, frame{node: n, phase: phasePost})
			for i := len(n.Keys) - 1; i >= 0; i-- {
				frames = append(frames,
					frame{node: n.Values[i], phase: phasePre},
					frame{node: n.Keys[i], phase: phasePre})
			}
		case *ast.BinOp:
			if !isComplexPair(n) {
				return nil, reject(n)
			}
			frames = append(frames,
				frame{node: n, phase: phasePost},
				frame{node: n.Right, phase: phasePre},
				frame{node: n.Left, phase: phasePre})
		case *ast.UnaryOp:
			v, err := unary(n)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		default:
			return nil, reject(f.node)
		}

		if s.MaxFrames > 0 && len(frames) > s.MaxFrames {
			return nil, ErrStackLimit
		}
	}

	if len(values) != 1 {
		panic(fmt.Sprintf("convert: value stack holds %d values after the walk, want 1", len(values)))
	}
	return values[0], nil
}

func schedule(frames []frame, parent ast.Expr, children []ast.Expr) []frame {
	frames = append(frames, frame{node: parent, phase: phasePost})
	for i := len(children) - 1; i >= 0; i-- {
		frames = append(frames, frame{node: children[i], phase: phasePre})
	}
	return frames
}

// reduce pops the values of node's children and pushes the combined value.
func reduce(node ast.Expr, values []value.Value) ([]value.Value, error) {
	switch n := node.(type) {
	case *ast.Tuple:
		rest, items := pop(values, len(n.Elts))
		return append(rest, makeTuple(items)), nil
	case *ast.List:
		rest, items := pop(values, len(n.Elts))
		return append(rest, makeList(items)), nil
	case *ast.Set:
		rest, items := pop(values, len(n.Elts))
		v, err := makeSet(items)
		if err != nil {
			return nil, err
		}
		return append(rest, v), nil
	case *ast.Dict:
		rest, kv := pop(values, 2*len(n.Keys))
		v, err := makeDict(kv)
		if err != nil {
			return nil, err
		}
		return append(rest, v), nil
	case *ast.BinOp:
		rest, operands := pop(values, 2)
		v, err := complexPair(n, operands[0], operands[1])
		if err != nil {
			return nil, err
		}
		return append(rest, v), nil
	}
	panic(fmt.Sprintf("convert: unexpected post frame for %s", ast.TypeName(node)))
}

// pop splits off the last n values. The returned tail aliases values and
// must be consumed before rest is appended to.
func pop(values []value.Value, n int) (rest, tail []value.Value) {
	if len(values) < n {
		panic(fmt.Sprintf("convert: value stack holds %d values, need %d", len(values), n))
	}
	k := len(values) - n
	return values[:k], values[k:]
}
