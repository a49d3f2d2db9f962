package ast

import (
	"strings"
	"testing"

	"github.com/podhmo/literaleval/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	testCases := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "unary",
			node: &UnaryOp{Op: USub, Operand: &Constant{Value: value.NewInt(1)}},
			want: "UnaryOp(op=USub(), operand=Constant(value=1))",
		},
		{
			name: "complex pair",
			node: &BinOp{Op: Add, Left: &Constant{Value: value.Float(1.5)}, Right: &Constant{Value: value.Complex(2i)}},
			want: "BinOp(left=Constant(value=1.5), op=Add(), right=Constant(value=2j))",
		},
		{
			name: "dict with unpacking",
			node: &Dict{Keys: []Expr{nil}, Values: []Expr{&Name{ID: "m"}}},
			want: "Dict(keys=[None], values=[Name(id='m')])",
		},
		{
			name: "call",
			node: &Call{
				Func:     &Name{ID: "f"},
				Args:     []Expr{&Constant{Value: value.Str("a")}},
				Keywords: []*Keyword{{Arg: "k", Value: &Constant{Value: value.None{}}}},
			},
			want: "Call(func=Name(id='f'), args=[Constant(value='a')], keywords=[Keyword(arg='k', value=Constant(value=None))])",
		},
		{
			name: "compare",
			node: &Compare{Left: &Name{ID: "a"}, Ops: []CmpOperator{Lt, NotIn}, Comparators: []Expr{&Name{ID: "b"}, &Name{ID: "c"}}},
			want: "Compare(left=Name(id='a'), ops=[Lt(), NotIn()], comparators=[Name(id='b'), Name(id='c')])",
		},
		{
			name: "slice",
			node: &Slice{Upper: &Constant{Value: value.NewInt(2)}},
			want: "Slice(lower=None, upper=Constant(value=2), step=None)",
		},
		{
			name: "constant without value",
			node: &Constant{},
			want: "Constant(value=None)",
		},
		{
			name: "expression",
			node: &Expression{Body: &Tuple{Elts: []Expr{}}},
			want: "Expression(body=Tuple(elts=[]))",
		},
		{
			name: "nil node",
			node: (*List)(nil),
			want: "None",
		},
		{
			name: "typed nil field",
			node: &Attribute{Value: (*Name)(nil), Attr: "a"},
			want: "Attribute(value=None, attr='a')",
		},
		{
			name: "comprehension",
			node: &ListComp{
				Elt: &Name{ID: "x"},
				Generators: []*Comprehension{{
					Target: &Name{ID: "x"},
					Iter:   &Name{ID: "y"},
					Ifs:    []Expr{&Name{ID: "x"}},
				}},
			},
			want: "ListComp(elt=Name(id='x'), generators=[comprehension(target=Name(id='x'), iter=Name(id='y'), ifs=[Name(id='x')], is_async=0)])",
		},
		{
			name: "lambda",
			node: &Lambda{Params: []string{"x", "*args"}, Defaults: []Expr{}, Body: &Name{ID: "x"}},
			want: "Lambda(params=['x', '*args'], defaults=[], body=Name(id='x'))",
		},
		{
			name: "named expression",
			node: &NamedExpr{Target: &Name{ID: "y"}, Value: &Yield{}},
			want: "NamedExpr(target=Name(id='y'), value=Yield(value=None))",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Dump(tc.node))
		})
	}
}

func TestFdump(t *testing.T) {
	node := &List{
		Pos: Pos{Line: 1, Col: 1},
		Elts: []Expr{
			&Constant{Pos: Pos{Line: 1, Col: 2}, Value: value.NewInt(1)},
			&UnaryOp{Pos: Pos{Line: 2, Col: 1}, Op: UAdd, Operand: &Constant{Pos: Pos{Line: 2, Col: 2}, Value: value.Bool(true)}},
		},
	}
	var sb strings.Builder
	require.NoError(t, Fdump(&sb, node))

	want := `List @1:1
  elts: [2]
    -: Constant @1:2
      value: 1
    -: UnaryOp @2:1
      op: UAdd()
      operand: Constant @2:2
        value: True
`
	assert.Equal(t, want, sb.String())
}

func TestDumpLimit(t *testing.T) {
	var node Expr = &Constant{Value: value.NewInt(0)}
	for i := 0; i < 50; i++ {
		node = &List{Elts: []Expr{node, &Name{ID: "n"}}}
	}
	full := Dump(node)

	got := DumpLimit(node, 40)
	assert.True(t, strings.HasPrefix(full, got), got)
	assert.Greater(t, len(got), 40)
	assert.Less(t, len(got), 60)

	small := &Name{ID: "x"}
	assert.Equal(t, Dump(small), DumpLimit(small, 40))
	assert.Equal(t, full, DumpLimit(node, 0))
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil((*Constant)(nil)))
	assert.True(t, IsNil((*Comprehension)(nil)))
	assert.False(t, IsNil(&Name{}))
}

func TestPos(t *testing.T) {
	assert.Equal(t, "-", Pos{}.String())
	assert.False(t, Pos{}.IsValid())
	assert.Equal(t, "3:7", Pos{Line: 3, Col: 7}.String())

	e := &Expression{Body: &Name{Pos: Pos{Line: 2, Col: 1}, ID: "x"}}
	assert.Equal(t, 2, e.Position().Line)
	assert.Equal(t, Pos{}, (&Expression{}).Position())
}

func TestOperatorNames(t *testing.T) {
	assert.Equal(t, "USub", USub.String())
	assert.Equal(t, "-", USub.Symbol())
	assert.Equal(t, "Sub", Sub.String())
	assert.Equal(t, "+", Add.Symbol())
	assert.Equal(t, "IsNot", IsNot.String())
	assert.Equal(t, "And", And.String())
}
