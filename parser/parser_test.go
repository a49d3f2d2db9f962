package parser

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/podhmo/literaleval/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

type fixture struct {
	name  string
	parts map[string]string
}

// loadFixtures reads an archive whose files are named "<case>/<part>" and
// groups them by case, keeping archive order.
func loadFixtures(t *testing.T, name string) []fixture {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var cases []fixture
	index := map[string]int{}
	for _, f := range ar.Files {
		caseName, part, ok := strings.Cut(f.Name, "/")
		require.True(t, ok, "file %q in %s is not <case>/<part>", f.Name, name)
		i, seen := index[caseName]
		if !seen {
			i = len(cases)
			index[caseName] = i
			cases = append(cases, fixture{name: caseName, parts: map[string]string{}})
		}
		cases[i].parts[part] = strings.TrimSuffix(string(f.Data), "\n")
	}
	require.NotEmpty(t, cases)
	return cases
}

func TestParseExpr_Dump(t *testing.T) {
	for _, tc := range loadFixtures(t, "dump.txtar") {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := ParseExpr(tc.parts["input"])
			require.NoError(t, err)
			assert.Equal(t, tc.parts["dump"], ast.Dump(tree.Body))
		})
	}
}

func TestParseExpr_Errors(t *testing.T) {
	for _, tc := range loadFixtures(t, "errors.txtar") {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseExpr(tc.parts["input"])
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tc.parts["error"], syntaxErr.Error())
		})
	}
}

func TestParseExpr_Positions(t *testing.T) {
	tree, err := ParseExpr("{'a': 1,\n'b':2,\n'c':++3,\n'd':4}")
	require.NoError(t, err)

	d, ok := tree.Body.(*ast.Dict)
	require.True(t, ok)
	assert.Equal(t, ast.Pos{Line: 1, Col: 1}, d.Position())
	require.Len(t, d.Keys, 4)
	for i, k := range d.Keys {
		assert.Equal(t, i+1, k.Position().Line, "key %d", i)
	}
	outer := d.Values[2].(*ast.UnaryOp)
	assert.Equal(t, ast.Pos{Line: 3, Col: 5}, outer.Position())
	assert.Equal(t, ast.Pos{Line: 3, Col: 6}, outer.Operand.Position())

	// binary operators take the position of their left operand
	tree, err = ParseExpr("(\n  1 +\n  2j)")
	require.NoError(t, err)
	assert.Equal(t, ast.Pos{Line: 2, Col: 3}, tree.Body.Position())
}

func TestParseExpr_MaxIntDigits(t *testing.T) {
	p := New(WithMaxIntDigits(4000))

	_, err := p.ParseExpr(strings.Repeat("3", 4000))
	require.NoError(t, err)

	_, err = p.ParseExpr(strings.Repeat("3", 4001))
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, syntaxErr.Msg, "Exceeds the limit ")
	assert.Contains(t, syntaxErr.Msg, " Consider hexadecimal ")

	t.Run("hexadecimal is not limited", func(t *testing.T) {
		_, err := p.ParseExpr("0x" + strings.Repeat("f", 5000))
		assert.NoError(t, err)
	})
	t.Run("zero disables the limit", func(t *testing.T) {
		_, err := New(WithMaxIntDigits(0)).ParseExpr(strings.Repeat("9", 5000))
		assert.NoError(t, err)
	})
	t.Run("underscores do not count", func(t *testing.T) {
		_, err := p.ParseExpr(strings.Repeat("3_", 3999) + "3")
		assert.NoError(t, err)
	})
}

func TestParseExpr_Nesting(t *testing.T) {
	nested := func(n int) string { return strings.Repeat("(", n) + "1" + strings.Repeat(")", n) }

	_, err := ParseExpr(nested(DefaultMaxNesting))
	require.NoError(t, err)

	_, err = ParseExpr(nested(DefaultMaxNesting + 1))
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "too many nested parentheses", syntaxErr.Msg)
	assert.Equal(t, DefaultMaxNesting+1, syntaxErr.Col)

	_, err = New(WithMaxNesting(0)).ParseExpr(nested(DefaultMaxNesting + 1))
	assert.NoError(t, err)

	t.Run("unary chains", func(t *testing.T) {
		_, err := ParseExpr(strings.Repeat("-", 500) + "1")
		require.NoError(t, err)

		_, err = ParseExpr(strings.Repeat("-", maxExprDepth+1) + "1")
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, "expression too deeply nested", syntaxErr.Msg)
	})
}

func TestTokenize(t *testing.T) {
	toks, err := New().Tokenize("[1, 'a']  # c")
	require.NoError(t, err)

	var got []string
	for _, tok := range toks {
		got = append(got, tok.Kind.String()+":"+tok.Text)
	}
	assert.Equal(t, []string{"OP:[", "NUMBER:1", "OP:,", "STRING:'a'", "OP:]", "NEWLINE:", "EOF:"}, got)
	assert.Equal(t, ast.Pos{Line: 1, Col: 5}, toks[3].Pos)
}

func TestSyntaxError_Snippet(t *testing.T) {
	src := "\n -1"
	_, err := ParseExpr(src)
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, KindIndentation, syntaxErr.Kind)

	want := "IndentationError at 2:2: unexpected indent\n\n" +
		"   1 | \n" +
		"   2 |  -1\n" +
		"     |  ^\n"
	assert.Equal(t, want, syntaxErr.Snippet(src))
}
