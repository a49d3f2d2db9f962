package convert_test

import (
	"strings"
	"testing"

	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/internal/convert"
	"github.com/podhmo/literaleval/parser"
)

var benchCases = []struct {
	name string
	src  string
}{
	{"constant", "42"},
	{"unary", "-42"},
	{"complex", "1 + 2j"},
	{"empty_tuple", "()"},
	{"empty_list", "[]"},
	{"empty_set", "set()"},
	{"empty_dict", "{}"},
	{"tuple", "(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)"},
	{"list", "[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]"},
	{"set", "{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}"},
	{"dict", "{'a': 1, 'b': 2, 'c': 3, 'd': 4, 'e': 5, 'f': 6, 'g': 7, 'h': 8, 'i': 9, 'j': 10}"},
	{"nested", strings.Repeat("[0, ", 32) + strings.Repeat("]", 32)},
}

// Only the tree walk is measured; parsing happens once per case.
func BenchmarkConvert(b *testing.B) {
	for _, s := range strategies {
		for _, bc := range benchCases {
			tree, err := parser.ParseExpr(bc.src)
			if err != nil {
				b.Fatalf("parse %q: %v", bc.src, err)
			}
			b.Run(s.name+"/"+bc.name, func(b *testing.B) {
				benchConvert(b, s.conv, tree.Body)
			})
		}
	}
}

func benchConvert(b *testing.B, conv convert.Converter, root ast.Expr) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := conv.Convert(root); err != nil {
			b.Fatal(err)
		}
	}
}
