package ast

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/podhmo/literaleval/value"
)

type field struct {
	name string
	val  any // Node, []Expr, []*Keyword, []*Comprehension, []CmpOperator, []string, string, bool, value.Value, operator
}

func fieldsOf(n Node) []field {
	switch n := n.(type) {
	case *Expression:
		return []field{{"body", n.Body}}
	case *Constant:
		return []field{{"value", n.Value}}
	case *Tuple:
		return []field{{"elts", n.Elts}}
	case *List:
		return []field{{"elts", n.Elts}}
	case *Set:
		return []field{{"elts", n.Elts}}
	case *Dict:
		return []field{{"keys", n.Keys}, {"values", n.Values}}
	case *Call:
		return []field{{"func", n.Func}, {"args", n.Args}, {"keywords", n.Keywords}}
	case *Name:
		return []field{{"id", n.ID}}
	case *Attribute:
		return []field{{"value", n.Value}, {"attr", n.Attr}}
	case *Subscript:
		return []field{{"value", n.Value}, {"slice", n.Index}}
	case *Slice:
		return []field{{"lower", n.Lower}, {"upper", n.Upper}, {"step", n.Step}}
	case *Starred:
		return []field{{"value", n.Value}}
	case *UnaryOp:
		return []field{{"op", n.Op}, {"operand", n.Operand}}
	case *BinOp:
		return []field{{"left", n.Left}, {"op", n.Op}, {"right", n.Right}}
	case *BoolOp:
		return []field{{"op", n.Op}, {"values", n.Values}}
	case *Compare:
		return []field{{"left", n.Left}, {"ops", n.Ops}, {"comparators", n.Comparators}}
	case *IfExp:
		return []field{{"test", n.Test}, {"body", n.Body}, {"orelse", n.OrElse}}
	case *JoinedStr:
		return []field{{"raw", n.Raw}}
	case *ListComp:
		return []field{{"elt", n.Elt}, {"generators", n.Generators}}
	case *SetComp:
		return []field{{"elt", n.Elt}, {"generators", n.Generators}}
	case *GeneratorExp:
		return []field{{"elt", n.Elt}, {"generators", n.Generators}}
	case *DictComp:
		return []field{{"key", n.Key}, {"value", n.Value}, {"generators", n.Generators}}
	case *Lambda:
		return []field{{"params", n.Params}, {"defaults", n.Defaults}, {"body", n.Body}}
	case *Yield:
		return []field{{"value", n.Value}}
	case *YieldFrom:
		return []field{{"value", n.Value}}
	case *Await:
		return []field{{"value", n.Value}}
	case *NamedExpr:
		return []field{{"target", n.Target}, {"value", n.Value}}
	case *Keyword:
		return []field{{"arg", n.Arg}, {"value", n.Value}}
	case *Comprehension:
		return []field{{"target", n.Target}, {"iter", n.Iter}, {"ifs", n.Ifs}, {"is_async", n.IsAsync}}
	}
	return nil
}

// nodeList returns the elements of a field holding a slice of nodes.
func nodeList(v any) ([]Node, bool) {
	var nodes []Node
	switch v := v.(type) {
	case []Expr:
		for _, e := range v {
			nodes = append(nodes, e)
		}
	case []*Keyword:
		for _, k := range v {
			nodes = append(nodes, k)
		}
	case []*Comprehension:
		for _, c := range v {
			nodes = append(nodes, c)
		}
	default:
		return nil, false
	}
	return nodes, true
}

// Dump renders n on one line, e.g. "UnaryOp(op=USub(), operand=Constant(value=1))".
func Dump(n Node) string {
	d := &dumper{}
	d.node(n)
	return d.sb.String()
}

// DumpLimit is Dump that stops descending once more than limit runes have
// been written. The result is a prefix of Dump(n), so a caller that
// truncates it to limit runes gets the same text as truncating Dump(n),
// without walking the whole tree.
func DumpLimit(n Node, limit int) string {
	d := &dumper{limit: limit}
	d.node(n)
	return d.sb.String()
}

type dumper struct {
	sb    strings.Builder
	runes int
	limit int // 0 means no limit
}

func (d *dumper) full() bool { return d.limit > 0 && d.runes > d.limit }

func (d *dumper) write(s string) {
	d.sb.WriteString(s)
	d.runes += utf8.RuneCountInString(s)
}

func (d *dumper) node(n Node) {
	if d.full() {
		return
	}
	if IsNil(n) {
		d.write("None")
		return
	}
	d.write(TypeName(n))
	d.write("(")
	for i, f := range fieldsOf(n) {
		if d.full() {
			return
		}
		if i > 0 {
			d.write(", ")
		}
		d.write(f.name)
		d.write("=")
		d.field(f.val)
	}
	d.write(")")
}

func (d *dumper) field(v any) {
	if nodes, ok := nodeList(v); ok {
		d.write("[")
		for i, n := range nodes {
			if d.full() {
				return
			}
			if i > 0 {
				d.write(", ")
			}
			d.node(n)
		}
		d.write("]")
		return
	}
	switch v := v.(type) {
	case []CmpOperator:
		names := make([]string, len(v))
		for i, op := range v {
			names[i] = op.String() + "()"
		}
		d.write("[" + strings.Join(names, ", ") + "]")
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = value.QuoteStr(s)
		}
		d.write("[" + strings.Join(quoted, ", ") + "]")
	case Node:
		d.node(v)
	case value.Value:
		d.write(value.Repr(v))
	case string:
		d.write(value.QuoteStr(v))
	case bool:
		if v {
			d.write("1")
		} else {
			d.write("0")
		}
	case fmt.Stringer:
		d.write(v.String() + "()")
	case nil:
		d.write("None")
	default:
		d.write(fmt.Sprintf("%v", v))
	}
}

// Fdump writes an indented tree of n to w, one node per line with its
// position, for debugging.
func Fdump(w io.Writer, n Node) error {
	p := &printer{w: w}
	p.node("", n, 0)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, strings.Repeat("  ", depth)+format+"\n", args...)
}

func (p *printer) node(label string, n Node, depth int) {
	if label != "" {
		label += ": "
	}
	if IsNil(n) {
		p.printf(depth, "%sNone", label)
		return
	}
	p.printf(depth, "%s%s @%s", label, TypeName(n), n.Position())
	for _, f := range fieldsOf(n) {
		if nodes, ok := nodeList(f.val); ok {
			p.printf(depth+1, "%s: [%d]", f.name, len(nodes))
			for _, e := range nodes {
				p.node("-", e, depth+2)
			}
			continue
		}
		if v, ok := f.val.(Node); ok {
			p.node(f.name, v, depth+1)
			continue
		}
		d := &dumper{}
		d.field(f.val)
		p.printf(depth+1, "%s: %s", f.name, d.sb.String())
	}
}

// IsNil reports whether n is nil or a typed nil pointer stored in the
// interface, such as (*Constant)(nil).
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
