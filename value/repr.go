package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Repr renders v as literal text. For every value built from finite
// numbers, evaluating the result again yields an equal value.
func Repr(v Value) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case Int:
		sb.WriteString(v.String())
	case Float:
		sb.WriteString(FormatFloat(float64(v)))
	case Complex:
		sb.WriteString(FormatComplex(complex128(v)))
	case Str:
		sb.WriteString(QuoteStr(string(v)))
	case Bytes:
		sb.WriteString(QuoteBytes(string(v)))
	case Bool:
		if v {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case None:
		sb.WriteString("None")
	case Ellipsis:
		sb.WriteString("...")
	case Tuple:
		sb.WriteString("(")
		writeItems(sb, v)
		if len(v) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case List:
		sb.WriteString("[")
		writeItems(sb, v)
		sb.WriteString("]")
	case *Set:
		if v.Len() == 0 {
			sb.WriteString("set()")
			return
		}
		sb.WriteString("{")
		writeItems(sb, v.items)
		sb.WriteString("}")
	case *Dict:
		sb.WriteString("{")
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, e.Key)
			sb.WriteString(": ")
			writeRepr(sb, e.Value)
		}
		sb.WriteString("}")
	default:
		fmt.Fprintf(sb, "<%T>", v)
	}
}

func writeItems(sb *strings.Builder, items []Value) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeRepr(sb, item)
	}
}

// FormatFloat formats f with the shortest representation that reads back
// to the same float, always showing a fractional part or an exponent.
func FormatFloat(f float64) string {
	s := formatFloatPart(f)
	if strings.ContainsAny(s, ".en") { // "inf" and "nan" contain 'n'
		return s
	}
	return s + ".0"
}

// formatFloatPart switches to exponent notation below 1e-4 and at or
// above 1e16.
func formatFloatPart(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatComplex formats c as "2j" when the real part is +0 and as
// "(1+2j)" otherwise.
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if re == 0 && !math.Signbit(re) {
		return formatFloatPart(im) + "j"
	}
	imPart := formatFloatPart(im)
	if !strings.HasPrefix(imPart, "-") {
		imPart = "+" + imPart
	}
	return "(" + formatFloatPart(re) + imPart + "j)"
}

// QuoteStr quotes s with single quotes unless s contains a single quote and
// no double quote.
func QuoteStr(s string) string {
	quote := pickQuote(s)
	var sb strings.Builder
	sb.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		switch {
		case r == rune(quote) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x80 || unicode.IsPrint(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// QuoteBytes quotes b as a bytes literal, escaping everything outside
// printable ASCII.
func QuoteBytes(b string) string {
	quote := pickQuote(b)
	var sb strings.Builder
	sb.WriteString("b")
	sb.WriteByte(quote)
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

func pickQuote(s string) byte {
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		return '"'
	}
	return '\''
}
