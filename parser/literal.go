package parser

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/podhmo/literaleval/value"
)

func (l *lexer) number() error {
	s := l.src
	start := l.pos
	p := l.position(start)
	i := start

	if s[i] == '0' && i+1 < len(s) && strings.IndexByte("xXoObB", s[i+1]) >= 0 {
		radix := s[i+1]
		i += 2
		for i < len(s) && (isRadixDigit(s[i], radix) || s[i] == '_') {
			i++
		}
		if i < len(s) && isDigit(s[i]) {
			return errorf(p.Line, p.Col, "invalid digit '%c' in %s literal", s[i], radixName(radix))
		}
		text := s[start:i]
		n, ok := new(big.Int).SetString(text, 0)
		if !ok || !endOfNumber(s, i) {
			return errorf(p.Line, p.Col, "invalid %s literal", radixName(radix))
		}
		l.pos = i
		l.emit(Token{Kind: NUMBER, Text: text, Pos: p, Value: value.NewBigInt(n)})
		return nil
	}

	i = scanDigits(s, i)
	isFloat := false
	if i < len(s) && s[i] == '.' {
		isFloat = true
		i = scanDigits(s, i+1)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		signed := j < len(s) && (s[j] == '+' || s[j] == '-')
		if signed {
			j++
		}
		switch {
		case j < len(s) && isDigit(s[j]):
			isFloat = true
			i = scanDigits(s, j)
		case signed || !endOfNumber(s, i):
			return errorf(p.Line, p.Col, "invalid decimal literal")
		}
	}
	body := s[start:i]
	imaginary := false
	if i < len(s) && (s[i] == 'j' || s[i] == 'J') {
		imaginary = true
		i++
	}
	if !endOfNumber(s, i) {
		if imaginary {
			return errorf(p.Line, p.Col, "invalid imaginary literal")
		}
		return errorf(p.Line, p.Col, "invalid decimal literal")
	}
	for _, part := range strings.FieldsFunc(body, func(r rune) bool { return strings.ContainsRune(".eE+-", r) }) {
		if strings.HasPrefix(part, "_") || strings.HasSuffix(part, "_") || strings.Contains(part, "__") {
			return errorf(p.Line, p.Col, "invalid decimal literal")
		}
	}
	clean := strings.ReplaceAll(body, "_", "")
	text := s[start:i]
	l.pos = i

	if imaginary || isFloat {
		f, err := parseFloat(clean)
		if err != nil {
			return errorf(p.Line, p.Col, "invalid decimal literal")
		}
		var v value.Value = value.Float(f)
		if imaginary {
			v = value.Complex(complex(0, f))
		}
		l.emit(Token{Kind: NUMBER, Text: text, Pos: p, Value: v})
		return nil
	}

	if len(clean) > 1 && clean[0] == '0' && strings.Trim(clean, "0") != "" {
		return errorf(p.Line, p.Col, "leading zeros in decimal integer literals are not permitted; use an 0o prefix for octal integers")
	}
	if limit := l.cfg.MaxIntDigits; limit > 0 && len(clean) > limit {
		return errorf(p.Line, p.Col,
			"Exceeds the limit (%d digits) for integer string conversion: value has %d digits; use WithMaxIntDigits to increase the limit - Consider hexadecimal for huge integer literals to avoid decimal conversion limits.",
			limit, len(clean))
	}
	n, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return errorf(p.Line, p.Col, "invalid decimal literal")
	}
	l.emit(Token{Kind: NUMBER, Text: text, Pos: p, Value: value.NewBigInt(n)})
	return nil
}

// numberFollowers are the keywords that may directly follow a number, as in
// "1if x else y".
var numberFollowers = []string{"and", "else", "for", "or", "not", "if", "in", "is"}

// endOfNumber reports whether a number may end at s[i].
func endOfNumber(s string, i int) bool {
	if i >= len(s) || !isIdentByte(s[i]) {
		return true
	}
	for _, kw := range numberFollowers {
		if strings.HasPrefix(s[i:], kw) {
			return true
		}
	}
	return false
}

func isRadixDigit(c, radix byte) bool {
	switch radix {
	case 'x', 'X':
		return isDigit(c) || 'a' <= c|0x20 && c|0x20 <= 'f'
	case 'o', 'O':
		return '0' <= c && c <= '7'
	}
	return c == '0' || c == '1'
}

func scanDigits(s string, i int) int {
	for i < len(s) && (isDigit(s[i]) || s[i] == '_') {
		i++
	}
	return i
}

// parseFloat accepts out-of-range literals the way the language does:
// 1e400 is inf and 1e-400 is 0.0.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return f, nil
	}
	return f, err
}

func radixName(c byte) string {
	switch c {
	case 'x', 'X':
		return "hexadecimal"
	case 'o', 'O':
		return "octal"
	default:
		return "binary"
	}
}

// str scans a string literal whose prefix starts at start and whose opening
// quote is at l.pos.
func (l *lexer) str(start int, prefix string) error {
	s := l.src
	p := l.position(start)
	lower := strings.ToLower(prefix)
	raw := strings.Contains(lower, "r")
	isBytes := strings.Contains(lower, "b")
	isF := strings.Contains(lower, "f")

	q := s[l.pos]
	triple := strings.HasPrefix(s[l.pos:], strings.Repeat(string(q), 3))
	i := l.pos + 1
	if triple {
		i = l.pos + 3
	}
	bodyStart, bodyEnd := i, -1
	for bodyEnd < 0 {
		if i >= len(s) {
			if triple {
				return errorf(p.Line, p.Col, "unterminated triple-quoted string literal (detected at line %d)", l.line)
			}
			return errorf(p.Line, p.Col, "unterminated string literal (detected at line %d)", l.line)
		}
		switch c := s[i]; {
		case c == '\\':
			if i+1 < len(s) && s[i+1] == '\n' {
				l.line++
				l.lineStart = i + 2
			}
			i += 2
		case c == '\n':
			if !triple {
				return errorf(p.Line, p.Col, "unterminated string literal (detected at line %d)", l.line)
			}
			i++
			l.line++
			l.lineStart = i
		case c == q && (!triple || strings.HasPrefix(s[i:], strings.Repeat(string(q), 3))):
			bodyEnd = i
			if triple {
				i += 3
			} else {
				i++
			}
		default:
			i++
		}
	}
	l.pos = i
	text := s[start:i]
	body := s[bodyStart:bodyEnd]

	if isF {
		l.emit(Token{Kind: STRING, Text: text, Pos: p, FString: true})
		return nil
	}
	decoded, msg := decodeString(body, raw, isBytes)
	if msg != "" {
		return errorf(p.Line, p.Col, "%s", msg)
	}
	var v value.Value = value.Str(decoded)
	if isBytes {
		v = value.Bytes(decoded)
	}
	l.emit(Token{Kind: STRING, Text: text, Pos: p, Value: v})
	return nil
}

// decodeString processes escape sequences. A non-empty message reports a
// malformed literal.
func decodeString(body string, raw, isBytes bool) (string, string) {
	if isBytes {
		for i := 0; i < len(body); i++ {
			if body[i] >= utf8.RuneSelf {
				return "", "bytes can only contain ASCII literal characters"
			}
		}
	}
	if raw || strings.IndexByte(body, '\\') < 0 {
		return body, ""
	}

	var sb strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			i++
			continue
		}
		e := body[i+1]
		i += 2
		switch e {
		case '\n':
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(e - '0')
			for n := 0; n < 2 && i < len(body) && '0' <= body[i] && body[i] <= '7'; n++ {
				v = v*8 + int(body[i]-'0')
				i++
			}
			writeCode(&sb, v, isBytes)
		case 'x':
			v, ok := hexDigits(body, i, 2)
			if !ok {
				return "", `truncated \xXX escape`
			}
			i += 2
			writeCode(&sb, v, isBytes)
		case 'u', 'U':
			if isBytes {
				sb.WriteByte('\\')
				sb.WriteByte(e)
				continue
			}
			width := 4
			if e == 'U' {
				width = 8
			}
			v, ok := hexDigits(body, i, width)
			if !ok {
				if e == 'U' {
					return "", `truncated \UXXXXXXXX escape`
				}
				return "", `truncated \uXXXX escape`
			}
			if v > utf8.MaxRune {
				return "", `illegal Unicode character`
			}
			if 0xD800 <= v && v <= 0xDFFF {
				return "", `surrogate code points are not supported`
			}
			i += width
			sb.WriteRune(rune(v))
		case 'N':
			if isBytes {
				sb.WriteString(`\N`)
				continue
			}
			return "", `\N{...} escapes are not supported`
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String(), ""
}

func writeCode(sb *strings.Builder, v int, isBytes bool) {
	if isBytes {
		sb.WriteByte(byte(v))
		return
	}
	sb.WriteRune(rune(v))
}

func hexDigits(s string, i, n int) (int, bool) {
	if i+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[i:i+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
