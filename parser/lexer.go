package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/podhmo/literaleval/ast"
)

type openBracket struct {
	ch  byte
	pos ast.Pos
}

type lexer struct {
	cfg Config
	src string

	pos       int // byte offset of the next unread byte
	line      int
	lineStart int // byte offset where the current line begins

	tokens        []Token
	brackets      []openBracket
	atLineStart   bool
	lineHasTokens bool
}

func tokenize(src string, cfg Config) ([]Token, error) {
	if err := checkUTF8(src); err != nil {
		return nil, err
	}
	l := &lexer{cfg: cfg, src: src, line: 1, atLineStart: true}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

// checkUTF8 reports the first byte of src that is not valid UTF-8.
func checkUTF8(src string) error {
	if utf8.ValidString(src) {
		return nil
	}
	line, lineStart := 1, 0
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return errorf(line, i-lineStart+1, "(unicode error) 'utf-8' codec can't decode byte 0x%02x", src[i])
		}
		if r == '\n' {
			line, lineStart = line+1, i+1
		}
		i += size
	}
	return nil
}

func (l *lexer) position(offset int) ast.Pos {
	return ast.Pos{Line: l.line, Col: offset - l.lineStart + 1}
}

func (l *lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
	l.lineHasTokens = true
}

func (l *lexer) run() error {
	for {
		if l.atLineStart && len(l.brackets) == 0 {
			l.atLineStart = false
			if err := l.indentation(); err != nil {
				return err
			}
		}
		if l.pos >= len(l.src) {
			break
		}

		c := l.src[l.pos]
		var err error
		switch {
		case c == ' ' || c == '\t' || c == '\f':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '\r' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n':
			l.pos++
		case c == '\n' || c == '\r':
			l.newline()
		case c == '\\':
			err = l.continuation()
		case isDigit(c) || c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
			err = l.number()
		case c == '\'' || c == '"':
			err = l.str(l.pos, "")
		case c == '_' || c >= utf8.RuneSelf || isLetter(c):
			err = l.name()
		default:
			err = l.operator()
		}
		if err != nil {
			return err
		}
	}

	if n := len(l.brackets); n > 0 {
		open := l.brackets[n-1]
		return errorf(open.pos.Line, open.pos.Col, "'%c' was never closed", open.ch)
	}
	end := l.position(l.pos)
	if l.lineHasTokens {
		l.tokens = append(l.tokens, Token{Kind: NEWLINE, Pos: end})
	}
	l.tokens = append(l.tokens, Token{Kind: EOF, Pos: end})
	return nil
}

// indentation rejects a logical line that starts with whitespace. Blank and
// comment-only lines are allowed to be indented.
func (l *lexer) indentation() error {
	i := l.pos
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t' || l.src[i] == '\f') {
		i++
	}
	if i == l.pos || i >= len(l.src) {
		return nil
	}
	switch l.src[i] {
	case '\n', '\r', '#':
		return nil
	}
	return &SyntaxError{Kind: KindIndentation, Msg: "unexpected indent", Line: l.line, Col: i - l.lineStart + 1}
}

func (l *lexer) newline() {
	if len(l.brackets) == 0 && l.lineHasTokens {
		l.tokens = append(l.tokens, Token{Kind: NEWLINE, Text: "\n", Pos: l.position(l.pos)})
		l.lineHasTokens = false
	}
	l.pos++
	l.line++
	l.lineStart = l.pos
	if len(l.brackets) == 0 {
		l.atLineStart = true
	}
}

func (l *lexer) continuation() error {
	rest := l.src[l.pos+1:]
	switch {
	case strings.HasPrefix(rest, "\n"):
		l.pos += 2
	case strings.HasPrefix(rest, "\r\n"):
		l.pos += 3
	case rest == "":
		p := l.position(l.pos)
		return errorf(p.Line, p.Col, "unexpected EOF while parsing")
	default:
		p := l.position(l.pos)
		return errorf(p.Line, p.Col, "unexpected character after line continuation character")
	}
	l.line++
	l.lineStart = l.pos
	return nil
}

func (l *lexer) name() error {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r != '_' && !unicode.IsLetter(r) && !(l.pos > start && unicode.IsDigit(r)) {
			break
		}
		l.pos += size
	}
	if l.pos == start {
		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		p := l.position(l.pos)
		return errorf(p.Line, p.Col, "invalid character '%c' (U+%04X)", r, r)
	}
	text := l.src[start:l.pos]
	if l.pos < len(l.src) && (l.src[l.pos] == '\'' || l.src[l.pos] == '"') && isStringPrefix(text) {
		return l.str(start, text)
	}
	l.emit(Token{Kind: NAME, Text: text, Pos: l.position(start)})
	return nil
}

func (l *lexer) operator() error {
	start := l.pos
	p := l.position(start)
	for _, op := range operators {
		if !strings.HasPrefix(l.src[start:], op) {
			continue
		}
		if len(op) == 1 {
			if err := l.bracket(op[0], p); err != nil {
				return err
			}
		}
		l.pos += len(op)
		l.emit(Token{Kind: OP, Text: op, Pos: p})
		return nil
	}
	r, _ := utf8.DecodeRuneInString(l.src[start:])
	return errorf(p.Line, p.Col, "invalid character '%c' (U+%04X)", r, r)
}

func (l *lexer) bracket(c byte, p ast.Pos) error {
	switch c {
	case '(', '[', '{':
		if l.cfg.MaxNesting > 0 && len(l.brackets) >= l.cfg.MaxNesting {
			return errorf(p.Line, p.Col, "too many nested parentheses")
		}
		l.brackets = append(l.brackets, openBracket{ch: c, pos: p})
	case ')', ']', '}':
		n := len(l.brackets)
		if n == 0 {
			return errorf(p.Line, p.Col, "unmatched '%c'", c)
		}
		open := l.brackets[n-1]
		if closers[open.ch] != c {
			if open.pos.Line != p.Line {
				return errorf(p.Line, p.Col, "closing parenthesis '%c' does not match opening parenthesis '%c' on line %d", c, open.ch, open.pos.Line)
			}
			return errorf(p.Line, p.Col, "closing parenthesis '%c' does not match opening parenthesis '%c'", c, open.ch)
		}
		l.brackets = l.brackets[:n-1]
	}
	return nil
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || isLetter(c) || c >= utf8.RuneSelf
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}
