package parser

import (
	"fmt"
	"strings"
)

// ErrorKind distinguishes plain syntax errors from indentation errors.
type ErrorKind int

const (
	KindSyntax ErrorKind = iota
	KindIndentation
)

func (k ErrorKind) String() string {
	if k == KindIndentation {
		return "IndentationError"
	}
	return "SyntaxError"
}

// SyntaxError reports malformed source text. Line and Col are 1-based.
type SyntaxError struct {
	Kind ErrorKind
	Msg  string
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Col, e.Msg)
}

// Snippet renders the error with up to one line of context around the
// offending line and a caret under the column.
func (e *SyntaxError) Snippet(src string) string {
	lines := strings.Split(src, "\n")
	line, col := e.Line, e.Col
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Error())
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

func errorf(line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: KindSyntax, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}
