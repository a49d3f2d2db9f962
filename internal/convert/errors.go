package convert

import (
	"errors"
	"fmt"

	"github.com/podhmo/literaleval/ast"
)

// ErrStackLimit is returned by Stack when the worklist outgrows MaxFrames.
var ErrStackLimit = errors.New("literal nesting exceeds the frame limit")

// MalformedLiteralError reports the innermost node that is not an accepted
// literal shape.
type MalformedLiteralError struct {
	Node ast.Node
}

// Line returns the source line of the rejected node, or 0 when unknown.
func (e *MalformedLiteralError) Line() int {
	if ast.IsNil(e.Node) {
		return 0
	}
	return e.Node.Position().Line
}

func (e *MalformedLiteralError) Error() string {
	if line := e.Line(); line > 0 {
		return fmt.Sprintf("malformed node or string on line %d: %s", line, describe(e.Node))
	}
	return fmt.Sprintf("malformed node or string: %s", describe(e.Node))
}

const maxDescribeLen = 80

func describe(n ast.Node) string {
	s := ast.DumpLimit(n, maxDescribeLen)
	if r := []rune(s); len(r) > maxDescribeLen {
		return string(r[:maxDescribeLen-3]) + "..."
	}
	return s
}

func reject(n ast.Node) error {
	return &MalformedLiteralError{Node: n}
}
