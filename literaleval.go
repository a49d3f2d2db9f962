// Package literaleval safely evaluates literal expressions: numbers,
// strings, bytes, booleans, None, tuples, lists, sets, dicts, unary +/- and
// complex numbers written as real±imag. Anything else, such as names,
// calls other than set(), or arithmetic, is rejected without being
// evaluated.
//
//	v, err := literaleval.Eval("{'a': [1, 2], 'b': 3+4j}")
//
// Rejections are *MalformedLiteralError; malformed text is reported by the
// parser as *parser.SyntaxError.
package literaleval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/internal/convert"
	"github.com/podhmo/literaleval/parser"
	"github.com/podhmo/literaleval/value"
)

// MalformedLiteralError reports a node that is not an accepted literal shape.
type MalformedLiteralError = convert.MalformedLiteralError

// ErrStackLimit is returned when WithMaxFrames is set and the input is
// nested deeper than the limit allows.
var ErrStackLimit = convert.ErrStackLimit

// Strategy selects how the tree is walked. Both strategies accept and
// reject exactly the same inputs and produce equal values.
type Strategy int

const (
	// StrategyStack walks with an explicit heap-allocated worklist.
	StrategyStack Strategy = iota
	// StrategyRecursive walks by recursive descent.
	StrategyRecursive
)

func (s Strategy) String() string {
	switch s {
	case StrategyStack:
		return "stack"
	case StrategyRecursive:
		return "recursive"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses "stack" or "recursive".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stack", "":
		return StrategyStack, nil
	case "recursive":
		return StrategyRecursive, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (allowed: stack, recursive)", s)
}

// Evaluator evaluates literal expressions with fixed settings. It holds no
// per-call state and is safe for concurrent use.
type Evaluator struct {
	strategy     Strategy
	maxIntDigits int
	maxFrames    int
	logger       *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithStrategy selects the tree walk.
func WithStrategy(s Strategy) Option {
	return func(e *Evaluator) { e.strategy = s }
}

// WithMaxIntDigits bounds decimal integer literals; 0 disables the bound.
func WithMaxIntDigits(n int) Option {
	return func(e *Evaluator) { e.maxIntDigits = n }
}

// WithMaxFrames caps the worklist of the stack strategy; 0 means no cap.
func WithMaxFrames(n int) Option {
	return func(e *Evaluator) { e.maxFrames = n }
}

// WithLogger sets the logger for debug output. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// New returns an Evaluator using the stack strategy and the parser's
// default limits, adjusted by opts.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{strategy: StrategyStack, maxIntDigits: parser.DefaultMaxIntDigits}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEvaluator = New()

// Eval evaluates src with the default settings.
func Eval(src string) (value.Value, error) {
	return defaultEvaluator.Eval(context.Background(), src)
}

// EvalNode converts an already parsed tree with the default settings.
func EvalNode(node ast.Node) (value.Value, error) {
	return defaultEvaluator.EvalNode(context.Background(), node)
}

func (e *Evaluator) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

func (e *Evaluator) converter() convert.Converter {
	if e.strategy == StrategyRecursive {
		return convert.Recursive{}
	}
	return convert.Stack{MaxFrames: e.maxFrames}
}

// Parse strips leading spaces and tabs from src and parses the rest.
// Leading newlines are kept, so an indented expression after a blank line
// is an indentation error.
func (e *Evaluator) Parse(src string) (*ast.Expression, error) {
	return parser.New(parser.WithMaxIntDigits(e.maxIntDigits)).ParseExpr(strings.TrimLeft(src, " \t"))
}

// Eval parses src and converts it. Parse errors are returned unchanged.
func (e *Evaluator) Eval(ctx context.Context, src string) (value.Value, error) {
	tree, err := e.Parse(src)
	if err != nil {
		e.log().DebugContext(ctx, "literal syntax error", "error", err)
		return nil, err
	}
	return e.EvalNode(ctx, tree)
}

// EvalNode converts node, unwrapping an *ast.Expression root.
func (e *Evaluator) EvalNode(ctx context.Context, node ast.Node) (value.Value, error) {
	var root ast.Expr
	switch n := node.(type) {
	case *ast.Expression:
		if n == nil {
			return nil, &MalformedLiteralError{Node: node}
		}
		root = n.Body
	case ast.Expr:
		root = n
	default:
		return nil, &MalformedLiteralError{Node: node}
	}

	v, err := e.converter().Convert(root)
	if err != nil {
		var malformed *MalformedLiteralError
		if errors.As(err, &malformed) {
			e.log().DebugContext(ctx, "literal rejected", "strategy", e.strategy, "line", malformed.Line(), "node", ast.TypeName(malformed.Node))
		} else {
			e.log().DebugContext(ctx, "literal conversion failed", "strategy", e.strategy, "error", err)
		}
		return nil, err
	}
	return v, nil
}
