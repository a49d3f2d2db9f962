// Package parser turns literal-expression source text into an ast tree.
//
// The accepted grammar is the expression grammar of the literal language
// in "eval" mode: a single expression (or a bare tuple) followed only by
// blank lines and comments. Nodes the literal converter will reject, such
// as names, calls and comparisons, are still parsed so that the converter
// can report them with their line. That includes comprehensions, lambdas,
// yield, await and assignment expressions.
package parser

import (
	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/value"
)

const (
	// DefaultMaxIntDigits bounds the length of decimal integer literals.
	DefaultMaxIntDigits = 4300
	// DefaultMaxNesting bounds the depth of open brackets.
	DefaultMaxNesting = 200
	// maxExprDepth bounds expression recursion that brackets do not count,
	// such as long chains of unary operators.
	maxExprDepth = 1000
)

// Config holds parser limits. A zero or negative limit disables the check.
type Config struct {
	MaxIntDigits int
	MaxNesting   int
}

// Option configures a Parser.
type Option func(*Config)

// WithMaxIntDigits sets the maximum number of digits of a decimal integer literal.
func WithMaxIntDigits(n int) Option {
	return func(c *Config) { c.MaxIntDigits = n }
}

// WithMaxNesting sets the maximum bracket nesting depth.
func WithMaxNesting(n int) Option {
	return func(c *Config) { c.MaxNesting = n }
}

// Parser parses literal-expression text. It is safe for concurrent use.
type Parser struct {
	cfg Config
}

// New returns a Parser with the default limits adjusted by opts.
func New(opts ...Option) *Parser {
	cfg := Config{MaxIntDigits: DefaultMaxIntDigits, MaxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{cfg: cfg}
}

// ParseExpr parses src with the default limits.
func ParseExpr(src string) (*ast.Expression, error) {
	return New().ParseExpr(src)
}

// Tokenize splits src into tokens, ending with an EOF token.
func (p *Parser) Tokenize(src string) ([]Token, error) {
	return tokenize(src, p.cfg)
}

// ParseExpr parses src as a single expression. Errors are *SyntaxError.
func (p *Parser) ParseExpr(src string) (*ast.Expression, error) {
	toks, err := tokenize(src, p.cfg)
	if err != nil {
		return nil, err
	}
	ps := &parser{toks: toks}
	return ps.parseEval()
}

type parser struct {
	toks  []Token
	i     int
	depth int
}

func (ps *parser) peek() Token { return ps.toks[ps.i] }

func (ps *parser) peekAt(n int) Token {
	if ps.i+n >= len(ps.toks) {
		return ps.toks[len(ps.toks)-1]
	}
	return ps.toks[ps.i+n]
}

func (ps *parser) next() Token {
	tok := ps.toks[ps.i]
	if tok.Kind != EOF {
		ps.i++
	}
	return tok
}

func (ps *parser) errAt(tok Token, format string, args ...any) error {
	if tok.Kind == EOF {
		return errorf(tok.Pos.Line, tok.Pos.Col, "unexpected EOF while parsing")
	}
	return errorf(tok.Pos.Line, tok.Pos.Col, format, args...)
}

func (ps *parser) expect(op string) (Token, error) {
	tok := ps.peek()
	if !tok.is(op) {
		return tok, ps.errAt(tok, "invalid syntax: expected '%s'", op)
	}
	return ps.next(), nil
}

func (ps *parser) enter() error {
	ps.depth++
	if ps.depth > maxExprDepth {
		tok := ps.peek()
		return errorf(tok.Pos.Line, tok.Pos.Col, "expression too deeply nested")
	}
	return nil
}

func (ps *parser) leave() { ps.depth-- }

// closesList reports whether tok ends a comma separated list, which makes
// a trailing comma legal.
func (t Token) closesList() bool {
	return t.Kind == EOF || t.Kind == NEWLINE || t.is(")") || t.is("]") || t.is("}")
}

func (ps *parser) parseEval() (*ast.Expression, error) {
	if ps.peek().Kind == EOF {
		return nil, ps.errAt(ps.peek(), "invalid syntax")
	}
	body, err := ps.parseExprList()
	if err != nil {
		return nil, err
	}
	for ps.peek().Kind == NEWLINE {
		ps.next()
	}
	if tok := ps.peek(); tok.Kind != EOF {
		return nil, ps.errAt(tok, "invalid syntax")
	}
	return &ast.Expression{Body: body}, nil
}

// parseExprList parses "a, b, c" into a Tuple, or returns the single
// expression when there is no comma.
func (ps *parser) parseExprList() (ast.Expr, error) {
	first, err := ps.parseStarOrTest()
	if err != nil {
		return nil, err
	}
	if !ps.peek().is(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for ps.peek().is(",") {
		ps.next()
		if ps.peek().closesList() {
			break
		}
		elt, err := ps.parseStarOrTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return &ast.Tuple{Pos: first.Position(), Elts: elts}, nil
}

func (ps *parser) parseStarOrTest() (ast.Expr, error) {
	if tok := ps.peek(); tok.is("*") {
		ps.next()
		v, err := ps.parseBitOr()
		if err != nil {
			return nil, err
		}
		return &ast.Starred{Pos: tok.Pos, Value: v}, nil
	}
	return ps.parseTest()
}

func (ps *parser) parseTest() (ast.Expr, error) {
	if err := ps.enter(); err != nil {
		return nil, err
	}
	defer ps.leave()

	if tok := ps.peek(); tok.is("lambda") {
		return ps.parseLambda(tok)
	}
	x, err := ps.parseOrTest()
	if err != nil {
		return nil, err
	}
	switch next := ps.peek(); {
	case next.is("if"):
		ps.next()
		test, err := ps.parseOrTest()
		if err != nil {
			return nil, err
		}
		if _, err := ps.expect("else"); err != nil {
			return nil, err
		}
		orElse, err := ps.parseTest()
		if err != nil {
			return nil, err
		}
		return &ast.IfExp{Pos: x.Position(), Test: test, Body: x, OrElse: orElse}, nil
	}
	return x, nil
}

// parseNamed parses an expression that may be an assignment expression
// "name := value", allowed inside brackets and call arguments.
func (ps *parser) parseNamed() (ast.Expr, error) {
	x, err := ps.parseTest()
	if err != nil {
		return nil, err
	}
	if !ps.peek().is(":=") {
		return x, nil
	}
	if _, ok := x.(*ast.Name); !ok {
		p := x.Position()
		return nil, errorf(p.Line, p.Col, "cannot use assignment expressions with %s", targetName(x))
	}
	ps.next()
	v, err := ps.parseTest()
	if err != nil {
		return nil, err
	}
	return &ast.NamedExpr{Pos: x.Position(), Target: x, Value: v}, nil
}

func (ps *parser) parseStarOrNamed() (ast.Expr, error) {
	if ps.peek().is("*") {
		return ps.parseStarOrTest()
	}
	return ps.parseNamed()
}

// parseLambda parses "lambda params: body". kw is the lambda keyword.
func (ps *parser) parseLambda(kw Token) (ast.Expr, error) {
	ps.next()
	lam := &ast.Lambda{Pos: kw.Pos}
	seen := map[string]bool{}
	sawDefault, sawStar := false, false
	for !ps.peek().is(":") {
		tok := ps.peek()
		switch {
		case tok.is("/"):
			ps.next()
			lam.Params = append(lam.Params, "/")
		case tok.is("*") || tok.is("**"):
			ps.next()
			param := tok.Text
			if name := ps.peek(); name.Kind == NAME && !keywords[name.Text] {
				ps.next()
				param += name.Text
			} else if tok.is("**") {
				return nil, ps.errAt(name, "invalid syntax")
			}
			sawStar = true
			lam.Params = append(lam.Params, param)
		case tok.Kind == NAME && !keywords[tok.Text]:
			ps.next()
			if seen[tok.Text] {
				return nil, errorf(tok.Pos.Line, tok.Pos.Col, "duplicate argument '%s' in function definition", tok.Text)
			}
			seen[tok.Text] = true
			lam.Params = append(lam.Params, tok.Text)
			if ps.peek().is("=") {
				ps.next()
				d, err := ps.parseTest()
				if err != nil {
					return nil, err
				}
				lam.Defaults = append(lam.Defaults, d)
				sawDefault = true
			} else if sawDefault && !sawStar {
				return nil, errorf(tok.Pos.Line, tok.Pos.Col, "parameter without a default follows parameter with a default")
			}
		default:
			return nil, ps.errAt(tok, "invalid syntax")
		}
		if !ps.peek().is(",") {
			break
		}
		ps.next()
	}
	if _, err := ps.expect(":"); err != nil {
		return nil, err
	}
	body, err := ps.parseTest()
	if err != nil {
		return nil, err
	}
	lam.Body = body
	return lam, nil
}

func (ps *parser) startsComprehension() bool {
	tok := ps.peek()
	return tok.is("for") || tok.is("async") && ps.peekAt(1).is("for")
}

// parseComprehensions parses one or more "for target in iter if cond"
// clauses.
func (ps *parser) parseComprehensions() ([]*ast.Comprehension, error) {
	var gens []*ast.Comprehension
	for ps.startsComprehension() {
		start := ps.next()
		isAsync := start.is("async")
		if isAsync {
			ps.next()
		}
		target, err := ps.parseTargets()
		if err != nil {
			return nil, err
		}
		if _, err := ps.expect("in"); err != nil {
			return nil, err
		}
		iter, err := ps.parseOrTest()
		if err != nil {
			return nil, err
		}
		gen := &ast.Comprehension{Pos: start.Pos, Target: target, Iter: iter, IsAsync: isAsync}
		for ps.peek().is("if") {
			ps.next()
			cond, err := ps.parseOrTest()
			if err != nil {
				return nil, err
			}
			gen.Ifs = append(gen.Ifs, cond)
		}
		gens = append(gens, gen)
	}
	return gens, nil
}

// parseTargets parses the target list of a for clause, such as "k, v".
func (ps *parser) parseTargets() (ast.Expr, error) {
	first, err := ps.parseTarget()
	if err != nil {
		return nil, err
	}
	if !ps.peek().is(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for ps.peek().is(",") {
		ps.next()
		if ps.peek().is("in") {
			break
		}
		t, err := ps.parseTarget()
		if err != nil {
			return nil, err
		}
		elts = append(elts, t)
	}
	return &ast.Tuple{Pos: first.Position(), Elts: elts}, nil
}

func (ps *parser) parseTarget() (ast.Expr, error) {
	tok := ps.peek()
	if !tok.is("*") {
		x, err := ps.parseBitOr()
		if err != nil {
			return nil, err
		}
		return x, checkTarget(x)
	}
	ps.next()
	v, err := ps.parseBitOr()
	if err != nil {
		return nil, err
	}
	x := &ast.Starred{Pos: tok.Pos, Value: v}
	return x, checkTarget(x)
}

// checkTarget accepts the expressions that can be assigned to.
func checkTarget(x ast.Expr) error {
	switch x := x.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
		return nil
	case *ast.Starred:
		return checkTarget(x.Value)
	case *ast.Tuple:
		return checkTargets(x.Elts)
	case *ast.List:
		return checkTargets(x.Elts)
	}
	p := x.Position()
	return errorf(p.Line, p.Col, "cannot assign to %s", targetName(x))
}

func checkTargets(elts []ast.Expr) error {
	for _, elt := range elts {
		if err := checkTarget(elt); err != nil {
			return err
		}
	}
	return nil
}

func targetName(x ast.Expr) string {
	switch x.(type) {
	case *ast.Constant, *ast.JoinedStr:
		return "literal"
	case *ast.Call:
		return "function call"
	case *ast.Lambda:
		return "lambda"
	}
	return "expression"
}

func (ps *parser) parseOrTest() (ast.Expr, error) {
	return ps.boolLevel("or", ast.Or, ps.parseAndTest)
}

func (ps *parser) parseAndTest() (ast.Expr, error) {
	return ps.boolLevel("and", ast.And, ps.parseNotTest)
}

func (ps *parser) boolLevel(word string, op ast.BoolOperator, operand func() (ast.Expr, error)) (ast.Expr, error) {
	x, err := operand()
	if err != nil {
		return nil, err
	}
	if !ps.peek().is(word) {
		return x, nil
	}
	values := []ast.Expr{x}
	for ps.peek().is(word) {
		ps.next()
		y, err := operand()
		if err != nil {
			return nil, err
		}
		values = append(values, y)
	}
	return &ast.BoolOp{Pos: x.Position(), Op: op, Values: values}, nil
}

func (ps *parser) parseNotTest() (ast.Expr, error) {
	tok := ps.peek()
	if !tok.is("not") {
		return ps.parseComparison()
	}
	ps.next()
	if err := ps.enter(); err != nil {
		return nil, err
	}
	defer ps.leave()
	operand, err := ps.parseNotTest()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Pos: tok.Pos, Op: ast.Not, Operand: operand}, nil
}

var comparisons = map[string]ast.CmpOperator{
	"==": ast.Eq, "!=": ast.NotEq, "<": ast.Lt, "<=": ast.LtE, ">": ast.Gt, ">=": ast.GtE,
	"in": ast.In, "is": ast.Is,
}

func (ps *parser) parseComparison() (ast.Expr, error) {
	left, err := ps.parseBitOr()
	if err != nil {
		return nil, err
	}
	var ops []ast.CmpOperator
	var comparators []ast.Expr
	for {
		tok := ps.peek()
		op, ok := comparisons[tok.Text]
		switch {
		case tok.is("not") && ps.peekAt(1).is("in"):
			ps.next()
			op, ok = ast.NotIn, true
		case tok.is("is") && ps.peekAt(1).is("not"):
			ps.next()
			op = ast.IsNot
		case tok.Kind != OP && tok.Kind != NAME:
			ok = false
		}
		if !ok {
			break
		}
		ps.next()
		right, err := ps.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &ast.Compare{Pos: left.Position(), Left: left, Ops: ops, Comparators: comparators}, nil
}

var (
	bitOrOps  = map[string]ast.BinaryOperator{"|": ast.BitOr}
	bitXorOps = map[string]ast.BinaryOperator{"^": ast.BitXor}
	bitAndOps = map[string]ast.BinaryOperator{"&": ast.BitAnd}
	shiftOps  = map[string]ast.BinaryOperator{"<<": ast.LShift, ">>": ast.RShift}
	arithOps  = map[string]ast.BinaryOperator{"+": ast.Add, "-": ast.Sub}
	termOps   = map[string]ast.BinaryOperator{
		"*": ast.Mult, "/": ast.Div, "//": ast.FloorDiv, "%": ast.Mod, "@": ast.MatMult,
	}
)

func (ps *parser) parseBitOr() (ast.Expr, error) {
	return ps.binaryLevel(bitOrOps, ps.parseBitXor)
}

func (ps *parser) parseBitXor() (ast.Expr, error) {
	return ps.binaryLevel(bitXorOps, ps.parseBitAnd)
}

func (ps *parser) parseBitAnd() (ast.Expr, error) {
	return ps.binaryLevel(bitAndOps, ps.parseShift)
}

func (ps *parser) parseShift() (ast.Expr, error) {
	return ps.binaryLevel(shiftOps, ps.parseArith)
}

func (ps *parser) parseArith() (ast.Expr, error) {
	return ps.binaryLevel(arithOps, ps.parseTerm)
}

func (ps *parser) parseTerm() (ast.Expr, error) {
	return ps.binaryLevel(termOps, ps.parseFactor)
}

// binaryLevel parses a left-associative chain of operators from ops.
func (ps *parser) binaryLevel(ops map[string]ast.BinaryOperator, operand func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok := ps.peek()
		op, ok := ops[tok.Text]
		if tok.Kind != OP || !ok {
			return left, nil
		}
		ps.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
}

var unaryOps = map[string]ast.UnaryOperator{"+": ast.UAdd, "-": ast.USub, "~": ast.Invert}

func (ps *parser) parseFactor() (ast.Expr, error) {
	tok := ps.peek()
	op, ok := unaryOps[tok.Text]
	if tok.Kind != OP || !ok {
		return ps.parsePower()
	}
	ps.next()
	if err := ps.enter(); err != nil {
		return nil, err
	}
	defer ps.leave()
	operand, err := ps.parseFactor()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Pos: tok.Pos, Op: op, Operand: operand}, nil
}

func (ps *parser) parsePower() (ast.Expr, error) {
	var base ast.Expr
	if tok := ps.peek(); tok.is("await") {
		ps.next()
		v, err := ps.parsePrimary()
		if err != nil {
			return nil, err
		}
		base = &ast.Await{Pos: tok.Pos, Value: v}
	} else {
		v, err := ps.parsePrimary()
		if err != nil {
			return nil, err
		}
		base = v
	}
	if !ps.peek().is("**") {
		return base, nil
	}
	ps.next()
	exp, err := ps.parseFactor()
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Pos: base.Position(), Op: ast.Pow, Left: base, Right: exp}, nil
}

func (ps *parser) parsePrimary() (ast.Expr, error) {
	x, err := ps.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok := ps.peek()
		switch {
		case tok.is("("):
			ps.next()
			x, err = ps.parseCall(tok, x)
		case tok.is("["):
			ps.next()
			x, err = ps.parseSubscript(x)
		case tok.is("."):
			ps.next()
			name := ps.peek()
			if name.Kind != NAME || keywords[name.Text] {
				return nil, ps.errAt(name, "invalid syntax")
			}
			ps.next()
			x = &ast.Attribute{Pos: x.Position(), Value: x, Attr: name.Text}
		default:
			return x, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseCall parses the arguments of fn after the opening parenthesis open.
func (ps *parser) parseCall(open Token, fn ast.Expr) (ast.Expr, error) {
	call := &ast.Call{Pos: fn.Position(), Func: fn}
	for !ps.peek().is(")") {
		tok := ps.peek()
		switch {
		case tok.is("*"):
			ps.next()
			v, err := ps.parseTest()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, &ast.Starred{Pos: tok.Pos, Value: v})
		case tok.is("**"):
			ps.next()
			v, err := ps.parseTest()
			if err != nil {
				return nil, err
			}
			call.Keywords = append(call.Keywords, &ast.Keyword{Pos: tok.Pos, Value: v})
		case tok.Kind == NAME && !keywords[tok.Text] && ps.peekAt(1).is("="):
			ps.next()
			ps.next()
			v, err := ps.parseTest()
			if err != nil {
				return nil, err
			}
			call.Keywords = append(call.Keywords, &ast.Keyword{Pos: tok.Pos, Arg: tok.Text, Value: v})
		default:
			v, err := ps.parseNamed()
			if err != nil {
				return nil, err
			}
			if ps.startsComprehension() {
				gens, err := ps.parseComprehensions()
				if err != nil {
					return nil, err
				}
				if len(call.Args) > 0 || len(call.Keywords) > 0 || !ps.peek().is(")") {
					return nil, errorf(v.Position().Line, v.Position().Col, "Generator expression must be parenthesized")
				}
				v = &ast.GeneratorExp{Pos: open.Pos, Elt: v, Generators: gens}
			}
			if len(call.Keywords) > 0 {
				return nil, errorf(tok.Pos.Line, tok.Pos.Col, "positional argument follows keyword argument")
			}
			call.Args = append(call.Args, v)
		}
		if !ps.peek().is(",") {
			break
		}
		ps.next()
	}
	if _, err := ps.expect(")"); err != nil {
		return nil, err
	}
	return call, nil
}

func (ps *parser) parseSubscript(x ast.Expr) (ast.Expr, error) {
	first, err := ps.parseSubscriptItem()
	if err != nil {
		return nil, err
	}
	index := first
	if ps.peek().is(",") {
		elts := []ast.Expr{first}
		for ps.peek().is(",") {
			ps.next()
			if ps.peek().is("]") {
				break
			}
			elt, err := ps.parseSubscriptItem()
			if err != nil {
				return nil, err
			}
			elts = append(elts, elt)
		}
		index = &ast.Tuple{Pos: first.Position(), Elts: elts}
	}
	if _, err := ps.expect("]"); err != nil {
		return nil, err
	}
	return &ast.Subscript{Pos: x.Position(), Value: x, Index: index}, nil
}

func (ps *parser) parseSubscriptItem() (ast.Expr, error) {
	start := ps.peek()
	var lower ast.Expr
	if !start.is(":") {
		x, err := ps.parseNamed()
		if err != nil {
			return nil, err
		}
		if !ps.peek().is(":") {
			return x, nil
		}
		lower = x
	}
	ps.next()
	slice := &ast.Slice{Pos: start.Pos, Lower: lower}
	endsPart := func() bool {
		tok := ps.peek()
		return tok.is(":") || tok.is("]") || tok.is(",")
	}
	if !endsPart() {
		upper, err := ps.parseTest()
		if err != nil {
			return nil, err
		}
		slice.Upper = upper
	}
	if ps.peek().is(":") {
		ps.next()
		if !endsPart() {
			step, err := ps.parseTest()
			if err != nil {
				return nil, err
			}
			slice.Step = step
		}
	}
	return slice, nil
}

func (ps *parser) parseAtom() (ast.Expr, error) {
	tok := ps.peek()
	switch tok.Kind {
	case NUMBER:
		ps.next()
		return &ast.Constant{Pos: tok.Pos, Value: tok.Value}, nil
	case STRING:
		return ps.parseStrings()
	case NAME:
		switch tok.Text {
		case "True":
			ps.next()
			return &ast.Constant{Pos: tok.Pos, Value: value.Bool(true)}, nil
		case "False":
			ps.next()
			return &ast.Constant{Pos: tok.Pos, Value: value.Bool(false)}, nil
		case "None":
			ps.next()
			return &ast.Constant{Pos: tok.Pos, Value: value.None{}}, nil
		}
		if keywords[tok.Text] {
			return nil, ps.errAt(tok, "invalid syntax")
		}
		ps.next()
		return &ast.Name{Pos: tok.Pos, ID: tok.Text}, nil
	case OP:
		switch tok.Text {
		case "(":
			ps.next()
			return ps.parseParen(tok)
		case "[":
			ps.next()
			return ps.parseList(tok)
		case "{":
			ps.next()
			return ps.parseBrace(tok)
		case "...":
			ps.next()
			return &ast.Constant{Pos: tok.Pos, Value: value.Ellipsis{}}, nil
		}
	}
	return nil, ps.errAt(tok, "invalid syntax")
}

// parseStrings concatenates adjacent string literals.
func (ps *parser) parseStrings() (ast.Expr, error) {
	first := ps.next()
	toks := []Token{first}
	for ps.peek().Kind == STRING {
		toks = append(toks, ps.next())
	}

	_, isBytes := first.Value.(value.Bytes)
	fstring := false
	for _, tok := range toks {
		_, b := tok.Value.(value.Bytes)
		if b != isBytes {
			return nil, errorf(tok.Pos.Line, tok.Pos.Col, "cannot mix bytes and nonbytes literals")
		}
		fstring = fstring || tok.FString
	}

	if fstring {
		raw := ""
		for _, tok := range toks {
			raw += tok.Text
		}
		return &ast.JoinedStr{Pos: first.Pos, Raw: raw}, nil
	}
	if len(toks) == 1 {
		return &ast.Constant{Pos: first.Pos, Value: first.Value}, nil
	}
	buf := make([]byte, 0, len(first.Text))
	for _, tok := range toks {
		switch v := tok.Value.(type) {
		case value.Str:
			buf = append(buf, v...)
		case value.Bytes:
			buf = append(buf, v...)
		}
	}
	if isBytes {
		return &ast.Constant{Pos: first.Pos, Value: value.Bytes(buf)}, nil
	}
	return &ast.Constant{Pos: first.Pos, Value: value.Str(buf)}, nil
}

func (ps *parser) parseParen(open Token) (ast.Expr, error) {
	if ps.peek().is(")") {
		ps.next()
		return &ast.Tuple{Pos: open.Pos}, nil
	}
	if tok := ps.peek(); tok.is("yield") {
		y, err := ps.parseYield(tok)
		if err != nil {
			return nil, err
		}
		if _, err := ps.expect(")"); err != nil {
			return nil, err
		}
		return y, nil
	}
	first, err := ps.parseStarOrNamed()
	if err != nil {
		return nil, err
	}
	if ps.startsComprehension() {
		gens, err := ps.parseCompFor(first)
		if err != nil {
			return nil, err
		}
		if _, err := ps.expect(")"); err != nil {
			return nil, err
		}
		return &ast.GeneratorExp{Pos: open.Pos, Elt: first, Generators: gens}, nil
	}
	if ps.peek().is(")") {
		ps.next()
		if _, starred := first.(*ast.Starred); starred {
			return nil, errorf(first.Position().Line, first.Position().Col, "cannot use starred expression here")
		}
		return first, nil
	}
	elts, err := ps.parseRest(first, ")")
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{Pos: open.Pos, Elts: elts}, nil
}

func (ps *parser) parseList(open Token) (ast.Expr, error) {
	if ps.peek().is("]") {
		ps.next()
		return &ast.List{Pos: open.Pos}, nil
	}
	first, err := ps.parseStarOrNamed()
	if err != nil {
		return nil, err
	}
	if ps.startsComprehension() {
		gens, err := ps.parseCompFor(first)
		if err != nil {
			return nil, err
		}
		if _, err := ps.expect("]"); err != nil {
			return nil, err
		}
		return &ast.ListComp{Pos: open.Pos, Elt: first, Generators: gens}, nil
	}
	elts, err := ps.parseRest(first, "]")
	if err != nil {
		return nil, err
	}
	return &ast.List{Pos: open.Pos, Elts: elts}, nil
}

// parseRest collects ", elt" items after first until the closing bracket,
// which it consumes.
func (ps *parser) parseRest(first ast.Expr, closer string) ([]ast.Expr, error) {
	elts := []ast.Expr{first}
	for ps.peek().is(",") {
		ps.next()
		if ps.peek().is(closer) {
			break
		}
		elt, err := ps.parseStarOrNamed()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	if _, err := ps.expect(closer); err != nil {
		return nil, err
	}
	return elts, nil
}

func (ps *parser) parseBrace(open Token) (ast.Expr, error) {
	if ps.peek().is("}") {
		ps.next()
		return &ast.Dict{Pos: open.Pos}, nil
	}
	if ps.peek().is("**") {
		return ps.parseDict(open, nil)
	}
	first, err := ps.parseStarOrNamed()
	if err != nil {
		return nil, err
	}
	if _, starred := first.(*ast.Starred); !starred && ps.peek().is(":") {
		return ps.parseDict(open, first)
	}
	if ps.startsComprehension() {
		gens, err := ps.parseCompFor(first)
		if err != nil {
			return nil, err
		}
		if _, err := ps.expect("}"); err != nil {
			return nil, err
		}
		return &ast.SetComp{Pos: open.Pos, Elt: first, Generators: gens}, nil
	}
	elts, err := ps.parseRest(first, "}")
	if err != nil {
		return nil, err
	}
	return &ast.Set{Pos: open.Pos, Elts: elts}, nil
}

// parseDict parses dict entries. firstKey is the already parsed first key,
// or nil when the display starts with "**".
func (ps *parser) parseDict(open Token, firstKey ast.Expr) (ast.Expr, error) {
	d := &ast.Dict{Pos: open.Pos}
	key := firstKey
	for {
		if key == nil && ps.peek().is("**") {
			ps.next()
			v, err := ps.parseBitOr()
			if err != nil {
				return nil, err
			}
			d.Keys = append(d.Keys, nil)
			d.Values = append(d.Values, v)
		} else {
			if key == nil {
				k, err := ps.parseTest()
				if err != nil {
					return nil, err
				}
				key = k
			}
			if _, err := ps.expect(":"); err != nil {
				return nil, err
			}
			v, err := ps.parseTest()
			if err != nil {
				return nil, err
			}
			d.Keys = append(d.Keys, key)
			d.Values = append(d.Values, v)
		}
		key = nil

		if tok := ps.peek(); ps.startsComprehension() {
			if len(d.Keys) != 1 || d.Keys[0] == nil {
				return nil, errorf(tok.Pos.Line, tok.Pos.Col, "invalid syntax")
			}
			gens, err := ps.parseComprehensions()
			if err != nil {
				return nil, err
			}
			if _, err := ps.expect("}"); err != nil {
				return nil, err
			}
			return &ast.DictComp{Pos: open.Pos, Key: d.Keys[0], Value: d.Values[0], Generators: gens}, nil
		}
		if !ps.peek().is(",") {
			break
		}
		ps.next()
		if ps.peek().is("}") {
			break
		}
	}
	if _, err := ps.expect("}"); err != nil {
		return nil, err
	}
	return d, nil
}

// parseCompFor parses the clauses of a list, set or generator comprehension
// whose element is elt.
func (ps *parser) parseCompFor(elt ast.Expr) ([]*ast.Comprehension, error) {
	if st, ok := elt.(*ast.Starred); ok {
		return nil, errorf(st.Line, st.Col, "iterable unpacking cannot be used in comprehension")
	}
	return ps.parseComprehensions()
}

// parseYield parses "yield", "yield value" or "yield from value" inside
// parentheses. kw is the yield keyword.
func (ps *parser) parseYield(kw Token) (ast.Expr, error) {
	ps.next()
	if ps.peek().is("from") {
		ps.next()
		v, err := ps.parseTest()
		if err != nil {
			return nil, err
		}
		return &ast.YieldFrom{Pos: kw.Pos, Value: v}, nil
	}
	if ps.peek().is(")") {
		return &ast.Yield{Pos: kw.Pos}, nil
	}
	v, err := ps.parseExprList()
	if err != nil {
		return nil, err
	}
	return &ast.Yield{Pos: kw.Pos, Value: v}, nil
}
