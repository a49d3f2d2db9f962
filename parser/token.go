package parser

import (
	"fmt"

	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/value"
)

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	EOF TokenKind = iota
	NEWLINE
	NAME
	NUMBER
	STRING
	OP
)

var tokenKindNames = [...]string{
	EOF:     "EOF",
	NEWLINE: "NEWLINE",
	NAME:    "NAME",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	OP:      "OP",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical unit. NUMBER and STRING tokens carry their decoded
// Value; an f-string is a STRING token with FString set and a nil Value.
type Token struct {
	Kind    TokenKind
	Text    string
	Pos     ast.Pos
	Value   value.Value
	FString bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Text, t.Pos)
}

// is reports whether t is the operator or keyword spelled s.
func (t Token) is(s string) bool {
	return (t.Kind == OP || t.Kind == NAME) && t.Text == s
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// operators ordered longest first so that the lexer takes maximal munch.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=", "@=", "&=", "|=", "^=",
	"+", "-", "*", "/", "%", "@", "|", "&", "^", "~", "<", ">",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", ";", "=",
}

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}'}
