// Package syntax implements the cbr tokenizer, function registration and
// the lowering of function bodies into statement trees.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	_EOF Token = iota

	// Literals
	_Name   // identifier: foo, main, i32
	_Int    // 123
	_String // "hello"

	// Single-character punctuation
	_Lbrace // {
	_Rbrace // }
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Semi   // ;
	_Comma  // ,
	_Dot    // .
	_Colon  // :
	_Assign // =
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /
	_Rem    // %
	_Lss    // <
	_Gtr    // >
	_Not    // !

	// Comparison operators assembled by the parser from two punctuation
	// tokens; the scanner never produces them.
	_Eql // ==
	_Neq // !=
	_Leq // <=
	_Geq // >=

	// Keywords
	_Fn
	_Return
	_While
	_For
	_If
	_Else
	_Continue
	_Break
	_True
	_False
	_Void

	tokenCount
)

var tokenNames = [...]string{
	_EOF: "EOF",

	_Name:   "NAME",
	_Int:    "INT",
	_String: "STRING",

	_Lbrace: "{",
	_Rbrace: "}",
	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Semi:   ";",
	_Comma:  ",",
	_Dot:    ".",
	_Colon:  ":",
	_Assign: "=",
	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",
	_Rem:    "%",
	_Lss:    "<",
	_Gtr:    ">",
	_Not:    "!",

	_Eql: "==",
	_Neq: "!=",
	_Leq: "<=",
	_Geq: ">=",

	_Fn:       "fn",
	_Return:   "return",
	_While:    "while",
	_For:      "for",
	_If:       "if",
	_Else:     "else",
	_Continue: "continue",
	_Break:    "break",
	_True:     "true",
	_False:    "false",
	_Void:     "void",
}

func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the binding strength of a binary arithmetic
// operator, or 0 for anything else. Higher binds tighter.
//
//	1: + -
//	2: * / %
func (t Token) Precedence() int {
	switch t {
	case _Add, _Sub:
		return 1
	case _Mul, _Div, _Rem:
		return 2
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Fn && t <= _Void
}

// IsComparison reports whether t is a condition operator.
func (t Token) IsComparison() bool {
	switch t {
	case _Lss, _Gtr, _Eql, _Neq, _Leq, _Geq:
		return true
	}
	return false
}

// Exported tokens for the evaluator.
const (
	EOF Token = _EOF

	Add Token = _Add
	Sub Token = _Sub
	Mul Token = _Mul
	Div Token = _Div
	Rem Token = _Rem

	Lss Token = _Lss
	Gtr Token = _Gtr
	Eql Token = _Eql
	Neq Token = _Neq
	Leq Token = _Leq
	Geq Token = _Geq

	True     Token = _True
	False    Token = _False
	Break    Token = _Break
	Continue Token = _Continue
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit LitKind = iota
	StringLit
)

func (k LitKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case StringLit:
		return "string"
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

var keywords = map[string]Token{
	"fn":       _Fn,
	"return":   _Return,
	"while":    _While,
	"for":      _For,
	"if":       _If,
	"else":     _Else,
	"continue": _Continue,
	"break":    _Break,
	"true":     _True,
	"false":    _False,
	"void":     _Void,
}

// LookupKeyword returns the keyword token for ident, or _Name.
// Type names other than void (i8 … u64, string) are names, not keywords.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// Item is one scanned token: its kind, its text and where it starts.
// For string literals Lit holds the decoded contents.
type Item struct {
	Tok Token
	Lit string
	Pos Pos
}

// Text returns the token as it should appear in a diagnostic.
func (it Item) Text() string {
	switch it.Tok {
	case _EOF:
		return "EOF"
	case _Name, _Int:
		return it.Lit
	case _String:
		return `"` + it.Lit + `"`
	}
	return it.Tok.String()
}
