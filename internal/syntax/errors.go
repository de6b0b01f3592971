package syntax

import "fmt"

// ErrorKind classifies front-end errors.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
)

func (k ErrorKind) String() string {
	if k == LexicalError {
		return "lexical error"
	}
	return "syntax error"
}

// Error is a lexical or syntax error at a source position. Near holds the
// offending token text, if any.
type Error struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
	Near string
}

func (e *Error) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s %s '%s'", e.Pos, e.Msg, e.Near)
}
