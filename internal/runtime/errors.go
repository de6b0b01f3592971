package runtime

import (
	"fmt"

	"github.com/you-not-fish/cbr/internal/syntax"
)

// ErrorKind classifies evaluation errors.
type ErrorKind int

const (
	TypeError       ErrorKind = iota // mismatched or unsupported types
	RangeError                       // integer overflow or underflow on assignment
	BoundsError                      // array index out of range
	ResolutionError                  // unknown variable, function or std call; duplicate definition
	EntryError                       // missing or malformed main
	RuntimeError                     // divide by zero, depth limits, cancellation
	SyntaxError                      // structural misuse detected while evaluating
)

var kindNames = [...]string{
	TypeError:       "type error",
	RangeError:      "range error",
	BoundsError:     "bounds error",
	ResolutionError: "resolution error",
	EntryError:      "entry error",
	RuntimeError:    "runtime error",
	SyntaxError:     "syntax error",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is an evaluation error at a source position. Near holds the
// offending text; Hint carries extra detail printed in verbose mode.
type Error struct {
	Kind ErrorKind
	Pos  syntax.Pos
	Msg  string
	Near string
	Hint string
	Err  error // underlying cause, if any
}

func (e *Error) Error() string {
	s := e.Msg
	if e.Pos.IsValid() {
		s = e.Pos.String() + " " + s
	}
	if e.Near != "" {
		s += " '" + e.Near + "'"
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf returns an Error of the given kind.
func Errorf(kind ErrorKind, pos syntax.Pos, near, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Near: near, Msg: fmt.Sprintf(format, args...)}
}
