package interp

import (
	"log/slog"

	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// Store holds the scope frames of one function activation. Frames are
// indexed by nesting depth: depth 0 is reserved, depth 1 is the function's
// top-level frame and every nested block runs one level deeper.
type Store struct {
	frames [][]*runtime.Variable
	max    int
	log    *slog.Logger
}

// NewStore returns an empty store that accepts frames up to depth max.
func NewStore(max int, log *slog.Logger) *Store {
	return &Store{frames: make([][]*runtime.Variable, 2, 8), max: max, log: log}
}

// Lookup returns the innermost variable called name visible at depth, or
// nil. The search walks from depth down to 0.
func (s *Store) Lookup(name string, depth int) *runtime.Variable {
	if depth >= len(s.frames) {
		depth = len(s.frames) - 1
	}
	for d := depth; d >= 0; d-- {
		for _, v := range s.frames[d] {
			if v.Name == name {
				return v
			}
		}
	}
	return nil
}

// Declare adds v to the frame at depth. A variable of the same name
// already declared at that depth is an error; outer ones are shadowed.
func (s *Store) Declare(v *runtime.Variable, depth int) error {
	if depth > s.max {
		return depthError(v.Pos, s.max)
	}
	for len(s.frames) <= depth {
		s.frames = append(s.frames, nil)
	}
	for _, old := range s.frames[depth] {
		if old.Name == v.Name {
			e := runtime.Errorf(runtime.ResolutionError, v.Pos, v.Name, "redeclared in this block:")
			e.Hint = "previous declaration at " + old.Pos.String()
			return e
		}
	}
	s.frames[depth] = append(s.frames[depth], v)
	return nil
}

// Release drops the frame at depth and every deeper frame.
func (s *Store) Release(depth int) {
	if depth < 1 {
		depth = 1
	}
	for d := depth; d < len(s.frames); d++ {
		if n := len(s.Frame(d)); n > 0 && s.log != nil {
			s.log.Debug("release frame", "depth", d, "vars", n)
		}
		s.frames[d] = nil
	}
	if depth < len(s.frames) {
		s.frames = s.frames[:depth]
	}
}

// Frame returns the variables declared at depth in declaration order.
func (s *Store) Frame(depth int) []*runtime.Variable {
	if depth < 0 || depth >= len(s.frames) {
		return nil
	}
	return s.frames[depth]
}

func depthError(pos syntax.Pos, max int) error {
	return runtime.Errorf(runtime.RuntimeError, pos, "", "scope depth limit %d exceeded", max)
}
