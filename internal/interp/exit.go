package interp

import (
	"errors"

	"github.com/you-not-fish/cbr/internal/runtime"
)

// Process exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitUsage  = 2
	ExitBounds = 69
	ExitEntry  = 70
)

// ExitCode maps an error returned by the load or run phase to a process
// exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var re *runtime.Error
	if errors.As(err, &re) {
		switch re.Kind {
		case runtime.BoundsError:
			return ExitBounds
		case runtime.EntryError:
			return ExitEntry
		}
	}
	return ExitError
}
