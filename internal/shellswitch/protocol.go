package shellswitch

import (
	"slices"

	"github.com/inenv/inenv/internal/config"
)

// State is the position of one invocation in the two-call protocol.
type State int

const (
	// Direct is a normal invocation that completes on its own.
	Direct State = iota

	// CaptureRequested is a direct invocation classified as a switch. It
	// exits 255 so the shell function re-invokes in capture mode.
	CaptureRequested

	// CaptureExecuting is the sentinel invocation whose stdout is evaluated.
	CaptureExecuting
)

func (s State) String() string {
	switch s {
	case Direct:
		return "direct"
	case CaptureRequested:
		return "capture-requested"
	case CaptureExecuting:
		return "capture-executing"
	default:
		return "unknown"
	}
}

// Classify reports whether positional args request a shell switch: a lone
// name that is not a normal subcommand, or any reentrant subcommand. An
// empty args (only flags were given) is never a switch.
func Classify(args []string) bool {
	if len(args) == 0 {
		return false
	}

	cmd, rest := args[0], args[1:]
	if slices.Contains(config.ReentrantCommands, cmd) {
		return true
	}
	return len(rest) == 0 && !slices.Contains(config.NormalCommands, cmd)
}

// Resolve returns the protocol state of an invocation. capture is true
// when the sentinel argument was present.
func Resolve(capture bool, args []string) State {
	if capture {
		return CaptureExecuting
	}
	if Classify(args) {
		return CaptureRequested
	}
	return Direct
}
