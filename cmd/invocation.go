package cmd

import (
	"strings"

	"github.com/inenv/inenv/internal/config"
)

// Invocation is the raw argument vector split into the capture-mode marker
// and the arguments cobra should parse.
type Invocation struct {
	// Capture is true when the shell function re-invoked us with the
	// sentinel and will eval our stdout.
	Capture bool

	// Args are the remaining arguments, sentinel removed.
	Args []string
}

// ParseInvocation strips the sentinel when it is the first positional
// argument. Flags before it are kept.
func ParseInvocation(argv []string) Invocation {
	for i, arg := range argv {
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if arg != config.SentinelArg {
			break
		}

		args := make([]string, 0, len(argv)-1)
		args = append(args, argv[:i]...)
		args = append(args, argv[i+1:]...)
		return Invocation{Capture: true, Args: args}
	}
	return Invocation{Args: argv}
}
