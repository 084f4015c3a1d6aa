package shellswitch

import (
	"path/filepath"
	"strings"

	"github.com/inenv/inenv/internal/config"
)

const (
	// SourceBuiltin is used by bash and zsh.
	SourceBuiltin = "source"

	// DotBuiltin is the POSIX equivalent of source.
	DotBuiltin = "."
)

// SourceBuiltinFor picks the sourcing builtin for the user's $SHELL.
func SourceBuiltinFor(shell string) string {
	base := filepath.Base(shell)
	if strings.Contains(base, "bash") || strings.Contains(base, "zsh") {
		return SourceBuiltin
	}
	return DotBuiltin
}

// Target is a set of sandboxes that can be switched to.
type Target interface {
	Exists(name string) (bool, error)
	ActivateScript(name string) (string, error)
}

// SwitchLines returns the statements that put the parent shell into the
// named sandbox, building it first when it does not exist yet.
func SwitchLines(t Target, name, shell string) ([]Line, error) {
	exists, err := t.Exists(name)
	if err != nil {
		return nil, err
	}

	script, err := t.ActivateScript(name)
	if err != nil {
		return nil, err
	}

	var lines []Line
	if !exists {
		lines = append(lines, Invoke(config.ShellFunctionName, "init", name))
	}
	return append(lines, Source(SourceBuiltinFor(shell), script)), nil
}
