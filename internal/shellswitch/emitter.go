package shellswitch

import (
	"fmt"
	"io"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Line is one shell statement destined for eval in the parent shell.
// Lines can only be built by the constructors in this package.
type Line struct {
	text string
}

func (l Line) String() string {
	return l.text
}

// Cd changes the parent shell's working directory.
func Cd(dir string) Line {
	return Line{text: "cd " + shellquote.Join(dir)}
}

// Source runs script in the parent shell with the given builtin, either
// "source" or ".". Any other builtin falls back to ".".
func Source(builtin, script string) Line {
	if builtin != SourceBuiltin {
		builtin = DotBuiltin
	}
	return Line{text: builtin + " " + shellquote.Join(script)}
}

// Invoke runs an external command, bypassing shell functions of the same
// name so the parent does not recurse into the switch function.
func Invoke(argv ...string) Line {
	return Line{text: "command " + shellquote.Join(argv...)}
}

// Emitter writes Lines to the stdout of a capture-mode invocation.
type Emitter struct {
	w       io.Writer
	emitted int
}

// NewEmitter creates an Emitter over w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes lines, one per row, in order.
func (e *Emitter) Emit(lines ...Line) error {
	var b strings.Builder
	for _, line := range lines {
		if line.text == "" {
			continue
		}
		b.WriteString(line.text)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(e.w, b.String()); err != nil {
		return fmt.Errorf("failed to emit shell commands: %w", err)
	}
	e.emitted += len(lines)
	return nil
}

// Emitted returns how many lines have been written.
func (e *Emitter) Emitted() int {
	return e.emitted
}
