package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Console writes user-facing messages with status glyphs.
//
// It holds separate writers for informational and diagnostic output so the
// caller decides where each channel goes. In capture mode both writers are
// stderr, since stdout belongs to the shell evaluating it.
type Console struct {
	out   io.Writer
	err   io.Writer
	quiet bool

	infoStyle    lipgloss.Style
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewConsole creates a Console. Nil writers default to stdout and stderr.
func NewConsole(out, err io.Writer, quiet bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}

	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(err)

	return &Console{
		out:          out,
		err:          err,
		quiet:        quiet,
		infoStyle:    outRenderer.NewStyle().Foreground(lipgloss.Color("12")),
		successStyle: outRenderer.NewStyle().Foreground(lipgloss.Color("10")),
		warningStyle: errRenderer.NewStyle().Foreground(lipgloss.Color("11")),
		errorStyle:   errRenderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// CaptureConsole returns a Console whose every message goes to err.
func CaptureConsole(err io.Writer, quiet bool) *Console {
	if err == nil {
		err = os.Stderr
	}
	return NewConsole(err, err, quiet)
}

// Quiet reports whether informational messages are suppressed.
func (c *Console) Quiet() bool {
	return c.quiet
}

// Out returns the writer used for informational output and streamed
// subprocess output.
func (c *Console) Out() io.Writer {
	return c.out
}

// Err returns the diagnostic writer.
func (c *Console) Err() io.Writer {
	return c.err
}

// Info prints an info message unless quiet.
func (c *Console) Info(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.infoStyle.Render("ℹ")+" "+fmt.Sprintf(format, args...))
}

// Success prints a success message unless quiet.
func (c *Console) Success(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.successStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a warning message to the diagnostic writer.
func (c *Console) Warning(format string, args ...interface{}) {
	fmt.Fprintln(c.err, c.warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message to the diagnostic writer.
func (c *Console) Error(format string, args ...interface{}) {
	fmt.Fprintln(c.err, c.errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Plain prints an unadorned line to the diagnostic writer. Used for
// remediation text the user may want to copy verbatim.
func (c *Console) Plain(format string, args ...interface{}) {
	fmt.Fprintf(c.err, format+"\n", args...)
}
