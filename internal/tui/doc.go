// Package tui provides terminal user interface components for inenv.
//
// # Confirmation
//
// clean asks before deleting a sandbox:
//
//	ok, err := confirmer.Confirm(tui.Prompt("web"))
//
// TerminalConfirmer draws a one-key Bubble Tea prompt on stderr, so stdout
// stays clean for capture mode. Only y confirms; n, enter, esc and ctrl+c
// decline. When stdin is not a terminal it falls back to LineConfirmer,
// which reads one answer line. StaticConfirmer answers without asking and
// is used in tests.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles/key - key bindings
//   - github.com/charmbracelet/lipgloss - Styling
package tui
