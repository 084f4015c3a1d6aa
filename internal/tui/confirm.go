package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Yes key.Binding
	No  key.Binding
}

var keys = keyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "enter", "esc", "ctrl+c", "q"),
		key.WithHelp("n", "no"),
	),
}

// confirmModel is a single-keystroke yes/no prompt. Anything other than
// an explicit yes declines.
type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Yes):
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.No):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.confirmed {
			answer = "yes"
		}
		return promptStyle.Render(m.prompt) + " " + answer + "\n"
	}
	return promptStyle.Render(m.prompt) + " " + hintStyle.Render("[y/N]")
}

// Prompt renders a confirmation question the way both Confirmer
// implementations show it.
func Prompt(name string) string {
	return fmt.Sprintf("Going to delete %s env. Continue?", name)
}

// TerminalConfirmer prompts on a terminal with Bubble Tea, drawing on
// Output so stdout stays free for capture mode. When In is not a
// terminal it reads one line instead.
type TerminalConfirmer struct {
	In     *os.File
	Output io.Writer
}

// NewTerminalConfirmer prompts on stdin, drawing on stderr.
func NewTerminalConfirmer() *TerminalConfirmer {
	return &TerminalConfirmer{In: os.Stdin, Output: os.Stderr}
}

// Confirm implements Confirmer.
func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	if !isatty.IsTerminal(c.In.Fd()) && !isatty.IsCygwinTerminal(c.In.Fd()) {
		return (&LineConfirmer{In: c.In, Output: c.Output}).Confirm(prompt)
	}

	p := tea.NewProgram(newConfirmModel(prompt), tea.WithInput(c.In), tea.WithOutput(c.Output))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return final.(confirmModel).confirmed, nil
}

// LineConfirmer reads a single answer line. Only y or yes confirm.
type LineConfirmer struct {
	In     io.Reader
	Output io.Writer
}

// Confirm implements Confirmer.
func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Output, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// StaticConfirmer answers every prompt with Answer and records the prompts.
type StaticConfirmer struct {
	Answer  bool
	Prompts []string
}

// Confirm implements Confirmer.
func (c *StaticConfirmer) Confirm(prompt string) (bool, error) {
	c.Prompts = append(c.Prompts, prompt)
	return c.Answer, nil
}
