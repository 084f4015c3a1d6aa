package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/inenv/inenv/internal/app"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/shellswitch"
)

// Version is the binary version. The switch script advertises it, so it
// must change whenever the shell protocol does. Set at build time with
// -ldflags "-X github.com/inenv/inenv/cmd.Version=...".
var Version = "0.5.0"

// cli is the state of one invocation: the app context, the parsed global
// flags and the writers cobra and the emitter use.
type cli struct {
	app    *app.App
	inv    Invocation
	stdout io.Writer
	stderr io.Writer
	tty    bool

	verbose    bool
	nobuild    bool
	quiet      bool
	jsonOutput bool
}

// Execute runs inenv with the process's stdio.
func Execute(ctx context.Context, argv []string) error {
	c := &cli{
		app:    app.New(app.WithVersion(Version)),
		inv:    ParseInvocation(argv),
		stdout: os.Stdout,
		stderr: os.Stderr,
		tty:    isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	return c.execute(ctx)
}

func (c *cli) execute(ctx context.Context) error {
	root := c.newRootCmd()
	root.SetArgs(c.inv.Args)
	return root.ExecuteContext(ctx)
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inenv [NAME] [-- COMMAND...]",
		Short: "Per-project environment manager",
		Long: `inenv manages the environments declared in the nearest inenv.ini.

  inenv NAME                 switch the current shell to NAME
  inenv NAME -- COMMAND...   run COMMAND inside NAME
  inenv run NAME -- COMMAND  same as above
  inenv runall -- COMMAND    run COMMAND inside every environment

Switching needs the shell function from .inenv/inenv.sh, which inenv init
writes next to the manifest.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.setup()
		},
		RunE: c.runRoot,
	}

	root.SetVersionTemplate("inenv, version {{.Version}}\n")
	root.SetErr(c.stderr)
	if c.inv.Capture {
		// stdout is evaluated by the shell, so help and version are dropped.
		root.SetOut(io.Discard)
	} else {
		root.SetOut(c.stdout)
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Print output of installations and debug logs")
	flags.BoolVarP(&c.nobuild, "nobuild", "n", false, "Do not build or install before running")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "Do not print anything to stdout")
	flags.BoolVar(&c.jsonOutput, "json", false, "Output debug logs in JSON format")

	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		c.newInitCmd(),
		c.newCleanCmd(),
		c.newJumpCmd(),
		c.newRunallCmd(),
		c.newRunCmd(),
	)
	return root
}

// setup applies global flags to the app context before any command runs.
func (c *cli) setup() {
	logging.Setup(c.verbose, c.jsonOutput, c.stderr)

	quiet := c.quiet || !c.tty
	if c.inv.Capture {
		c.app.Console = logging.CaptureConsole(c.stderr, quiet)
	} else {
		c.app.Console = logging.NewConsole(c.stdout, c.stderr, quiet)
	}
	c.app.Verbose = c.verbose

	logging.Debug("invocation", "capture", c.inv.Capture, "args", c.inv.Args, "quiet", quiet)
}

// runRoot handles `inenv NAME` and `inenv NAME -- COMMAND...`. With only
// flags there is nothing to do.
func (c *cli) runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	if shellswitch.Classify(args) {
		return c.switchTo(cmd.Context(), args[0], false)
	}

	if c.inv.Capture {
		return nil
	}
	return c.runIn(cmd.Context(), args[0], args[1:])
}

// direct wraps commands that never emit shell source. If one arrives in
// capture mode it is ignored.
func (c *cli) direct(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if c.inv.Capture {
			logging.Debug("ignoring non-switch command in capture mode", "cmd", cmd.Name())
			return nil
		}
		return run(cmd, args)
	}
}

// PrintError reports err the way main does: in red on w, except for the
// silent re-enter signal.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.IsReenter(err) {
		return
	}
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("9"))
	fmt.Fprintln(w, style.Render("Error: "+err.Error()))
}
