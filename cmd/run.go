package cmd

import (
	"context"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
)

func (c *cli) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run NAME -- COMMAND...",
		Short: "Run a command inside an environment",
		Long: `Builds NAME if needed, installs its dependencies and runs COMMAND with
the environment activated. With --nobuild the environment must already
exist and nothing is installed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.UsageError("Subcommand run expects arguments.")
			}
			if len(args) == 1 {
				return errors.UsageError("Subcommand run expects a command after --.")
			}
			return nil
		},
		RunE: c.direct(func(cmd *cobra.Command, args []string) error {
			return c.runIn(cmd.Context(), args[0], args[1:])
		}),
	}
}

// runIn prepares the named environment and runs argv inside it with the
// terminal attached.
func (c *cli) runIn(ctx context.Context, name string, argv []string) error {
	mgr, err := c.app.Sandboxes()
	if err != nil {
		return err
	}

	if c.nobuild {
		err = mgr.Activate(name)
	} else {
		err = mgr.Setup(ctx, name)
	}
	if err != nil {
		return err
	}

	display := shellquote.Join(argv...)
	logging.Debug("running in env", "env", name, "cmd", display)

	if err := c.app.Executor.ExecuteInteractive(ctx, argv[0], argv[1:]...); err != nil {
		return errors.SubprocessError(display, err)
	}
	return nil
}
