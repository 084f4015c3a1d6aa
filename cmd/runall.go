package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inenv/inenv/internal/errors"
)

func (c *cli) newRunallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runall -- COMMAND...",
		Short: "Run a command inside every environment",
		Long: `Runs COMMAND once per environment, in manifest order, stopping at the
first failure. Gated environments whose variable is unset still run,
with no dependencies installed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.UsageError("Subcommand runall expects a command after --.")
			}
			return nil
		},
		RunE: c.direct(func(cmd *cobra.Command, args []string) error {
			m, err := c.app.Manifest()
			if err != nil {
				return err
			}

			for _, name := range m.Names() {
				c.app.Console.Info("Running in %s", name)
				if err := c.runIn(cmd.Context(), name, args); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}
