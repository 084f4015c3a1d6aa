package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inenv/inenv/internal/errors"
)

func (c *cli) newJumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jump NAME",
		Short: "Switch to an environment and cd to its requirements directory",
		Long: `Switches the shell to NAME like "inenv NAME" and then changes into the
directory of NAME's first file: dependency.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.UsageError("Subcommand jump expects only 1 argument.")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.switchTo(cmd.Context(), args[0], true)
		},
	}
}
