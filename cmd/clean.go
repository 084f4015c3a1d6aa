package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/tui"
)

func (c *cli) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean NAME...",
		Short: "Delete environments to start over",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.UsageError("Subcommand clean expects at least 1 argument.")
			}
			return nil
		},
		RunE: c.direct(func(cmd *cobra.Command, args []string) error {
			mgr, err := c.app.Sandboxes()
			if err != nil {
				return err
			}

			for _, name := range args {
				exists, err := mgr.Exists(name)
				if err != nil {
					return err
				}
				if !exists {
					path, _ := mgr.Path(name)
					return errors.SandboxMissing(name, path)
				}

				ok, err := c.app.Confirmer.Confirm(tui.Prompt(name))
				if err != nil {
					return err
				}
				if !ok {
					c.app.Console.Info("Kept %s", name)
					continue
				}

				if err := mgr.Delete(name); err != nil {
					return err
				}
				c.app.Console.Success("Deleted %s", name)
			}
			return nil
		}),
	}
}
