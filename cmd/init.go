package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inenv/inenv/internal/logging"
)

func (c *cli) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [NAME...]",
		Short: "Build environments and install their dependencies",
		Long: `Builds each listed environment, or every environment in the manifest
when none are listed, and installs its dependencies. Installer output is
shown unless --quiet is set.

init also writes the switch script to .inenv/inenv.sh when the one your
shell has sourced is missing or out of date.`,
		RunE: c.direct(func(cmd *cobra.Command, args []string) error {
			m, err := c.app.Manifest()
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = m.Names()
			}

			// init shows installer output unless quiet; -v always does.
			c.app.Verbose = c.verbose || !c.app.Console.Quiet()

			mgr, err := c.app.Sandboxes()
			if err != nil {
				return err
			}

			for _, name := range names {
				logging.Debug("initializing env", "name", name)
				if err := mgr.Setup(cmd.Context(), name); err != nil {
					return err
				}
				c.app.Console.Success("Initialized %s", name)
			}

			installer, err := c.app.SwitchInstaller()
			if err != nil {
				return err
			}
			_, err = installer.Refresh()
			return err
		}),
	}
}
