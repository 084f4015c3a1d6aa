package cmd

import (
	"context"
	"path/filepath"

	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/shellswitch"
)

// switchTo implements both halves of a switch. The direct call validates
// the name and the switch script and asks to be re-invoked; the capture
// call re-validates and emits the shell source. With jump set, the shell
// also changes into the directory of the first file: dependency.
func (c *cli) switchTo(ctx context.Context, name string, jump bool) error {
	mgr, err := c.app.Sandboxes()
	if err != nil {
		return err
	}

	spec, err := mgr.Spec(name)
	if err != nil {
		return err
	}

	installer, err := c.app.SwitchInstaller()
	if err != nil {
		return err
	}
	if err := installer.Ensure(); err != nil {
		return err
	}

	if c.nobuild {
		logging.Debug("--nobuild has no effect on switches")
	}

	state := shellswitch.Resolve(c.inv.Capture, []string{name})
	logging.Debug("switching", "env", name, "jump", jump, "state", state)
	if state != shellswitch.CaptureExecuting {
		return errors.Reenter()
	}

	lines, err := shellswitch.SwitchLines(mgr, name, c.app.Shell())
	if err != nil {
		return err
	}

	if jump {
		files := spec.FileDeps()
		if len(files) == 0 {
			c.app.Console.Warning("env %s has no file: dependency to jump to", name)
		} else {
			lines = append(lines, shellswitch.Cd(filepath.Dir(files[0].Path)))
		}
	}

	return shellswitch.NewEmitter(c.stdout).Emit(lines...)
}
