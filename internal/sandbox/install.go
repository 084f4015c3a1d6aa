package sandbox

import (
	"context"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/inenv/inenv/internal/audit"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/manifest"
)

// InstallArgs returns the installer argv for one dependency.
func (m *Manager) InstallArgs(dep manifest.Dependency) []string {
	argv := append([]string{}, m.opts.Settings.Installer...)
	if dep.IsFile {
		return append(argv, m.opts.Settings.RequirementsFlag, dep.Path)
	}
	return append(argv, dep.Raw)
}

// Install activates the named sandbox and runs the installer once per
// dependency, in declared order. The first failure stops the install.
func (m *Manager) Install(ctx context.Context, name string) error {
	spec, err := m.Spec(name)
	if err != nil {
		return err
	}

	if err := m.Activate(name); err != nil {
		return err
	}

	for _, dep := range spec.Deps {
		m.opts.Console.Info("Installing %s", dep.Raw)
		if err := m.run(ctx, m.InstallArgs(dep)); err != nil {
			m.record(audit.EventError, name, err.Error())
			return err
		}
		m.record(audit.EventInstall, name, dep.Raw)
	}
	return nil
}

// Setup builds the named sandbox when it is missing and installs its
// dependencies. This runs before any command that needs the sandbox.
func (m *Manager) Setup(ctx context.Context, name string) error {
	exists, err := m.Exists(name)
	if err != nil {
		return err
	}

	if !exists {
		if err := m.Create(ctx, name); err != nil {
			return err
		}
	}

	return m.Install(ctx, name)
}

// run executes argv, streaming its output when verbose and otherwise
// replaying captured output only if the command fails.
func (m *Manager) run(ctx context.Context, argv []string) error {
	display := shellquote.Join(argv...)
	logging.Debug("running", "cmd", display)

	var err error
	if m.opts.Verbose {
		err = m.opts.Executor.ExecuteStreaming(ctx, m.opts.Console.Out(), m.opts.Console.Err(), argv[0], argv[1:]...)
	} else {
		var output []byte
		output, err = m.opts.Executor.Execute(ctx, argv[0], argv[1:]...)
		if err != nil && len(output) > 0 {
			_, _ = m.opts.Console.Err().Write(output)
		}
	}

	if err != nil {
		return errors.SubprocessError(display, err)
	}
	return nil
}
