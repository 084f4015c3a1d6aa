package sandbox

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/inenv/inenv/internal/activation"
	"github.com/inenv/inenv/internal/audit"
	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/manifest"
)

// Manager creates, inspects, installs into and deletes the sandboxes of
// one manifest.
type Manager struct {
	opts Options
}

// NewManager creates a Manager. Options.Manifest is required.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts.withDefaults()}
}

// Manifest returns the manifest the Manager was built for.
func (m *Manager) Manifest() *manifest.Manifest {
	return m.opts.Manifest
}

// Engine returns the activation engine.
func (m *Manager) Engine() *activation.Engine {
	return m.opts.Engine
}

// Spec returns the named environment, rejecting reserved and undeclared names.
func (m *Manager) Spec(name string) (*manifest.EnvironmentSpec, error) {
	if config.IsSubcommand(name) || name == config.SentinelArg {
		return nil, errors.ReservedName(name)
	}

	spec, ok := m.opts.Manifest.Lookup(name)
	if !ok {
		return nil, errors.EnvNotFound(name, m.opts.Manifest.Path)
	}
	return spec, nil
}

// Path returns the sandbox directory of the named environment.
func (m *Manager) Path(name string) (string, error) {
	spec, err := m.Spec(name)
	if err != nil {
		return "", err
	}

	root := m.opts.Manifest.Paths.SandboxRoot(spec.Storage)
	path, err := config.SandboxPath(root, name)
	if err != nil {
		return "", errors.UsageError(err.Error())
	}
	return path, nil
}

// Exists reports whether the named sandbox has been built. A sandbox exists
// when its activation hook is present, so a half-built directory left by a
// failed builder counts as missing and is rebuilt.
func (m *Manager) Exists(name string) (bool, error) {
	path, err := m.Path(name)
	if err != nil {
		return false, err
	}
	return m.opts.FS.IsFile(filepath.Join(path, m.opts.Settings.ActivationHook)), nil
}

// Create materializes the named sandbox with the configured builder.
func (m *Manager) Create(ctx context.Context, name string) error {
	path, err := m.Path(name)
	if err != nil {
		return err
	}

	if err := m.opts.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.KindConfig, fmt.Sprintf("failed to create %s", filepath.Dir(path)), err)
	}

	logging.Debug("creating sandbox", "name", name, "path", path)
	argv := append(append([]string{}, m.opts.Settings.Builder...), path)
	if err := m.run(ctx, argv); err != nil {
		m.record(audit.EventError, name, err.Error())
		return err
	}
	m.record(audit.EventCreate, name, path)
	return nil
}

// Delete removes the named sandbox directory. Callers are expected to have
// confirmed with the user; Delete itself only refuses names that are not
// sandboxes of this manifest.
func (m *Manager) Delete(name string) error {
	path, err := m.Path(name)
	if err != nil {
		return err
	}

	logging.Debug("deleting sandbox", "name", name, "path", path)
	if err := m.opts.FS.RemoveAll(path); err != nil {
		return errors.Wrap(errors.KindConfig, fmt.Sprintf("failed to delete %s", path), err)
	}
	m.record(audit.EventDelete, name, path)
	return nil
}

// record appends a lifecycle event. Audit failures never fail the
// operation being audited.
func (m *Manager) record(eventType audit.EventType, name, details string) {
	if m.opts.Audit == nil {
		return
	}
	if err := m.opts.Audit.LogEvent(eventType, name, details); err != nil {
		logging.Warn("failed to write audit log", "env", name, "error", err)
	}
}

// ActivationContext returns how to enter the named sandbox.
func (m *Manager) ActivationContext(name string) (*activation.Context, error) {
	path, err := m.Path(name)
	if err != nil {
		return nil, err
	}

	binDir := filepath.Join(path, m.opts.Settings.BinDir)
	return &activation.Context{
		Root:         path,
		BinDir:       binDir,
		PathEntries:  []string{binDir},
		EnvOverrides: map[string]string{"VIRTUAL_ENV": path},
		Unset:        []string{"PYTHONHOME"},
	}, nil
}

// ActivateScript returns the script the shell sources to enter the sandbox.
func (m *Manager) ActivateScript(name string) (string, error) {
	path, err := m.Path(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(path, m.opts.Settings.ActivateScript), nil
}

// Activate loads the named sandbox into the current process.
func (m *Manager) Activate(name string) error {
	if _, err := m.opts.Engine.Activate(m, name); err != nil {
		var notExist *activation.NotExistError
		if errors.As(err, &notExist) {
			return errors.UsageError(notExist.Error())
		}
		return err
	}
	return nil
}
