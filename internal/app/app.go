// Package app provides the process-scoped context for inenv.
// It allows dependency injection for testing.
package app

import (
	"github.com/inenv/inenv/internal/activation"
	"github.com/inenv/inenv/internal/audit"
	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/manifest"
	"github.com/inenv/inenv/internal/sandbox"
	"github.com/inenv/inenv/internal/shellswitch"
	"github.com/inenv/inenv/internal/system"
	"github.com/inenv/inenv/internal/tui"
)

// App holds the dependencies and per-invocation state of one inenv run.
// The manifest is located and parsed at most once per App.
type App struct {
	// FS is the filesystem
	FS system.FileSystem

	// Executor runs the builder, installer and user commands
	Executor system.CommandExecutor

	// Env is the process environment
	Env system.Environment

	// Console writes user-facing messages
	Console *logging.Console

	// Confirmer asks before destructive operations
	Confirmer tui.Confirmer

	// Settings overrides the loaded user settings when set
	Settings *config.Settings

	// Version is the binary version advertised by the switch script
	Version string

	// Verbose streams subprocess output
	Verbose bool

	locator   *manifest.Locator
	manifest  *manifest.Manifest
	engine    *activation.Engine
	sandboxes *sandbox.Manager
}

// Option is a function that configures the App
type Option func(*App)

// WithFS sets a custom filesystem
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithEnvironment sets a custom process environment
func WithEnvironment(env system.Environment) Option {
	return func(a *App) {
		a.Env = env
	}
}

// WithConsole sets the user-facing console
func WithConsole(console *logging.Console) Option {
	return func(a *App) {
		a.Console = console
	}
}

// WithConfirmer sets the confirmation prompt
func WithConfirmer(c tui.Confirmer) Option {
	return func(a *App) {
		a.Confirmer = c
	}
}

// WithSettings sets user settings, skipping the settings file
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithVersion sets the binary version
func WithVersion(v string) Option {
	return func(a *App) {
		a.Version = v
	}
}

// New creates a new App with the given options. Unset dependencies
// default to the real OS.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Env == nil {
		app.Env = system.DefaultEnvironment()
	}
	if app.Console == nil {
		app.Console = logging.NewConsole(nil, nil, false)
	}
	if app.Confirmer == nil {
		app.Confirmer = tui.NewTerminalConfirmer()
	}

	app.locator = manifest.NewLocator(app.FS)
	app.engine = activation.NewEngine(app.Env)
	return app
}

// Locator returns the App's manifest locator.
func (a *App) Locator() *manifest.Locator {
	return a.locator
}

// Engine returns the App's activation engine.
func (a *App) Engine() *activation.Engine {
	return a.engine
}

// Manifest locates and parses the project manifest on first use.
func (a *App) Manifest() (*manifest.Manifest, error) {
	if a.manifest != nil {
		return a.manifest, nil
	}

	path, err := a.locator.Locate()
	if err != nil {
		return nil, err
	}

	m, err := manifest.NewParser(a.FS, a.Env).Parse(path)
	if err != nil {
		return nil, err
	}

	logging.Debug("parsed manifest", "path", path, "envs", m.Names())
	a.manifest = m
	return m, nil
}

// LoadSettings returns the user settings, reading the settings file once.
func (a *App) LoadSettings() (*config.Settings, error) {
	if a.Settings != nil {
		return a.Settings, nil
	}

	path := config.SettingsPath(a.Env)
	settings, err := config.LoadSettings(a.FS, path)
	if err != nil {
		return nil, errors.ConfigError(err.Error(), nil)
	}

	a.Settings = settings
	return settings, nil
}

// Sandboxes returns the sandbox manager for the project manifest.
func (a *App) Sandboxes() (*sandbox.Manager, error) {
	if a.sandboxes != nil {
		return a.sandboxes, nil
	}

	m, err := a.Manifest()
	if err != nil {
		return nil, err
	}

	settings, err := a.LoadSettings()
	if err != nil {
		return nil, err
	}

	a.sandboxes = sandbox.NewManager(sandbox.Options{
		Manifest: m,
		Settings: settings,
		Executor: a.Executor,
		FS:       a.FS,
		Engine:   a.engine,
		Console:  a.Console,
		Audit:    audit.NewLogger(a.FS, m.Paths.WorkDir),
		Verbose:  a.Verbose,
	})
	return a.sandboxes, nil
}

// SwitchInstaller returns the installer for the project's switch script.
func (a *App) SwitchInstaller() (*shellswitch.Installer, error) {
	m, err := a.Manifest()
	if err != nil {
		return nil, err
	}

	return &shellswitch.Installer{
		FS:      a.FS,
		Env:     a.Env,
		Console: a.Console,
		Path:    m.Paths.SwitchScript,
		Version: a.Version,
	}, nil
}

// Shell returns the user's login shell, used to pick the sourcing builtin.
func (a *App) Shell() string {
	return a.Env.Getenv("SHELL")
}
