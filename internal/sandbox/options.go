package sandbox

import (
	"github.com/inenv/inenv/internal/activation"
	"github.com/inenv/inenv/internal/audit"
	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/manifest"
	"github.com/inenv/inenv/internal/system"
)

// Options holds the dependencies of a Manager.
type Options struct {
	// Manifest is the parsed project manifest (required)
	Manifest *manifest.Manifest

	// Settings selects the builder, installer and sandbox layout.
	// Defaults to config.DefaultSettings().
	Settings *config.Settings

	// Executor runs the builder and installer. Defaults to the OS executor.
	Executor system.CommandExecutor

	// FS is used for existence checks and deletion. Defaults to the OS.
	FS system.FileSystem

	// Engine applies activation contexts. Defaults to an engine over the
	// process environment.
	Engine *activation.Engine

	// Console receives progress messages and, when Verbose, streamed
	// subprocess output.
	Console *logging.Console

	// Audit records lifecycle events. Nil disables auditing.
	Audit *audit.Logger

	// Verbose streams builder and installer output instead of capturing it.
	Verbose bool
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}
	if opts.Executor == nil {
		opts.Executor = system.DefaultExecutor()
	}
	if opts.FS == nil {
		opts.FS = system.DefaultFS()
	}
	if opts.Engine == nil {
		opts.Engine = activation.NewEngine(system.DefaultEnvironment())
	}
	if opts.Console == nil {
		opts.Console = logging.NewConsole(nil, nil, false)
	}
	return opts
}
