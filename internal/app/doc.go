// Package app provides the process-scoped context for inenv.
//
// There are no package-level globals: the cmd layer builds one App per
// invocation and every command reaches the manifest, sandboxes and OS
// through it.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS        system.FileSystem       // Filesystem
//	    Executor  system.CommandExecutor  // Builder, installer, user commands
//	    Env       system.Environment      // Process environment
//	    Console   *logging.Console        // User-facing output
//	    Confirmer tui.Confirmer           // clean confirmation
//	    Settings  *config.Settings        // User settings
//	    Version   string                  // Binary version
//	}
//
// The manifest path is found by a single Locator and the parsed manifest
// is cached, so one invocation reads inenv.ini at most once.
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New(app.WithVersion(version))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(mockFS),
//	    app.WithExecutor(mockExec),
//	    app.WithEnvironment(env),
//	    app.WithConfirmer(&tui.StaticConfirmer{Answer: true}),
//	)
package app
