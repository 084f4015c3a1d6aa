// Package logging provides logging utilities for inenv.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users (via Console)
//
// # Debug Logging
//
// Debug logs are written using slog, always to stderr, and enabled by --verbose:
//
//	logging.Debug("locating manifest", "start", dir)
//	logging.Warn("switch script is stale", "advertised", v)
//
// # User Output
//
// User-facing messages go through a Console:
//
//	console := logging.NewConsole(os.Stdout, os.Stderr, quiet)
//	console.Info("Installing %s", dep)
//	console.Error("Unable to parse %s", path)
//
// In capture mode the shell evaluates stdout, so the dispatcher builds the
// Console with logging.CaptureConsole(os.Stderr, quiet) instead.
//
// # Status Indicators
//
// Console methods prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
