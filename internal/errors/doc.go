// Package errors provides typed errors with exit codes for inenv.
//
// # Error Types
//
// InenvError is the base error type that wraps an error with an exit code
// and a kind:
//
//	type InenvError struct {
//	    Code    int    // Exit code
//	    Kind    Kind   // config, usage, subprocess, protocol or reenter
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess      = 0    // Success
//	ExitGeneralError = 1    // Every fatal error
//	ExitReenter      = 255  // Ask the shell function to re-invoke in capture mode
//
// 255 is read by the generated shell function, so only Reenter produces it.
// New and Wrap always use ExitGeneralError.
//
// # Error Constructors
//
//	errors.ConfigError("unable to parse inenv.ini", err)
//	errors.EnvNotFound("web", manifestPath)
//	errors.ReservedName("init")
//	errors.SubprocessError("pip install requests", err)
//	errors.ProtocolError("switch script is out of date")
//	errors.Reenter()
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
