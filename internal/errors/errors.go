package errors

import (
	"errors"
	"fmt"
)

// Exit codes for inenv. ExitReenter is part of the contract with the
// generated shell function and is only ever produced by Reenter.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitReenter      = 255
)

// Kind classifies an InenvError.
type Kind string

const (
	KindConfig     Kind = "config"
	KindUsage      Kind = "usage"
	KindSubprocess Kind = "subprocess"
	KindProtocol   Kind = "protocol"
	KindReenter    Kind = "reenter"
)

// InenvError is the base error type for inenv
type InenvError struct {
	Code    int
	Kind    Kind
	Message string
	Cause   error
}

func (e *InenvError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InenvError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *InenvError) ExitCode() int {
	return e.Code
}

// Silent reports whether the error should exit without printing anything.
func (e *InenvError) Silent() bool {
	return e.Kind == KindReenter
}

// New creates a new fatal InenvError. Every fatal error exits with
// ExitGeneralError; the re-enter code cannot be requested here.
func New(kind Kind, message string) *InenvError {
	return &InenvError{
		Code:    ExitGeneralError,
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with an InenvError
func Wrap(kind Kind, message string, cause error) *InenvError {
	return &InenvError{
		Code:    ExitGeneralError,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for a missing, unparsable or invalid manifest or settings file.
func ConfigError(message string, cause error) *InenvError {
	if cause == nil {
		return New(KindConfig, message)
	}
	return Wrap(KindConfig, message, cause)
}

// UsageError returns an error for bad command-line usage.
func UsageError(message string) *InenvError {
	return New(KindUsage, message)
}

// EnvNotFound returns an error for an environment missing from the manifest.
func EnvNotFound(name, manifestPath string) *InenvError {
	return New(KindUsage, fmt.Sprintf("unable to find env %s in %s", name, manifestPath))
}

// ReservedName returns an error for an environment named like a subcommand.
func ReservedName(name string) *InenvError {
	return New(KindUsage, fmt.Sprintf("cannot use subcommand '%s' as env name", name))
}

// SandboxMissing returns an error when a sandbox has not been created yet.
func SandboxMissing(name, path string) *InenvError {
	return New(KindUsage, fmt.Sprintf("env %s does not exist at %s", name, path))
}

// SubprocessError returns an error for a failed builder, installer or user command.
func SubprocessError(command string, cause error) *InenvError {
	return Wrap(KindSubprocess, fmt.Sprintf("command failed: %s", command), cause)
}

// ProtocolError returns an error for a stale or missing switch script.
func ProtocolError(message string) *InenvError {
	return New(KindProtocol, message)
}

// Reenter returns the signal asking the shell function to re-invoke inenv
// in capture mode. It is not a failure and prints nothing.
func Reenter() *InenvError {
	return &InenvError{
		Code:    ExitReenter,
		Kind:    KindReenter,
		Message: "re-enter in capture mode",
	}
}

// IsReenter reports whether err carries the re-enter signal.
func IsReenter(err error) bool {
	var inenvErr *InenvError
	return errors.As(err, &inenvErr) && inenvErr.Kind == KindReenter
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var inenvErr *InenvError
	if errors.As(err, &inenvErr) {
		return inenvErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
