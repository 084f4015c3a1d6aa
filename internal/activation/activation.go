// Package activation loads a sandbox's execution context into the current
// process by adjusting PATH and a few well-known environment variables. It
// never runs code from the sandbox.
package activation

import (
	"fmt"
	"os"
	"strings"

	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/system"
)

// Context describes how to enter one sandbox.
type Context struct {
	// Root is the sandbox directory.
	Root string

	// BinDir holds the sandbox executables.
	BinDir string

	// PathEntries are prepended to PATH, in order.
	PathEntries []string

	// EnvOverrides are set verbatim.
	EnvOverrides map[string]string

	// Unset lists variables removed on activation.
	Unset []string
}

// Source resolves sandbox names to activation contexts.
type Source interface {
	// Exists reports whether the named sandbox has been built.
	Exists(name string) (bool, error)

	// ActivationContext returns how to enter the named sandbox.
	ActivationContext(name string) (*Context, error)
}

// NotExistError is returned when activating a sandbox that was never built.
type NotExistError struct {
	Name string
}

func (e *NotExistError) Error() string {
	return fmt.Sprintf("cannot activate env %s because it does not exist", e.Name)
}

// Engine applies activation contexts to a process environment.
//
// The first time a variable is touched its original value is recorded, and
// every activation starts by restoring those values, so activating a, then
// b leaves the environment as if only b had been activated.
type Engine struct {
	env      system.Environment
	original map[string]*string
	active   string
}

// NewEngine creates an Engine over env.
func NewEngine(env system.Environment) *Engine {
	return &Engine{
		env:      env,
		original: make(map[string]*string),
	}
}

// Active returns the name of the currently activated sandbox, if any.
func (e *Engine) Active() string {
	return e.active
}

// Activate enters the named sandbox.
func (e *Engine) Activate(src Source, name string) (*Context, error) {
	exists, err := src.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotExistError{Name: name}
	}

	ctx, err := src.ActivationContext(name)
	if err != nil {
		return nil, err
	}

	if err := e.Apply(ctx); err != nil {
		return nil, err
	}
	e.active = name
	logging.Debug("activated sandbox", "name", name, "root", ctx.Root)
	return ctx, nil
}

// Apply restores the original environment and then applies ctx.
func (e *Engine) Apply(ctx *Context) error {
	e.remember("PATH")
	for key := range ctx.EnvOverrides {
		e.remember(key)
	}
	for _, key := range ctx.Unset {
		e.remember(key)
	}

	if err := e.Restore(); err != nil {
		return err
	}

	if len(ctx.PathEntries) > 0 {
		path := strings.Join(ctx.PathEntries, string(os.PathListSeparator))
		if current := e.env.Getenv("PATH"); current != "" {
			path += string(os.PathListSeparator) + current
		}
		if err := e.env.Setenv("PATH", path); err != nil {
			return fmt.Errorf("failed to set PATH: %w", err)
		}
	}

	for key, value := range ctx.EnvOverrides {
		if err := e.env.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	for _, key := range ctx.Unset {
		if err := e.env.Unsetenv(key); err != nil {
			return fmt.Errorf("failed to unset %s: %w", key, err)
		}
	}

	return nil
}

// Restore puts every variable the Engine has touched back to its original value.
func (e *Engine) Restore() error {
	for key, value := range e.original {
		var err error
		if value == nil {
			err = e.env.Unsetenv(key)
		} else {
			err = e.env.Setenv(key, *value)
		}
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}
	e.active = ""
	return nil
}

// remember records key's value the first time it is seen. Later calls are
// no-ops, so the recorded value is always the pre-activation one.
func (e *Engine) remember(key string) {
	if _, ok := e.original[key]; ok {
		return
	}
	if value, ok := e.env.LookupEnv(key); ok {
		e.original[key] = &value
	} else {
		e.original[key] = nil
	}
}
