package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/inenv/inenv/internal/system"
)

// SettingsEnvVar overrides the location of the user settings file.
const SettingsEnvVar = "INENV_CONFIG"

// Settings are per-user overrides for the external collaborators inenv
// drives. Every field has a default matching the virtualenv/pip layout.
type Settings struct {
	// Builder is the argv prefix that materializes a sandbox; the sandbox
	// path is appended.
	Builder []string `toml:"builder"`

	// Installer is the argv prefix that installs one dependency.
	Installer []string `toml:"installer"`

	// RequirementsFlag precedes a requirements file path for file: deps.
	RequirementsFlag string `toml:"requirements_flag"`

	// ActivationHook is the file, relative to the sandbox, whose presence
	// means the sandbox exists.
	ActivationHook string `toml:"activation_hook"`

	// ActivateScript is the file, relative to the sandbox, the shell sources
	// on switch.
	ActivateScript string `toml:"activate_script"`

	// BinDir is the executables directory, relative to the sandbox.
	BinDir string `toml:"bin_dir"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Builder:          []string{"virtualenv"},
		Installer:        []string{"pip", "install"},
		RequirementsFlag: "-r",
		ActivationHook:   "bin/activate_this.py",
		ActivateScript:   "bin/activate",
		BinDir:           "bin",
	}
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if len(s.Builder) == 0 || strings.TrimSpace(s.Builder[0]) == "" {
		return fmt.Errorf("builder must name a command")
	}
	if len(s.Installer) == 0 || strings.TrimSpace(s.Installer[0]) == "" {
		return fmt.Errorf("installer must name a command")
	}
	for field, rel := range map[string]string{
		"activation_hook": s.ActivationHook,
		"activate_script": s.ActivateScript,
		"bin_dir":         s.BinDir,
	} {
		if rel == "" {
			return fmt.Errorf("%s is required", field)
		}
		if filepath.IsAbs(rel) {
			return fmt.Errorf("%s must be relative to the sandbox (got %q)", field, rel)
		}
	}
	return nil
}

// SettingsPath returns where the user settings file is looked up.
func SettingsPath(env system.Environment) string {
	if p := env.Getenv(SettingsEnvVar); p != "" {
		return p
	}
	if xdg := env.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inenv", "config.toml")
	}
	if home := env.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "inenv", "config.toml")
	}
	return ""
}

// LoadSettings loads the settings file at path over the defaults.
// A missing file yields the defaults.
func LoadSettings(fsys system.FileSystem, path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in settings %s", undecoded[0].String(), path)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	return settings, nil
}
