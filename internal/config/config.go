package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	ManifestFileName = "inenv.ini"
	WorkDirName      = ".inenv"
	SwitchScriptName = "inenv.sh"

	// SwitchEnvVar is exported by the switch script and advertises the
	// version of the binary that generated it.
	SwitchEnvVar = "INENV_SWITCH_SETUP"

	// SentinelArg is the first positional argument the shell function
	// passes when it captures and evaluates stdout.
	SentinelArg = "_inenv_capture"

	// RecursionLimit bounds the upward manifest search.
	RecursionLimit = 100

	ShellFunctionName = "inenv"
)

// envNameRegex validates environment names.
// Names must start with a letter or digit, followed by letters, digits,
// dots, underscores, or hyphens. Maximum length is 63 characters.
var envNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,62}$`)

// ValidateEnvName checks if an environment name can be used as a sandbox
// directory name.
func ValidateEnvName(name string) error {
	if name == "" {
		return fmt.Errorf("env name cannot be empty")
	}

	if !envNameRegex.MatchString(name) {
		return fmt.Errorf("invalid env name %q: must start with a letter or digit, contain only letters, digits, dots, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// SandboxPath returns the directory of the named sandbox under root.
// The name is validated and joined with securejoin so it cannot resolve
// outside root, even through symlinks already present under it.
func SandboxPath(root, name string) (string, error) {
	if err := ValidateEnvName(name); err != nil {
		return "", err
	}

	path, err := securejoin.SecureJoin(root, name)
	if err != nil {
		return "", fmt.Errorf("invalid sandbox path for %s: %w", name, err)
	}
	return path, nil
}

// Paths holds the paths derived from a located manifest.
type Paths struct {
	ManifestPath string
	ManifestDir  string
	WorkDir      string
	SwitchScript string
}

// NewPaths derives all project paths from the manifest location.
func NewPaths(manifestPath string) *Paths {
	dir := filepath.Dir(manifestPath)
	workDir := filepath.Join(dir, WorkDirName)
	return &Paths{
		ManifestPath: manifestPath,
		ManifestDir:  dir,
		WorkDir:      workDir,
		SwitchScript: filepath.Join(workDir, SwitchScriptName),
	}
}

// SandboxRoot returns the directory sandboxes live in: the storage
// override when one is declared, the project work dir otherwise.
func (p *Paths) SandboxRoot(storage string) string {
	if storage != "" {
		return p.Resolve(storage)
	}
	return p.WorkDir
}

// Resolve makes path absolute relative to the manifest directory.
func (p *Paths) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(p.ManifestDir, path))
}

// Subcommands that complete on the first, direct invocation. help is
// cobra's built-in command.
var NormalCommands = []string{"init", "clean", "runall", "run", "help"}

// Subcommands that always hand shell commands back through capture mode.
var ReentrantCommands = []string{"jump"}

// IsSubcommand reports whether name is reserved for a subcommand and so
// cannot name an environment.
func IsSubcommand(name string) bool {
	return slices.Contains(NormalCommands, name) || slices.Contains(ReentrantCommands, name)
}
