// Package testutil provides test utilities for inenv packages.
package testutil

import (
	"path"
	"testing"

	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/manifest"
	"github.com/inenv/inenv/internal/system"
)

// ProjectDir is where NewProject places the manifest.
const ProjectDir = "/work/proj"

// Project is an in-memory project: a manifest on a MockFS, a mock
// executor whose builder creates sandboxes, and a map-backed environment.
type Project struct {
	T        *testing.T
	Dir      string
	FS       *system.MockFS
	Executor *system.MockExecutor
	Env      *system.MapEnvironment
}

// NewProject writes manifest to ProjectDir/inenv.ini and starts the
// working directory there.
func NewProject(t *testing.T, manifestText string) *Project {
	t.Helper()

	fs := system.NewMockFS()
	fs.AddFile(path.Join(ProjectDir, config.ManifestFileName), []byte(manifestText), 0644)
	fs.Cwd = ProjectDir

	env := system.NewMapEnvironment(map[string]string{
		"PATH":  "/usr/bin:/bin",
		"SHELL": "/bin/bash",
		"HOME":  "/home/tester",
	})

	exec := system.NewMockExecutor()
	exec.Env = env

	p := &Project{
		T:        t,
		Dir:      ProjectDir,
		FS:       fs,
		Executor: exec,
		Env:      env,
	}
	exec.OnExecute = p.simulateBuilder
	return p
}

// simulateBuilder creates the activation hook when the default builder runs,
// unless the test has made the builder fail.
func (p *Project) simulateBuilder(cmd system.MockCommand) {
	if cmd.Name != "virtualenv" || len(cmd.Args) == 0 {
		return
	}
	if resp, ok := p.Executor.Responses["virtualenv"]; ok && resp.Err != nil {
		return
	}
	p.FS.AddFile(path.Join(cmd.Args[len(cmd.Args)-1], "bin", "activate_this.py"), nil, 0644)
}

// ManifestPath returns the manifest location.
func (p *Project) ManifestPath() string {
	return path.Join(p.Dir, config.ManifestFileName)
}

// SandboxPath returns the default location of a sandbox.
func (p *Project) SandboxPath(name string) string {
	return path.Join(p.Dir, config.WorkDirName, name)
}

// AddSandbox creates a built sandbox for name at its default location.
func (p *Project) AddSandbox(name string) string {
	dir := p.SandboxPath(name)
	p.FS.AddFile(path.Join(dir, "bin", "activate_this.py"), nil, 0644)
	p.FS.AddFile(path.Join(dir, "bin", "activate"), nil, 0644)
	return dir
}

// SandboxExists reports whether the hook of a default-located sandbox exists.
func (p *Project) SandboxExists(name string) bool {
	return p.FS.IsFile(path.Join(p.SandboxPath(name), "bin", "activate_this.py"))
}

// Manifest parses the project manifest.
func (p *Project) Manifest() *manifest.Manifest {
	p.T.Helper()

	m, err := manifest.NewParser(p.FS, p.Env).Parse(p.ManifestPath())
	if err != nil {
		p.T.Fatalf("failed to parse manifest: %v", err)
	}
	return m
}
