// Package testutil provides test fixtures and an in-memory project.
//
// # Fixtures
//
// Manifest fixtures are embedded using go:embed:
//
//	fixtures/web.ini      web and docs environments
//	fixtures/gated.ini    web plus ci gated on $CI
//	fixtures/invalid.ini  unterminated section header
//
// # Projects
//
// NewProject puts a manifest on a system.MockFS at /work/proj and wires a
// system.MockExecutor whose "virtualenv" builder creates the sandbox's
// activation hook, so Exists flips after Create:
//
//	p := testutil.NewProject(t, testutil.WebManifest())
//	p.AddSandbox("docs")
//	m := p.Manifest()
//
//	// later
//	p.Executor.CommandLines() // every builder/installer call
package testutil
