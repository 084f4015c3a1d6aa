package testutil

import (
	"testing"
)

func TestFixturesParse(t *testing.T) {
	p := NewProject(t, WebManifest())
	m := p.Manifest()

	if got := m.Names(); len(got) != 2 || got[0] != "web" || got[1] != "docs" {
		t.Errorf("Names() = %v, want [web docs]", got)
	}
}

func TestInvalidFixture(t *testing.T) {
	if InvalidManifest() == "" {
		t.Error("InvalidManifest() is empty")
	}
	if _, err := LoadFixture("missing.ini"); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestProject_AddSandbox(t *testing.T) {
	p := NewProject(t, GatedManifest())

	if p.SandboxExists("web") {
		t.Fatal("sandbox should not exist yet")
	}
	dir := p.AddSandbox("web")
	if dir != "/work/proj/.inenv/web" {
		t.Errorf("AddSandbox() = %q", dir)
	}
	if !p.SandboxExists("web") {
		t.Error("sandbox should exist")
	}
}

func TestProject_SimulatedBuilder(t *testing.T) {
	p := NewProject(t, GatedManifest())

	if _, err := p.Executor.Execute(t.Context(), "virtualenv", p.SandboxPath("web")); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !p.SandboxExists("web") {
		t.Error("builder should create the activation hook")
	}
}
