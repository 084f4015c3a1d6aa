package sandbox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inenv/inenv/internal/activation"
	"github.com/inenv/inenv/internal/audit"
	"github.com/inenv/inenv/internal/config"
	inerrors "github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/testutil"
)

func newManager(t *testing.T, p *testutil.Project, verbose bool) (*Manager, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	mgr := NewManager(Options{
		Manifest: p.Manifest(),
		Executor: p.Executor,
		FS:       p.FS,
		Engine:   activation.NewEngine(p.Env),
		Console:  logging.NewConsole(&stdout, &stderr, false),
		Verbose:  verbose,
	})
	return mgr, &stdout, &stderr
}

func kindOf(err error) inerrors.Kind {
	var ie *inerrors.InenvError
	if inerrors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

func TestSpec_ReservedNames(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	for _, name := range append(append([]string{}, config.NormalCommands...), "jump", config.SentinelArg) {
		_, err := mgr.Spec(name)
		if kindOf(err) != inerrors.KindUsage {
			t.Errorf("Spec(%q) error = %v, want usage error", name, err)
		}
	}
}

func TestSpec_Unknown(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	_, err := mgr.Spec("nope")
	if kindOf(err) != inerrors.KindUsage {
		t.Fatalf("error = %v, want usage error", err)
	}
	if err.Error() != "unable to find env nope in /work/proj/inenv.ini" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestPath(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	got, err := mgr.Path("web")
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if got != "/work/proj/.inenv/web" {
		t.Errorf("Path() = %q", got)
	}
}

func TestPath_StorageOverride(t *testing.T) {
	p := testutil.NewProject(t, "[web]\ndeps = requests\nenv_storage = /cache/envs\n")
	p.FS.AddDir("/cache/envs")
	mgr, _, _ := newManager(t, p, false)

	got, err := mgr.Path("web")
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if got != "/cache/envs/web" {
		t.Errorf("Path() = %q", got)
	}
}

func TestExists(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	p.AddSandbox("docs")
	// A directory without the hook is a half-built sandbox.
	p.FS.AddDir("/work/proj/.inenv/web/bin")
	mgr, _, _ := newManager(t, p, false)

	tests := map[string]bool{"web": false, "docs": true}
	for name, want := range tests {
		got, err := mgr.Exists(name)
		if err != nil {
			t.Fatalf("Exists(%q) error: %v", name, err)
		}
		if got != want {
			t.Errorf("Exists(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCreate(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	if err := mgr.Create(t.Context(), "web"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	want := []string{"virtualenv /work/proj/.inenv/web"}
	if diff := cmp.Diff(want, p.Executor.CommandLines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if !p.SandboxExists("web") {
		t.Error("sandbox should exist after Create")
	}
}

func TestCreate_BuilderFails(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	p.Executor.AddResponse("virtualenv", []byte("no python"), errors.New("exit status 1"))
	mgr, _, stderr := newManager(t, p, false)

	err := mgr.Create(t.Context(), "web")
	if kindOf(err) != inerrors.KindSubprocess {
		t.Fatalf("error = %v, want subprocess error", err)
	}
	if inerrors.GetExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", inerrors.GetExitCode(err))
	}
	if stderr.String() != "no python" {
		t.Errorf("captured output not replayed: %q", stderr.String())
	}
}

func TestDelete(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	p.AddSandbox("web")
	p.AddSandbox("docs")
	mgr, _, _ := newManager(t, p, false)

	if err := mgr.Delete("web"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if p.SandboxExists("web") {
		t.Error("web should be deleted")
	}
	if !p.SandboxExists("docs") {
		t.Error("docs should be untouched")
	}
}

func TestDelete_Reserved(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	if err := mgr.Delete("init"); err == nil {
		t.Error("expected error deleting a reserved name")
	}
}

func TestActivationContext(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	got, err := mgr.ActivationContext("web")
	if err != nil {
		t.Fatalf("ActivationContext error: %v", err)
	}

	want := &activation.Context{
		Root:         "/work/proj/.inenv/web",
		BinDir:       "/work/proj/.inenv/web/bin",
		PathEntries:  []string{"/work/proj/.inenv/web/bin"},
		EnvOverrides: map[string]string{"VIRTUAL_ENV": "/work/proj/.inenv/web"},
		Unset:        []string{"PYTHONHOME"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestActivate_Missing(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	err := mgr.Activate("web")
	if kindOf(err) != inerrors.KindUsage {
		t.Fatalf("error = %v, want usage error", err)
	}
	if err.Error() != "cannot activate env web because it does not exist" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestActivateScript(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	mgr, _, _ := newManager(t, p, false)

	got, err := mgr.ActivateScript("web")
	if err != nil {
		t.Fatalf("ActivateScript error: %v", err)
	}
	if got != "/work/proj/.inenv/web/bin/activate" {
		t.Errorf("ActivateScript() = %q", got)
	}
}

func TestAuditTrail(t *testing.T) {
	p := testutil.NewProject(t, testutil.WebManifest())
	logger := audit.NewLogger(p.FS, "/work/proj/.inenv")
	mgr := NewManager(Options{
		Manifest: p.Manifest(),
		Executor: p.Executor,
		FS:       p.FS,
		Engine:   activation.NewEngine(p.Env),
		Console:  logging.NewConsole(&bytes.Buffer{}, &bytes.Buffer{}, true),
		Audit:    logger,
	})

	if err := mgr.Setup(t.Context(), "web"); err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := mgr.Delete("web"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	events, err := logger.Events("web")
	if err != nil {
		t.Fatalf("Events error: %v", err)
	}

	var got []string
	for _, e := range events {
		got = append(got, string(e.Type)+" "+e.Details)
	}
	want := []string{
		"create /work/proj/.inenv/web",
		"install requests",
		"install file:reqs.txt",
		"delete /work/proj/.inenv/web",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}
