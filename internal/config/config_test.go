package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inenv/inenv/internal/system"
)

func TestNewPaths(t *testing.T) {
	paths := NewPaths("/home/u/proj/inenv.ini")

	want := &Paths{
		ManifestPath: "/home/u/proj/inenv.ini",
		ManifestDir:  "/home/u/proj",
		WorkDir:      "/home/u/proj/.inenv",
		SwitchScript: "/home/u/proj/.inenv/inenv.sh",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("NewPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestPaths_Resolve(t *testing.T) {
	paths := NewPaths("/proj/inenv.ini")

	tests := []struct {
		in   string
		want string
	}{
		{"reqs.txt", "/proj/reqs.txt"},
		{"sub/../reqs/dev.txt", "/proj/reqs/dev.txt"},
		{"../shared/reqs.txt", "/shared/reqs.txt"},
		{"/abs/reqs.txt", "/abs/reqs.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := paths.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaths_SandboxRoot(t *testing.T) {
	paths := NewPaths("/proj/inenv.ini")

	if got := paths.SandboxRoot(""); got != "/proj/.inenv" {
		t.Errorf("SandboxRoot(\"\") = %q", got)
	}
	if got := paths.SandboxRoot("/big/disk"); got != "/big/disk" {
		t.Errorf("SandboxRoot(abs) = %q", got)
	}
	if got := paths.SandboxRoot("envs"); got != "/proj/envs" {
		t.Errorf("SandboxRoot(rel) = %q", got)
	}
}

func TestSandboxPath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		env     string
		want    string
		wantErr bool
	}{
		{"plain", "web", filepath.Join(root, "web"), false},
		{"dotted", "py3.11", filepath.Join(root, "py3.11"), false},
		{"traversal", "../escape", "", true},
		{"deep traversal", "../../etc/passwd", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SandboxPath(root, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SandboxPath(%q) error = %v, wantErr %v", tt.env, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("SandboxPath(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestSandboxPath_SymlinkStaysInRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	if err := os.Symlink(outside, filepath.Join(root, "web")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := SandboxPath(root, "web")
	if err != nil {
		t.Fatalf("SandboxPath error: %v", err)
	}
	if !strings.HasPrefix(got, root) {
		t.Errorf("SandboxPath escaped root: %q", got)
	}
}

func TestValidateEnvName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"web", false},
		{"Web", false},
		{"my-project", false},
		{"my_project", false},
		{"py3.11", false},
		{"123", false},

		{"", true},
		{"my project", true},
		{"../../../etc/passwd", true},
		{"/absolute/path", true},
		{".hidden", true},
		{"-starts-with-dash", true},
		{"_inenv_capture", true},
		{"has;semicolon", true},
		{"has$dollar", true},
		{"a" + strings.Repeat("b", 63), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEnvName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestSettingsPath(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"explicit", map[string]string{SettingsEnvVar: "/etc/inenv.toml", "HOME": "/h"}, "/etc/inenv.toml"},
		{"xdg", map[string]string{"XDG_CONFIG_HOME": "/x", "HOME": "/h"}, "/x/inenv/config.toml"},
		{"home", map[string]string{"HOME": "/h"}, "/h/.config/inenv/config.toml"},
		{"nothing", map[string]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := system.NewMapEnvironment(tt.vars)
			if got := SettingsPath(env); got != tt.want {
				t.Errorf("SettingsPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(system.DefaultFS(), filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}

	if diff := cmp.Diff(DefaultSettings(), settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettings_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
builder = ["python3", "-m", "virtualenv"]
installer = ["uv", "pip", "install"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	settings, err := LoadSettings(system.DefaultFS(), path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}

	want := DefaultSettings()
	want.Builder = []string{"python3", "-m", "virtualenv"}
	want.Installer = []string{"uv", "pip", "install"}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", "builder = [", "failed to parse"},
		{"unknown key", "bulder = [\"x\"]", "unknown key"},
		{"empty builder", "builder = []", "builder must name a command"},
		{"absolute hook", "activation_hook = \"/bin/activate_this.py\"", "must be relative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write settings: %v", err)
			}

			_, err := LoadSettings(system.DefaultFS(), path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsSubcommand(t *testing.T) {
	for _, name := range []string{"init", "clean", "jump", "runall", "run", "help"} {
		if !IsSubcommand(name) {
			t.Errorf("IsSubcommand(%q) = false", name)
		}
	}
	for _, name := range []string{"web", "", "Run", "jumps"} {
		if IsSubcommand(name) {
			t.Errorf("IsSubcommand(%q) = true", name)
		}
	}
}
