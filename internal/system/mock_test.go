package system

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestMockFS_ReadWriteFile(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddDir("/test")

	content := []byte("hello world")
	if err := mockFS.WriteFile("/test/file.txt", content, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	data, err := mockFS.ReadFile("/test/file.txt")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	if string(data) != "hello world" {
		t.Errorf("ReadFile = %q, want %q", string(data), "hello world")
	}
}

func TestMockFS_ReadFile_NotExists(t *testing.T) {
	mockFS := NewMockFS()

	_, err := mockFS.ReadFile("/nonexistent")
	if err != fs.ErrNotExist {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_IsFileAndIsDir(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/proj/inenv.ini", []byte("[web]"), 0644)

	if !mockFS.IsFile("/proj/inenv.ini") {
		t.Error("IsFile should be true for a file")
	}
	if mockFS.IsDir("/proj/inenv.ini") {
		t.Error("IsDir should be false for a file")
	}
	if !mockFS.IsDir("/proj") {
		t.Error("AddFile should create parent directories")
	}
	if mockFS.IsFile("/proj") {
		t.Error("IsFile should be false for a directory")
	}
}

func TestMockFS_Writable(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddDir("/rw")
	mockFS.AddDir("/ro")
	mockFS.SetReadOnly("/ro")

	if !mockFS.Writable("/rw") {
		t.Error("/rw should be writable")
	}
	if mockFS.Writable("/ro") {
		t.Error("/ro should not be writable")
	}
	if mockFS.Writable("/missing") {
		t.Error("missing paths should not be writable")
	}
	if err := mockFS.WriteFile("/ro/x", nil, 0644); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("WriteFile into read-only dir = %v, want ErrPermission", err)
	}
}

func TestMockFS_RemoveAll(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/p/.inenv/web/bin/activate_this.py", nil, 0644)
	mockFS.AddFile("/p/.inenv/webapp/bin/activate_this.py", nil, 0644)

	if err := mockFS.RemoveAll("/p/.inenv/web"); err != nil {
		t.Fatalf("RemoveAll error: %v", err)
	}

	if mockFS.Exists("/p/.inenv/web/bin/activate_this.py") {
		t.Error("file under removed dir should be gone")
	}
	if mockFS.Exists("/p/.inenv/web") {
		t.Error("removed dir should be gone")
	}
	if !mockFS.Exists("/p/.inenv/webapp/bin/activate_this.py") {
		t.Error("sibling with shared name prefix should survive")
	}
}

func TestMockFS_StatCounter(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddDir("/a")

	mockFS.Exists("/a")
	mockFS.IsDir("/a")

	if mockFS.Stats != 2 {
		t.Errorf("Stats = %d, want 2", mockFS.Stats)
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.ReadFileErr = fs.ErrPermission

	_, err := mockFS.ReadFile("/anything")
	if err != fs.ErrPermission {
		t.Errorf("ReadFile error = %v, want ErrPermission", err)
	}
}

func TestMockExecutor_Execute(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddResponse("echo", []byte("hello\n"), nil)

	output, err := exec.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if string(output) != "hello\n" {
		t.Errorf("Output = %q, want %q", string(output), "hello\n")
	}

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("No command recorded")
	}
	if cmd.String() != "echo hello" {
		t.Errorf("Command = %q, want %q", cmd.String(), "echo hello")
	}
}

func TestMockExecutor_PatternWithFirstArg(t *testing.T) {
	exec := NewMockExecutor()
	failure := errors.New("exit status 1")
	exec.AddResponse("pip install", []byte("boom"), failure)

	if _, err := exec.Execute(context.Background(), "pip", "install", "requests"); err != failure {
		t.Errorf("Execute error = %v, want %v", err, failure)
	}
	if _, err := exec.Execute(context.Background(), "pip", "freeze"); err != nil {
		t.Errorf("unmatched pattern should use default response, got %v", err)
	}
}

func TestMockExecutor_StreamingWritesOutput(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddResponse("pip", []byte("Collecting requests\n"), nil)

	var out bytes.Buffer
	if err := exec.ExecuteStreaming(context.Background(), &out, &out, "pip", "install", "requests"); err != nil {
		t.Fatalf("ExecuteStreaming error: %v", err)
	}

	if out.String() != "Collecting requests\n" {
		t.Errorf("streamed output = %q", out.String())
	}
	if cmd, _ := exec.LastCommand(); !cmd.Streamed {
		t.Error("command should be recorded as streamed")
	}
}

func TestMockExecutor_RecordsPath(t *testing.T) {
	env := NewMapEnvironment(map[string]string{"PATH": "/sandbox/bin:/usr/bin"})
	exec := NewMockExecutor()
	exec.Env = env

	exec.ExecuteInteractive(context.Background(), "pytest")

	cmd, _ := exec.LastCommand()
	if cmd.Path != "/sandbox/bin:/usr/bin" {
		t.Errorf("Path = %q, want the environment's PATH", cmd.Path)
	}
	if !cmd.Interactive {
		t.Error("command should be recorded as interactive")
	}
}

func TestMockExecutor_OnExecute(t *testing.T) {
	exec := NewMockExecutor()
	var seen []string
	exec.OnExecute = func(cmd MockCommand) {
		seen = append(seen, cmd.Name)
	}

	exec.Execute(context.Background(), "virtualenv", "/p/.inenv/web")

	if len(seen) != 1 || seen[0] != "virtualenv" {
		t.Errorf("OnExecute saw %v", seen)
	}
}

func TestMockExecutor_Reset(t *testing.T) {
	exec := NewMockExecutor()
	exec.Execute(context.Background(), "cmd1")
	exec.Execute(context.Background(), "cmd2")

	if len(exec.Commands) != 2 {
		t.Errorf("Commands length = %d, want 2", len(exec.Commands))
	}

	exec.Reset()

	if len(exec.Commands) != 0 {
		t.Errorf("Commands length after reset = %d, want 0", len(exec.Commands))
	}
}

func TestMapEnvironment(t *testing.T) {
	env := NewMapEnvironment(map[string]string{"A": "1"})

	if v, ok := env.LookupEnv("A"); !ok || v != "1" {
		t.Errorf("LookupEnv(A) = %q, %v", v, ok)
	}

	env.Setenv("B", "")
	if _, ok := env.LookupEnv("B"); !ok {
		t.Error("empty value should still be set")
	}

	env.Unsetenv("A")
	if _, ok := env.LookupEnv("A"); ok {
		t.Error("A should be unset")
	}

	if got := env.Keys(); len(got) != 1 || got[0] != "B" {
		t.Errorf("Keys() = %v, want [B]", got)
	}
}
