package shellswitch

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/system"
)

// scriptData holds data for the switch script template.
type scriptData struct {
	EnvVar   string
	Version  string
	Function string
	Sentinel string
	ExitCode string
}

var scriptTmpl = template.Must(template.New("switch").Funcs(template.FuncMap{
	"quote": func(s string) string { return shellquote.Join(s) },
}).Parse(`# Generated by inenv {{.Version}}. Source this file from your shell rc.
export {{.EnvVar}}={{quote .Version}}

{{.Function}}() {
    command {{.Function}} "$@"
    rc=$?
    if [ "$rc" -eq {{.ExitCode}} ]; then
        out="$(command {{.Function}} {{.Sentinel}} "$@")" || return $?
        eval "$out"
    else
        return $rc
    fi
}
`))

// RenderScript returns the switch script for version.
func RenderScript(version string) ([]byte, error) {
	var buf bytes.Buffer
	err := scriptTmpl.Execute(&buf, scriptData{
		EnvVar:   config.SwitchEnvVar,
		Version:  version,
		Function: config.ShellFunctionName,
		Sentinel: config.SentinelArg,
		ExitCode: strconv.Itoa(errors.ExitReenter),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render switch script: %w", err)
	}
	return buf.Bytes(), nil
}

// Installer keeps the switch script in step with the running binary.
type Installer struct {
	FS      system.FileSystem
	Env     system.Environment
	Console *logging.Console

	// Path is where the script is written.
	Path string

	// Version is the running binary's version.
	Version string
}

// UpToDate reports whether the sourced script advertises this version.
func (i *Installer) UpToDate() bool {
	return i.Env.Getenv(config.SwitchEnvVar) == i.Version
}

// Write renders the script to Path.
func (i *Installer) Write() error {
	data, err := RenderScript(i.Version)
	if err != nil {
		return err
	}

	if err := i.FS.MkdirAll(filepath.Dir(i.Path), 0755); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to create %s", filepath.Dir(i.Path)), err)
	}
	if err := i.FS.WriteFile(i.Path, data, 0644); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to write switch script %s", i.Path), err)
	}
	logging.Debug("wrote switch script", "path", i.Path, "version", i.Version)
	return nil
}

// Refresh rewrites a stale script and tells the user to re-source it. It
// reports whether the script was already up to date.
func (i *Installer) Refresh() (bool, error) {
	if i.UpToDate() {
		return true, nil
	}

	if err := i.Write(); err != nil {
		return false, err
	}

	i.Console.Warning("Your inenv switch script is out of date.")
	i.Console.Plain("Please source the following in your rc file if you want to switch envs:")
	i.Console.Plain("  source %s", i.Path)
	return false, nil
}

// Ensure is Refresh for switches: a stale script is a protocol error,
// since an older script may not honor the current exit-code contract.
func (i *Installer) Ensure() error {
	upToDate, err := i.Refresh()
	if err != nil {
		return err
	}
	if !upToDate {
		return errors.ProtocolError("switch script is out of date")
	}
	return nil
}
