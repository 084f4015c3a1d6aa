package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/system"
)

// Manifest keys.
const (
	KeyDeps    = "deps"
	KeyStorage = "env_storage"

	filePrefix = "file:"
)

// Dependency is one entry of an environment's deps list.
type Dependency struct {
	// Raw is the entry as written in the manifest.
	Raw string

	// IsFile is true for file: entries, which name a requirements file.
	IsFile bool

	// Path is the absolute requirements file path for file: entries.
	Path string
}

// Target returns what the installer receives: the package specifier or the
// resolved requirements file.
func (d Dependency) Target() string {
	if d.IsFile {
		return d.Path
	}
	return d.Raw
}

// EnvironmentSpec is one named environment of the manifest.
type EnvironmentSpec struct {
	Name string

	// Gate is the gating variable of the section that defined this
	// environment, if any.
	Gate string

	// Active is false when every section for this name was gated by an
	// unset variable. Inactive environments are still valid targets; they
	// just have nothing to install.
	Active bool

	Deps []Dependency

	// Storage is the resolved, validated storage override, or empty.
	Storage string
}

// FileDeps returns the file: dependencies in declared order.
func (s *EnvironmentSpec) FileDeps() []Dependency {
	var deps []Dependency
	for _, d := range s.Deps {
		if d.IsFile {
			deps = append(deps, d)
		}
	}
	return deps
}

// Manifest is the parsed inenv.ini.
type Manifest struct {
	Path  string
	Paths *config.Paths

	names []string
	envs  map[string]*EnvironmentSpec
}

// Names returns environment names in first-declaration order.
func (m *Manifest) Names() []string {
	return append([]string(nil), m.names...)
}

// Lookup returns the named environment.
func (m *Manifest) Lookup(name string) (*EnvironmentSpec, bool) {
	spec, ok := m.envs[name]
	return spec, ok
}

// Has reports whether name is declared.
func (m *Manifest) Has(name string) bool {
	_, ok := m.envs[name]
	return ok
}

// Parser turns a manifest file into a Manifest. Gating variables are read
// from Env at parse time.
type Parser struct {
	FS  system.FileSystem
	Env system.Environment
}

// NewParser creates a Parser reading files from fsys and gating variables
// from env.
func NewParser(fsys system.FileSystem, env system.Environment) *Parser {
	return &Parser{FS: fsys, Env: env}
}

// Parse reads and parses the manifest at path.
func (p *Parser) Parse(path string) (*Manifest, error) {
	data, err := p.FS.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("unable to read %s", path), err)
	}
	return p.ParseBytes(path, data)
}

// ParseBytes parses manifest content as if it were read from path.
func (p *Parser) ParseBytes(path string, data []byte) (*Manifest, error) {
	if line, ok := keyBeforeHeader(data); ok {
		return nil, errors.ConfigError(fmt.Sprintf("unable to parse your ini file %s: line %d has no section header", path, line), nil)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, data)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("unable to parse your ini file %s", path), err)
	}

	m := &Manifest{
		Path:  path,
		Paths: config.NewPaths(path),
		envs:  make(map[string]*EnvironmentSpec),
	}
	defaults := file.Section(ini.DefaultSection)

	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		if err := p.addSection(m, section, defaults); err != nil {
			return nil, err
		}
	}

	logging.Debug("parsed manifest", "path", path, "envs", m.names)
	return m, nil
}

func (p *Parser) addSection(m *Manifest, section, defaults *ini.Section) error {
	name, gate, _ := strings.Cut(section.Name(), ":")
	name = strings.TrimSpace(name)
	gate = strings.TrimSpace(gate)
	if name == "" {
		return errors.ConfigError(fmt.Sprintf("section [%s] in %s has no env name", section.Name(), m.Path), nil)
	}

	if err := config.ValidateEnvName(name); err != nil {
		return errors.ConfigError(fmt.Sprintf("section [%s] in %s", section.Name(), m.Path), err)
	}

	spec, ok := m.envs[name]
	if !ok {
		spec = &EnvironmentSpec{Name: name}
		m.envs[name] = spec
		m.names = append(m.names, name)
	}

	if gate != "" && p.Env.Getenv(gate) == "" {
		logging.Debug("section gated off", "section", section.Name(), "var", gate)
		if !spec.Active {
			spec.Gate = gate
		}
		return nil
	}
	spec.Active = true
	spec.Gate = gate

	spec.Deps = nil
	if raw, ok := lookup(section, defaults, KeyDeps); ok {
		spec.Deps = parseDeps(raw, m.Paths)
	}

	if raw, ok := lookup(section, defaults, KeyStorage); ok {
		storage := m.Paths.Resolve(strings.TrimSpace(raw))
		if !p.FS.IsDir(storage) || !p.FS.Writable(storage) {
			return errors.ConfigError(fmt.Sprintf("ini parse error: the env_storage for %s provided is not a directory or doesn't have write permissions", section.Name()), nil)
		}
		spec.Storage = storage
	}

	return nil
}

// keyBeforeHeader reports the first line, counting from 1, that holds
// content before any section header. Such keys would otherwise land in
// DEFAULT and be inherited by every environment.
func keyBeforeHeader(data []byte) (int, bool) {
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "["):
			return 0, false
		default:
			return i + 1, true
		}
	}
	return 0, false
}

// lookup reads key from section, falling back to the DEFAULT section.
func lookup(section, defaults *ini.Section, key string) (string, bool) {
	if section.HasKey(key) {
		return section.Key(key).String(), true
	}
	if defaults != nil && defaults.HasKey(key) {
		return defaults.Key(key).String(), true
	}
	return "", false
}

// parseDeps splits a deps value on commas (and on the newlines of a
// continued value), trimming each entry and dropping empty ones.
func parseDeps(raw string, paths *config.Paths) []Dependency {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	deps := make([]Dependency, 0, len(fields))
	for _, field := range fields {
		entry := strings.TrimSpace(field)
		if entry == "" {
			continue
		}
		dep := Dependency{Raw: entry}
		if rest, ok := strings.CutPrefix(entry, filePrefix); ok {
			dep.IsFile = true
			dep.Path = paths.Resolve(strings.TrimSpace(rest))
		}
		deps = append(deps, dep)
	}
	return deps
}
