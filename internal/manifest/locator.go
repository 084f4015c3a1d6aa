package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/inenv/inenv/internal/config"
	"github.com/inenv/inenv/internal/errors"
	"github.com/inenv/inenv/internal/logging"
	"github.com/inenv/inenv/internal/system"
)

// Locator finds the project manifest by walking up from the working
// directory. The first successful result is cached for the lifetime of the
// Locator; the App context holds exactly one Locator per process.
type Locator struct {
	fs       system.FileSystem
	fileName string
	limit    int

	cached string
	hops   int
}

// NewLocator creates a Locator for inenv.ini with the default recursion limit.
func NewLocator(fsys system.FileSystem) *Locator {
	return &Locator{
		fs:       fsys,
		fileName: config.ManifestFileName,
		limit:    config.RecursionLimit,
	}
}

// WithLimit returns a copy of the Locator using a different recursion limit.
func (l *Locator) WithLimit(limit int) *Locator {
	return &Locator{fs: l.fs, fileName: l.fileName, limit: limit}
}

// Hops returns how many parent directories the last walk visited.
func (l *Locator) Hops() int {
	return l.hops
}

// Locate returns the absolute manifest path.
func (l *Locator) Locate() (string, error) {
	if l.cached != "" {
		return l.cached, nil
	}

	dir, err := l.fs.Getwd()
	if err != nil {
		return "", errors.ConfigError("unable to resolve the working directory", err)
	}

	logging.Debug("locating manifest", "start", dir, "file", l.fileName)

	for hops := 0; hops < l.limit; hops++ {
		if !l.fs.Writable(dir) {
			return "", errors.ConfigError(fmt.Sprintf("lost permissions walking up to %s, unable to find %s", dir, l.fileName), nil)
		}

		candidate := filepath.Join(dir, l.fileName)
		if l.fs.IsFile(candidate) {
			l.cached = candidate
			l.hops = hops
			logging.Debug("manifest found", "path", candidate, "hops", hops)
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigError(fmt.Sprintf("walked all the way up to %s and was unable to find %s", dir, l.fileName), nil)
		}
		dir = parent
	}

	return "", errors.ConfigError(fmt.Sprintf("recursion limit exceeded, unable to find %s", l.fileName), nil)
}
