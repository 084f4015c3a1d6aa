package testutil

import (
	"embed"
)

//go:embed fixtures/*.ini
var fixturesFS embed.FS

// LoadFixture loads a manifest fixture by file name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustFixture is LoadFixture for fixtures known to exist.
func MustFixture(name string) string {
	data, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WebManifest has two environments: web (requests, file:reqs.txt) and
// docs (sphinx, file:docs/requirements.txt).
func WebManifest() string {
	return MustFixture("web.ini")
}

// GatedManifest has web and a ci environment gated on $CI.
func GatedManifest() string {
	return MustFixture("gated.ini")
}

// InvalidManifest has an unterminated section header.
func InvalidManifest() string {
	return MustFixture("invalid.ini")
}

// HeaderlessManifest declares deps before its first section header.
func HeaderlessManifest() string {
	return MustFixture("headerless.ini")
}
