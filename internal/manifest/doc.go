// Package manifest locates and parses inenv.ini.
//
// # Locating
//
// A Locator walks up from the symlink-resolved working directory until it
// finds inenv.ini. It fails when a directory on the way is not writable,
// when the filesystem root is reached, or after 100 levels. The result is
// cached on the Locator.
//
// # Format
//
//	[web]
//	deps = requests, file:requirements/web.txt
//
//	[ci:CI]
//	deps = pytest
//	env_storage = /scratch/envs
//
// A section name may carry a gating variable after the first colon. When the
// variable is unset or empty the environment is still registered, with no
// dependencies and no storage override.
//
// file: paths are resolved against the manifest directory. env_storage must
// be a writable directory; this is checked while parsing.
package manifest
