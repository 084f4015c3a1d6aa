// Package config provides constants, project paths and user settings for inenv.
//
// # Project Paths
//
// Everything inenv writes lives next to the located manifest:
//
//	<project>/inenv.ini          manifest
//	<project>/.inenv/<env>/      sandbox per environment
//	<project>/.inenv/inenv.sh    generated switch script
//
// An environment declaring env_storage keeps its sandbox under that
// directory instead. Sandbox directories are joined with securejoin so a
// name never resolves outside its root.
//
// # User Settings
//
// Settings are read from $INENV_CONFIG, $XDG_CONFIG_HOME/inenv/config.toml
// or ~/.config/inenv/config.toml, in that order:
//
//	builder = ["python3", "-m", "virtualenv"]
//	installer = ["pip", "install", "--disable-pip-version-check"]
//	requirements_flag = "-r"
//	activation_hook = "bin/activate_this.py"
//
// A missing file means defaults. Unknown keys are rejected.
package config
