// Package shellswitch implements the two-call protocol that lets inenv
// change the parent shell's environment.
//
// A child process cannot modify its parent shell, so switching is done by
// a shell function (written to .inenv/inenv.sh next to the manifest) that
// calls the binary twice:
//
//  1. A direct call with output shown to the user. If the arguments name a
//     switch, the binary validates them and exits 255.
//  2. On 255 the function calls the binary again with the sentinel
//     argument _inenv_capture first, captures stdout and evals it.
//
// Any other exit code is returned to the shell unchanged, so 255 must
// never be used for ordinary failures.
//
// # Channels
//
// In capture mode stdout is shell source. The only writer for it is an
// Emitter, and an Emitter only accepts Line values built by Cd, Source and
// Invoke, which quote every argument:
//
//	em := shellswitch.NewEmitter(os.Stdout)
//	err := em.Emit(
//	    shellswitch.Invoke("inenv", "init", "web"),
//	    shellswitch.Source(".", "/proj/.inenv/web/bin/activate"),
//	)
//
// Human-readable text goes through logging.Console, which routes to stderr
// in capture mode.
//
// # Switch Script Freshness
//
// The script exports INENV_SWITCH_SETUP=<version>. Installer.Ensure
// compares it with the running binary's version and, when they differ,
// rewrites the script and refuses the switch until the user re-sources it.
package shellswitch
