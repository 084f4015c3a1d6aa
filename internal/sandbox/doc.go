// Package sandbox provides sandbox lifecycle management for inenv.
//
// A Manager is built for one parsed manifest and owns every sandbox it
// declares:
//
//	mgr := sandbox.NewManager(sandbox.Options{
//	    Manifest: m,
//	    Settings: settings,
//	    Console:  console,
//	})
//
//	if err := mgr.Setup(ctx, "web"); err != nil {
//	    return err
//	}
//
// # Layout
//
// Sandboxes live at <manifest dir>/.inenv/<env>, or <env_storage>/<env> when
// the environment declares a storage override. A sandbox exists when its
// activation hook (bin/activate_this.py by default) is present.
//
// # Setup Flow
//
// Manager.Setup:
//  1. Rejects reserved and undeclared names
//  2. Runs the builder when the sandbox does not exist
//  3. Activates the sandbox in the current process
//  4. Runs the installer once per dependency, in declared order
//
// file: dependencies are installed as requirements files. Any non-zero exit
// aborts the remaining steps.
package sandbox
