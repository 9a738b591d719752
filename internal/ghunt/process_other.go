//go:build !unix

package ghunt

import "os/exec"

// setProcessGroup is a no-op on non-Unix platforms.
func setProcessGroup(cmd *exec.Cmd) {}

// killProcessGroup kills the process directly on non-Unix platforms.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// getExitCodeFromError returns false on non-Unix platforms as WaitStatus is not available.
func getExitCodeFromError(exitErr *exec.ExitError) (int, bool) {
	return 0, false
}
