//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid.
// Chrome spawns renderer and GPU helpers in its own group, so signalling the
// negative PID reaps them along with the browser.
func KillTree(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return err
	}
	return nil
}
