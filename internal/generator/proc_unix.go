//go:build !windows

package generator

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the helper in its own process group and makes
// cancellation kill the whole group, so children of a wrapper script do not
// outlive it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
