//go:build windows

package generator

import "os/exec"

// killProcessGroup is a no-op on Windows; WaitDelay bounds the wait instead.
func killProcessGroup(cmd *exec.Cmd) {}
