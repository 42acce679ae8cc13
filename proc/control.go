package proc

import (
	"fmt"
	"syscall"
)

// KillProcess sends a signal to the given PID
func KillProcess(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}

	if err := syscall.Kill(pid, sig); err != nil {
		return fmt.Errorf("failed to send signal %v to PID %d: %w", sig, pid, err)
	}

	return nil
}

// TerminateProcess sends SIGTERM (graceful shutdown)
func TerminateProcess(pid int) error {
	return KillProcess(pid, syscall.SIGTERM)
}

// ForceKillProcess sends SIGKILL (immediate termination)
func ForceKillProcess(pid int) error {
	return KillProcess(pid, syscall.SIGKILL)
}
