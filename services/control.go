package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Lifecycle actions shell out to systemctl. Unlike Capture, failures here
// are returned to the caller so the UI can surface them.

func Start(ctx context.Context, unit string) error {
	return runAction(ctx, "start", unit)
}

func Stop(ctx context.Context, unit string) error {
	return runAction(ctx, "stop", unit)
}

func Restart(ctx context.Context, unit string) error {
	return runAction(ctx, "restart", unit)
}

func runAction(ctx context.Context, action, unit string) error {
	if unit == "" {
		return fmt.Errorf("no unit selected")
	}

	out, err := exec.CommandContext(ctx, "systemctl", action, unit).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("systemctl %s %s: %w", action, unit, err)
		}
		return fmt.Errorf("systemctl %s %s: %s", action, unit, msg)
	}
	return nil
}
