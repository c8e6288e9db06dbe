package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command. Wrappers accept a custom
// runner so tests can stub tool invocations.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// RunCommand is the default runner: it executes the command and folds
// combined output into the returned error.
func RunCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
