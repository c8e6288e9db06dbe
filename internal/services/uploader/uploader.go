// Package uploader pushes a course directory to cloud storage via rclone.
package uploader

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"coursecast/internal/services"
)

// Command is the rclone executable.
const Command = "rclone"

// Uploader copies a course directory to a configured rclone remote.
type Uploader struct {
	remote  string
	timeout time.Duration
	runner  services.CommandRunner
}

// New builds an uploader for a remote such as "gdrive:podcasts".
func New(remote string, timeout time.Duration) *Uploader {
	return &Uploader{remote: remote, timeout: timeout, runner: services.RunCommand}
}

// WithCommandRunner sets a custom command runner (for testing).
func (u *Uploader) WithCommandRunner(runner services.CommandRunner) {
	if runner != nil {
		u.runner = runner
	}
}

// Upload copies the course directory to the remote under the course's
// directory name.
func (u *Uploader) Upload(ctx context.Context, courseDir string) error {
	if strings.TrimSpace(u.remote) == "" {
		return services.Wrap(services.ErrConfiguration, "uploaded_to_drive", "upload", "drive.remote not configured", nil)
	}
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	dest := strings.TrimSuffix(u.remote, "/") + "/" + filepath.Base(courseDir)
	if err := u.runner(ctx, Command, "copy", courseDir, dest, "--exclude", "*.lock"); err != nil {
		return services.Wrap(services.ErrExternalTool, "uploaded_to_drive", "rclone", dest, err)
	}
	return nil
}
