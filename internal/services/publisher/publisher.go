// Package publisher commits and pushes a course's feed into the podcast
// repository.
package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursecast/internal/fileutil"
	"coursecast/internal/services"
)

// Publisher copies feed files into a local clone and pushes them.
type Publisher struct {
	repoDir string
	branch  string
	runner  services.CommandRunner
}

// New builds a publisher over a local repository clone.
func New(repoDir, branch string) *Publisher {
	if branch == "" {
		branch = "main"
	}
	return &Publisher{repoDir: repoDir, branch: branch, runner: services.RunCommand}
}

// WithCommandRunner sets a custom command runner (for testing).
func (p *Publisher) WithCommandRunner(runner services.CommandRunner) {
	if runner != nil {
		p.runner = runner
	}
}

// Publish copies the feed file into the repository under feeds/<course>.xml,
// commits, and pushes.
func (p *Publisher) Publish(ctx context.Context, courseName, feedPath string) error {
	if strings.TrimSpace(p.repoDir) == "" {
		return services.Wrap(services.ErrConfiguration, "github_pushed", "publish", "github.repo_dir not configured", nil)
	}
	if _, err := os.Stat(filepath.Join(p.repoDir, ".git")); err != nil {
		return services.Wrap(services.ErrConfiguration, "github_pushed", "publish", p.repoDir+" is not a git clone", err)
	}

	feedsDir := filepath.Join(p.repoDir, "feeds")
	if err := os.MkdirAll(feedsDir, 0o755); err != nil {
		return fmt.Errorf("ensure feeds directory: %w", err)
	}
	dest := filepath.Join(feedsDir, courseName+".xml")
	if err := fileutil.CopyFile(feedPath, dest); err != nil {
		return fmt.Errorf("stage feed: %w", err)
	}

	rel, err := filepath.Rel(p.repoDir, dest)
	if err != nil {
		return err
	}
	steps := [][]string{
		{"-C", p.repoDir, "add", rel},
		{"-C", p.repoDir, "commit", "-m", "Update feed for " + courseName},
		{"-C", p.repoDir, "push", "origin", p.branch},
	}
	for _, args := range steps {
		if err := p.runner(ctx, "git", args...); err != nil {
			return services.Wrap(services.ErrExternalTool, "github_pushed", "git "+args[2], courseName, err)
		}
	}
	return nil
}
