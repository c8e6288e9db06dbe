package publisher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursecast/internal/services"
	"coursecast/internal/services/publisher"
)

func newRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("fake git dir: %v", err)
	}
	return repo
}

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.xml")
	if err := os.WriteFile(path, []byte("<rss/>"), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func TestPublishStagesCommitsAndPushes(t *testing.T) {
	repo := newRepo(t)
	feed := writeFeed(t)

	var invocations [][]string
	p := publisher.New(repo, "gh-pages")
	p.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != "git" {
			t.Fatalf("unexpected command: %s", name)
		}
		invocations = append(invocations, args)
		return nil
	})

	if err := p.Publish(context.Background(), "golang-basics", feed); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	staged := filepath.Join(repo, "feeds", "golang-basics.xml")
	if _, err := os.Stat(staged); err != nil {
		t.Fatalf("feed not staged into repo: %v", err)
	}

	if len(invocations) != 3 {
		t.Fatalf("expected add/commit/push, got %v", invocations)
	}
	for i, verb := range []string{"add", "commit", "push"} {
		if invocations[i][2] != verb {
			t.Fatalf("invocation %d: expected %s, got %v", i, verb, invocations[i])
		}
	}
	push := strings.Join(invocations[2], " ")
	if !strings.Contains(push, "origin gh-pages") {
		t.Fatalf("push missing branch: %q", push)
	}
}

func TestPublishRequiresRepoDir(t *testing.T) {
	p := publisher.New("", "")
	err := p.Publish(context.Background(), "course", writeFeed(t))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestPublishRejectsNonClone(t *testing.T) {
	p := publisher.New(t.TempDir(), "")
	err := p.Publish(context.Background(), "course", writeFeed(t))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for missing .git, got %v", err)
	}
}
