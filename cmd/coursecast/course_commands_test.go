package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectThenStatus(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCourse(t, "go-basics", map[string][]string{
		"audio":          {"lesson1.mp3", "lesson2.mp3"},
		"transcriptions": {"lesson1.txt", "lesson2.txt"},
	})

	out, _, err := runCLI(t, env.configPath, "detect", "go-basics")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "audio_converted")
	requireContains(t, out, "Registered files: 4")

	out, _, err = runCLI(t, env.configPath, "status", "go-basics")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Course: go-basics")
	requireContains(t, out, "done")
	requireContains(t, out, "Next:")
}

func TestValidateReportsMissingFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := env.seedCourse(t, "go-basics", map[string][]string{
		"audio": {"lesson1.mp3"},
	})

	if _, _, err := runCLI(t, env.configPath, "detect", "go-basics"); err != nil {
		t.Fatalf("detect: %v", err)
	}
	out, _, err := runCLI(t, env.configPath, "validate", "go-basics")
	if err != nil {
		t.Fatalf("validate clean course: %v", err)
	}
	requireContains(t, out, "All registered files are present")

	if err := os.Remove(filepath.Join(dir, "audio", "lesson1.mp3")); err != nil {
		t.Fatalf("remove audio: %v", err)
	}
	out, _, err = runCLI(t, env.configPath, "validate", "go-basics")
	if err == nil {
		t.Fatal("expected validate to fail with a missing file")
	}
	requireContains(t, out, "lesson1.mp3")
}

func TestResetRequiresStepsOrAll(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCourse(t, "go-basics", map[string][]string{
		"audio": {"lesson1.mp3"},
	})

	if _, _, err := runCLI(t, env.configPath, "reset", "go-basics"); err == nil {
		t.Fatal("expected error without --steps or --all")
	}
	if _, _, err := runCLI(t, env.configPath, "reset", "go-basics", "--all", "--steps", "transcribed"); err == nil {
		t.Fatal("expected error with both --steps and --all")
	}

	if _, _, err := runCLI(t, env.configPath, "detect", "go-basics"); err != nil {
		t.Fatalf("detect: %v", err)
	}
	out, _, err := runCLI(t, env.configPath, "reset", "go-basics", "--steps", "audio_converted")
	if err != nil {
		t.Fatalf("reset steps: %v", err)
	}
	requireContains(t, out, "Reset 1 steps")

	out, _, err = runCLI(t, env.configPath, "reset", "go-basics", "--all")
	if err != nil {
		t.Fatalf("reset all: %v", err)
	}
	requireContains(t, out, "Reset all progress")
}

func TestStatusUnknownCourseFails(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env.configPath, "status", "nope"); err == nil {
		t.Fatal("expected error for unknown course")
	}
}
