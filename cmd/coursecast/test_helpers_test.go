package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	coursesDir string
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	coursesDir := filepath.Join(base, "courses")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, coursesDir, filepath.Join(base, "logs"), filepath.Join(base, "registry.db"))

	return &cliTestEnv{
		coursesDir: coursesDir,
		configPath: configPath,
		baseDir:    base,
	}
}

// seedCourse creates a course directory with evidence files under the
// configured courses dir and returns its path.
func (env *cliTestEnv) seedCourse(t *testing.T, name string, evidence map[string][]string) string {
	t.Helper()
	dir := filepath.Join(env.coursesDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir course: %v", err)
	}
	for sub, names := range evidence {
		for _, file := range names {
			path := filepath.Join(dir, sub, file)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatalf("mkdir evidence: %v", err)
			}
			if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
				t.Fatalf("write evidence: %v", err)
			}
		}
	}
	return dir
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, coursesDir, logDir, registryPath string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ncourses_dir = %q\nlog_dir = %q\nregistry_path = %q\n\n[llm]\napi_key = \"test\"\n",
		coursesDir,
		logDir,
		registryPath,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
