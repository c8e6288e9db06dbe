package testsupport

import (
	"path/filepath"
	"testing"

	"coursecast/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CoursesDir = filepath.Join(base, "courses")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.RegistryPath = filepath.Join(base, "registry.db")
	cfg.LLM.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithRecursiveScan enables recursive evidence scanning on the test config.
func WithRecursiveScan() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.Recursive = true
	}
}

// WithAudioFormat overrides the target audio format on the test config.
func WithAudioFormat(format string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Audio.Format = format
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CoursesDir)
}
