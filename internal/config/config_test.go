package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursecast/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
	if cfg.Audio.Format != "mp3" || cfg.Audio.Bitrate != "64k" {
		t.Fatalf("defaults not applied: %+v", cfg.Audio)
	}
	if !filepath.IsAbs(cfg.Paths.CoursesDir) {
		t.Fatalf("courses dir not absolute: %s", cfg.Paths.CoursesDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
courses_dir = "` + filepath.Join(dir, "my-courses") + `"

[audio]
format = "m4a"

[llm]
api_key = "sk-test"

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Audio.Format != "m4a" {
		t.Fatalf("override lost: %s", cfg.Audio.Format)
	}
	if cfg.AudioExtension() != ".m4a" {
		t.Fatalf("unexpected audio extension: %s", cfg.AudioExtension())
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Fatal("llm key lost")
	}
	// Unset sections keep their defaults.
	if cfg.TTS.Voice == "" || cfg.Transcription.Model == "" {
		t.Fatalf("defaults dropped: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[audio]\nformat = \"flac\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unsupported audio format")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when file exists")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("sample config missing paths section")
	}

	// The sample must itself be loadable.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
