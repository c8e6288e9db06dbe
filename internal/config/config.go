// Package config loads, normalizes, and validates coursecast configuration.
//
// It supplies repository defaults, expands user paths, and verifies the
// settings each pipeline collaborator needs before a run starts.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CoursesDir   string `toml:"courses_dir"`
	LogDir       string `toml:"log_dir"`
	RegistryPath string `toml:"registry_path"`
}

// Scan controls evidence auto-detection.
type Scan struct {
	// Recursive widens evidence scans to subdirectories of each evidence
	// directory. Default is a flat scan.
	Recursive bool `toml:"recursive"`
}

// Audio contains video-to-audio conversion settings.
type Audio struct {
	Format  string `toml:"format"`
	Bitrate string `toml:"bitrate"`
}

// Transcription contains speech-to-text settings.
type Transcription struct {
	Model    string `toml:"model"`
	Language string `toml:"language"`
}

// LLM contains the connection settings for AI text post-processing.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// TTS contains speech synthesis settings.
type TTS struct {
	Voice string `toml:"voice"`
	Rate  string `toml:"rate"`
}

// Feed contains podcast feed generation settings.
type Feed struct {
	BaseURL     string `toml:"base_url"`
	Author      string `toml:"author"`
	Email       string `toml:"email"`
	Description string `toml:"description"`
}

// Drive contains cloud upload settings (rclone remote).
type Drive struct {
	Remote         string `toml:"remote"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// GitHub contains repository publishing settings.
type GitHub struct {
	RepoDir string `toml:"repo_dir"`
	Branch  string `toml:"branch"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for coursecast.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Scan          Scan          `toml:"scan"`
	Audio         Audio         `toml:"audio"`
	Transcription Transcription `toml:"transcription"`
	LLM           LLM           `toml:"llm"`
	TTS           TTS           `toml:"tts"`
	Feed          Feed          `toml:"feed"`
	Drive         Drive         `toml:"drive"`
	GitHub        GitHub        `toml:"github"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/coursecast/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists
// at the resolved location the defaults are used and exists is false.
func Load(path string) (cfg *Config, resolvedPath string, exists bool, err error) {
	value := Default()

	resolvedPath, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&value); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := value.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := value.Validate(); err != nil {
		return nil, "", false, err
	}

	return &value, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("coursecast.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists: %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CoursesDir, c.Paths.LogDir, filepath.Dir(c.Paths.RegistryPath)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for audio conversion.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// AudioExtension returns the configured audio format as a file extension.
func (c *Config) AudioExtension() string {
	format := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Audio.Format)), ".")
	if format == "" {
		format = "mp3"
	}
	return "." + format
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
