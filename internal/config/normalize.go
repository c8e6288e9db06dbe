package config

import (
	"fmt"
	"strings"
)

// normalize expands user paths and fills empty fields with defaults so the
// rest of the system sees absolute paths and usable values.
func (c *Config) normalize() error {
	defaults := Default()

	if strings.TrimSpace(c.Paths.CoursesDir) == "" {
		c.Paths.CoursesDir = defaults.Paths.CoursesDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if strings.TrimSpace(c.Paths.RegistryPath) == "" {
		c.Paths.RegistryPath = defaults.Paths.RegistryPath
	}

	for name, field := range map[string]*string{
		"courses_dir":   &c.Paths.CoursesDir,
		"log_dir":       &c.Paths.LogDir,
		"registry_path": &c.Paths.RegistryPath,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return fmt.Errorf("expand %s: %w", name, err)
		}
		*field = expanded
	}

	if repoDir := strings.TrimSpace(c.GitHub.RepoDir); repoDir != "" {
		expanded, err := expandPath(repoDir)
		if err != nil {
			return fmt.Errorf("expand repo_dir: %w", err)
		}
		c.GitHub.RepoDir = expanded
	}

	if strings.TrimSpace(c.Audio.Format) == "" {
		c.Audio.Format = defaults.Audio.Format
	}
	if strings.TrimSpace(c.Audio.Bitrate) == "" {
		c.Audio.Bitrate = defaults.Audio.Bitrate
	}
	if strings.TrimSpace(c.Transcription.Model) == "" {
		c.Transcription.Model = defaults.Transcription.Model
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		c.LLM.BaseURL = defaults.LLM.BaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = defaults.LLM.Model
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaults.LLM.TimeoutSeconds
	}
	if strings.TrimSpace(c.TTS.Voice) == "" {
		c.TTS.Voice = defaults.TTS.Voice
	}
	if c.Drive.TimeoutSeconds <= 0 {
		c.Drive.TimeoutSeconds = defaults.Drive.TimeoutSeconds
	}
	if strings.TrimSpace(c.GitHub.Branch) == "" {
		c.GitHub.Branch = defaults.GitHub.Branch
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	return nil
}
