package config

import (
	"fmt"
	"strings"
)

// Validate checks values the pipeline cannot run without. Collaborator
// credentials are only required when the matching step runs, so they are
// checked by the driver at invocation time, not here.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.CoursesDir) == "" {
		problems = append(problems, "paths.courses_dir must be set")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch strings.ToLower(strings.TrimSpace(c.Audio.Format)) {
	case "mp3", "m4a", "ogg", "wav":
	default:
		problems = append(problems, fmt.Sprintf("audio.format must be one of mp3, m4a, ogg, wav, got %q", c.Audio.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
