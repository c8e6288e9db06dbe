// Package converter extracts audio from course videos with ffmpeg.
package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursecast/internal/services"
)

// Converter shells out to ffmpeg to produce one audio file per video.
type Converter struct {
	binary  string
	format  string
	bitrate string
	runner  services.CommandRunner
}

// New builds a converter. Format is an extension without the dot ("mp3");
// empty values fall back to mp3 at 64k.
func New(binary, format, bitrate string) *Converter {
	if binary == "" {
		binary = "ffmpeg"
	}
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if format == "" {
		format = "mp3"
	}
	if bitrate == "" {
		bitrate = "64k"
	}
	return &Converter{binary: binary, format: format, bitrate: bitrate, runner: services.RunCommand}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Converter) WithCommandRunner(runner services.CommandRunner) {
	if runner != nil {
		c.runner = runner
	}
}

// OutputPath returns where Convert will place the audio for a video.
func (c *Converter) OutputPath(videoPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(outputDir, base+"."+c.format)
}

// Convert produces the audio file for one video and returns its path. The
// output directory is created as needed; an existing output is regenerated.
func (c *Converter) Convert(ctx context.Context, videoPath, outputDir string) (string, error) {
	if videoPath == "" {
		return "", services.Wrap(services.ErrValidation, "audio_converted", "convert", "video path required", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure audio directory: %w", err)
	}

	dest := c.OutputPath(videoPath, outputDir)
	args := []string{
		"-i", videoPath,
		"-vn",
		"-b:a", c.bitrate,
		"-y",
		dest,
	}
	if err := c.runner(ctx, c.binary, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "audio_converted", "ffmpeg", filepath.Base(videoPath), err)
	}
	return dest, nil
}
