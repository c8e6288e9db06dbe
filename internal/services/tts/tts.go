// Package tts wraps the edge-tts CLI for narration synthesis.
package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"coursecast/internal/services"
)

// Command launches edge-tts; installable via pip or uv.
const Command = "edge-tts"

// Synthesizer converts processed markdown into narration audio.
type Synthesizer struct {
	voice  string
	rate   string
	runner services.CommandRunner
}

// New builds a synthesizer for the given voice.
func New(voice, rate string) *Synthesizer {
	if voice == "" {
		voice = "pt-BR-AntonioNeural"
	}
	return &Synthesizer{voice: voice, rate: rate, runner: services.RunCommand}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Synthesizer) WithCommandRunner(runner services.CommandRunner) {
	if runner != nil {
		s.runner = runner
	}
}

// OutputPath returns where Synthesize will place the narration audio.
func (s *Synthesizer) OutputPath(processedPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(processedPath), filepath.Ext(processedPath))
	return filepath.Join(outputDir, "tts_"+base+".mp3")
}

var markdownSyntax = regexp.MustCompile("[#*`_\\[\\]()>]+")

// Synthesize narrates one processed markdown file and returns the audio
// path. Markdown syntax is stripped before synthesis so headings and
// emphasis are not read aloud.
func (s *Synthesizer) Synthesize(ctx context.Context, processedPath, outputDir string) (string, error) {
	content, err := os.ReadFile(processedPath)
	if err != nil {
		return "", fmt.Errorf("read processed file: %w", err)
	}
	text := strings.TrimSpace(markdownSyntax.ReplaceAllString(string(content), " "))
	if text == "" {
		return "", services.Wrap(services.ErrValidation, "tts_created", "synthesize", "no narratable text in "+processedPath, nil)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure tts directory: %w", err)
	}

	textFile, err := os.CreateTemp(outputDir, "narration-*.txt")
	if err != nil {
		return "", fmt.Errorf("create narration text: %w", err)
	}
	textPath := textFile.Name()
	defer os.Remove(textPath)
	if _, err := textFile.WriteString(text); err != nil {
		_ = textFile.Close()
		return "", fmt.Errorf("write narration text: %w", err)
	}
	if err := textFile.Close(); err != nil {
		return "", fmt.Errorf("close narration text: %w", err)
	}

	dest := s.OutputPath(processedPath, outputDir)
	args := []string{
		"--voice", s.voice,
		"--file", textPath,
		"--write-media", dest,
	}
	if s.rate != "" {
		args = append(args, "--rate="+s.rate)
	}
	if err := s.runner(ctx, Command, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "tts_created", "edge-tts", filepath.Base(processedPath), err)
	}
	return dest, nil
}
