// Package transcriber wraps the whisperx CLI for speech-to-text.
package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursecast/internal/services"
)

// UVXCommand launches whisperx through uvx so no local install is required.
const UVXCommand = "uvx"

// DefaultModel is used when no model is configured.
const DefaultModel = "large-v3-turbo"

// Transcriber runs whisperx against extracted audio.
type Transcriber struct {
	model    string
	language string
	runner   services.CommandRunner
}

// New builds a transcriber for the given model and language hint.
func New(model, language string) *Transcriber {
	if model == "" {
		model = DefaultModel
	}
	return &Transcriber{model: model, language: language, runner: services.RunCommand}
}

// WithCommandRunner sets a custom command runner (for testing).
func (t *Transcriber) WithCommandRunner(runner services.CommandRunner) {
	if runner != nil {
		t.runner = runner
	}
}

// Model returns the configured model name for logging.
func (t *Transcriber) Model() string {
	return t.model
}

// OutputPath returns where Transcribe will place the text for an audio file.
func (t *Transcriber) OutputPath(audioPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, base+".txt")
}

// Transcribe produces a plain-text transcription for one audio file and
// returns its path.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, outputDir string) (string, error) {
	if audioPath == "" {
		return "", services.Wrap(services.ErrValidation, "transcribed", "transcribe", "audio path required", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure transcription directory: %w", err)
	}

	args := []string{
		"whisperx",
		audioPath,
		"--model", t.model,
		"--output_dir", outputDir,
		"--output_format", "txt",
	}
	if t.language != "" {
		args = append(args, "--language", t.language)
	}
	if err := t.runner(ctx, UVXCommand, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "transcribed", "whisperx", filepath.Base(audioPath), err)
	}

	dest := t.OutputPath(audioPath, outputDir)
	if _, err := os.Stat(dest); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "transcribed", "whisperx", "expected output missing: "+dest, err)
	}
	return dest, nil
}
