package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursecast/internal/services"
)

// DefaultSystemPrompt turns raw lesson transcriptions into structured notes.
const DefaultSystemPrompt = `You are an editor preparing course transcriptions for publication.
Rewrite the transcription as clean structured markdown: fix punctuation and
obvious transcription errors, add section headings, and keep the original
language and all technical content. Return only the markdown.`

// Processor runs transcriptions through the LLM and writes processed
// markdown files.
type Processor struct {
	client *Client
	prompt string
}

// NewProcessor wraps a client with the post-processing prompt.
func NewProcessor(client *Client, prompt string) *Processor {
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	return &Processor{client: client, prompt: prompt}
}

// OutputPath returns where Process will place the markdown for a
// transcription file.
func (p *Processor) OutputPath(transcriptionPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(transcriptionPath), filepath.Ext(transcriptionPath))
	return filepath.Join(outputDir, base+".md")
}

// Process reads one transcription, completes it through the LLM, and writes
// the processed markdown. Returns the output path and token usage.
func (p *Processor) Process(ctx context.Context, transcriptionPath, outputDir string) (string, Usage, error) {
	var usage Usage
	content, err := os.ReadFile(transcriptionPath)
	if err != nil {
		return "", usage, fmt.Errorf("read transcription: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return "", usage, services.Wrap(services.ErrValidation, "ai_processed", "process", "transcription is empty: "+transcriptionPath, nil)
	}

	result, err := p.client.Complete(ctx, p.prompt, string(content))
	if err != nil {
		return "", usage, services.Wrap(services.ErrExternalTool, "ai_processed", "llm", filepath.Base(transcriptionPath), err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", usage, fmt.Errorf("ensure processed directory: %w", err)
	}
	dest := p.OutputPath(transcriptionPath, outputDir)
	if err := os.WriteFile(dest, []byte(result.Content+"\n"), 0o644); err != nil {
		return "", usage, fmt.Errorf("write processed file: %w", err)
	}
	return dest, result.Usage, nil
}
