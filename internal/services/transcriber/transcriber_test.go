package transcriber_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursecast/internal/services"
	"coursecast/internal/services/transcriber"
)

func TestTranscribeInvokesWhisperx(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "transcriptions")
	tr := transcriber.New("", "pt")

	var gotName string
	var gotArgs []string
	tr.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		// The real tool writes the transcription itself.
		return os.WriteFile(tr.OutputPath("/audio/lesson1.mp3", outputDir), []byte("text"), 0o644)
	})

	dest, err := tr.Transcribe(context.Background(), "/audio/lesson1.mp3", outputDir)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if filepath.Base(dest) != "lesson1.txt" {
		t.Fatalf("unexpected output: %s", dest)
	}
	if gotName != transcriber.UVXCommand {
		t.Fatalf("unexpected command: %s", gotName)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "whisperx /audio/lesson1.mp3") ||
		!strings.Contains(joined, "--model "+transcriber.DefaultModel) ||
		!strings.Contains(joined, "--language pt") {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
}

func TestTranscribeFailsWhenOutputMissing(t *testing.T) {
	tr := transcriber.New("small", "")
	tr.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return nil
	})

	_, err := tr.Transcribe(context.Background(), "/audio/silent.mp3", t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool when tool produced nothing, got %v", err)
	}
}

func TestTranscribeRequiresAudioPath(t *testing.T) {
	tr := transcriber.New("", "")
	if _, err := tr.Transcribe(context.Background(), "", t.TempDir()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
