package pipeline

import (
	"context"

	"coursecast/internal/services/feed"
	"coursecast/internal/services/llm"
)

// Converter turns lesson videos into audio files.
type Converter interface {
	OutputPath(videoPath, outputDir string) string
	Convert(ctx context.Context, videoPath, outputDir string) (string, error)
}

// Transcriber turns audio files into text transcriptions.
type Transcriber interface {
	OutputPath(audioPath, outputDir string) string
	Transcribe(ctx context.Context, audioPath, outputDir string) (string, error)
}

// Processor rewrites raw transcriptions into publishable markdown.
type Processor interface {
	OutputPath(transcriptionPath, outputDir string) string
	Process(ctx context.Context, transcriptionPath, outputDir string) (string, llm.Usage, error)
}

// TimestampFunc extracts chapter markers from a processed file and writes a
// timestamp file, returning its path.
type TimestampFunc func(processedPath, outputDir string) (string, error)

// Synthesizer narrates processed markdown into audio.
type Synthesizer interface {
	OutputPath(processedPath, outputDir string) string
	Synthesize(ctx context.Context, processedPath, outputDir string) (string, error)
}

// FeedFunc writes the course RSS document and returns its path.
type FeedFunc func(settings feed.Settings, episodes []feed.Episode, outputDir string) (string, error)

// Uploader mirrors a course directory to remote storage.
type Uploader interface {
	Upload(ctx context.Context, courseDir string) error
}

// Publisher commits and pushes the course feed.
type Publisher interface {
	Publish(ctx context.Context, courseName, feedPath string) error
}

// Collaborators bundles the services a driver dispatches to. A nil entry
// makes the corresponding step fail with a configuration error, which lets
// callers run partial pipelines.
type Collaborators struct {
	Converter   Converter
	Transcriber Transcriber
	Processor   Processor
	Timestamps  TimestampFunc
	Synthesizer Synthesizer
	Feed        FeedFunc
	Uploader    Uploader
	Publisher   Publisher
}
