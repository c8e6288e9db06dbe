// Package pipeline drives a course through the production steps in
// canonical order, recording progress through the tracker after every step.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"coursecast/internal/course"
	"coursecast/internal/fileutil"
	"coursecast/internal/services"
	"coursecast/internal/services/feed"
	"coursecast/internal/textutil"
	"coursecast/internal/tracker"
)

// defaultVideoExtensions are the source formats the conversion step looks
// for in the course directory.
var defaultVideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}

// Driver executes the pending steps of one course. Steps already recorded as
// complete are skipped, and per-file outputs that already exist on disk are
// reused rather than regenerated, so an interrupted run picks up where it
// stopped.
type Driver struct {
	tracker   *tracker.Tracker
	collab    Collaborators
	settings  feed.Settings
	logger    *slog.Logger
	session   string
	videoExts []string
	recursive bool
}

// Option adjusts driver construction.
type Option func(*Driver)

// WithLogger sets the logger used for per-step progress records.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithFeedSettings sets the channel-level fields of the generated feed.
func WithFeedSettings(settings feed.Settings) Option {
	return func(d *Driver) { d.settings = settings }
}

// WithVideoExtensions overrides the source video formats.
func WithVideoExtensions(exts ...string) Option {
	return func(d *Driver) {
		if len(exts) > 0 {
			d.videoExts = exts
		}
	}
}

// WithRecursiveScan widens the source video scan to subdirectories.
func WithRecursiveScan(recursive bool) Option {
	return func(d *Driver) { d.recursive = recursive }
}

// New builds a driver over an initialized tracker. Each driver carries a
// unique session ID that tags its log records.
func New(t *tracker.Tracker, collab Collaborators, opts ...Option) *Driver {
	d := &Driver{
		tracker:   t,
		collab:    collab,
		logger:    slog.Default(),
		session:   uuid.NewString(),
		videoExts: defaultVideoExtensions,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("session_id", d.session, "course", t.CourseName())
	return d
}

// SessionID returns the identifier attached to this driver's log records.
func (d *Driver) SessionID() string { return d.session }

// Report summarizes one driver run.
type Report struct {
	SessionID string
	Ran       []course.Step
	Skipped   []course.Step
}

// Run reconciles recorded progress against the filesystem, then executes
// every pending step in order. Progress is persisted after each step, so a
// failure or cancellation mid-run loses at most the step in flight.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	if _, err := d.tracker.AutoDetectCompletedSteps(); err != nil {
		return nil, fmt.Errorf("reconcile progress: %w", err)
	}

	report := &Report{SessionID: d.session}
	for _, info := range course.Infos() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		done, err := d.tracker.IsStepComplete(info.Step)
		if err != nil {
			return report, err
		}
		if done {
			d.logger.Debug("step already complete", "step", info.Step)
			report.Skipped = append(report.Skipped, info.Step)
			continue
		}

		d.logger.Info("step started", "step", info.Step)
		start := time.Now()
		files, err := d.runStep(ctx, info)
		if err != nil {
			d.logger.Error("step failed", "step", info.Step, "error", err)
			return report, fmt.Errorf("step %s: %w", info.Step, err)
		}
		elapsed := time.Since(start)

		if err := d.tracker.MarkStepCompleted(info.Step, files); err != nil {
			return report, err
		}
		if err := d.tracker.UpdateMetadata("steps."+string(info.Step)+".seconds", elapsed.Round(time.Millisecond).Seconds()); err != nil {
			return report, err
		}
		d.logger.Info("step completed", "step", info.Step, "files", len(files), "elapsed", elapsed.Round(time.Millisecond).String())
		report.Ran = append(report.Ran, info.Step)
	}
	return report, nil
}

func (d *Driver) runStep(ctx context.Context, info course.StepInfo) ([]string, error) {
	switch info.Step {
	case course.StepAudioConverted:
		return d.convertAudio(ctx, info)
	case course.StepTranscribed:
		return d.transcribe(ctx, info)
	case course.StepAIProcessed:
		return d.processTranscriptions(ctx, info)
	case course.StepTimestampsGenerated:
		return d.generateTimestamps(ctx, info)
	case course.StepTTSCreated:
		return d.synthesize(ctx, info)
	case course.StepXMLUpdated:
		return d.generateFeed(info)
	case course.StepUploadedToDrive:
		return nil, d.upload(ctx)
	case course.StepGitHubPushed:
		return nil, d.publish(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", course.ErrUnknownStep, info.Step)
	}
}

func (d *Driver) evidenceDir(info course.StepInfo) string {
	return filepath.Join(d.tracker.Directory(), info.Evidence.Dir)
}

// inputs returns the recorded files for a category, falling back to a
// directory scan when nothing was recorded yet.
func (d *Driver) inputs(category course.Category, dir string, extensions []string) ([]string, error) {
	files, err := d.tracker.Files(category)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		return files, nil
	}
	found, err := fileutil.ScanByExt(dir, extensions, false)
	if err != nil {
		return nil, err
	}
	fileutil.SortPaths(found)
	return found, nil
}

func (d *Driver) convertAudio(ctx context.Context, info course.StepInfo) ([]string, error) {
	if d.collab.Converter == nil {
		return nil, noCollaborator(info.Step, "converter")
	}
	videos, err := fileutil.ScanByExt(d.tracker.Directory(), d.videoExts, d.recursive)
	if err != nil {
		return nil, err
	}
	fileutil.SortPaths(videos)
	if len(videos) == 0 {
		return nil, services.Wrap(services.ErrValidation, string(info.Step), "scan", "no video files in "+d.tracker.Directory(), nil)
	}

	outputDir := d.evidenceDir(info)
	var outputs []string
	for _, video := range videos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := d.collab.Converter.OutputPath(video, outputDir)
		if exists(dest) {
			d.logger.Debug("audio exists, skipping", "file", filepath.Base(dest))
			outputs = append(outputs, dest)
			continue
		}
		dest, err := d.collab.Converter.Convert(ctx, video, outputDir)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, dest)
	}
	return outputs, nil
}

func (d *Driver) transcribe(ctx context.Context, info course.StepInfo) ([]string, error) {
	if d.collab.Transcriber == nil {
		return nil, noCollaborator(info.Step, "transcriber")
	}
	audioInfo, _ := course.Info(course.StepAudioConverted)
	audio, err := d.inputs(course.CategoryAudio, d.evidenceDir(audioInfo), audioInfo.Evidence.Extensions)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, services.Wrap(services.ErrValidation, string(info.Step), "inputs", "no audio files to transcribe", nil)
	}

	outputDir := d.evidenceDir(info)
	var outputs []string
	for _, path := range audio {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := d.collab.Transcriber.OutputPath(path, outputDir)
		if exists(dest) {
			d.logger.Debug("transcription exists, skipping", "file", filepath.Base(dest))
			outputs = append(outputs, dest)
			continue
		}
		dest, err := d.collab.Transcriber.Transcribe(ctx, path, outputDir)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, dest)
	}
	return outputs, nil
}

func (d *Driver) processTranscriptions(ctx context.Context, info course.StepInfo) ([]string, error) {
	if d.collab.Processor == nil {
		return nil, noCollaborator(info.Step, "llm processor")
	}
	srcInfo, _ := course.Info(course.StepTranscribed)
	transcriptions, err := d.inputs(course.CategoryTranscriptions, d.evidenceDir(srcInfo), srcInfo.Evidence.Extensions)
	if err != nil {
		return nil, err
	}
	if len(transcriptions) == 0 {
		return nil, services.Wrap(services.ErrValidation, string(info.Step), "inputs", "no transcriptions to process", nil)
	}

	outputDir := d.evidenceDir(info)
	var outputs []string
	var totalTokens int
	for _, path := range transcriptions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := d.collab.Processor.OutputPath(path, outputDir)
		if exists(dest) {
			d.logger.Debug("processed file exists, skipping", "file", filepath.Base(dest))
			outputs = append(outputs, dest)
			continue
		}
		dest, usage, err := d.collab.Processor.Process(ctx, path, outputDir)
		if err != nil {
			return nil, err
		}
		totalTokens += usage.TotalTokens
		outputs = append(outputs, dest)
	}
	if totalTokens > 0 {
		if err := d.tracker.UpdateMetadata("llm.total_tokens", totalTokens); err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

func (d *Driver) generateTimestamps(ctx context.Context, info course.StepInfo) ([]string, error) {
	if d.collab.Timestamps == nil {
		return nil, noCollaborator(info.Step, "timestamp generator")
	}
	srcInfo, _ := course.Info(course.StepAIProcessed)
	processed, err := d.inputs(course.CategoryProcessed, d.evidenceDir(srcInfo), srcInfo.Evidence.Extensions)
	if err != nil {
		return nil, err
	}
	if len(processed) == 0 {
		return nil, services.Wrap(services.ErrValidation, string(info.Step), "inputs", "no processed files", nil)
	}

	outputDir := d.evidenceDir(info)
	var outputs []string
	for _, path := range processed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		base := filepath.Base(path)
		dest := filepath.Join(outputDir, base[:len(base)-len(filepath.Ext(base))]+".json")
		if exists(dest) {
			d.logger.Debug("timestamp file exists, skipping", "file", filepath.Base(dest))
			outputs = append(outputs, dest)
			continue
		}
		dest, err := d.collab.Timestamps(path, outputDir)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, dest)
	}
	return outputs, nil
}

func (d *Driver) synthesize(ctx context.Context, info course.StepInfo) ([]string, error) {
	if d.collab.Synthesizer == nil {
		return nil, noCollaborator(info.Step, "tts synthesizer")
	}
	srcInfo, _ := course.Info(course.StepAIProcessed)
	processed, err := d.inputs(course.CategoryProcessed, d.evidenceDir(srcInfo), srcInfo.Evidence.Extensions)
	if err != nil {
		return nil, err
	}
	if len(processed) == 0 {
		return nil, services.Wrap(services.ErrValidation, string(info.Step), "inputs", "no processed files", nil)
	}

	outputDir := d.evidenceDir(info)
	var outputs []string
	for _, path := range processed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := d.collab.Synthesizer.OutputPath(path, outputDir)
		if exists(dest) {
			d.logger.Debug("tts file exists, skipping", "file", filepath.Base(dest))
			outputs = append(outputs, dest)
			continue
		}
		dest, err := d.collab.Synthesizer.Synthesize(ctx, path, outputDir)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, dest)
	}
	return outputs, nil
}

func (d *Driver) generateFeed(info course.StepInfo) ([]string, error) {
	if d.collab.Feed == nil {
		return nil, noCollaborator(info.Step, "feed generator")
	}
	srcInfo, _ := course.Info(course.StepTTSCreated)
	narrated, err := d.inputs(course.CategoryTTS, d.evidenceDir(srcInfo), srcInfo.Evidence.Extensions)
	if err != nil {
		return nil, err
	}
	if len(narrated) == 0 {
		return nil, services.Wrap(services.ErrValidation, string(info.Step), "inputs", "no tts files for feed", nil)
	}

	settings := d.settings
	if settings.Title == "" {
		settings.Title = textutil.DisplayTitle(d.tracker.CourseName())
	}
	episodes := make([]feed.Episode, 0, len(narrated))
	for _, path := range narrated {
		episode := feed.Episode{
			Title:     episodeTitle(path),
			AudioPath: path,
		}
		if stat, err := os.Stat(path); err == nil {
			episode.SizeBytes = stat.Size()
			episode.Published = stat.ModTime()
		}
		episodes = append(episodes, episode)
	}

	dest, err := d.collab.Feed(settings, episodes, d.evidenceDir(info))
	if err != nil {
		return nil, err
	}
	return []string{dest}, nil
}

func (d *Driver) upload(ctx context.Context) error {
	if d.collab.Uploader == nil {
		return noCollaborator(course.StepUploadedToDrive, "uploader")
	}
	return d.collab.Uploader.Upload(ctx, d.tracker.Directory())
}

func (d *Driver) publish(ctx context.Context) error {
	if d.collab.Publisher == nil {
		return noCollaborator(course.StepGitHubPushed, "publisher")
	}
	feeds, err := d.tracker.Files(course.CategoryXML)
	if err != nil {
		return err
	}
	feedPath := filepath.Join(d.tracker.Directory(), "xml", "feed.xml")
	if len(feeds) > 0 {
		feedPath = feeds[0]
	}
	if !exists(feedPath) {
		return services.Wrap(services.ErrValidation, string(course.StepGitHubPushed), "inputs", "feed file missing: "+feedPath, nil)
	}
	return d.collab.Publisher.Publish(ctx, d.tracker.CourseName(), feedPath)
}

// episodeTitle derives a readable title from a tts file name, stripping the
// synthesis prefix.
func episodeTitle(path string) string {
	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	if len(base) > 4 && base[:4] == "tts_" {
		base = base[4:]
	}
	return textutil.DisplayTitle(base)
}

func noCollaborator(step course.Step, name string) error {
	return services.Wrap(services.ErrConfiguration, string(step), "dispatch", "no "+name+" configured", nil)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
