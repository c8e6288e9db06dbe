package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"coursecast/internal/config"
	"coursecast/internal/course"
	"coursecast/internal/pipeline"
	"coursecast/internal/registry"
	"coursecast/internal/services/converter"
	"coursecast/internal/services/feed"
	"coursecast/internal/services/llm"
	"coursecast/internal/services/publisher"
	"coursecast/internal/services/timestamps"
	"coursecast/internal/services/transcriber"
	"coursecast/internal/services/tts"
	"coursecast/internal/services/uploader"
	"coursecast/internal/textutil"
)

// lockFileName guards a course directory against concurrent pipeline runs.
const lockFileName = ".coursecast.lock"

func newProcessCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <course>",
		Short: "Run the pending pipeline steps for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			con := ctx.console(cmd)

			t, err := ctx.openTracker(args[0], true)
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(t.Directory(), lockFileName))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire course lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("course %s is already being processed", t.CourseName())
			}
			defer lock.Unlock()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			driver := pipeline.New(t, buildCollaborators(cfg),
				pipeline.WithLogger(logger),
				pipeline.WithFeedSettings(feedSettings(cfg, t.CourseName())),
				pipeline.WithRecursiveScan(cfg.Scan.Recursive),
			)

			report, runErr := driver.Run(runCtx)
			if report != nil {
				logger.Info("run finished",
					"session_id", report.SessionID,
					"ran", len(report.Ran),
					"skipped", len(report.Skipped))
			}

			if err := t.UpdateCourseStatistics(); err != nil {
				return err
			}
			if err := registerCourse(cmd.Context(), cfg.Paths.RegistryPath, t.CourseName(), t.Directory()); err != nil {
				con.Warn("registry update failed: %v", err)
			}

			if runErr != nil {
				if errors.Is(runErr, context.Canceled) {
					con.Warn("Interrupted; progress saved")
					return nil
				}
				return runErr
			}

			t.DisplaySummary(con)
			if t.IsCourseComplete() {
				con.Success("Course %s fully processed", t.CourseName())
			}
			return nil
		},
	}
	return cmd
}

// buildCollaborators wires the external tool adapters from configuration.
// The LLM processor is left nil when no API key is configured so the run
// fails at that step with a configuration error rather than mid-request.
func buildCollaborators(cfg *config.Config) pipeline.Collaborators {
	collab := pipeline.Collaborators{
		Converter:   converter.New(cfg.FFmpegBinary(), cfg.Audio.Format, cfg.Audio.Bitrate),
		Transcriber: transcriber.New(cfg.Transcription.Model, cfg.Transcription.Language),
		Timestamps:  timestamps.Generate,
		Synthesizer: tts.New(cfg.TTS.Voice, cfg.TTS.Rate),
		Feed:        feed.Generate,
		Uploader:    uploader.New(cfg.Drive.Remote, time.Duration(cfg.Drive.TimeoutSeconds)*time.Second),
		Publisher:   publisher.New(cfg.GitHub.RepoDir, cfg.GitHub.Branch),
	}
	if cfg.LLM.APIKey != "" {
		client := llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
		collab.Processor = llm.NewProcessor(client, "")
	}
	return collab
}

func feedSettings(cfg *config.Config, courseName string) feed.Settings {
	return feed.Settings{
		Title:       textutil.DisplayTitle(courseName),
		Description: cfg.Feed.Description,
		BaseURL:     cfg.Feed.BaseURL,
		Author:      cfg.Feed.Author,
		Email:       cfg.Feed.Email,
	}
}

func registerCourse(ctx context.Context, registryPath, name, dir string) error {
	store, err := registry.Open(registryPath)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Upsert(ctx, name, dir, course.StateFilePath(dir, name))
	return err
}
