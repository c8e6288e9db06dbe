package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"coursecast/internal/fileutil"
	"coursecast/internal/logging"
)

// Mode selects how files reach the target.
type Mode string

const (
	// ModeCopy duplicates files; the source tree is untouched.
	ModeCopy Mode = "copy"
	// ModeMove relocates files; the source is emptied of migrated files.
	ModeMove Mode = "move"
)

// ParseMode validates a mode string.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeCopy, ModeMove:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("migration mode must be copy or move, got %q", value)
	}
}

// FileError pairs a source path with the error that stopped its migration.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Result reports migration outcome: how many files landed and which failed.
type Result struct {
	Migrated int
	Failures []FileError
}

// Failed reports whether any file could not be migrated.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Execute carries out a plan. Every planned file is recreated at the same
// relative path under the target, creating subdirectories as needed. A
// per-file failure is recorded and the remaining files still migrate; only
// context cancellation and target setup errors abort the whole run. In move
// mode a file is removed from the source only after its copy verified.
func Execute(ctx context.Context, plan *Plan, mode Mode, logger *slog.Logger) (*Result, error) {
	if plan == nil {
		return nil, errors.New("migration: plan required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(plan.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	if plan.TargetFreeBytes > 0 && plan.TotalBytes > plan.TargetFreeBytes {
		logger.Warn("planned migration exceeds target free space",
			logging.String("target", plan.TargetDir),
			logging.String("planned", fileutil.FormatSize(plan.TotalBytes)),
			logging.String("free", fileutil.FormatSize(plan.TargetFreeBytes)),
		)
	}

	result := &Result{}
	for _, file := range plan.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		targetPath := filepath.Join(plan.TargetDir, file.RelPath)
		if err := migrateOne(file.Path, targetPath, mode); err != nil {
			result.Failures = append(result.Failures, FileError{Path: file.Path, Err: err})
			logger.Warn("file migration failed",
				logging.String("source", file.Path),
				logging.Error(err),
			)
			continue
		}
		result.Migrated++
	}

	logger.Info("migration finished",
		logging.String("source", plan.SourceDir),
		logging.String("target", plan.TargetDir),
		logging.String("mode", string(mode)),
		logging.Int("migrated", result.Migrated),
		logging.Int("failed", len(result.Failures)),
	)
	return result, nil
}

func migrateOne(source, target string, mode Mode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create target subdirectory: %w", err)
	}
	if err := fileutil.CopyFileVerified(source, target); err != nil {
		return err
	}
	if mode == ModeMove {
		if err := os.Remove(source); err != nil {
			return fmt.Errorf("remove source after copy: %w", err)
		}
	}
	return nil
}
