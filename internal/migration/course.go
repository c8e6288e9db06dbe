package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"coursecast/internal/course"
	"coursecast/internal/tracker"
)

// Summary reports a composed course migration.
type Summary struct {
	Plan    *Plan
	Result  *Result
	State   *course.State
	Message string

	// Counts holds registered files per category at the target, reflecting
	// what auto-detection actually found after migration rather than what
	// the plan promised.
	Counts map[course.Category]int
}

// MigrateCourse analyzes and executes a migration, then constructs a fresh
// course state at the target under the new name, populated by auto-detection
// over the real post-migration tree. Per-file failures do not abort the
// migration; they are carried in the summary's Result.
func MigrateCourse(ctx context.Context, sourceDir, targetDir, newCourseName string, mode Mode, store *course.Store, logger *slog.Logger, trackerOpts ...tracker.Option) (*Summary, error) {
	plan, err := Analyze(sourceDir, targetDir)
	if err != nil {
		return nil, err
	}

	result, err := Execute(ctx, plan, mode, logger)
	if err != nil {
		return nil, err
	}

	// The destination gets fresh tracked state; a state file migrated over
	// from the source must not be resurrected under the new name.
	if err := os.Remove(course.StateFilePath(plan.TargetDir, newCourseName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("clear stale state at target: %w", err)
	}

	t, err := tracker.New(newCourseName, targetDir, store, trackerOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialize state at target: %w", err)
	}
	if _, err := t.AutoDetectCompletedSteps(); err != nil {
		return nil, fmt.Errorf("detect migrated files: %w", err)
	}
	if err := t.UpdateCourseStatistics(); err != nil {
		return nil, err
	}

	state := t.State()
	counts := make(map[course.Category]int, len(course.Categories()))
	for _, category := range course.Categories() {
		counts[category] = len(state.Files[category])
	}

	message := fmt.Sprintf("migrated %d files from %s to %s", result.Migrated, plan.SourceDir, plan.TargetDir)
	if result.Failed() {
		message = fmt.Sprintf("%s (%d failed)", message, len(result.Failures))
	}

	return &Summary{
		Plan:    plan,
		Result:  result,
		State:   state,
		Message: message,
		Counts:  counts,
	}, nil
}
