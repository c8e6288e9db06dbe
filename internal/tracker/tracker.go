package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"coursecast/internal/course"
	"coursecast/internal/logging"
)

// Tracker exposes completion queries and mutations over one course's state.
type Tracker struct {
	name      string
	dir       string
	store     *course.Store
	state     *course.State
	logger    *slog.Logger
	audioExts []string
	recursive bool
}

// Option customizes tracker construction.
type Option func(*Tracker)

// WithLogger attaches a logger; the default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithAudioExtensions overrides the audio evidence extensions (default .mp3).
func WithAudioExtensions(exts ...string) Option {
	return func(t *Tracker) {
		if len(exts) > 0 {
			t.audioExts = exts
		}
	}
}

// WithRecursiveScan widens evidence scans to subdirectories.
func WithRecursiveScan(recursive bool) Option {
	return func(t *Tracker) {
		t.recursive = recursive
	}
}

// New opens the tracker for a course, loading existing state from disk or
// initializing a fresh one. A corrupt state file is replaced by a fresh
// default state and logged; it is never silently merged.
func New(courseName, directory string, store *course.Store, opts ...Option) (*Tracker, error) {
	if courseName == "" {
		return nil, errors.New("tracker: course name required")
	}
	if store == nil {
		return nil, errors.New("tracker: state store required")
	}
	abs, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("tracker: resolve directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("tracker: ensure course directory: %w", err)
	}

	t := &Tracker{
		name:      courseName,
		dir:       abs,
		store:     store,
		logger:    logging.NewNop(),
		audioExts: []string{".mp3"},
	}
	for _, opt := range opts {
		opt(t)
	}

	state, err := store.Load(courseName, abs)
	switch {
	case err == nil:
		t.state = state
	case errors.Is(err, fs.ErrNotExist):
		t.state = course.NewState(courseName, abs)
		if err := store.Save(t.state); err != nil {
			return nil, err
		}
	case errors.Is(err, course.ErrCorruptState):
		t.logger.Warn("course state unreadable, reinitializing",
			logging.String("course", courseName),
			logging.Error(err),
		)
		t.state = course.NewState(courseName, abs)
		if err := store.Save(t.state); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return t, nil
}

// CourseName returns the course identifier.
func (t *Tracker) CourseName() string { return t.name }

// Directory returns the course root directory.
func (t *Tracker) Directory() string { return t.dir }

// State returns the live course state. Callers must treat it as read-only;
// all mutation goes through tracker methods so persistence stays write-through.
func (t *Tracker) State() *course.State { return t.state }

// IsCourseComplete reports whether every registry step is marked completed.
func (t *Tracker) IsCourseComplete() bool {
	return t.state.Complete()
}

// IsStepComplete reports a single step's completion flag.
func (t *Tracker) IsStepComplete(step course.Step) (bool, error) {
	if !course.Valid(step) {
		return false, fmt.Errorf("%w: %q", course.ErrUnknownStep, step)
	}
	return t.state.Progress[step], nil
}

// CompletedSteps returns the completed step names in registry order.
func (t *Tracker) CompletedSteps() []course.Step {
	return t.state.CompletedSteps()
}

// NextPendingStep returns the first incomplete step in registry order, or
// false when the course is complete. The scan is positional; it does not
// check that earlier steps are complete.
func (t *Tracker) NextPendingStep() (course.Step, bool) {
	return t.state.NextPendingStep()
}

// MarkStepCompleted sets the step's completion flag and, when files are
// given, appends them to the step's file category. Duplicate registrations
// are the caller's responsibility; they are stored as given. Persists
// immediately.
func (t *Tracker) MarkStepCompleted(step course.Step, files []string) error {
	if !course.Valid(step) {
		return fmt.Errorf("%w: %q", course.ErrUnknownStep, step)
	}
	t.state.Progress[step] = true
	if category, ok := course.CategoryFor(step); ok && len(files) > 0 {
		t.state.Files[category] = append(t.state.Files[category], files...)
	}
	return t.store.Save(t.state)
}

// CompleteStep marks a step completed without registering files.
func (t *Tracker) CompleteStep(step course.Step) error {
	return t.MarkStepCompleted(step, nil)
}

// AddFile registers one output file under a category and persists, so
// partial progress on a multi-file step survives a crash mid-step.
func (t *Tracker) AddFile(category course.Category, path string) error {
	if !course.ValidCategory(category) {
		return fmt.Errorf("%w: %q", course.ErrUnknownCategory, category)
	}
	t.state.Files[category] = append(t.state.Files[category], path)
	return t.store.Save(t.state)
}

// Files returns a copy of the registered paths for a category. Paths are not
// guaranteed to exist on disk; run ValidateFileIntegrity before trusting them.
func (t *Tracker) Files(category course.Category) ([]string, error) {
	if !course.ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", course.ErrUnknownCategory, category)
	}
	return append([]string{}, t.state.Files[category]...), nil
}

// ResetProgress marks every step incomplete and clears all file categories.
// Metadata is preserved.
func (t *Tracker) ResetProgress() error {
	for _, step := range course.Steps() {
		t.state.Progress[step] = false
	}
	for _, category := range course.Categories() {
		t.state.Files[category] = []string{}
	}
	return t.store.Save(t.state)
}

// ResetSteps marks only the listed steps incomplete and clears only their
// file categories. Downstream steps are deliberately left untouched even
// though they depend on the reset ones; whether to also reset them is the
// caller's decision. Validation happens before any mutation so an unknown
// step name leaves the state unchanged.
func (t *Tracker) ResetSteps(steps []course.Step) error {
	for _, step := range steps {
		if !course.Valid(step) {
			return fmt.Errorf("%w: %q", course.ErrUnknownStep, step)
		}
	}
	for _, step := range steps {
		t.state.Progress[step] = false
		if category, ok := course.CategoryFor(step); ok {
			t.state.Files[category] = []string{}
		}
	}
	return t.store.Save(t.state)
}

// UpdateMetadata merges a value into the open metadata map at a dotted path
// and persists.
func (t *Tracker) UpdateMetadata(key string, value any) error {
	if key == "" {
		return errors.New("tracker: metadata key required")
	}
	t.state.Metadata.Set(key, value)
	return t.store.Save(t.state)
}
