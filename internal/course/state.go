package course

import "time"

// State is the persisted JSON document describing a course's progress. One
// exists per (course name, directory) pair; the directory is fixed at
// creation and a relocated course gets a fresh State at the new path.
type State struct {
	CourseName string                `json:"course_name"`
	Directory  string                `json:"directory"`
	Progress   map[Step]bool         `json:"progress"`
	Files      map[Category][]string `json:"files"`
	Metadata   Metadata              `json:"metadata"`
}

// NewState builds the initial state for a course: every step incomplete,
// every file category empty, creation timestamps recorded.
func NewState(courseName, directory string) *State {
	now := time.Now().Format(time.RFC3339)
	state := &State{
		CourseName: courseName,
		Directory:  directory,
		Progress:   make(map[Step]bool, len(registry)),
		Files:      make(map[Category][]string, len(Categories())),
		Metadata: Metadata{
			"total_files":  0,
			"created_at":   now,
			"last_updated": now,
		},
	}
	for _, step := range Steps() {
		state.Progress[step] = false
	}
	for _, category := range Categories() {
		state.Files[category] = []string{}
	}
	return state
}

// normalize repairs the closed parts of a loaded state so the progress map
// holds exactly the registry's step set and every file category is present.
// Metadata is left untouched.
func (s *State) normalize() {
	progress := make(map[Step]bool, len(registry))
	for _, step := range Steps() {
		progress[step] = s.Progress[step]
	}
	s.Progress = progress

	if s.Files == nil {
		s.Files = make(map[Category][]string, len(Categories()))
	}
	for _, category := range Categories() {
		if s.Files[category] == nil {
			s.Files[category] = []string{}
		}
	}
	if s.Metadata == nil {
		s.Metadata = Metadata{}
	}
}

// Complete reports whether every step is marked done.
func (s *State) Complete() bool {
	for _, step := range Steps() {
		if !s.Progress[step] {
			return false
		}
	}
	return true
}

// CompletedSteps returns the completed step names in registry order.
func (s *State) CompletedSteps() []Step {
	completed := make([]Step, 0, len(registry))
	for _, step := range Steps() {
		if s.Progress[step] {
			completed = append(completed, step)
		}
	}
	return completed
}

// NextPendingStep returns the first incomplete step in registry order. The
// scan is positional: an earlier completed step is skipped even when steps
// before it are still pending.
func (s *State) NextPendingStep() (Step, bool) {
	for _, step := range Steps() {
		if !s.Progress[step] {
			return step, true
		}
	}
	return "", false
}

// FileCount returns the total number of registered files across categories.
func (s *State) FileCount() int {
	total := 0
	for _, category := range Categories() {
		total += len(s.Files[category])
	}
	return total
}
