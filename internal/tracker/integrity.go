package tracker

import (
	"os"

	"coursecast/internal/course"
)

// ValidateFileIntegrity checks every registered file path against the
// filesystem and reports the missing ones per category. Empty files count as
// missing, matching the pipeline's view that a zero-byte output is a failed
// output. The check is a read-only diagnostic: state is not mutated, and the
// caller decides whether to purge or regenerate the reported entries.
func (t *Tracker) ValidateFileIntegrity() map[course.Category][]string {
	missing := make(map[course.Category][]string, len(course.Categories()))
	for _, category := range course.Categories() {
		missing[category] = []string{}
		for _, path := range t.state.Files[category] {
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				missing[category] = append(missing[category], path)
			}
		}
	}
	return missing
}

// HasIntegrityViolations reports whether any registered file is missing.
func (t *Tracker) HasIntegrityViolations() bool {
	for _, paths := range t.ValidateFileIntegrity() {
		if len(paths) > 0 {
			return true
		}
	}
	return false
}
