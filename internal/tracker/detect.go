package tracker

import (
	"path/filepath"

	"coursecast/internal/course"
	"coursecast/internal/fileutil"
	"coursecast/internal/logging"
)

// AutoDetectCompletedSteps scans each step's evidence directory under the
// course root. Steps with matching files are marked completed and the found
// files registered in filename-sorted order, skipping paths already
// registered (path identity, not content). Steps without local evidence are
// left untouched. The returned mapping covers every step, including ones
// completed before the scan. State is persisted once after the scan.
func (t *Tracker) AutoDetectCompletedSteps() (map[course.Step]bool, error) {
	changed := false

	for _, info := range course.Infos() {
		if info.Evidence == nil {
			continue
		}
		extensions := info.Evidence.Extensions
		if info.Step == course.StepAudioConverted {
			extensions = t.audioExts
		}

		found, err := fileutil.ScanByExt(filepath.Join(t.dir, info.Evidence.Dir), extensions, t.recursive)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			continue
		}

		if !t.state.Progress[info.Step] {
			t.state.Progress[info.Step] = true
			changed = true
		}
		if t.mergeFiles(info.Category, found) {
			changed = true
		}
	}

	if changed {
		t.state.Metadata.Set("total_files", t.state.FileCount())
		if err := t.store.Save(t.state); err != nil {
			return nil, err
		}
		t.logger.Info("auto-detected completed steps",
			logging.String("course", t.name),
			logging.Int("completed", len(t.state.CompletedSteps())),
		)
	}

	result := make(map[course.Step]bool, len(course.Steps()))
	for _, step := range course.Steps() {
		result[step] = t.state.Progress[step]
	}
	return result, nil
}

// mergeFiles appends found paths not already registered, keeping the merged
// list in sorted order for determinism. Reports whether anything changed.
func (t *Tracker) mergeFiles(category course.Category, found []string) bool {
	existing := make(map[string]struct{}, len(t.state.Files[category]))
	for _, path := range t.state.Files[category] {
		existing[path] = struct{}{}
	}

	added := false
	merged := append([]string{}, t.state.Files[category]...)
	for _, path := range found {
		if _, ok := existing[path]; ok {
			continue
		}
		merged = append(merged, path)
		added = true
	}
	if !added {
		return false
	}
	fileutil.SortPaths(merged)
	t.state.Files[category] = merged
	return true
}
