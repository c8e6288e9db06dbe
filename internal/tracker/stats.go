package tracker

import (
	"strconv"
	"time"

	"coursecast/internal/console"
	"coursecast/internal/course"
)

// UpdateCourseStatistics recomputes per-category file counts, the total file
// count, and the elapsed time since course creation, storing them under the
// "statistics" metadata key. Persists.
func (t *Tracker) UpdateCourseStatistics() error {
	for _, category := range course.Categories() {
		t.state.Metadata.Set("statistics.files."+string(category), len(t.state.Files[category]))
	}
	t.state.Metadata.Set("total_files", t.state.FileCount())
	t.state.Metadata.Set("statistics.completed_steps", len(t.state.CompletedSteps()))

	if created := t.state.Metadata.String("created_at"); created != "" {
		if createdAt, err := time.Parse(time.RFC3339, created); err == nil {
			t.state.Metadata.Set("statistics.elapsed_seconds", int64(time.Since(createdAt).Seconds()))
		}
	}
	return t.store.Save(t.state)
}

// DisplaySummary renders the course's progress and file counts to the
// provided console. Read-only over already-persisted state; every category
// may be empty.
func (t *Tracker) DisplaySummary(con *console.Console) {
	con.Printf("Course: %s\n", t.name)
	con.Printf("Directory: %s\n\n", t.dir)

	progressRows := make([][]string, 0, len(course.Steps()))
	for _, info := range course.Infos() {
		status := "pending"
		if t.state.Progress[info.Step] {
			status = "done"
		}
		progressRows = append(progressRows, []string{info.Label, string(info.Step), status})
	}
	con.Table(
		[]string{"Stage", "Step", "Status"},
		progressRows,
		[]console.Alignment{console.AlignLeft, console.AlignLeft, console.AlignLeft},
	)

	fileRows := make([][]string, 0, len(course.Categories()))
	for _, category := range course.Categories() {
		fileRows = append(fileRows, []string{string(category), strconv.Itoa(len(t.state.Files[category]))})
	}
	con.Table(
		[]string{"Category", "Files"},
		fileRows,
		[]console.Alignment{console.AlignLeft, console.AlignRight},
	)

	if created := t.state.Metadata.String("created_at"); created != "" {
		con.Printf("Created: %s\n", created)
	}
	if updated := t.state.Metadata.String("last_updated"); updated != "" {
		con.Printf("Updated: %s\n", updated)
	}
	action := t.SuggestNextAction()
	con.Printf("Next: %s\n", action.Description)
}
