package tracker_test

import (
	"os"
	"path/filepath"
	"testing"

	"coursecast/internal/course"
	"coursecast/internal/testsupport"
)

func TestValidateFileIntegrity(t *testing.T) {
	dir := t.TempDir()
	present := testsupport.SeedEvidence(t, dir, "audio", "keep.mp3")
	empty := filepath.Join(dir, "audio", "empty.mp3")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	gone := filepath.Join(dir, "audio", "deleted.mp3")

	tr := newTracker(t, "integrity", dir)
	for _, path := range []string{present[0], empty, gone} {
		if err := tr.AddFile(course.CategoryAudio, path); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
	}

	missing := tr.ValidateFileIntegrity()
	if len(missing[course.CategoryAudio]) != 2 {
		t.Fatalf("expected empty and deleted files flagged, got %v", missing[course.CategoryAudio])
	}
	for _, category := range course.Categories() {
		if missing[category] == nil {
			t.Fatalf("category %s absent from report", category)
		}
	}
	if !tr.HasIntegrityViolations() {
		t.Fatal("expected violations reported")
	}
}

func TestValidateFileIntegrityIsReadOnly(t *testing.T) {
	dir := t.TempDir()
	paths := testsupport.SeedEvidence(t, dir, "tts", "tts_a.mp3")

	tr := newTracker(t, "readonly", dir)
	if err := tr.MarkStepCompleted(course.StepTTSCreated, paths); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := os.Remove(paths[0]); err != nil {
		t.Fatalf("remove: %v", err)
	}

	missing := tr.ValidateFileIntegrity()
	if len(missing[course.CategoryTTS]) != 1 {
		t.Fatalf("deleted file not flagged: %v", missing)
	}

	// Diagnosis must not touch flags or registrations.
	done, _ := tr.IsStepComplete(course.StepTTSCreated)
	if !done {
		t.Fatal("step flag mutated by integrity check")
	}
	files, _ := tr.Files(course.CategoryTTS)
	if len(files) != 1 {
		t.Fatal("registrations mutated by integrity check")
	}
}

func TestUpdateCourseStatistics(t *testing.T) {
	dir := t.TempDir()
	testsupport.SeedEvidence(t, dir, "audio", "a.mp3", "b.mp3")

	tr := newTracker(t, "stats", dir)
	if _, err := tr.AutoDetectCompletedSteps(); err != nil {
		t.Fatalf("detect: %v", err)
	}
	if err := tr.UpdateCourseStatistics(); err != nil {
		t.Fatalf("UpdateCourseStatistics: %v", err)
	}

	meta := tr.State().Metadata
	if got, ok := meta.Get("statistics.files.audio_files"); !ok || got != 2 {
		t.Fatalf("expected 2 audio files in statistics, got %v", got)
	}
	if got, ok := meta.Get("statistics.completed_steps"); !ok || got != 1 {
		t.Fatalf("expected 1 completed step, got %v", got)
	}
	if got, ok := meta.Get("total_files"); !ok || got != 2 {
		t.Fatalf("expected total_files 2, got %v", got)
	}
}
