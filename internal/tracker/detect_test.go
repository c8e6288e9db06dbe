package tracker_test

import (
	"path/filepath"
	"testing"

	"coursecast/internal/course"
	"coursecast/internal/testsupport"
	"coursecast/internal/tracker"
)

func TestAutoDetectFromEvidenceDirs(t *testing.T) {
	dir := t.TempDir()
	testsupport.SeedEvidence(t, dir, "audio", "01-intro.mp3", "02-setup.mp3", "03-types.mp3")
	testsupport.SeedEvidence(t, dir, "transcriptions", "01-intro.txt")
	// A stray file with the wrong extension is not evidence.
	testsupport.WriteFile(t, filepath.Join(dir, "audio", "notes.docx"), 1)

	tr := newTracker(t, "detect", dir)
	detected, err := tr.AutoDetectCompletedSteps()
	if err != nil {
		t.Fatalf("AutoDetectCompletedSteps: %v", err)
	}

	if !detected[course.StepAudioConverted] || !detected[course.StepTranscribed] {
		t.Fatalf("expected audio and transcription steps detected: %v", detected)
	}
	if detected[course.StepAIProcessed] {
		t.Fatal("step without evidence files must stay pending")
	}
	if len(detected) != len(course.Steps()) {
		t.Fatalf("mapping must cover every step, got %d entries", len(detected))
	}
	// Steps without filesystem evidence are never flipped by detection.
	if detected[course.StepUploadedToDrive] || detected[course.StepGitHubPushed] {
		t.Fatal("evidence-less steps flipped by detection")
	}

	audio, _ := tr.Files(course.CategoryAudio)
	if len(audio) != 3 {
		t.Fatalf("expected 3 audio files, got %v", audio)
	}
	for i, want := range []string{"01-intro.mp3", "02-setup.mp3", "03-types.mp3"} {
		if filepath.Base(audio[i]) != want {
			t.Fatalf("audio files not sorted: %v", audio)
		}
	}
}

func TestAutoDetectIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	testsupport.SeedEvidence(t, dir, "audio", "a.mp3", "b.mp3")

	tr := newTracker(t, "idem", dir)
	if _, err := tr.AutoDetectCompletedSteps(); err != nil {
		t.Fatalf("first detect: %v", err)
	}
	if _, err := tr.AutoDetectCompletedSteps(); err != nil {
		t.Fatalf("second detect: %v", err)
	}

	audio, _ := tr.Files(course.CategoryAudio)
	if len(audio) != 2 {
		t.Fatalf("repeated detection duplicated registrations: %v", audio)
	}
}

func TestAutoDetectRespectsManualRegistrations(t *testing.T) {
	dir := t.TempDir()
	paths := testsupport.SeedEvidence(t, dir, "audio", "a.mp3")

	tr := newTracker(t, "manual", dir)
	if err := tr.AddFile(course.CategoryAudio, paths[0]); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := tr.AutoDetectCompletedSteps(); err != nil {
		t.Fatalf("detect: %v", err)
	}

	audio, _ := tr.Files(course.CategoryAudio)
	if len(audio) != 1 {
		t.Fatalf("manually registered path duplicated: %v", audio)
	}
}

func TestAutoDetectCustomAudioExtension(t *testing.T) {
	dir := t.TempDir()
	testsupport.SeedEvidence(t, dir, "audio", "a.m4a")

	tr := newTracker(t, "m4a", dir, tracker.WithAudioExtensions(".m4a"))
	detected, err := tr.AutoDetectCompletedSteps()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !detected[course.StepAudioConverted] {
		t.Fatal("configured extension not honored")
	}
}

func TestAutoDetectRecursiveScan(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "audio", "module1", "a.mp3"), 1)

	flat := newTracker(t, "flat", dir)
	detected, err := flat.AutoDetectCompletedSteps()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if detected[course.StepAudioConverted] {
		t.Fatal("flat scan must not descend into subdirectories")
	}

	deep := newTracker(t, "deep", dir, tracker.WithRecursiveScan(true))
	detected, err = deep.AutoDetectCompletedSteps()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !detected[course.StepAudioConverted] {
		t.Fatal("recursive scan missed nested evidence")
	}
}
