package course_test

import (
	"testing"

	"coursecast/internal/course"
)

func TestNewStateDefaults(t *testing.T) {
	state := course.NewState("golang-basics", "/tmp/courses/golang-basics")

	if state.CourseName != "golang-basics" {
		t.Fatalf("unexpected course name: %s", state.CourseName)
	}
	if len(state.Progress) != len(course.Steps()) {
		t.Fatalf("expected %d progress entries, got %d", len(course.Steps()), len(state.Progress))
	}
	for step, done := range state.Progress {
		if done {
			t.Fatalf("step %s should start pending", step)
		}
	}
	for _, category := range course.Categories() {
		files, ok := state.Files[category]
		if !ok {
			t.Fatalf("category %s missing from fresh state", category)
		}
		if len(files) != 0 {
			t.Fatalf("category %s should start empty", category)
		}
	}
	if state.Metadata.String("created_at") == "" {
		t.Fatal("expected created_at metadata")
	}
	if state.Complete() {
		t.Fatal("fresh state must not be complete")
	}
}

func TestNextPendingStepIsPositional(t *testing.T) {
	state := course.NewState("c", "/tmp/c")

	step, ok := state.NextPendingStep()
	if !ok || step != course.StepAudioConverted {
		t.Fatalf("expected first step pending, got %s ok=%t", step, ok)
	}

	// Completing a later step does not move the cursor past earlier
	// pending ones.
	state.Progress[course.StepTranscribed] = true
	step, ok = state.NextPendingStep()
	if !ok || step != course.StepAudioConverted {
		t.Fatalf("expected audio_converted still pending, got %s", step)
	}

	state.Progress[course.StepAudioConverted] = true
	step, ok = state.NextPendingStep()
	if !ok || step != course.StepAIProcessed {
		t.Fatalf("expected ai_processed after first two, got %s", step)
	}

	for _, s := range course.Steps() {
		state.Progress[s] = true
	}
	if _, ok := state.NextPendingStep(); ok {
		t.Fatal("complete state should have no pending step")
	}
	if !state.Complete() {
		t.Fatal("expected complete state")
	}
}

func TestStepRegistryOrder(t *testing.T) {
	want := []course.Step{
		course.StepAudioConverted,
		course.StepTranscribed,
		course.StepAIProcessed,
		course.StepTimestampsGenerated,
		course.StepTTSCreated,
		course.StepXMLUpdated,
		course.StepUploadedToDrive,
		course.StepGitHubPushed,
	}
	got := course.Steps()
	if len(got) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	for _, step := range []course.Step{course.StepUploadedToDrive, course.StepGitHubPushed} {
		info, ok := course.Info(step)
		if !ok {
			t.Fatalf("missing registry entry for %s", step)
		}
		if info.Evidence != nil {
			t.Fatalf("%s must not carry filesystem evidence", step)
		}
	}

	if course.Valid("made_up_step") {
		t.Fatal("unknown step must not validate")
	}
}

func TestMetadataDottedPaths(t *testing.T) {
	meta := course.Metadata{}
	meta.Set("statistics.files.audio_files", 3)
	meta.Set("statistics.completed_steps", 1)

	if got, ok := meta.Get("statistics.files.audio_files"); !ok || got != 3 {
		t.Fatalf("expected nested value 3, got %v ok=%t", got, ok)
	}
	if _, ok := meta.Get("statistics.files.missing"); ok {
		t.Fatal("missing leaf should not resolve")
	}

	// Overwriting an intermediate scalar with a map.
	meta.Set("run", "legacy")
	meta.Set("run.id", "abc")
	if got, ok := meta.Get("run.id"); !ok || got != "abc" {
		t.Fatalf("expected run.id, got %v ok=%t", got, ok)
	}
}
