package course_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursecast/internal/course"
)

func TestStateFilePathToken(t *testing.T) {
	got := course.StateFilePath("/data/courses/Go Avançado", "Go Avançado")
	base := filepath.Base(got)
	if !strings.HasSuffix(base, "_state.json") {
		t.Fatalf("unexpected state file name: %s", base)
	}
	if strings.ContainsAny(base, " ç") {
		t.Fatalf("state file name not sanitized: %s", base)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := course.NewStore()

	state := course.NewState("my-course", dir)
	state.Progress[course.StepAudioConverted] = true
	state.Files[course.CategoryAudio] = []string{filepath.Join(dir, "audio", "lesson1.mp3")}
	state.Metadata.Set("custom.source", "imported")

	if err := store.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("my-course", dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Progress[course.StepAudioConverted] {
		t.Fatal("progress flag lost on round trip")
	}
	if len(loaded.Files[course.CategoryAudio]) != 1 {
		t.Fatalf("audio files lost: %v", loaded.Files)
	}
	if got := loaded.Metadata.String("custom.source"); got != "imported" {
		t.Fatalf("unknown metadata key did not round-trip: %q", got)
	}
	if loaded.Metadata.String("last_updated") == "" {
		t.Fatal("expected last_updated stamp after save")
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := course.NewStore()
	_, err := store.Load("absent", t.TempDir())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := course.StateFilePath(dir, "broken")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := course.NewStore()
	_, err := store.Load("broken", dir)
	if !errors.Is(err, course.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestLoadNormalizesPartialDocument(t *testing.T) {
	dir := t.TempDir()
	path := course.StateFilePath(dir, "partial")
	doc := `{"course_name":"partial","progress":{"audio_converted":true,"obsolete_step":true}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write partial file: %v", err)
	}

	store := course.NewStore()
	state, err := store.Load("partial", dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(state.Progress) != len(course.Steps()) {
		t.Fatalf("expected exactly the registry steps, got %d entries", len(state.Progress))
	}
	if _, ok := state.Progress["obsolete_step"]; ok {
		t.Fatal("unknown step survived normalization")
	}
	if !state.Progress[course.StepAudioConverted] {
		t.Fatal("known flag lost during normalization")
	}
	for _, category := range course.Categories() {
		if _, ok := state.Files[category]; !ok {
			t.Fatalf("category %s missing after normalization", category)
		}
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := course.NewStore()
	if err := store.Save(course.NewState("clean", dir)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}
