package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"coursecast/internal/textutil"
)

// Store reads and writes course state documents. The on-disk JSON is the sole
// source of truth between process invocations; callers hold the in-memory
// State as an exclusively owned cache and flush it through Save on every
// mutation.
type Store struct{}

// NewStore returns a state store.
func NewStore() *Store {
	return &Store{}
}

// StateFilePath returns the state file location for a course: the course name
// reduced to a filesystem-safe token, stored under the course directory.
func StateFilePath(directory, courseName string) string {
	return filepath.Join(directory, textutil.StateFileToken(courseName)+"_state.json")
}

// Load reads the state document for a course. A missing file returns
// fs.ErrNotExist so the caller can decide to initialize; an unparseable file
// returns ErrCorruptState and the caller chooses between repair and abort.
func (st *Store) Load(courseName, directory string) (*State, error) {
	path := StateFilePath(directory, courseName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("state file %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read state file %s: %w", path, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrCorruptState, path, err)
	}

	state.CourseName = courseName
	state.Directory = directory
	state.normalize()
	return &state, nil
}

// Save serializes the full state atomically: the document is written to a
// temp file in the course directory and renamed over the previous one, so a
// crash mid-write never leaves a half-written file behind. Failures are
// tagged ErrPersist and leave the prior on-disk state untouched.
func (st *Store) Save(state *State) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", ErrPersist)
	}
	if state.Directory == "" {
		return fmt.Errorf("%w: state has no directory", ErrPersist)
	}
	if err := os.MkdirAll(state.Directory, 0o755); err != nil {
		return fmt.Errorf("%w: ensure course directory: %w", ErrPersist, err)
	}

	state.Metadata.Set("last_updated", time.Now().Format(time.RFC3339))

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal state: %w", ErrPersist, err)
	}
	data = append(data, '\n')

	path := StateFilePath(state.Directory, state.CourseName)
	tmp, err := os.CreateTemp(state.Directory, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp state file: %w", ErrPersist, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp state file: %w", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp state file: %w", ErrPersist, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: replace state file: %w", ErrPersist, err)
	}
	return nil
}
