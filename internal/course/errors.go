package course

import "errors"

var (
	// ErrUnknownStep marks operations against a step name that is not part of
	// the registry. This is a programmer or configuration error and fails the
	// call outright.
	ErrUnknownStep = errors.New("unknown pipeline step")

	// ErrUnknownCategory marks file registrations against a category outside
	// the fixed set.
	ErrUnknownCategory = errors.New("unknown file category")

	// ErrCorruptState indicates a state file exists but could not be parsed.
	// Callers recover by reinitializing a fresh default state.
	ErrCorruptState = errors.New("corrupt course state")

	// ErrPersist indicates the state file could not be written. The prior
	// on-disk state is untouched when this is returned.
	ErrPersist = errors.New("course state not persisted")
)
