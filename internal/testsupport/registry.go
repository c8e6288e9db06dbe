package testsupport

import (
	"testing"

	"coursecast/internal/config"
	"coursecast/internal/registry"
)

// MustOpenRegistry opens the course registry for tests and registers cleanup.
func MustOpenRegistry(t testing.TB, cfg *config.Config) *registry.Store {
	t.Helper()

	store, err := registry.Open(cfg.Paths.RegistryPath)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
