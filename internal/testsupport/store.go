package testsupport

import (
	"testing"

	"autotranscription/internal/config"
	"autotranscription/internal/resultcache"
)

// MustOpenStore opens a resultcache.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *resultcache.Store {
	t.Helper()

	store, err := resultcache.Open(cfg)
	if err != nil {
		t.Fatalf("resultcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
