package testsupport

import (
	"context"
	"testing"

	"quotemash/internal/config"
	"quotemash/internal/corpus"
)

// MustOpenStore opens the config's corpus.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *corpus.Store {
	t.Helper()

	store, err := corpus.Open(cfg.Corpus.Database)
	if err != nil {
		t.Fatalf("corpus.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCorpus imports entries into store and fails the test on error.
func SeedCorpus(t testing.TB, store *corpus.Store, entries ...corpus.Entry) corpus.ImportResult {
	t.Helper()

	result, err := store.Import(context.Background(), "test", entries)
	if err != nil {
		t.Fatalf("store.Import: %v", err)
	}
	return result
}
