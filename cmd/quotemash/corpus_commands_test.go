package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"quotemash/internal/corpus"
	"quotemash/internal/services"
)

func TestCorpusImportListAndStats(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := env.run(t, "", "corpus", "import", env.quotesPath)
	if err != nil {
		t.Fatalf("corpus import: %v", err)
	}
	requireContains(t, out, "Imported 3 new, 0 updated, 0 skipped")

	out, _, err = env.run(t, "", "corpus", "import", env.quotesPath)
	if err != nil {
		t.Fatalf("corpus re-import: %v", err)
	}
	requireContains(t, out, "Imported 0 new, 3 updated, 0 skipped")

	out, _, err = env.run(t, "", "corpus", "list")
	if err != nil {
		t.Fatalf("corpus list: %v", err)
	}
	requireContains(t, out, "Obi Wan")
	requireContains(t, out, "General Kenobi, you are a bold one")

	out, _, err = env.run(t, "", "corpus", "list", "--character", "grievous", "--json")
	if err != nil {
		t.Fatalf("corpus list --character: %v", err)
	}
	var listed []corpus.Entry
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list json: %v\n%s", err, out)
	}
	if len(listed) != 1 || listed[0].ID != "q2" {
		t.Fatalf("unexpected filtered list %+v", listed)
	}

	out, _, err = env.run(t, "", "corpus", "stats")
	if err != nil {
		t.Fatalf("corpus stats: %v", err)
	}
	requireContains(t, out, "Total: 3 quotes from 3 characters")
	requireContains(t, out, "Imports: 2")
}

func TestCorpusShowExportAndClear(t *testing.T) {
	env := setupCLITestEnv(t, "")
	env.importQuotes(t)

	out, _, err := env.run(t, "", "corpus", "show", "q3")
	if err != nil {
		t.Fatalf("corpus show: %v", err)
	}
	requireContains(t, out, `"text": "Do or do not"`)

	_, _, err = env.run(t, "", "corpus", "show", "missing")
	if services.ExitCode(err) != services.ExitNotFound {
		t.Fatalf("expected not-found exit code, got %d (%v)", services.ExitCode(err), err)
	}

	target := filepath.Join(env.baseDir, "export", "quotes.json")
	out, _, err = env.run(t, "", "corpus", "export", target)
	if err != nil {
		t.Fatalf("corpus export: %v", err)
	}
	requireContains(t, out, "Exported 3 quotes")
	exported, err := corpus.LoadJSON(target)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if len(exported) != 3 || exported[0].ID != "q1" || exported[0].Character != "Obi Wan" {
		t.Fatalf("unexpected export %+v", exported)
	}

	_, _, err = env.run(t, "", "corpus", "clear")
	if services.ExitCode(err) != services.ExitUsage {
		t.Fatalf("expected clear without --yes to be refused, got %v", err)
	}
	if _, _, err := env.run(t, "", "corpus", "clear", "--yes"); err != nil {
		t.Fatalf("corpus clear: %v", err)
	}
	out, _, err = env.run(t, "", "corpus", "list")
	if err != nil {
		t.Fatalf("corpus list: %v", err)
	}
	if strings.TrimSpace(out) != "No quotes stored" {
		t.Fatalf("expected empty corpus, got %q", out)
	}
}

func TestCorpusImportRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t, "")
	_, _, err := env.run(t, "", "corpus", "import", filepath.Join(env.baseDir, "nope.json"))
	if services.ExitCode(err) != services.ExitUsage {
		t.Fatalf("expected usage exit code for missing file, got %v", err)
	}
}
