package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quotemash/internal/config"
	"quotemash/internal/corpus"
	"quotemash/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCorpus(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	if result := CheckCorpus(ctx, path); result.Passed || !strings.Contains(result.Detail, "not imported") {
		t.Fatalf("expected missing database failure, got %+v", result)
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatal("check must not create the database")
	}

	store, err := corpus.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if result := CheckCorpus(ctx, path); result.Passed {
		t.Fatalf("expected empty corpus failure, got %+v", result)
	}
	if _, err := store.Import(ctx, "test", []corpus.Entry{
		{ID: "1", Character: "Shrek", Text: "what are you doing in my swamp"},
		{ID: "2", Character: "Donkey", Text: "we can stay up late"},
	}); err != nil {
		t.Fatalf("import: %v", err)
	}
	_ = store.Close()

	result := CheckCorpus(ctx, path)
	if !result.Passed || result.Detail != "2 quotes from 2 characters" {
		t.Fatalf("unexpected corpus result: %+v", result)
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := config.Default()
	cfg.Alignment.Enabled = false
	if got := CheckSystemDeps(&cfg); len(got) != 0 {
		t.Fatalf("expected no deps when alignment disabled, got %+v", got)
	}

	binDir := t.TempDir()
	ffmpeg := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(ffmpeg, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	cfg.Alignment.Enabled = true
	cfg.Alignment.FFmpegBinary = ffmpeg
	cfg.Alignment.UVXBinary = "definitely-not-uvx"

	got := CheckSystemDeps(&cfg)
	if len(got) != 2 {
		t.Fatalf("expected two deps, got %+v", got)
	}
	if !got[0].Available || got[1].Available {
		t.Fatalf("unexpected availability: %+v", got)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_AlignmentDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.AudioDir = t.TempDir()
	cfg.Corpus.Database = filepath.Join(cfg.Paths.DataDir, "corpus.db")
	cfg.Alignment.Enabled = false

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected data, audio and corpus checks, got %+v", results)
	}
	if !results[0].Passed || !results[1].Passed {
		t.Fatalf("expected directory checks to pass: %+v", results)
	}
	if results[2].Name != "Corpus" || results[2].Passed {
		t.Fatalf("expected failing corpus check, got %+v", results[2])
	}
}

func TestRunAll_AlignmentEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedCorpus(t, store, corpus.Entry{ID: "1", Character: "Shrek", Text: "what are you doing in my swamp"})

	results := RunAll(context.Background(), cfg)
	names := make([]string, 0, len(results))
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected %s to pass, got %+v", result.Name, result)
		}
		names = append(names, result.Name)
	}
	want := "Data directory,Audio directory,Work directory,Corpus,FFmpeg,uvx"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("checks = %s, want %s", got, want)
	}
}
