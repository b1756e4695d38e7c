package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quotemash/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose directories live under a fresh temp dir.
// Alignment is disabled unless WithStubbedBinaries turns it on. The
// directories are created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "data", "logs")
	cfgVal.Paths.AudioDir = filepath.Join(base, "data", "audios")
	cfgVal.Paths.WorkDir = filepath.Join(base, "data", "work")
	cfgVal.Corpus.Database = filepath.Join(base, "data", "corpus.db")
	cfgVal.Alignment.Enabled = false
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithTieBreak sets the matcher tie-break strategy.
func WithTieBreak(name string, preferIDs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matcher.TieBreak = name
		b.cfg.Matcher.PreferIDs = preferIDs
	}
}

// WithStubbedBinaries writes stub executables for the provided names,
// prepends them to PATH, and enables alignment. If names is empty, ffmpeg
// and uvx are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{config.Default().Alignment.FFmpegBinary, config.Default().Alignment.UVXBinary}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
		b.cfg.Alignment.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(strings.TrimSuffix(cfg.Paths.DataDir, string(os.PathSeparator)))
}
