package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testQuotes = `[
    {"id": "q1", "character": "obi wan", "text": "Hello there, friend", "audio_url": "https://example.test/q1.ogg", "audio_path": "q1.mp3"},
    {"id": "q2", "character": "Grievous", "text": "General Kenobi, you are a bold one", "audio_url": "https://example.test/q2.ogg", "audio_path": "q2.mp3"},
    {"id": "q3", "character": "Yoda", "text": "Do or do not", "audio_url": "https://example.test/q3.ogg", "audio_path": "q3.mp3"}
]`

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	configPath string
	quotesPath string
}

// setupCLITestEnv writes a config rooted in a temp dir. extra is appended to
// the config file verbatim.
func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("QUOTEMASH_DATA_DIR", "")

	env := &cliTestEnv{
		baseDir:    base,
		dataDir:    filepath.Join(base, "data"),
		configPath: filepath.Join(base, "config.toml"),
		quotesPath: filepath.Join(base, "quotes.json"),
	}
	contents := "[paths]\ndata_dir = \"" + env.dataDir + "\"\n\n[logging]\nlevel = \"error\"\n"
	if strings.TrimSpace(extra) == "" {
		extra = "[alignment]\nenabled = false\n"
	}
	contents += "\n" + extra
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(env.quotesPath, []byte(testQuotes), 0o644); err != nil {
		t.Fatalf("write quotes: %v", err)
	}
	return env
}

func (e *cliTestEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (e *cliTestEnv) importQuotes(t *testing.T) {
	t.Helper()
	if _, _, err := e.run(t, "", "corpus", "import", e.quotesPath); err != nil {
		t.Fatalf("corpus import: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", substr, output)
	}
}
