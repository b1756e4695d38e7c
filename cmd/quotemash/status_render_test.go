package main

import (
	"fmt"
	"strings"
	"testing"

	"quotemash/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Corpus", statusError, "empty", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Corpus:", "[ERROR] empty")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("uvx", statusOK, "/usr/bin/uvx", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "Data directory", Passed: true, Detail: "/data (read/write ok)"},
		{Name: "Corpus", Detail: "/data/corpus.db (error: empty)"},
		{Name: "FFmpeg", Detail: `binary "ffmpeg" not found`},
	}, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"[OK]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(lines[i], want) {
			t.Fatalf("line %d = %q, want %s", i, lines[i], want)
		}
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, _, err := env.run(t, "", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== System ==")
	requireContains(t, out, "Data directory:")
	requireContains(t, out, "not imported yet")
	requireContains(t, out, "[INFO] Disabled")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes for non-tty output:\n%s", out)
	}

	env.importQuotes(t)
	out, _, err = env.run(t, "", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "3 quotes from 3 characters")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "short", limit: 10, want: "short"},
		{in: "line one\nline two", limit: 0, want: "line one line two"},
		{in: "General Kenobi", limit: 8, want: "General…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
