package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"quotemash/internal/config"
	"quotemash/internal/corpus"
	"quotemash/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCorpus opens the quote database and reports how many quotes it holds.
// A missing database fails without creating one.
func CheckCorpus(ctx context.Context, path string) Result {
	const name = "Corpus"
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not imported yet; run 'quotemash corpus import')", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	store, err := corpus.Open(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if stats.Total == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: empty)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d quotes from %d characters", stats.Total, len(stats.Characters))}
}

// CheckSystemDeps evaluates the binaries the alignment pipeline shells out to.
// Both the status command and the plan command use this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	if cfg == nil || !cfg.Alignment.Enabled {
		return nil
	}
	return deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Alignment.FFmpegBinary,
			Description: "Required to extract 16 kHz audio for alignment",
		},
		{
			Name:        "uvx",
			Command:     cfg.Alignment.UVXBinary,
			Description: "Required for WhisperX forced alignment",
		},
	})
}
