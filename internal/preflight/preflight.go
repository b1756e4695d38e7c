package preflight

import (
	"context"

	"quotemash/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Alignment binaries are only checked when alignment is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Audio directory", cfg.Paths.AudioDir),
	}
	if cfg.Alignment.Enabled {
		results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	}
	results = append(results, CheckCorpus(ctx, cfg.Corpus.Database))

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if result.Passed && result.Detail == "" {
			result.Detail = status.Command
		}
		results = append(results, result)
	}
	return results
}
