// Package logging assembles structured slog loggers used across quotemash.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context helpers that tag lines with the run ID and pipeline stage. NewNop
// gives tests and optional wiring a logger that cannot fail.
package logging
