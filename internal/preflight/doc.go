// Package preflight provides readiness checks for the filesystem paths, the
// quote database, and the external binaries quotemash depends on.
//
// The CLI "quotemash status" command renders RunAll; "quotemash plan" runs
// CheckSystemDeps before aligning so a missing binary fails fast instead of
// once per quote.
package preflight
