// Package services defines shared utilities consumed by the mashup pipeline
// and its external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and stage names for logging.
//   - Structured error markers plus the Wrap helper, and ExitCode which
//     turns a marked failure into the CLI's process status.
//
// Use these helpers when wiring new pipeline steps so error handling and
// observability stay uniform.
package services
