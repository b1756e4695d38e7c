// Package config loads, normalizes, and validates quotemash configuration.
//
// Configuration is TOML. Load applies repository defaults, decodes the file
// when present, expands ~ paths, derives directories from paths.data_dir,
// and validates the result. CreateSample writes the embedded sample file for
// `quotemash config init`.
package config
