package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	AudioDir string `toml:"audio_dir"`
	WorkDir  string `toml:"work_dir"`
}

// Corpus contains configuration for the quote store and its admission filter.
type Corpus struct {
	Database string `toml:"database"`
	// ExcludedKeywords drops quotes whose audio URL mentions any of these
	// (case-sensitive). The defaults exclude non-English dubs.
	ExcludedKeywords []string `toml:"excluded_keywords"`
}

// Matcher contains configuration for the matching engine.
type Matcher struct {
	TieBreak  string   `toml:"tie_break"`
	Seed      int64    `toml:"seed"`
	PreferIDs []string `toml:"prefer_ids"`
	Workers   int      `toml:"workers"`
}

// Alignment contains configuration for WhisperX forced alignment.
type Alignment struct {
	Enabled      bool   `toml:"enabled"`
	Language     string `toml:"language"`
	CUDAEnabled  bool   `toml:"cuda_enabled"`
	AlignModel   string `toml:"align_model"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
	UVXBinary    string `toml:"uvx_binary"`
}

// Compose contains settings handed to the external audio compositor.
type Compose struct {
	PaddingMS           int     `toml:"padding_ms"`
	AccompanimentGainDB float64 `toml:"accompaniment_gain_db"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for quotemash.
//
// Configuration sections by subsystem:
//   - Paths: data, log, audio and scratch directories
//   - Corpus: quote database location and admission keywords
//   - Matcher: tie-break policy and candidate discovery parallelism
//   - Alignment: WhisperX forced alignment via uvx and ffmpeg
//   - Compose: padding and gain passed through to the compositor
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Corpus    Corpus    `toml:"corpus"`
	Matcher   Matcher   `toml:"matcher"`
	Alignment Alignment `toml:"alignment"`
	Compose   Compose   `toml:"compose"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("quotemash.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.AudioDir, c.Paths.WorkDir}
	if dir := filepath.Dir(c.Corpus.Database); dir != "" {
		dirs = append(dirs, dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ResolveAudio maps a quote's audio locator to something ffmpeg can open.
// Relative paths are resolved against paths.audio_dir; absolute paths and
// URLs are returned unchanged.
func (c *Config) ResolveAudio(locator string) string {
	locator = strings.TrimSpace(locator)
	if locator == "" || filepath.IsAbs(locator) || strings.Contains(locator, "://") {
		return locator
	}
	return filepath.Join(c.Paths.AudioDir, filepath.FromSlash(locator))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
