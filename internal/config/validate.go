package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatcher(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateCompose(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Corpus.Database) == "" {
		return errors.New("corpus.database must be set")
	}
	return nil
}

func (c *Config) validateMatcher() error {
	switch c.Matcher.TieBreak {
	case "input", "random", "shortest":
	case "prefer":
		if len(c.Matcher.PreferIDs) == 0 {
			return errors.New("matcher.prefer_ids must list at least one quote id when matcher.tie_break is \"prefer\"")
		}
	default:
		return fmt.Errorf("matcher.tie_break %q must be one of input, random, shortest, prefer", c.Matcher.TieBreak)
	}
	if c.Matcher.Workers < 1 {
		return errors.New("matcher.workers must be positive")
	}
	return nil
}

func (c *Config) validateAlignment() error {
	if !c.Alignment.Enabled {
		return nil
	}
	if c.Alignment.FFmpegBinary == "" {
		return errors.New("alignment.ffmpeg_binary must be set when alignment.enabled is true")
	}
	if c.Alignment.UVXBinary == "" {
		return errors.New("alignment.uvx_binary must be set when alignment.enabled is true")
	}
	return nil
}

func (c *Config) validateCompose() error {
	if c.Compose.PaddingMS < 0 {
		return errors.New("compose.padding_ms must be >= 0")
	}
	if c.Compose.AccompanimentGainDB > 0 {
		return errors.New("compose.accompaniment_gain_db must be <= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
