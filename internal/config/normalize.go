package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCorpus(); err != nil {
		return err
	}
	c.normalizeMatcher()
	c.normalizeAlignment()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		if value, ok := os.LookupEnv(defaultDataDirEnv); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		} else {
			c.Paths.DataDir = defaultDataDir
		}
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandOrDerive(c.Paths.LogDir, c.Paths.DataDir, defaultLogDirName); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.AudioDir, err = expandOrDerive(c.Paths.AudioDir, c.Paths.DataDir, defaultAudioDirName); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandOrDerive(c.Paths.WorkDir, c.Paths.DataDir, defaultWorkDirName); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCorpus() error {
	var err error
	if c.Corpus.Database, err = expandOrDerive(c.Corpus.Database, c.Paths.DataDir, defaultDatabaseName); err != nil {
		return fmt.Errorf("corpus.database: %w", err)
	}
	keywords := make([]string, 0, len(c.Corpus.ExcludedKeywords))
	seen := make(map[string]struct{}, len(c.Corpus.ExcludedKeywords))
	for _, keyword := range c.Corpus.ExcludedKeywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		key := strings.ToLower(keyword)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, keyword)
	}
	c.Corpus.ExcludedKeywords = keywords
	return nil
}

func (c *Config) normalizeMatcher() {
	c.Matcher.TieBreak = strings.ToLower(strings.TrimSpace(c.Matcher.TieBreak))
	if c.Matcher.TieBreak == "" {
		c.Matcher.TieBreak = defaultTieBreak
	}
	ids := c.Matcher.PreferIDs[:0:0]
	for _, id := range c.Matcher.PreferIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	c.Matcher.PreferIDs = ids
	if c.Matcher.Workers == 0 {
		c.Matcher.Workers = defaultMatcherWorkers
	}
}

func (c *Config) normalizeAlignment() {
	c.Alignment.Language = strings.ToLower(strings.TrimSpace(c.Alignment.Language))
	if c.Alignment.Language == "" {
		c.Alignment.Language = defaultAlignmentLanguage
	}
	c.Alignment.AlignModel = strings.TrimSpace(c.Alignment.AlignModel)
	c.Alignment.FFmpegBinary = strings.TrimSpace(c.Alignment.FFmpegBinary)
	if c.Alignment.FFmpegBinary == "" {
		c.Alignment.FFmpegBinary = defaultFFmpegBinary
	}
	c.Alignment.UVXBinary = strings.TrimSpace(c.Alignment.UVXBinary)
	if c.Alignment.UVXBinary == "" {
		c.Alignment.UVXBinary = defaultUVXBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandOrDerive(value, base, name string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return filepath.Join(base, name), nil
	}
	return expandPath(strings.TrimSpace(value))
}
