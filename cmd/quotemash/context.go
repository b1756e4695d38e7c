package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"quotemash/internal/alignment"
	"quotemash/internal/config"
	"quotemash/internal/corpus"
	"quotemash/internal/logging"
	"quotemash/internal/mashup"
	"quotemash/internal/matcher"
	"quotemash/internal/services"
)

// alignerFactory builds the alignment service. Tests replace it to avoid
// shelling out to WhisperX.
var alignerFactory = func(cfg *config.Config) alignment.Aligner {
	return alignment.NewWhisperX(alignment.Config{
		Language:     cfg.Alignment.Language,
		CUDAEnabled:  cfg.Alignment.CUDAEnabled,
		AlignModel:   cfg.Alignment.AlignModel,
		FFmpegBinary: cfg.Alignment.FFmpegBinary,
		UVXBinary:    cfg.Alignment.UVXBinary,
		WorkDir:      cfg.Paths.WorkDir,
	})
}

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// baseLogger returns the configured logger. Construction failures fall back
// to a no-op logger.
func (c *commandContext) baseLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) loggerFor(component string) *slog.Logger {
	return logging.NewComponentLogger(c.baseLogger(), component)
}

func (c *commandContext) openStore() (*corpus.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := corpus.Open(cfg.Corpus.Database)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	return store, nil
}

// matchFlags override the [matcher] section for one invocation.
type matchFlags struct {
	tieBreak string
	seed     int64
	prefer   []string
}

func (f *matchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tieBreak, "tie-break", "", "Tie-break strategy: input, random, shortest, prefer")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Seed for the random tie-break strategy")
	cmd.Flags().StringSliceVar(&f.prefer, "prefer", nil, "Quote ids to try first (implies --tie-break prefer)")
}

func (f *matchFlags) engine(cmd *cobra.Command, cfg *config.Config) (*matcher.Engine, error) {
	name := cfg.Matcher.TieBreak
	seed := cfg.Matcher.Seed
	prefer := cfg.Matcher.PreferIDs
	if cmd.Flags().Changed("prefer") {
		prefer = f.prefer
		name = matcher.TieBreakPrefer
	}
	if cmd.Flags().Changed("tie-break") {
		name = f.tieBreak
	}
	if cmd.Flags().Changed("seed") {
		seed = f.seed
	}
	tieBreak, err := matcher.ParseTieBreaker(name, seed, prefer)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "match", "tie-break", "", err)
	}
	return matcher.New(matcher.Options{TieBreaker: tieBreak, Workers: cfg.Matcher.Workers}), nil
}

func (c *commandContext) planner(cmd *cobra.Command, flags *matchFlags, provider corpus.Provider) (*mashup.Planner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	engine, err := flags.engine(cmd, cfg)
	if err != nil {
		return nil, err
	}
	planner := &mashup.Planner{
		Provider:            provider,
		Engine:              engine,
		Filter:              corpus.Filter{ExcludedKeywords: cfg.Corpus.ExcludedKeywords},
		Logger:              c.baseLogger(),
		ResolveAudio:        cfg.ResolveAudio,
		PaddingMS:           cfg.Compose.PaddingMS,
		AccompanimentGainDB: cfg.Compose.AccompanimentGainDB,
	}
	if cfg.Alignment.Enabled {
		planner.Aligner = alignerFactory(cfg)
	}
	return planner, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
