package mashup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"quotemash/internal/alignment"
	"quotemash/internal/corpus"
	"quotemash/internal/logging"
	"quotemash/internal/matcher"
	"quotemash/internal/services"
	"quotemash/internal/textutil"
)

// ErrNoCoverage reports that no corpus quote shares a word sequence with the
// lyrics.
var ErrNoCoverage = fmt.Errorf("%w: no quote covers any part of the lyrics", services.ErrNotFound)

// Planner runs the matching and alignment stages for one set of lyrics.
type Planner struct {
	Provider corpus.Provider
	Engine   *matcher.Engine
	// Aligner is required by Plan. Match works without it.
	Aligner alignment.Aligner
	Filter  corpus.Filter
	Logger  *slog.Logger
	// ResolveAudio maps corpus audio locators to paths the aligner can read.
	// Nil passes locators through.
	ResolveAudio        func(locator string) string
	PaddingMS           int
	AccompanimentGainDB float64
}

// Match loads and admits the corpus and runs the engine over lyrics.
func (p *Planner) Match(ctx context.Context, lyrics string) (matcher.Window, error) {
	if p.Provider == nil {
		return matcher.Window{}, services.Wrap(services.ErrConfiguration, "match", "load corpus", "No corpus provider configured", nil)
	}
	logger := p.logger(ctx)

	entries, err := p.Provider.Entries(ctx)
	if err != nil {
		return matcher.Window{}, fmt.Errorf("load corpus: %w", err)
	}
	admitted, rejected := corpus.Admit(entries, p.Filter)
	if len(rejected) > 0 {
		logger.Debug("corpus entries rejected",
			logging.Int("rejected", len(rejected)),
			logging.Any("reasons", rejectionCounts(rejected)),
		)
	}

	engine := p.Engine
	if engine == nil {
		engine = matcher.New(matcher.Options{})
	}
	targetTokens := len(textutil.Normalize(lyrics))
	started := time.Now()
	window, ok := engine.Match(lyrics, admitted)
	if !ok {
		logger.Info("no coverage",
			logging.Int("target_tokens", targetTokens),
			logging.Int("corpus_entries", len(admitted)),
		)
		return matcher.Window{}, ErrNoCoverage
	}
	attrs := logging.CoverageAttrs(targetTokens, window.Coverage(), window.Segments)
	attrs = append(attrs,
		logging.String(logging.FieldEventType, "match_complete"),
		logging.Int("corpus_entries", len(admitted)),
		logging.Duration("elapsed", time.Since(started)),
	)
	logger.Info("match complete", logging.Args(attrs...)...)
	return window, nil
}

// Plan matches the lyrics, aligns every quote segment, and, when a vocal
// track is given, aligns the lyric segments in the song. Quote segments that
// fail to align are kept with their error; a lyric alignment failure fails
// the plan because the segments could not be placed.
func (p *Planner) Plan(ctx context.Context, req Request) (Plan, error) {
	if p.Aligner == nil {
		return Plan{}, services.Wrap(services.ErrConfiguration, "plan", "align", "Alignment is disabled", nil)
	}
	if strings.TrimSpace(req.Lyrics) == "" {
		return Plan{}, services.Wrap(services.ErrValidation, "plan", "read lyrics", "Lyrics are empty", nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)

	window, err := p.Match(services.WithStage(ctx, "match"), req.Lyrics)
	if err != nil {
		return Plan{}, err
	}

	alignCtx := services.WithStage(ctx, "align")
	logger := p.logger(alignCtx)
	aligner := p.aligner()

	plan := Plan{
		RunID:               runID,
		Text:                window.Text(),
		TargetTokens:        len(textutil.Normalize(req.Lyrics)),
		TokenStart:          window.Start,
		TokenEnd:            window.End,
		VocalsPath:          strings.TrimSpace(req.VocalsPath),
		AccompanimentGainDB: p.AccompanimentGainDB,
		Segments:            make([]Segment, len(window.Matches)),
	}

	for i, result := range alignment.AlignMatches(alignCtx, aligner, window.Matches) {
		seg := Segment{
			Index:         i,
			Entry:         result.Match.Entry,
			Text:          result.Match.Segment,
			TokenStart:    result.Match.Start,
			TokenEnd:      result.Match.End,
			QuoteInterval: result.Interval,
		}
		if result.Err != nil {
			seg.Error = result.Err.Error()
			attrs := logging.QuoteAttrs(result.Match.Entry.ID, result.Match.Entry.Character, result.Match.Segment)
			attrs = append(attrs,
				logging.String(logging.FieldErrorHint, "check that the quote audio exists and is readable"),
				logging.String(logging.FieldImpact, "segment will be left out of the mashup"),
				logging.Error(result.Err),
			)
			logging.WarnWithContext(logger, "quote alignment failed", "quote_alignment_failed", attrs...)
		}
		plan.Segments[i] = seg
	}
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	if plan.VocalsPath != "" {
		lyricIntervals, err := alignment.SequenceIntervals(alignCtx, p.Aligner, plan.VocalsPath, req.Lyrics, window.SegmentTexts(), window.Start)
		if err != nil {
			return Plan{}, fmt.Errorf("align lyrics: %w", err)
		}
		plan.Window = paddedWindow(lyricIntervals, time.Duration(p.PaddingMS)*time.Millisecond)
		for i := range plan.Segments {
			seg := &plan.Segments[i]
			seg.LyricInterval = lyricIntervals[i]
			seg.Offset = (seg.LyricInterval.Start - plan.Window.Start).Milliseconds()
			seg.Stretch = stretchRatio(seg.QuoteInterval, seg.LyricInterval)
		}
	}

	logger.Info("plan complete",
		logging.String(logging.FieldEventType, "plan_complete"),
		logging.Int("segments", len(plan.Segments)),
		logging.Int("failed_segments", len(plan.Failed())),
		logging.Bool("lyrics_aligned", plan.VocalsPath != ""),
	)
	return plan, nil
}

func (p *Planner) logger(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, logging.NewComponentLogger(p.Logger, "planner"))
}

func (p *Planner) aligner() alignment.Aligner {
	if p.ResolveAudio == nil {
		return p.Aligner
	}
	return alignment.AlignerFunc(func(ctx context.Context, audioPath, transcript string) ([]alignment.Word, error) {
		return p.Aligner.AlignWords(ctx, p.ResolveAudio(audioPath), transcript)
	})
}

// paddedWindow spans the first to last lyric interval, widened by padding on
// both sides and clamped at zero.
func paddedWindow(intervals []alignment.Interval, padding time.Duration) alignment.Interval {
	if len(intervals) == 0 {
		return alignment.Interval{}
	}
	start := intervals[0].Start - padding
	if start < 0 {
		start = 0
	}
	return alignment.Interval{Start: start, End: intervals[len(intervals)-1].End + padding}
}

func stretchRatio(quote, lyric alignment.Interval) float64 {
	if quote.Duration() <= 0 || lyric.Duration() <= 0 {
		return 0
	}
	return float64(quote.Duration()) / float64(lyric.Duration())
}

func rejectionCounts(rejected []corpus.Rejection) map[string]int {
	counts := make(map[string]int)
	for _, r := range rejected {
		counts[r.Reason]++
	}
	return counts
}
