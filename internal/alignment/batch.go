package alignment

import (
	"context"
	"fmt"

	"quotemash/internal/matcher"
	"quotemash/internal/textutil"
)

// MatchAlignment is the quote-side time range of one matched segment. Err is
// set when that segment could not be aligned; other segments are unaffected.
type MatchAlignment struct {
	Match    matcher.Match
	Interval Interval
	Err      error
}

// AlignMatches aligns every match against its quote audio. Each distinct
// (audio, text) pair is aligned once even when several matches cut from the
// same quote. Context cancellation stops further alignment and is reported
// on the remaining matches.
func AlignMatches(ctx context.Context, aligner Aligner, matches []matcher.Match) []MatchAlignment {
	type cached struct {
		words []Word
		err   error
	}
	cache := make(map[[2]string]cached)

	out := make([]MatchAlignment, len(matches))
	for i, m := range matches {
		out[i].Match = m
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		key := [2]string{m.Entry.AudioLocator(), m.Entry.Text}
		hit, ok := cache[key]
		if !ok {
			hit.words, hit.err = aligner.AlignWords(ctx, key[0], key[1])
			cache[key] = hit
		}
		if hit.err != nil {
			out[i].Err = hit.err
			continue
		}
		out[i].Interval, out[i].Err = intervalIn(hit.words, m.Segment)
	}
	return out
}

// SequenceIntervals aligns fullText against audioPath once and returns the
// time range of each segment in order. Each search resumes after the
// previous hit, so repeated lines resolve to successive occurrences.
//
// fromToken is a position in the normalized full text. It is used as a
// position in the aligned words as well, which only holds while the aligner
// returns one word per transcript word. The cursor is clamped to the aligned
// tokens, and when the first segment is not found from there the search
// restarts at the beginning.
func SequenceIntervals(ctx context.Context, aligner Aligner, audioPath, fullText string, segments []string, fromToken int) ([]Interval, error) {
	words, err := aligner.AlignWords(ctx, audioPath, fullText)
	if err != nil {
		return nil, err
	}
	idx := indexWords(words)

	out := make([]Interval, len(segments))
	cursor := min(max(fromToken, 0), len(idx.keys))
	for i, segment := range segments {
		keys := textutil.MatchKeys(textutil.Normalize(segment))
		lo, hi, ok := idx.find(keys, cursor)
		if !ok && i == 0 && cursor > 0 {
			lo, hi, ok = idx.find(keys, 0)
		}
		if !ok {
			return nil, fmt.Errorf("sequence intervals: segment %d: %w: %q", i, ErrSpanNotFound, segment)
		}
		start, count := idx.span(lo, hi)
		out[i] = spanInterval(words, start, count)
		cursor = hi
	}
	return out, nil
}
