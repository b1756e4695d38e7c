package alignment

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"quotemash/internal/corpus"
	"quotemash/internal/textutil"
)

// ErrSpanNotFound reports that a segment's words do not occur in the aligned
// transcript.
var ErrSpanNotFound = errors.New("segment not found in aligned words")

// tokenIndex flattens aligned words into match keys, remembering which word
// each key came from. A word may normalize to several keys ("rock-n-roll")
// or to none ("--").
type tokenIndex struct {
	keys   []string
	owners []int
}

func indexWords(words []Word) tokenIndex {
	var idx tokenIndex
	for i, word := range words {
		for _, key := range textutil.MatchKeys(textutil.Normalize(word.Text)) {
			idx.keys = append(idx.keys, key)
			idx.owners = append(idx.owners, i)
		}
	}
	return idx
}

// find returns the token range [lo, hi) of the first occurrence of keys at
// or after token from.
func (idx tokenIndex) find(keys []string, from int) (int, int, bool) {
	if len(keys) == 0 || from < 0 {
		return 0, 0, false
	}
	for lo := from; lo+len(keys) <= len(idx.keys); lo++ {
		if slices.Equal(idx.keys[lo:lo+len(keys)], keys) {
			return lo, lo + len(keys), true
		}
	}
	return 0, 0, false
}

// span converts the token range [lo, hi) into the first word it touches and
// the number of words it covers.
func (idx tokenIndex) span(lo, hi int) (start, count int) {
	first, last := idx.owners[lo], idx.owners[hi-1]
	return first, last - first + 1
}

// FindSpan locates substring inside the aligned words and returns the index
// of its first word and how many words it spans. Both sides go through the
// same normalization as matching, so case, punctuation, and apostrophes do
// not matter.
func FindSpan(substring string, words []Word) (start, count int, ok bool) {
	idx := indexWords(words)
	lo, hi, found := idx.find(textutil.MatchKeys(textutil.Normalize(substring)), 0)
	if !found {
		return 0, 0, false
	}
	start, count = idx.span(lo, hi)
	return start, count, true
}

// spanInterval is the audio time from the first to the last of count words.
func spanInterval(words []Word, start, count int) Interval {
	return Interval{Start: seconds(words[start].Start), End: seconds(words[start+count-1].End)}
}

// QuoteInterval aligns the entry's full text against its audio and returns
// the time range where substring is spoken.
func QuoteInterval(ctx context.Context, aligner Aligner, entry corpus.Entry, substring string) (Interval, error) {
	words, err := aligner.AlignWords(ctx, entry.AudioLocator(), entry.Text)
	if err != nil {
		return Interval{}, err
	}
	return intervalIn(words, substring)
}

func intervalIn(words []Word, substring string) (Interval, error) {
	start, count, ok := FindSpan(substring, words)
	if !ok {
		return Interval{}, fmt.Errorf("%w: %q", ErrSpanNotFound, substring)
	}
	return spanInterval(words, start, count), nil
}
