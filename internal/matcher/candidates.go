package matcher

import (
	"sync"

	"quotemash/internal/corpus"
	"quotemash/internal/textutil"
)

// indexedEntry is an entry's match keys plus the offsets of each key.
type indexedEntry struct {
	keys    []string
	offsets map[string][]int
}

func indexEntries(entries []corpus.Entry) []indexedEntry {
	out := make([]indexedEntry, len(entries))
	for i, entry := range entries {
		keys := textutil.MatchKeys(textutil.Normalize(entry.Text))
		offsets := make(map[string][]int, len(keys))
		for k, key := range keys {
			offsets[key] = append(offsets[key], k)
		}
		out[i] = indexedEntry{keys: keys, offsets: offsets}
	}
	return out
}

// FindCandidates returns, for every position of the normalized target, one
// Candidate per corpus entry holding the longest literal run that starts at
// that position and also appears contiguously inside the entry. Positions
// with no overlap get an empty slice. Candidates at a position follow entry
// order. Positions are split across workers goroutines when workers > 1;
// each position's slot is written by exactly one goroutine.
func FindCandidates(target []string, entries []corpus.Entry, workers int) [][]Candidate {
	keys := textutil.MatchKeys(target)
	indexed := indexEntries(entries)
	out := make([][]Candidate, len(keys))

	if workers <= 1 || len(keys) < 2 {
		for i := range keys {
			out[i] = candidatesAt(keys, i, indexed)
		}
		return out
	}

	if workers > len(keys) {
		workers = len(keys)
	}
	chunk := (len(keys) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(keys); lo += chunk {
		hi := min(lo+chunk, len(keys))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = candidatesAt(keys, i, indexed)
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

func candidatesAt(keys []string, i int, entries []indexedEntry) []Candidate {
	var found []Candidate
	for idx, entry := range entries {
		if length := longestRun(keys, i, entry); length > 0 {
			found = append(found, Candidate{Start: i, Length: length, Entry: idx})
		}
	}
	return found
}

// longestRun extends a run from every offset in the entry that matches
// keys[i] and keeps the longest. Which offset realized it is irrelevant
// because the reported segment is copied from the target.
func longestRun(keys []string, i int, entry indexedEntry) int {
	n, m := len(keys), len(entry.keys)
	best := 0
	for _, k := range entry.offsets[keys[i]] {
		length := 0
		for i+length < n && k+length < m && keys[i+length] == entry.keys[k+length] {
			length++
		}
		if length > best {
			best = length
		}
	}
	return best
}
