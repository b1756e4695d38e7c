package matcher

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"quotemash/internal/corpus"
	"quotemash/internal/textutil"
)

// Tie-break strategy names accepted by ParseTieBreaker.
const (
	TieBreakInput    = "input"
	TieBreakRandom   = "random"
	TieBreakShortest = "shortest"
	TieBreakPrefer   = "prefer"
)

// TieBreaker orders the options the engine scans so that the first of several
// equally good options wins. Implementations reorder in place.
type TieBreaker interface {
	// ArrangeEntries orders the corpus before candidate discovery. Candidates
	// at a position follow this order.
	ArrangeEntries(entries []corpus.Entry)
	// ArrangeCandidates orders the candidates starting at position before the
	// chain pass compares them.
	ArrangeCandidates(position int, candidates []Candidate)
}

// InputOrder keeps the provider's order everywhere.
type InputOrder struct{}

func (InputOrder) ArrangeEntries([]corpus.Entry) {}
func (InputOrder) ArrangeCandidates(int, []Candidate) {}

// Random shuffles entries and per-position candidates with a seeded source.
// Two Random values built from the same seed produce the same arrangement
// sequence. It is safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) ArrangeEntries(entries []corpus.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
}

func (r *Random) ArrangeCandidates(_ int, candidates []Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
}

// ShortestEntry prefers quotes with fewer words, keeping input order among
// equals. Short quotes tend to be cleaner clips to cut a segment from.
type ShortestEntry struct{}

func (ShortestEntry) ArrangeEntries(entries []corpus.Entry) {
	type sized struct {
		entry corpus.Entry
		words int
	}
	buf := make([]sized, len(entries))
	for i, e := range entries {
		buf[i] = sized{entry: e, words: len(textutil.Normalize(e.Text))}
	}
	slices.SortStableFunc(buf, func(a, b sized) int { return a.words - b.words })
	for i := range buf {
		entries[i] = buf[i].entry
	}
}

func (ShortestEntry) ArrangeCandidates(int, []Candidate) {}

// PreferEntries moves the listed entry IDs to the front in the listed order.
type PreferEntries struct {
	IDs []string
}

func (p PreferEntries) ArrangeEntries(entries []corpus.Entry) {
	rank := make(map[string]int, len(p.IDs))
	for i, id := range p.IDs {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}
	slices.SortStableFunc(entries, func(a, b corpus.Entry) int {
		ra, okA := rank[a.ID]
		rb, okB := rank[b.ID]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

func (PreferEntries) ArrangeCandidates(int, []Candidate) {}

// ParseTieBreaker builds a strategy by name. A zero seed for "random" seeds
// from the clock, which makes runs irreproducible on purpose.
func ParseTieBreaker(name string, seed int64, prefer []string) (TieBreaker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TieBreakInput:
		return InputOrder{}, nil
	case TieBreakRandom:
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandom(uint64(seed)), nil
	case TieBreakShortest:
		return ShortestEntry{}, nil
	case TieBreakPrefer:
		if len(prefer) == 0 {
			return nil, fmt.Errorf("tie-break %q requires at least one preferred entry id", TieBreakPrefer)
		}
		return PreferEntries{IDs: slices.Clone(prefer)}, nil
	default:
		return nil, fmt.Errorf("unknown tie-break strategy %q", name)
	}
}
