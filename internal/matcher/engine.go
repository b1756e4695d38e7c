package matcher

import (
	"slices"

	"quotemash/internal/corpus"
	"quotemash/internal/textutil"
)

// Options configures an Engine.
type Options struct {
	// TieBreaker resolves equally good options. Nil means InputOrder.
	TieBreaker TieBreaker
	// Workers parallelizes candidate discovery across target positions.
	// Values below 2 run single-threaded.
	Workers int
}

// Engine runs the matching passes. It holds no per-run state.
type Engine struct {
	tieBreak TieBreaker
	workers  int
}

// New constructs an Engine.
func New(opts Options) *Engine {
	tb := opts.TieBreaker
	if tb == nil {
		tb = InputOrder{}
	}
	return &Engine{tieBreak: tb, workers: opts.Workers}
}

// Match finds the longest window of target that corpus entries can cover and
// returns it with the fewest-segment chain covering it. The boolean is false
// when target and corpus share no token (including empty target or corpus).
// entries is not modified; callers are expected to have dropped entries with
// empty text (see corpus.Admit).
func (e *Engine) Match(target string, entries []corpus.Entry) (Window, bool) {
	tokens := textutil.Normalize(target)
	if len(tokens) == 0 || len(entries) == 0 {
		return Window{}, false
	}

	arranged := slices.Clone(entries)
	e.tieBreak.ArrangeEntries(arranged)

	candidates := FindCandidates(tokens, arranged, e.workers)
	chains := BuildChains(len(tokens), candidates, e.tieBreak)
	start, ok := SelectWindow(chains)
	if !ok {
		return Window{}, false
	}
	return Assemble(tokens, arranged, chains, start), true
}
