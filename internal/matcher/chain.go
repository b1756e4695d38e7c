package matcher

import "fmt"

// ChainState is the best gap-free chain starting at one target position.
type ChainState struct {
	// Reach is the exclusive end of the furthest coverage; Reach == position
	// means nothing can start here.
	Reach int
	// Segments is the fewest candidates achieving Reach.
	Segments int
	// Head is the first link of the chain, meaningful when Segments > 0. The
	// rest of the chain is the state at Head.End().
	Head Candidate
}

// Chains is the dynamic-programming table indexed by target position 0..n.
type Chains []ChainState

// BuildChains fills the table right to left. For each position it tries
// every candidate starting there, extends it with the already computed state
// at the candidate's end, and keeps the chain with the greatest reach, then
// the fewest segments. Among equal chains the first candidate in the order
// arranged by tb wins. candidates is not modified.
func BuildChains(n int, candidates [][]Candidate, tb TieBreaker) Chains {
	if len(candidates) != n {
		panic(fmt.Sprintf("matcher: %d candidate slots for %d positions", len(candidates), n))
	}
	if tb == nil {
		tb = InputOrder{}
	}

	chains := make(Chains, n+1)
	chains[n] = ChainState{Reach: n}
	var scratch []Candidate
	for k := n - 1; k >= 0; k-- {
		if len(candidates[k]) == 0 {
			chains[k] = ChainState{Reach: k}
			continue
		}
		scratch = append(scratch[:0], candidates[k]...)
		tb.ArrangeCandidates(k, scratch)

		best := ChainState{Reach: k}
		for _, c := range scratch {
			if c.Start != k || c.Length < 1 || c.End() > n {
				panic(fmt.Sprintf("matcher: candidate %+v invalid at position %d of %d", c, k, n))
			}
			next := chains[c.End()]
			reach, segments := next.Reach, next.Segments+1
			if best.Segments == 0 || reach > best.Reach || (reach == best.Reach && segments < best.Segments) {
				best = ChainState{Reach: reach, Segments: segments, Head: c}
			}
		}
		chains[k] = best
	}
	return chains
}

// Links returns the chain starting at position k as ordered candidates.
func (c Chains) Links(k int) []Candidate {
	if k < 0 || k >= len(c) {
		return nil
	}
	links := make([]Candidate, 0, c[k].Segments)
	for state := c[k]; state.Segments > 0; state = c[state.Head.End()] {
		links = append(links, state.Head)
	}
	return links
}

// Coverage returns the number of tokens the chain at k covers.
func (c Chains) Coverage(k int) int {
	if k < 0 || k >= len(c) {
		return 0
	}
	return c[k].Reach - k
}
