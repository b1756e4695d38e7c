package matcher

import (
	"quotemash/internal/corpus"
	"quotemash/internal/textutil"
)

// Assemble materializes the chain starting at start into a Window. Segments
// are copied from the normalized target tokens, so concatenating them
// reproduces the covered span exactly.
func Assemble(target []string, entries []corpus.Entry, chains Chains, start int) Window {
	links := chains.Links(start)
	window := Window{
		Start:    start,
		End:      chains[start].Reach,
		Segments: len(links),
		Matches:  make([]Match, len(links)),
	}
	for i, link := range links {
		window.Matches[i] = Match{
			Entry:   entries[link.Entry],
			Segment: textutil.Join(target[link.Start:link.End()]),
			Start:   link.Start,
			End:     link.End(),
		}
	}
	return window
}
