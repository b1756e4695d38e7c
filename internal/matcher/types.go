package matcher

import (
	"strings"

	"quotemash/internal/corpus"
)

// Candidate is a literal run of target tokens [Start, Start+Length) that
// also occurs inside the corpus entry at index Entry.
type Candidate struct {
	Start  int
	Length int
	Entry  int
}

// End returns the exclusive end of the run.
func (c Candidate) End() int {
	return c.Start + c.Length
}

// Match is one link of the winning chain: the corpus entry chosen to voice a
// segment of the target and the segment itself.
type Match struct {
	Entry corpus.Entry `json:"entry"`
	// Segment is the target tokens this entry covers, joined by single spaces.
	Segment string `json:"segment"`
	// Start and End delimit the segment in target token positions.
	Start int `json:"start"`
	End   int `json:"end"`
}

// Window is the engine's result: a contiguous span of target tokens and the
// ordered matches that cover it.
type Window struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Segments int     `json:"segments"`
	Matches  []Match `json:"matches"`
}

// Coverage returns the number of target tokens covered.
func (w Window) Coverage() int {
	return w.End - w.Start
}

// Text returns the covered target text.
func (w Window) Text() string {
	parts := make([]string, len(w.Matches))
	for i, m := range w.Matches {
		parts[i] = m.Segment
	}
	return strings.Join(parts, " ")
}

// SegmentTexts lists each match's segment text in order.
func (w Window) SegmentTexts() []string {
	out := make([]string, len(w.Matches))
	for i, m := range w.Matches {
		out[i] = m.Segment
	}
	return out
}
