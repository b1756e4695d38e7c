package mashup

import (
	"quotemash/internal/alignment"
	"quotemash/internal/corpus"
)

// Request is the input to Planner.Plan.
type Request struct {
	// Lyrics is the full target text.
	Lyrics string
	// VocalsPath is the separated vocal track of the song. Empty skips
	// lyric-side alignment.
	VocalsPath string
}

// Segment is one quote placed over one stretch of the lyrics.
type Segment struct {
	Index int          `json:"index"`
	Entry corpus.Entry `json:"entry"`
	Text  string       `json:"text"`
	// TokenStart and TokenEnd delimit the segment in lyric token positions.
	TokenStart int `json:"token_start"`
	TokenEnd   int `json:"token_end"`
	// QuoteInterval is where Text is spoken in the quote audio.
	QuoteInterval alignment.Interval `json:"quote_interval"`
	// LyricInterval is where Text is sung in the vocal track.
	LyricInterval alignment.Interval `json:"lyric_interval"`
	// Offset is LyricInterval.Start relative to the plan window.
	Offset int64 `json:"offset_ms"`
	// Stretch is the quote duration over the lyric duration. Values above 1
	// mean the quote must be sped up.
	Stretch float64 `json:"stretch,omitempty"`
	// Error is set when the quote segment could not be aligned.
	Error string `json:"error,omitempty"`
}

// Aligned reports whether both sides of the segment have a time range.
func (s Segment) Aligned() bool {
	return s.Error == "" && !s.QuoteInterval.IsZero() && !s.LyricInterval.IsZero()
}

// Plan is everything the audio compositor needs to render the mashup.
type Plan struct {
	RunID string `json:"run_id"`
	// Text is the covered stretch of the lyrics.
	Text         string `json:"text"`
	TargetTokens int    `json:"target_tokens"`
	TokenStart   int    `json:"token_start"`
	TokenEnd     int    `json:"token_end"`
	VocalsPath   string `json:"vocals_path,omitempty"`
	// Window is the padded range of the song to keep, from WindowStart to
	// WindowEnd. Zero when no vocal track was aligned.
	Window              alignment.Interval `json:"window"`
	AccompanimentGainDB float64            `json:"accompaniment_gain_db"`
	Segments            []Segment          `json:"segments"`
}

// Failed returns the segments whose quote could not be aligned.
func (p Plan) Failed() []Segment {
	var out []Segment
	for _, seg := range p.Segments {
		if seg.Error != "" {
			out = append(out, seg)
		}
	}
	return out
}
