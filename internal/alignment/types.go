package alignment

import (
	"context"
	"encoding/json"
	"time"
)

// Word is one aligned transcript word. Times are seconds from the start of
// the audio.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Interval is a time range inside one audio file.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns End - Start, never negative.
func (i Interval) Duration() time.Duration {
	if i.End < i.Start {
		return 0
	}
	return i.End - i.Start
}

// IsZero reports whether the interval is unset.
func (i Interval) IsZero() bool {
	return i.Start == 0 && i.End == 0
}

type intervalJSON struct {
	StartMS int64 `json:"start_ms"`
	EndMS   int64 `json:"end_ms"`
}

// MarshalJSON encodes the interval in whole milliseconds.
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{StartMS: i.Start.Milliseconds(), EndMS: i.End.Milliseconds()})
}

// UnmarshalJSON decodes the millisecond form written by MarshalJSON.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var raw intervalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Start = time.Duration(raw.StartMS) * time.Millisecond
	i.End = time.Duration(raw.EndMS) * time.Millisecond
	return nil
}

// Aligner force-aligns transcript against the audio at audioPath.
type Aligner interface {
	AlignWords(ctx context.Context, audioPath, transcript string) ([]Word, error)
}

// AlignerFunc adapts a function to the Aligner interface.
type AlignerFunc func(ctx context.Context, audioPath, transcript string) ([]Word, error)

// AlignWords implements Aligner.
func (f AlignerFunc) AlignWords(ctx context.Context, audioPath, transcript string) ([]Word, error) {
	return f(ctx, audioPath, transcript)
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}
