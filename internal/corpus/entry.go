package corpus

import (
	"context"
	"strings"
)

// Entry is a single quotation with its audio locator. The JSON layout matches
// the quotes cache written by the corpus scraper.
type Entry struct {
	ID               string `json:"id"`
	Character        string `json:"character"`
	CharacterPicture string `json:"character_picture"`
	Text             string `json:"text"`
	AudioURL         string `json:"audio_url"`
	AudioPath        string `json:"audio_path"`
}

// Label returns a short human-readable name for the entry.
func (e Entry) Label() string {
	character := strings.TrimSpace(e.Character)
	if character == "" {
		return e.ID
	}
	return character + " (" + e.ID + ")"
}

// AudioLocator returns the local audio path when present, falling back to the
// remote URL.
func (e Entry) AudioLocator() string {
	if path := strings.TrimSpace(e.AudioPath); path != "" {
		return path
	}
	return strings.TrimSpace(e.AudioURL)
}

// Provider supplies corpus entries for a matching run.
type Provider interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]Entry, error)

// Entries implements Provider.
func (f ProviderFunc) Entries(ctx context.Context) ([]Entry, error) {
	return f(ctx)
}

// Static is a Provider over a fixed slice.
type Static []Entry

// Entries implements Provider. The returned slice is a copy.
func (s Static) Entries(context.Context) ([]Entry, error) {
	out := make([]Entry, len(s))
	copy(out, s)
	return out, nil
}
