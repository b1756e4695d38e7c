package textutil

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "Hello World",
			want:  []string{"hello", "world"},
		},
		{
			name:  "punctuation collapses",
			input: "Hello, World! How -- are you?",
			want:  []string{"hello", "world", "how", "are", "you"},
		},
		{
			name:  "keeps internal apostrophes",
			input: "It's okay!",
			want:  []string{"it's", "okay"},
		},
		{
			name:  "keeps edge apostrophes",
			input: "'Cause I'm rockin' out",
			want:  []string{"'cause", "i'm", "rockin'", "out"},
		},
		{
			name:  "lone apostrophe is a token",
			input: "Rock 'n' roll ' baby",
			want:  []string{"rock", "'n'", "roll", "'", "baby"},
		},
		{
			name:  "digits kept",
			input: "Route 66, take 2",
			want:  []string{"route", "66", "take", "2"},
		},
		{
			name:  "non ascii letters split",
			input: "Lúcioball time",
			want:  []string{"l", "cioball", "time"},
		},
		{
			name:  "line breaks",
			input: "first line\nsecond\tline",
			want:  []string{"first", "line", "second", "line"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only punctuation",
			input: "?!... --",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"Don't stop me now!", "  Heroes never die. ", "I'm on fire -- 100%"}
	for _, input := range inputs {
		first := Normalize(input)
		second := Normalize(Join(first))
		if !slices.Equal(first, second) {
			t.Fatalf("normalize not idempotent for %q: %q vs %q", input, first, second)
		}
	}
}

func TestMatchKeyFoldsApostrophes(t *testing.T) {
	if MatchKey("it's") != MatchKey("its") {
		t.Fatalf("expected it's and its to share a match key")
	}
	if MatchKey("okay") != "okay" {
		t.Fatalf("unexpected key for plain token: %q", MatchKey("okay"))
	}
	keys := MatchKeys([]string{"don't", "stop"})
	if !slices.Equal(keys, []string{"dont", "stop"}) {
		t.Fatalf("MatchKeys = %q", keys)
	}
	if MatchKey("'cause") != MatchKey("cause") || MatchKey("rockin'") != "rockin" {
		t.Fatalf("edge apostrophes should fold: %q %q", MatchKey("'cause"), MatchKey("rockin'"))
	}
	if got := MatchKey("'"); got != "'" {
		t.Fatalf("MatchKey(\"'\") = %q, want the apostrophe itself", got)
	}
	if MatchKey("''") == MatchKey("'") {
		t.Fatalf("apostrophe-only tokens should keep distinct keys")
	}
}
