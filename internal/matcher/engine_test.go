package matcher

import (
	"slices"
	"testing"

	"quotemash/internal/corpus"
	"quotemash/internal/textutil"
)

func entry(id, text string) corpus.Entry {
	return corpus.Entry{ID: id, Character: "Tester", Text: text, AudioPath: "audios/" + id + ".mp3"}
}

type wantMatch struct {
	id      string
	segment string
}

func assertMatches(t *testing.T, window Window, want []wantMatch) {
	t.Helper()
	if len(window.Matches) != len(want) {
		t.Fatalf("expected %d matches, got %d: %+v", len(want), len(window.Matches), window.Matches)
	}
	for i, w := range want {
		got := window.Matches[i]
		if got.Entry.ID != w.id || got.Segment != w.segment {
			t.Fatalf("match %d: got (%s, %q) want (%s, %q)", i, got.Entry.ID, got.Segment, w.id, w.segment)
		}
	}
}

func TestMatchSingleWordOverlap(t *testing.T) {
	engine := New(Options{})
	window, ok := engine.Match("hello world", []corpus.Entry{entry("1", "hello")})
	if !ok {
		t.Fatal("expected coverage")
	}
	if window.Start != 0 || window.End != 1 || window.Segments != 1 {
		t.Fatalf("unexpected window: %+v", window)
	}
	assertMatches(t, window, []wantMatch{{"1", "hello"}})
}

func TestMatchMultiSegmentChain(t *testing.T) {
	engine := New(Options{})
	window, ok := engine.Match("good morning friend", []corpus.Entry{
		entry("1", "good morning"),
		entry("2", "friend of mine"),
	})
	if !ok {
		t.Fatal("expected coverage")
	}
	if window.Start != 0 || window.End != 3 {
		t.Fatalf("expected window [0,3), got [%d,%d)", window.Start, window.End)
	}
	assertMatches(t, window, []wantMatch{{"1", "good morning"}, {"2", "friend"}})
	if window.Text() != "good morning friend" {
		t.Fatalf("unexpected window text %q", window.Text())
	}
}

func TestMatchIgnoresCaseAndPunctuation(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		quote   string
		segment string
	}{
		{"apostrophe in target", "It's okay!", "its okay", "it's okay"},
		{"apostrophe in quote", "ITS, okay.", "It's okay!", "its okay"},
		{"same form", "It's OKAY", "it's okay?", "it's okay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok := New(Options{}).Match(tt.target, []corpus.Entry{entry("q", tt.quote)})
			if !ok {
				t.Fatal("expected coverage")
			}
			if window.Coverage() != 2 {
				t.Fatalf("expected both tokens covered, got %+v", window)
			}
			assertMatches(t, window, []wantMatch{{"q", tt.segment}})
		})
	}
}

func TestMatchEdgeApostrophes(t *testing.T) {
	t.Run("lone apostrophe splits the window", func(t *testing.T) {
		window, ok := New(Options{}).Match("hello ' world", []corpus.Entry{entry("1", "hello world")})
		if !ok {
			t.Fatal("expected coverage")
		}
		if window.Start != 0 || window.End != 1 {
			t.Fatalf("expected window [0,1), got [%d,%d)", window.Start, window.End)
		}
		assertMatches(t, window, []wantMatch{{"1", "hello"}})
	})

	t.Run("segment keeps target apostrophes", func(t *testing.T) {
		window, ok := New(Options{}).Match("rock 'n' roll", []corpus.Entry{entry("1", "rock n roll")})
		if !ok {
			t.Fatal("expected coverage")
		}
		if window.Coverage() != 3 {
			t.Fatalf("expected three tokens covered, got %+v", window)
		}
		assertMatches(t, window, []wantMatch{{"1", "rock 'n' roll"}})
	})

	t.Run("lone apostrophe matches only itself", func(t *testing.T) {
		window, ok := New(Options{}).Match("oh ' yeah", []corpus.Entry{entry("1", "oh ' yeah")})
		if !ok {
			t.Fatal("expected coverage")
		}
		assertMatches(t, window, []wantMatch{{"1", "oh ' yeah"}})
	})
}

func TestMatchNoCoverage(t *testing.T) {
	engine := New(Options{})
	tests := []struct {
		name    string
		target  string
		entries []corpus.Entry
	}{
		{"no shared token", "xyzzy plugh", []corpus.Entry{entry("1", "hello there"), entry("2", "magic words")}},
		{"empty target", "", []corpus.Entry{entry("1", "hello")}},
		{"punctuation only target", "?!", []corpus.Entry{entry("1", "hello")}},
		{"empty corpus", "hello world", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if window, ok := engine.Match(tt.target, tt.entries); ok {
				t.Fatalf("expected no coverage, got %+v", window)
			}
		})
	}
}

func TestMatchPrefersFewerSegmentsOnEqualCoverage(t *testing.T) {
	window, ok := New(Options{}).Match("we are the champions", []corpus.Entry{
		entry("we", "we"),
		entry("are", "are the"),
		entry("champ", "champions"),
		entry("full", "and we are the champions my friend"),
	})
	if !ok {
		t.Fatal("expected coverage")
	}
	if window.Coverage() != 4 || window.Segments != 1 {
		t.Fatalf("expected a single segment over four tokens, got %+v", window)
	}
	assertMatches(t, window, []wantMatch{{"full", "we are the champions"}})
}

func TestMatchPicksLongestWindow(t *testing.T) {
	// Two islands of coverage: "one two" and "four five six". The longer wins
	// even though it needs more segments.
	window, ok := New(Options{}).Match("one two three four five six", []corpus.Entry{
		entry("a", "one two"),
		entry("b", "four"),
		entry("c", "five six"),
	})
	if !ok {
		t.Fatal("expected coverage")
	}
	if window.Start != 3 || window.End != 6 || window.Segments != 2 {
		t.Fatalf("unexpected window: %+v", window)
	}
	assertMatches(t, window, []wantMatch{{"b", "four"}, {"c", "five six"}})
}

func TestMatchDoesNotModifyEntries(t *testing.T) {
	entries := []corpus.Entry{entry("1", "b c"), entry("2", "a b"), entry("3", "c")}
	before := slices.Clone(entries)
	engine := New(Options{TieBreaker: NewRandom(7)})
	if _, ok := engine.Match("a b c", entries); !ok {
		t.Fatal("expected coverage")
	}
	if !slices.Equal(entries, before) {
		t.Fatalf("entries were reordered: %+v", entries)
	}
}

func TestMatchTieBreakStrategies(t *testing.T) {
	entries := []corpus.Entry{
		entry("long", "well hello there general"),
		entry("short", "hello there"),
	}
	tests := []struct {
		name string
		tb   TieBreaker
		want string
	}{
		{"input order", InputOrder{}, "long"},
		{"shortest entry", ShortestEntry{}, "short"},
		{"preferred entry", PreferEntries{IDs: []string{"short"}}, "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok := New(Options{TieBreaker: tt.tb}).Match("hello there", entries)
			if !ok {
				t.Fatal("expected coverage")
			}
			assertMatches(t, window, []wantMatch{{tt.want, "hello there"}})
		})
	}
}

func TestMatchSeededRandomIsReproducible(t *testing.T) {
	entries := []corpus.Entry{
		entry("a", "hello there"),
		entry("b", "hello there friend"),
		entry("c", "oh hello there"),
		entry("d", "there you are"),
		entry("e", "you are"),
	}
	target := "hello there you are"
	first, ok := New(Options{TieBreaker: NewRandom(1234)}).Match(target, entries)
	if !ok {
		t.Fatal("expected coverage")
	}
	for i := 0; i < 5; i++ {
		again, ok := New(Options{TieBreaker: NewRandom(1234)}).Match(target, entries)
		if !ok {
			t.Fatal("expected coverage")
		}
		if !slices.EqualFunc(first.Matches, again.Matches, func(a, b Match) bool {
			return a.Entry.ID == b.Entry.ID && a.Segment == b.Segment && a.Start == b.Start
		}) {
			t.Fatalf("seeded runs diverged: %+v vs %+v", first.Matches, again.Matches)
		}
	}
	if first.Coverage() != 4 || first.Segments != 2 {
		t.Fatalf("unexpected window: %+v", first)
	}
}

func TestMatchParallelDiscoveryAgreesWithSequential(t *testing.T) {
	entries := []corpus.Entry{
		entry("1", "never gonna give you up"),
		entry("2", "never gonna let you down"),
		entry("3", "run around and desert you"),
		entry("4", "gonna make you cry"),
	}
	target := "Never gonna give you up, never gonna let you down, never gonna run around and desert you"
	seq, okSeq := New(Options{}).Match(target, entries)
	par, okPar := New(Options{Workers: 4}).Match(target, entries)
	if okSeq != okPar {
		t.Fatalf("coverage disagreement: %v vs %v", okSeq, okPar)
	}
	if seq.Start != par.Start || seq.End != par.End || seq.Segments != par.Segments {
		t.Fatalf("windows differ: %+v vs %+v", seq, par)
	}
	if seq.Text() != textutil.Join(textutil.Normalize(target)[seq.Start:seq.End]) {
		t.Fatalf("window text does not match target span: %q", seq.Text())
	}
}
