package corpus

import "testing"

func TestAdmitDropsEmptyTextAndExcludedKeywords(t *testing.T) {
	entries := []Entry{
		{ID: "a", Text: "Hello there", AudioURL: "https://static.example/Tracer_-_Hello_there.ogg"},
		{ID: "b", Text: " ?! ", AudioURL: "https://static.example/Tracer_-_Huh.ogg"},
		{ID: "c", Text: "Bonjour", AudioURL: "https://static.example/French_Tracer_-_Bonjour.ogg"},
		{ID: "d", Text: "Hammer down", AudioURL: ""},
	}

	admitted, rejected := Admit(entries, Filter{ExcludedKeywords: []string{"French", " ", "German"}})
	if len(admitted) != 2 || admitted[0].ID != "a" || admitted[1].ID != "d" {
		t.Fatalf("unexpected admitted entries: %+v", admitted)
	}
	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %+v", rejected)
	}
	if rejected[0].Entry.ID != "b" || rejected[0].Reason != ReasonEmptyText {
		t.Fatalf("unexpected first rejection: %+v", rejected[0])
	}
	if rejected[1].Entry.ID != "c" || rejected[1].Reason != ReasonExcludedKeyword || rejected[1].Keyword != "French" {
		t.Fatalf("unexpected second rejection: %+v", rejected[1])
	}
}

func TestAdmitWithoutFilterKeepsNonEmpty(t *testing.T) {
	admitted, rejected := Admit([]Entry{{ID: "x", Text: "ok"}}, Filter{})
	if len(admitted) != 1 || len(rejected) != 0 {
		t.Fatalf("unexpected result: %v %v", admitted, rejected)
	}
}

func TestEntryLabelAndLocator(t *testing.T) {
	e := Entry{ID: "Mercy3", Character: "Mercy", AudioURL: "https://x/y.ogg"}
	if e.Label() != "Mercy (Mercy3)" {
		t.Fatalf("Label = %q", e.Label())
	}
	if e.AudioLocator() != "https://x/y.ogg" {
		t.Fatalf("AudioLocator = %q", e.AudioLocator())
	}
	e.AudioPath = "data/audios/Mercy3.mp3"
	if e.AudioLocator() != "data/audios/Mercy3.mp3" {
		t.Fatalf("AudioLocator should prefer path, got %q", e.AudioLocator())
	}
	if (Entry{ID: "n"}).Label() != "n" {
		t.Fatal("expected bare id label without character")
	}
}
