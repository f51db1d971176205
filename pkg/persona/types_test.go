package persona

import "testing"

func TestMergeParamsKeepsExistingOnEmpty(t *testing.T) {
	state := State{
		Name:  "Ada",
		Role:  "mathematician",
		Other: "keeps a commonplace book",
	}
	merged := MergeParams(state, Params{
		Role: "research mentor",
		Tone: " warm, precise ",
	})

	if merged.Role != "research mentor" {
		t.Fatalf("expected extracted role to win, got %q", merged.Role)
	}
	if merged.Tone != "warm, precise" {
		t.Fatalf("expected trimmed tone, got %q", merged.Tone)
	}
	if merged.Name != "Ada" {
		t.Fatalf("expected name preserved, got %q", merged.Name)
	}
	if merged.Other != "keeps a commonplace book" {
		t.Fatalf("expected other preserved through empty extraction, got %q", merged.Other)
	}
}

func TestMergeParamsWhitespaceIsEmpty(t *testing.T) {
	state := State{Name: "Ada", Worldview: "curious optimism"}
	merged := MergeParams(state, Params{Worldview: "   "})
	if merged.Worldview != "curious optimism" {
		t.Fatalf("whitespace-only value must not overwrite, got %q", merged.Worldview)
	}
}

func TestDedupeSources(t *testing.T) {
	sources := []Source{
		{Title: " First ", URI: " https://a.example "},
		{Title: "Dup", URI: "https://a.example"},
		{Title: "NoURI", URI: "  "},
		{Title: "Second", URI: "https://b.example"},
	}
	out := DedupeSources(sources)
	if len(out) != 2 {
		t.Fatalf("expected 2 sources, got %d: %+v", len(out), out)
	}
	if out[0].URI != "https://a.example" || out[0].Title != "First" {
		t.Fatalf("unexpected first source: %+v", out[0])
	}
	if out[1].URI != "https://b.example" {
		t.Fatalf("unexpected second source: %+v", out[1])
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	orig := State{
		Name:    "Ada",
		Sources: []Source{{Title: "T", URI: "https://a.example"}},
		MBTI:    &MBTIProfile{Type: "INTJ"},
	}
	clone := orig.Clone()
	clone.Sources[0].URI = "https://changed.example"
	clone.MBTI.Type = "ENFP"

	if orig.Sources[0].URI != "https://a.example" {
		t.Fatalf("clone shares sources slice")
	}
	if orig.MBTI.Type != "INTJ" {
		t.Fatalf("clone shares MBTI pointer")
	}
}

func TestPersonaFromJSONRequiresName(t *testing.T) {
	if _, ok := personaFromJSON(`{"role":"mentor"}`); ok {
		t.Fatalf("expected rejection without name")
	}
	if _, ok := personaFromJSON("not json"); ok {
		t.Fatalf("expected rejection of invalid JSON")
	}
	p, ok := personaFromJSON(`{"name":"Ada","role":"mentor"}`)
	if !ok {
		t.Fatalf("expected valid persona to parse")
	}
	if p.Name != "Ada" || p.Role != "mentor" {
		t.Fatalf("unexpected parse result: %+v", p)
	}
}

func TestHasContent(t *testing.T) {
	if (State{}).HasContent() {
		t.Fatalf("empty state must not report content")
	}
	if !(State{Summary: "only a summary"}).HasContent() {
		t.Fatalf("summary alone counts as content")
	}
	if (State{Name: "   "}).HasContent() {
		t.Fatalf("whitespace must not count as content")
	}
}
