package pos

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		tag  string
		want Class
	}{
		{"JJ", Adjective},
		{"JJR", Adjective},
		{"VB", Verb},
		{"VBD", Verb},
		{"VBG", Verb},
		{"NN", Noun},
		{"NNS", Noun},
		{"NNP", Noun},
		{"RB", Adverb},
		{"RBS", Adverb},
		{"DT", Noun},
		{"CD", Noun},
		{"", Noun},
		{"xyz", Noun},
	}

	for _, tt := range tests {
		if got := Classify(tt.tag); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestStaticTagger(t *testing.T) {
	tagger := Static{Tags: map[string]string{"went": "VBD", "dogs": "NNS"}}

	got := tagger.Tag([]string{"dogs", "went", "home"})
	want := []string{"NNS", "VBD", "NN"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d tags, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStaticTaggerDefault(t *testing.T) {
	tagger := Static{Default: "VB"}
	got := tagger.Tag([]string{"run"})
	if got[0] != "VB" {
		t.Errorf("Expected default tag VB, got %q", got[0])
	}
}

func TestClassString(t *testing.T) {
	if Verb.String() != "verb" {
		t.Errorf("Verb.String() = %q", Verb.String())
	}
	if Class("x").Valid() {
		t.Error("Unknown class should not be valid")
	}
	for _, c := range Classes {
		if !c.Valid() {
			t.Errorf("Class %q should be valid", c)
		}
	}
}
