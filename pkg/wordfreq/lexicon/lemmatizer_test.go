package lexicon

import (
	"errors"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/memstore"
	"github.com/cognicore/wordfreq/pkg/wordfreq/wordnet"
)

func fixtureDictionary() *memstore.Store {
	db := wordnet.New()
	for _, w := range []string{"dog", "box", "church", "leaf", "woman", "city", "glass", "running"} {
		db.AddLemma(w, pos.Noun)
	}
	for _, w := range []string{"run", "go", "bark", "hope", "hop", "try", "watch", "make"} {
		db.AddLemma(w, pos.Verb)
	}
	for _, w := range []string{"good", "big", "large", "fast", "late"} {
		db.AddLemma(w, pos.Adjective)
	}
	db.AddLemma("quickly", pos.Adverb)
	db.AddException("went", pos.Verb, "go")
	db.AddException("running", pos.Verb, "run")
	db.AddException("hopping", pos.Verb, "hop")
	db.AddException("better", pos.Adjective, "good", "well")
	db.AddException("bigger", pos.Adjective, "big")
	return memstore.New(db)
}

func newTestLemmatizer(t *testing.T, tags map[string]string) *Lemmatizer {
	t.Helper()
	l, err := NewLemmatizer(pos.Static{Tags: tags}, fixtureDictionary())
	if err != nil {
		t.Fatalf("NewLemmatizer: %v", err)
	}
	return l
}

func TestLemmatizeIrregularForms(t *testing.T) {
	l := newTestLemmatizer(t, map[string]string{
		"running": "VBG",
		"dogs":    "NNS",
		"went":    "VBD",
	})

	lemmas, err := l.Lemmatize([]string{"running", "dogs", "went"})
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}

	want := map[string]bool{"run": false, "dog": false, "go": false}
	for _, lemma := range lemmas {
		if _, ok := want[lemma]; ok {
			want[lemma] = true
		}
	}
	for lemma, found := range want {
		if !found {
			t.Errorf("Expected %q among lemmas %v", lemma, lemmas)
		}
	}
}

func TestLemmaByClass(t *testing.T) {
	l := newTestLemmatizer(t, nil)

	tests := []struct {
		word  string
		class pos.Class
		want  string
	}{
		{"dogs", pos.Noun, "dog"},
		{"boxes", pos.Noun, "box"},
		{"churches", pos.Noun, "church"},
		{"leaves", pos.Noun, "leaf"},
		{"women", pos.Noun, "woman"},
		{"cities", pos.Noun, "city"},
		{"glasses", pos.Noun, "glass"},
		{"boxeses", pos.Noun, "box"},
		{"dogses", pos.Noun, "dog"},
		{"running", pos.Noun, "running"},
		{"running", pos.Verb, "run"},
		{"went", pos.Verb, "go"},
		{"went", pos.Noun, "went"},
		{"hopping", pos.Verb, "hop"},
		{"tries", pos.Verb, "try"},
		{"watches", pos.Verb, "watch"},
		{"barked", pos.Verb, "bark"},
		{"making", pos.Verb, "make"},
		{"better", pos.Adjective, "good"},
		{"bigger", pos.Adjective, "big"},
		{"larger", pos.Adjective, "large"},
		{"fastest", pos.Adjective, "fast"},
		{"later", pos.Adjective, "late"},
		{"quickly", pos.Adverb, "quickly"},
		{"zzz", pos.Noun, "zzz"},
	}

	for _, tt := range tests {
		got, err := l.Lemma(tt.word, tt.class)
		if err != nil {
			t.Errorf("Lemma(%q, %s): %v", tt.word, tt.class, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lemma(%q, %s) = %q, want %q", tt.word, tt.class, got, tt.want)
		}
	}
}

func TestLemmatizePreservesLength(t *testing.T) {
	l := newTestLemmatizer(t, map[string]string{"went": "VBD"})

	inputs := [][]string{
		{},
		{"dogs"},
		{"dogs", "dogs", "dog", "went", "unknownword", "42"},
	}
	for _, in := range inputs {
		out, err := l.Lemmatize(in)
		if err != nil {
			t.Fatalf("Lemmatize(%v): %v", in, err)
		}
		if len(out) != len(in) {
			t.Errorf("Lemmatize(%v) returned %d lemmas", in, len(out))
		}
	}
}

func TestUnknownTagDefaultsToNoun(t *testing.T) {
	// "DT" has no recognized prefix, so "dogs" is reduced as a noun.
	l := newTestLemmatizer(t, map[string]string{"dogs": "DT"})

	out, err := l.Lemmatize([]string{"dogs"})
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if out[0] != "dog" {
		t.Errorf("Expected noun reduction to 'dog', got %q", out[0])
	}
}

func TestOverridesTakePrecedence(t *testing.T) {
	l := newTestLemmatizer(t, nil)
	o := NewOverrides()
	o.AddGroup("canine", []string{"dogs"})
	l.SetOverrides(o)

	got, err := l.Lemma("dogs", pos.Noun)
	if err != nil {
		t.Fatalf("Lemma: %v", err)
	}
	if got != "canine" {
		t.Errorf("Expected override 'canine', got %q", got)
	}
}

func TestMissingResourcesFailFast(t *testing.T) {
	_, err := NewLemmatizer(nil, fixtureDictionary())
	if !errors.Is(err, internalerr.ErrMissingResource) {
		t.Errorf("Expected missing tagger error, got %v", err)
	}

	_, err = NewLemmatizer(pos.Static{}, nil)
	if !errors.Is(err, internalerr.ErrMissingResource) {
		t.Errorf("Expected missing dictionary error, got %v", err)
	}

	var l *Lemmatizer
	if _, err := l.Lemmatize([]string{"dogs"}); !errors.Is(err, internalerr.ErrMissingResource) {
		t.Errorf("nil lemmatizer should report a missing resource, got %v", err)
	}
}

func TestLemmaUnknownClass(t *testing.T) {
	l := newTestLemmatizer(t, nil)
	if _, err := l.Lemma("dogs", pos.Class("preposition")); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}

type shortTagger struct{}

func (shortTagger) Tag(tokens []string) []string { return nil }

func TestTaggerLengthMismatch(t *testing.T) {
	l, err := NewLemmatizer(shortTagger{}, fixtureDictionary())
	if err != nil {
		t.Fatalf("NewLemmatizer: %v", err)
	}
	if _, err := l.Lemmatize([]string{"dogs"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}

type failingDict struct{}

func (failingDict) Close() error { return nil }
func (failingDict) HasLemma(string, pos.Class) (bool, error) {
	return false, errors.New("disk on fire")
}
func (failingDict) Exceptions(string, pos.Class) ([]string, error) { return nil, nil }

func TestDictionaryErrorsPropagate(t *testing.T) {
	l, err := NewLemmatizer(pos.Static{}, failingDict{})
	if err != nil {
		t.Fatalf("NewLemmatizer: %v", err)
	}
	if _, err := l.Lemmatize([]string{"dogs"}); err == nil {
		t.Error("Dictionary errors should propagate")
	}
}
