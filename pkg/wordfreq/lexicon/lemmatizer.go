// Package lexicon reduces tokens to their dictionary base forms.
//
// Reduction is part-of-speech aware: each token is tagged in the context of
// its sequence, the tag is mapped to a coarse class, and WordNet-style
// morphology (exception lists, then suffix detachment) proposes base forms
// that are kept only if the lemma dictionary lists them for that class.
package lexicon

import (
	"fmt"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
)

// Lemmatizer maps tokens to lemmas. It holds no mutable state.
type Lemmatizer struct {
	tagger    pos.Tagger
	dict      store.Dictionary
	overrides *Overrides
}

// NewLemmatizer fails fast when either lexical resource is absent.
func NewLemmatizer(tagger pos.Tagger, dict store.Dictionary) (*Lemmatizer, error) {
	if tagger == nil {
		return nil, internalerr.Missing("part-of-speech tagger", "", nil)
	}
	if dict == nil {
		return nil, internalerr.Missing("lemma dictionary", "", nil)
	}
	return &Lemmatizer{tagger: tagger, dict: dict}, nil
}

// SetOverrides installs user-curated base forms, consulted before the dictionary.
func (l *Lemmatizer) SetOverrides(o *Overrides) {
	l.overrides = o
}

// Lemmatize returns one lemma per token, in input order.
func (l *Lemmatizer) Lemmatize(tokens []string) ([]string, error) {
	if l == nil || l.tagger == nil || l.dict == nil {
		return nil, internalerr.Missing("lemma dictionary", "", nil)
	}
	if len(tokens) == 0 {
		return []string{}, nil
	}

	tags := l.tagger.Tag(tokens)
	if len(tags) != len(tokens) {
		return nil, fmt.Errorf("tagger returned %d tags for %d tokens: %w", len(tags), len(tokens), internalerr.ErrInvalidInput)
	}

	lemmas := make([]string, len(tokens))
	for i, tok := range tokens {
		lemma, err := l.Lemma(tok, pos.Classify(tags[i]))
		if err != nil {
			return nil, err
		}
		lemmas[i] = lemma
	}
	return lemmas, nil
}

// Lemma reduces a single word within the given class.
func (l *Lemmatizer) Lemma(word string, class pos.Class) (string, error) {
	if !class.Valid() {
		return "", fmt.Errorf("lemmatize %q: unknown class %q: %w", word, string(class), internalerr.ErrInvalidInput)
	}
	if canonical, ok := l.overrides.Lookup(word); ok {
		return canonical, nil
	}
	lemma, err := reduce(l.dict, word, class)
	if err != nil {
		return "", fmt.Errorf("lemmatize %q as %s: %w", word, class, err)
	}
	return lemma, nil
}
