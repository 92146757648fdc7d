// Package ingest turns raw text into the lemma sequence that gets counted.
package ingest

import (
	"fmt"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/lexicon"
	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
)

// Pipeline orchestrates the ingestion flow:
// text → tokenization → stopword removal → lemmatization
type Pipeline struct {
	tokenizer  *Tokenizer
	stops      *stoplist.Set
	lemmatizer *lexicon.Lemmatizer
}

// NewPipeline creates an ingestion pipeline with the given components.
// A nil stopword set removes nothing; a nil lemmatizer is a missing resource.
func NewPipeline(tokenizer *Tokenizer, stops *stoplist.Set, lemmatizer *lexicon.Lemmatizer) (*Pipeline, error) {
	if lemmatizer == nil {
		return nil, internalerr.Missing("lemma dictionary", "", nil)
	}
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &Pipeline{
		tokenizer:  tokenizer,
		stops:      stops,
		lemmatizer: lemmatizer,
	}, nil
}

// ProcessedText holds the output of every stage for one input.
type ProcessedText struct {
	Tokens  []string // all word tokens
	Content []string // tokens minus stopwords
	Lemmas  []string // one per content token
}

// Process runs text through the full pipeline.
func (p *Pipeline) Process(text string) (ProcessedText, error) {
	// 1. Tokenize (lowercase word runs)
	tokens := p.tokenizer.Tokenize(text)

	// 2. Drop function words
	content := p.stops.Filter(tokens)

	// 3. Reduce to base forms
	lemmas, err := p.lemmatizer.Lemmatize(content)
	if err != nil {
		return ProcessedText{}, fmt.Errorf("lemmatize: %w", err)
	}

	return ProcessedText{
		Tokens:  tokens,
		Content: content,
		Lemmas:  lemmas,
	}, nil
}

// Lemmas is Process reduced to its final stage.
func (p *Pipeline) Lemmas(text string) ([]string, error) {
	out, err := p.Process(text)
	if err != nil {
		return nil, err
	}
	return out.Lemmas, nil
}
