// Package wordfreq counts word frequencies: text is tokenized, stopwords are
// removed, the remaining words are reduced to their dictionary base forms and
// the base forms are tallied into a ranked list.
package wordfreq

import (
	"context"
	"fmt"
	"io"

	"github.com/cognicore/wordfreq/pkg/wordfreq/config"
	"github.com/cognicore/wordfreq/pkg/wordfreq/ingest"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
)

// Counter is the main word counting facade
type Counter struct {
	pipeline *ingest.Pipeline
	closer   io.Closer
}

// Options configures a Counter
type Options struct {
	Pipeline *ingest.Pipeline
	// Closer, if set, is closed by Close (typically the loaded components).
	Closer io.Closer
}

// New creates a Counter with the given dependencies
func New(opts Options) (*Counter, error) {
	if opts.Pipeline == nil {
		return nil, internalerr.Missing("ingestion pipeline", "", nil)
	}
	return &Counter{pipeline: opts.Pipeline, closer: opts.Closer}, nil
}

// Open loads the lexical resources named by cfg and builds a Counter.
// Resources are read once here and shared by every later Count.
func Open(ctx context.Context, cfg *config.Config) (*Counter, error) {
	loader := cfg.Loader()
	comp, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	lem, err := comp.Lemmatizer()
	if err != nil {
		comp.Close()
		return nil, err
	}
	pipeline, err := ingest.NewPipeline(ingest.NewTokenizer(), comp.Stoplist, lem)
	if err != nil {
		comp.Close()
		return nil, err
	}
	return New(Options{Pipeline: pipeline, Closer: comp})
}

// Close cleanly shuts down the Counter
func (c *Counter) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Count returns the ranked frequency list for text.
func (c *Counter) Count(text string) ([]rank.Entry, error) {
	lemmas, err := c.pipeline.Lemmas(text)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	return rank.Count(lemmas), nil
}

// Process exposes every pipeline stage for text.
func (c *Counter) Process(text string) (ingest.ProcessedText, error) {
	return c.pipeline.Process(text)
}
