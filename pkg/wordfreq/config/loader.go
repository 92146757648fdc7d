package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/lexicon"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos/perceptron"
	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/memstore"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/sqlite"
	"github.com/cognicore/wordfreq/pkg/wordfreq/wordnet"
)

// Loader loads all lexical resources and constructs components
type Loader struct {
	DataDir        string
	StoplistPath   string // YAML override; empty uses the NLTK list in DataDir
	ExtraStopwords []string
	OverridesPath  string
}

// Components holds all loaded lexical components
type Components struct {
	Stoplist   *stoplist.Set
	Tagger     pos.Tagger
	Dictionary store.Dictionary
	Overrides  *lexicon.Overrides

	// DictionaryPath is lexicon.db or the WordNet directory, whichever was used.
	DictionaryPath string
}

// Load reads every resource and returns initialized components.
// The compiled lexicon.db is preferred; without it the WordNet files are
// parsed into memory.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	comp := &Components{}

	// Load stoplist
	var err error
	if l.StoplistPath != "" {
		comp.Stoplist, err = stoplist.LoadYAML(l.StoplistPath)
	} else {
		comp.Stoplist, err = stoplist.LoadFile(stoplist.Path(l.DataDir))
	}
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	if len(l.ExtraStopwords) > 0 {
		comp.Stoplist = comp.Stoplist.With(l.ExtraStopwords)
	}

	// Load tagger
	tagger, err := perceptron.Load(perceptron.Dir(l.DataDir))
	if err != nil {
		return nil, fmt.Errorf("load tagger: %w", err)
	}
	comp.Tagger = tagger

	// Load dictionary
	if err := l.loadDictionary(ctx, comp); err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	// Load overrides
	if l.OverridesPath != "" {
		comp.Overrides, err = lexicon.LoadOverrides(l.OverridesPath)
		if err != nil {
			comp.Close()
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	return comp, nil
}

func (l *Loader) loadDictionary(ctx context.Context, comp *Components) error {
	dbPath := sqlite.Path(l.DataDir)
	if _, err := os.Stat(dbPath); err == nil {
		st, err := sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return err
		}
		stats, err := st.Stats(ctx)
		if err == nil && stats.Lemmas > 0 {
			comp.Dictionary = st
			comp.DictionaryPath = dbPath
			return nil
		}
		st.Close()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	dir := wordnet.Dir(l.DataDir)
	st, err := memstore.Load(dir)
	if err != nil {
		return err
	}
	if st.Stats().Lemmas == 0 {
		return internalerr.Missing("wordnet", dir, errors.New("index files list no lemmas"))
	}
	comp.Dictionary = st
	comp.DictionaryPath = dir
	return nil
}

// Lemmatizer wires the tagger, dictionary and overrides together.
func (c *Components) Lemmatizer() (*lexicon.Lemmatizer, error) {
	lem, err := lexicon.NewLemmatizer(c.Tagger, c.Dictionary)
	if err != nil {
		return nil, err
	}
	lem.SetOverrides(c.Overrides)
	return lem, nil
}

// Close releases the dictionary.
func (c *Components) Close() error {
	if c == nil || c.Dictionary == nil {
		return nil
	}
	return c.Dictionary.Close()
}
