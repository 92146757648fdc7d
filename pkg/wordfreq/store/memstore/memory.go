package memstore

import (
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/wordnet"
)

// Store is an in-memory implementation of store.Dictionary.
// It is never mutated after construction, so it needs no locking.
type Store struct {
	db *wordnet.Database
}

// New wraps an already-loaded WordNet database.
func New(db *wordnet.Database) *Store {
	if db == nil {
		db = wordnet.New()
	}
	return &Store{db: db}
}

// Load reads a WordNet directory into memory.
func Load(dir string) (*Store, error) {
	db, err := wordnet.Load(dir)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Close implements store.Dictionary.
func (s *Store) Close() error { return nil }

// HasLemma implements store.Dictionary.
func (s *Store) HasLemma(word string, class pos.Class) (bool, error) {
	_, ok := s.db.Lemmas[class][word]
	return ok, nil
}

// Exceptions implements store.Dictionary.
func (s *Store) Exceptions(word string, class pos.Class) ([]string, error) {
	bases := s.db.Exceptions[class][word]
	if len(bases) == 0 {
		return nil, nil
	}
	return append([]string(nil), bases...), nil
}

// Stats returns the number of lemmas and exception entries held.
func (s *Store) Stats() store.Stats {
	lemmas, exceptions := s.db.Stats()
	return store.Stats{Lemmas: int64(lemmas), Exceptions: int64(exceptions)}
}
