package store

import (
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
)

// Dictionary is the read-only lemma dictionary consulted during
// morphological reduction.
type Dictionary interface {
	Close() error

	// HasLemma reports whether word is a base form of the given class.
	HasLemma(word string, class pos.Class) (bool, error)

	// Exceptions returns the base forms listed for an irregular inflection
	// (e.g. "went" -> ["go"] for verbs), or nil.
	Exceptions(word string, class pos.Class) ([]string, error)
}

// Stats summarizes dictionary contents.
type Stats struct {
	Lemmas     int64
	Exceptions int64
}
