// Package stoplist holds the set of function words excluded from counting.
package stoplist

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

const (
	// ResourceName is the NLTK package the default list ships in.
	ResourceName = "stopwords"
	// Language selects the list inside the package.
	Language = "english"
)

// Set is an immutable stopword set. Matching is exact against
// already-lowercased tokens.
type Set struct {
	stops map[string]struct{}
}

// New creates a set from terms. Terms are lowercased and blanks are ignored.
func New(terms []string) *Set {
	stops := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		stops[t] = struct{}{}
	}
	return &Set{stops: stops}
}

// IsStop checks if a token is a stopword
func (s *Set) IsStop(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.stops[token]
	return ok
}

// Filter returns tokens minus stopwords, preserving order.
// The input slice is not modified.
func (s *Set) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !s.IsStop(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// With returns a new set holding the union of s and extra.
func (s *Set) With(extra []string) *Set {
	terms := append(s.All(), extra...)
	return New(terms)
}

// Len returns the number of stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.stops)
}

// All returns all stopwords, sorted.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.stops))
	for w := range s.stops {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Path returns where the NLTK list lives below a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "corpora", ResourceName, Language)
}

// LoadFile reads a plain list with one word per line, as NLTK ships it.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, internalerr.Missing("stopword list", path, err)
		}
		return nil, err
	}
	defer f.Close()

	var terms []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(terms), nil
}

// LoadYAML loads stopwords from a YAML file of the form `terms: [...]`.
func LoadYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return New(sl.Terms), nil
}
