// Package session holds the state an interactive front end keeps between
// actions: the last counted results and whether singletons are shown.
package session

import (
	"fmt"
	"io"

	"github.com/cognicore/wordfreq/pkg/wordfreq/export"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
	"github.com/cognicore/wordfreq/pkg/wordfreq/table"
)

// Counter runs the counting pipeline over text.
type Counter interface {
	Count(text string) ([]rank.Entry, error)
}

// Session is not safe for concurrent use; Manager serializes access for
// shared front ends.
type Session struct {
	counter        Counter
	results        []rank.Entry
	counted        bool
	hideSingletons bool
}

// New creates a session that shows singletons until toggled.
func New(counter Counter) *Session {
	return &Session{counter: counter}
}

// Count replaces the current results with those for text. On error the
// previous results are kept.
func (s *Session) Count(text string) error {
	entries, err := s.counter.Count(text)
	if err != nil {
		return err
	}
	s.results = entries
	s.counted = true
	return nil
}

// ToggleSingletons flips singleton visibility and reports whether they are
// now hidden.
func (s *Session) ToggleSingletons() bool {
	s.hideSingletons = !s.hideSingletons
	return s.hideSingletons
}

// HideSingletons reports the current toggle state.
func (s *Session) HideSingletons() bool { return s.hideSingletons }

// Counted reports whether Count has succeeded at least once.
func (s *Session) Counted() bool { return s.counted }

// Results returns the full, unfiltered list from the last count.
func (s *Session) Results() []rank.Entry {
	return append([]rank.Entry(nil), s.results...)
}

// Visible returns the results as currently displayed.
func (s *Session) Visible() []rank.Entry {
	if s.hideSingletons {
		return rank.FilterSingletons(s.results)
	}
	return s.Results()
}

// Render formats the visible results as a table.
func (s *Session) Render() string {
	return table.Format(s.Visible())
}

// ExportCSV writes the unfiltered results. It fails with ErrNoResults when
// nothing has been counted or the last count found no words.
func (s *Session) ExportCSV(w io.Writer) error {
	if len(s.results) == 0 {
		return internalerr.ErrNoResults
	}
	return export.WriteCSV(w, s.results)
}

// SaveCSV is ExportCSV to a file.
func (s *Session) SaveCSV(path string) error {
	if len(s.results) == 0 {
		return internalerr.ErrNoResults
	}
	if err := export.SaveCSV(path, s.results); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}
