package session

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
)

// splitCounter counts whitespace-separated words without any lemmatization.
type splitCounter struct{}

func (splitCounter) Count(text string) ([]rank.Entry, error) {
	return rank.Count(strings.Fields(text)), nil
}

type failingCounter struct{ err error }

func (f failingCounter) Count(string) ([]rank.Entry, error) { return nil, f.err }

func TestCountReplacesResults(t *testing.T) {
	s := New(splitCounter{})

	if err := s.Count("dog dog cat"); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if err := s.Count("bird"); err != nil {
		t.Fatalf("Count: %v", err)
	}

	want := []rank.Entry{{Word: "bird", Count: 1}}
	if !reflect.DeepEqual(s.Results(), want) {
		t.Errorf("Results = %v, want %v", s.Results(), want)
	}
}

func TestCountErrorKeepsResults(t *testing.T) {
	s := New(splitCounter{})
	if err := s.Count("dog dog"); err != nil {
		t.Fatalf("Count: %v", err)
	}

	s.counter = failingCounter{err: internalerr.ErrMissingResource}
	if err := s.Count("cat"); !errors.Is(err, internalerr.ErrMissingResource) {
		t.Fatalf("Expected missing resource error, got %v", err)
	}
	if got := s.Results(); len(got) != 1 || got[0].Word != "dog" {
		t.Errorf("Results after failed count = %v", got)
	}
}

func TestToggleSingletons(t *testing.T) {
	s := New(splitCounter{})
	if err := s.Count("dog dog dog dog cat bird bird"); err != nil {
		t.Fatalf("Count: %v", err)
	}

	if s.HideSingletons() {
		t.Fatal("Singletons should be shown initially")
	}
	if len(s.Visible()) != 3 {
		t.Errorf("Visible = %v, want 3 entries", s.Visible())
	}

	if hidden := s.ToggleSingletons(); !hidden {
		t.Fatal("ToggleSingletons should report hidden")
	}
	want := []rank.Entry{{Word: "dog", Count: 4}, {Word: "bird", Count: 2}}
	if !reflect.DeepEqual(s.Visible(), want) {
		t.Errorf("Visible = %v, want %v", s.Visible(), want)
	}
	if strings.Contains(s.Render(), "cat") {
		t.Errorf("Render should hide singletons:\n%s", s.Render())
	}
	if len(s.Results()) != 3 {
		t.Error("Results must stay unfiltered")
	}

	s.ToggleSingletons()
	if !strings.Contains(s.Render(), "cat") {
		t.Errorf("Render should show singletons again:\n%s", s.Render())
	}
}

func TestExportBeforeCount(t *testing.T) {
	s := New(splitCounter{})

	var buf bytes.Buffer
	if err := s.ExportCSV(&buf); !errors.Is(err, internalerr.ErrNoResults) {
		t.Errorf("Expected ErrNoResults, got %v", err)
	}
	if err := s.SaveCSV(filepath.Join(t.TempDir(), "out.csv")); !errors.Is(err, internalerr.ErrNoResults) {
		t.Errorf("Expected ErrNoResults, got %v", err)
	}
}

func TestExportEmptyCount(t *testing.T) {
	s := New(splitCounter{})
	if err := s.Count("   "); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if !s.Counted() {
		t.Error("Counted should be true after a count")
	}
	if s.Render() != "" {
		t.Errorf("Render of empty results = %q", s.Render())
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(&buf); !errors.Is(err, internalerr.ErrNoResults) {
		t.Errorf("Expected ErrNoResults, got %v", err)
	}
}

func TestExportIgnoresToggle(t *testing.T) {
	s := New(splitCounter{})
	if err := s.Count("dog dog cat"); err != nil {
		t.Fatalf("Count: %v", err)
	}
	s.ToggleSingletons()

	var buf bytes.Buffer
	if err := s.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if buf.String() != "word,count\r\ndog,2\r\ncat,1\r\n" {
		t.Errorf("ExportCSV = %q", buf.String())
	}
}
