package table

import (
	"strings"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
)

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty string", got)
	}
	if got := Format([]rank.Entry{}); got != "" {
		t.Errorf("Format([]) = %q, want empty string", got)
	}
}

func TestFormatContainsWords(t *testing.T) {
	got := Format([]rank.Entry{{Word: "apple", Count: 3}, {Word: "banana", Count: 1}})
	for _, s := range []string{"apple", "banana", "COUNT"} {
		if !strings.Contains(got, s) {
			t.Errorf("Output missing %q:\n%s", s, got)
		}
	}
}

func TestFormatLayout(t *testing.T) {
	got := Format([]rank.Entry{{Word: "apple", Count: 3}, {Word: "banana", Count: 1}})
	want := "WORD    COUNT\n" +
		"------  -----\n" +
		"apple       3\n" +
		"banana      1"
	if got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatHeaderWidthsAreMinimums(t *testing.T) {
	got := Format([]rank.Entry{{Word: "a", Count: 2}})
	want := "WORD  COUNT\n" +
		"----  -----\n" +
		"a         2"
	if got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatWideCounts(t *testing.T) {
	got := Format([]rank.Entry{{Word: "the", Count: 1234567}, {Word: "of", Count: 12}})
	want := "WORD    COUNT\n" +
		"----  -------\n" +
		"the   1234567\n" +
		"of         12"
	if got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatAlignsUnicodeByCodePoint(t *testing.T) {
	got := Format([]rank.Entry{{Word: "café", Count: 2}, {Word: "naïveté", Count: 1}})
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), got)
	}
	width := len([]rune(lines[0]))
	for i, line := range lines {
		if n := len([]rune(line)); n != width {
			t.Errorf("Line %d has %d code points, want %d: %q", i, n, width, line)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("Output must not end with a newline")
	}
}
