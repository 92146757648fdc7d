// Package table renders frequency lists as aligned plain text.
package table

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
)

const (
	wordHeader  = "WORD"
	countHeader = "COUNT"
	gap         = "  "
)

// Format renders entries as a WORD/COUNT table: header, dashed separator,
// then one row per entry. Words are left aligned and counts right aligned.
// Widths are measured in code points. An empty list renders as "".
func Format(entries []rank.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	counts := make([]string, len(entries))
	wordWidth := utf8.RuneCountInString(wordHeader)
	countWidth := utf8.RuneCountInString(countHeader)
	for i, e := range entries {
		counts[i] = strconv.Itoa(e.Count)
		wordWidth = max(wordWidth, utf8.RuneCountInString(e.Word))
		countWidth = max(countWidth, len(counts[i]))
	}

	rows := make([]string, 0, len(entries)+2)
	rows = append(rows,
		padRight(wordHeader, wordWidth)+gap+padLeft(countHeader, countWidth),
		strings.Repeat("-", wordWidth)+gap+strings.Repeat("-", countWidth),
	)
	for i, e := range entries {
		rows = append(rows, padRight(e.Word, wordWidth)+gap+padLeft(counts[i], countWidth))
	}
	return strings.Join(rows, "\n")
}

func padRight(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
