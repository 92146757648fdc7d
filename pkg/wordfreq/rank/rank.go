// Package rank aggregates lemmas into a frequency list.
package rank

import "sort"

// Entry is one distinct lemma and how often it occurred.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Count tallies lemmas and ranks them by count, highest first.
// Equal counts keep the order in which each lemma first appeared, so the
// result is identical for identical input.
func Count(lemmas []string) []Entry {
	index := make(map[string]int, len(lemmas))
	entries := make([]Entry, 0)

	for _, l := range lemmas {
		if i, ok := index[l]; ok {
			entries[i].Count++
			continue
		}
		index[l] = len(entries)
		entries = append(entries, Entry{Word: l, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// FilterSingletons drops entries seen only once. Order is unchanged.
func FilterSingletons(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Count > 1 {
			out = append(out, e)
		}
	}
	return out
}

// Total sums the counts of entries.
func Total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}
