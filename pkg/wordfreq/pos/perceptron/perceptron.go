// Package perceptron implements an averaged-perceptron part-of-speech tagger
// that reads the JSON model published as NLTK's averaged_perceptron_tagger_eng.
package perceptron

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// ModelName is the resource name of the English model.
const ModelName = "averaged_perceptron_tagger_eng"

var (
	start = []string{"-START-", "-START2-"}
	end   = []string{"-END-", "-END2-"}
)

// Tagger holds the trained weights. It is immutable after Load.
type Tagger struct {
	weights map[string]map[string]float64
	tagdict map[string]string
	classes []string
}

// New builds a tagger from in-memory model parts.
func New(weights map[string]map[string]float64, tagdict map[string]string, classes []string) *Tagger {
	if weights == nil {
		weights = map[string]map[string]float64{}
	}
	if tagdict == nil {
		tagdict = map[string]string{}
	}
	return &Tagger{weights: weights, tagdict: tagdict, classes: classes}
}

// Dir returns where the model lives below a data directory.
func Dir(dataDir string) string {
	return filepath.Join(dataDir, "taggers", ModelName)
}

// RequiredFiles lists the files Load reads, relative to the model dir.
func RequiredFiles() []string {
	return []string{
		ModelName + ".weights.json",
		ModelName + ".tagdict.json",
		ModelName + ".classes.json",
	}
}

// Load reads <dir>/<ModelName>.{weights,tagdict,classes}.json.
func Load(dir string) (*Tagger, error) {
	var (
		weights map[string]map[string]float64
		tagdict map[string]string
		classes []string
	)
	parts := []struct {
		suffix string
		dst    any
	}{
		{"weights", &weights},
		{"tagdict", &tagdict},
		{"classes", &classes},
	}
	for _, p := range parts {
		path := filepath.Join(dir, ModelName+"."+p.suffix+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, internalerr.Missing(ModelName, path, err)
		}
		if err := json.Unmarshal(data, p.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if len(classes) == 0 {
		return nil, internalerr.Missing(ModelName, dir, fmt.Errorf("model has no classes"))
	}
	return New(weights, tagdict, classes), nil
}

// Classes returns the tag vocabulary of the model.
func (t *Tagger) Classes() []string {
	return append([]string(nil), t.classes...)
}

// Tag assigns a Treebank tag to every token. Words found in the tag
// dictionary skip prediction.
func (t *Tagger) Tag(tokens []string) []string {
	context := make([]string, 0, len(tokens)+len(start)+len(end))
	context = append(context, start...)
	for _, w := range tokens {
		context = append(context, normalize(w))
	}
	context = append(context, end...)

	out := make([]string, len(tokens))
	prev, prev2 := start[0], start[1]
	for i, word := range tokens {
		tag, ok := t.tagdict[word]
		if !ok || tag == "" {
			tag = t.predict(features(i, word, context, prev, prev2))
		}
		out[i] = tag
		prev2 = prev
		prev = tag
	}
	return out
}

// predict returns the class with the highest score; ties go to the
// lexically greater label.
func (t *Tagger) predict(feats []string) string {
	scores := make(map[string]float64)
	for _, f := range feats {
		for label, w := range t.weights[f] {
			scores[label] += w
		}
	}

	best := ""
	bestScore := 0.0
	for i, label := range t.classes {
		s := scores[label]
		if i == 0 || s > bestScore || (s == bestScore && label > best) {
			best, bestScore = label, s
		}
	}
	return best
}

func features(i int, word string, context []string, prev, prev2 string) []string {
	i += len(start)
	key := func(name string, args ...string) string {
		return strings.Join(append([]string{name}, args...), " ")
	}
	return []string{
		key("bias"),
		key("i suffix", suffix(word)),
		key("i pref1", prefix(word)),
		key("i-1 tag", prev),
		key("i-2 tag", prev2),
		key("i tag+i-2 tag", prev, prev2),
		key("i word", context[i]),
		key("i-1 tag+i word", prev, context[i]),
		key("i-1 word", context[i-1]),
		key("i-1 suffix", suffix(context[i-1])),
		key("i-2 word", context[i-2]),
		key("i+1 word", context[i+1]),
		key("i+1 suffix", suffix(context[i+1])),
		key("i+2 word", context[i+2]),
	}
}

// normalize collapses hyphenated words, years and numbers into class markers.
func normalize(word string) string {
	runes := []rune(word)
	switch {
	case strings.Contains(word, "-") && len(runes) > 0 && runes[0] != '-':
		return "!HYPHEN"
	case len(runes) == 4 && allDigits(runes):
		return "!YEAR"
	case len(runes) > 0 && unicode.IsDigit(runes[0]):
		return "!DIGITS"
	}
	return strings.ToLower(word)
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func suffix(s string) string {
	r := []rune(s)
	if len(r) <= 3 {
		return s
	}
	return string(r[len(r)-3:])
}

func prefix(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
