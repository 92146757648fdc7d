// Package pos defines part-of-speech classes and the tagger contract used by
// the lemmatizer.
package pos

import "strings"

// Class is a coarse part-of-speech class. Values match WordNet's pos letters.
type Class string

const (
	Noun      Class = "n"
	Verb      Class = "v"
	Adjective Class = "a"
	Adverb    Class = "r"
)

// Classes lists every class in WordNet file order.
var Classes = []Class{Noun, Verb, Adjective, Adverb}

// String returns the long name of the class.
func (c Class) String() string {
	switch c {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Adverb:
		return "adverb"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the four known classes.
func (c Class) Valid() bool {
	switch c {
	case Noun, Verb, Adjective, Adverb:
		return true
	}
	return false
}

// Tagger assigns one Penn Treebank tag to each token, using the whole
// sequence as context. The result has the same length as tokens.
type Tagger interface {
	Tag(tokens []string) []string
}

// Classify maps a Treebank tag to its coarse class.
// Tags that match no known prefix are treated as nouns.
func Classify(tag string) Class {
	switch {
	case strings.HasPrefix(tag, "J"):
		return Adjective
	case strings.HasPrefix(tag, "V"):
		return Verb
	case strings.HasPrefix(tag, "N"):
		return Noun
	case strings.HasPrefix(tag, "R"):
		return Adverb
	}
	return Noun
}

// Static is a context-free tagger backed by a fixed word → tag table.
// Words missing from the table get Default (or "NN" when Default is empty).
type Static struct {
	Tags    map[string]string
	Default string
}

// Tag implements Tagger.
func (s Static) Tag(tokens []string) []string {
	def := s.Default
	if def == "" {
		def = "NN"
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if tag, ok := s.Tags[tok]; ok {
			out[i] = tag
			continue
		}
		out[i] = def
	}
	return out
}
