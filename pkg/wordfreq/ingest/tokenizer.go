package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into lowercase word tokens.
type Tokenizer struct {
	form norm.Form
}

// NewTokenizer creates a tokenizer that composes text to NFC before scanning,
// so a letter followed by a combining accent stays one word character.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{form: norm.NFC}
}

// Tokenize emits maximal runs of word characters (letters, digits and
// underscore), lowercased, in left-to-right order. Everything else is a
// separator and is discarded.
func (t *Tokenizer) Tokenize(text string) []string {
	text = t.form.String(text)

	tokens := []string{}
	var current strings.Builder

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Tokenize splits text with an NFC tokenizer.
func Tokenize(text string) []string {
	return NewTokenizer().Tokenize(text)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}
