package lexicon

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
)

type substitution struct{ suffix, repl string }

// detachments are WordNet's suffix rules, applied once to the surface form.
var detachments = map[pos.Class][]substitution{
	pos.Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	pos.Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	pos.Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	pos.Adverb: nil,
}

// candidates returns every base form of word in class known to dict,
// in discovery order and without duplicates.
//
// An exception-list hit replaces the suffix rules entirely, which is what
// resolves irregular forms such as "went" -> "go". Otherwise the rules are
// applied to word, then again to each generated form until one of them is
// in the dictionary, as WordNet's morphy does ("boxeses" -> "boxes" -> "box").
func candidates(dict store.Dictionary, word string, class pos.Class) ([]string, error) {
	exc, err := dict.Exceptions(word, class)
	if err != nil {
		return nil, err
	}
	if len(exc) > 0 {
		return known(dict, append([]string{word}, exc...), class)
	}

	forms := detach([]string{word}, class)
	out, err := known(dict, append([]string{word}, forms...), class)
	for err == nil && len(out) == 0 && len(forms) > 0 {
		forms = detach(forms, class)
		out, err = known(dict, forms, class)
	}
	return out, err
}

// detach applies every matching detachment rule once to each form.
// Rules only shorten a form, except men -> man which cannot fire twice,
// so repeated application terminates.
func detach(forms []string, class pos.Class) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, form := range forms {
		for _, sub := range detachments[class] {
			if !strings.HasSuffix(form, sub.suffix) {
				continue
			}
			f := form[:len(form)-len(sub.suffix)] + sub.repl
			if _, dup := seen[f]; dup || f == "" {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// known keeps the forms dict lists for class, dropping duplicates.
func known(dict store.Dictionary, forms []string, class pos.Class) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		ok, err := dict.HasLemma(f, class)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// reduce returns the shortest dictionary candidate, or word itself when the
// dictionary knows none.
func reduce(dict store.Dictionary, word string, class pos.Class) (string, error) {
	forms, err := candidates(dict, word, class)
	if err != nil {
		return "", err
	}
	if len(forms) == 0 {
		return word, nil
	}
	best := forms[0]
	for _, f := range forms[1:] {
		if utf8.RuneCountInString(f) < utf8.RuneCountInString(best) {
			best = f
		}
	}
	return best, nil
}
