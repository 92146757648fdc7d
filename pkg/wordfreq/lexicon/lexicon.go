package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides stores user-curated base forms that take precedence over the
// dictionary: each canonical form lists the variants that reduce to it.
//
// Example: "data" -> ["data", "datum", "datums"] makes every variant count
// as "data" regardless of part of speech.
type Overrides struct {
	// canonical -> all variants (including canonical itself)
	groups map[string][]string

	// variant -> canonical
	reverseIndex map[string]string
}

// NewOverrides creates an empty override table.
func NewOverrides() *Overrides {
	return &Overrides{
		groups:       make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadOverrides loads override groups from a YAML file.
//
// Expected format:
//
//	lemmas:
//	  - canonical: data
//	    variants: [datum, datums]
//	  - canonical: criterion
//	    variants: [criteria]
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Lemmas []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"lemmas"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	o := NewOverrides()
	for _, entry := range config.Lemmas {
		o.AddGroup(entry.Canonical, entry.Variants)
	}
	return o, nil
}

// AddGroup adds a canonical form with its variants.
// The canonical form is always included as the first entry in the group.
// If the group already exists, old reverse index entries are cleaned up first.
func (o *Overrides) AddGroup(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)

	if old, exists := o.groups[canonical]; exists {
		for _, v := range old {
			delete(o.reverseIndex, v)
		}
	}

	normalized := make([]string, 0, len(variants)+1)
	seen := make(map[string]bool)

	normalized = append(normalized, canonical)
	seen[canonical] = true

	for _, v := range variants {
		v = strings.ToLower(v)
		if !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}

	o.groups[canonical] = normalized
	for _, v := range normalized {
		o.reverseIndex[v] = canonical
	}
}

// Lookup returns the canonical form registered for token, if any.
func (o *Overrides) Lookup(token string) (string, bool) {
	if o == nil {
		return "", false
	}
	canonical, ok := o.reverseIndex[strings.ToLower(token)]
	return canonical, ok
}

// Variants returns all known variants of a token (including the canonical form).
// If the token is not registered, returns a slice containing only the token itself.
func (o *Overrides) Variants(token string) []string {
	token = strings.ToLower(token)
	if variants, ok := o.groups[token]; ok {
		return variants
	}
	if canonical, ok := o.reverseIndex[token]; ok {
		return o.groups[canonical]
	}
	return []string{token}
}

// Len returns the number of override groups.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.groups)
}
