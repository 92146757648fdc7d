// Package wordnet reads the lemma index and morphological exception lists of
// a WordNet database directory (index.noun, verb.exc, ...).
package wordnet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
)

// ResourceName is the name under which the database is fetched.
const ResourceName = "wordnet"

var fileNames = map[pos.Class]string{
	pos.Noun:      "noun",
	pos.Verb:      "verb",
	pos.Adjective: "adj",
	pos.Adverb:    "adv",
}

// Database holds the parts of WordNet needed for lemmatization.
type Database struct {
	// Lemmas maps class -> set of base forms.
	Lemmas map[pos.Class]map[string]struct{}
	// Exceptions maps class -> inflected form -> base forms, in file order.
	Exceptions map[pos.Class]map[string][]string
}

// New creates an empty database.
func New() *Database {
	db := &Database{
		Lemmas:     make(map[pos.Class]map[string]struct{}),
		Exceptions: make(map[pos.Class]map[string][]string),
	}
	for _, c := range pos.Classes {
		db.Lemmas[c] = make(map[string]struct{})
		db.Exceptions[c] = make(map[string][]string)
	}
	return db
}

// Dir returns where the database lives below a data directory.
func Dir(dataDir string) string {
	return filepath.Join(dataDir, "corpora", ResourceName)
}

// RequiredFiles lists the files Load reads, relative to the database dir.
func RequiredFiles() []string {
	files := make([]string, 0, 2*len(pos.Classes))
	for _, c := range pos.Classes {
		files = append(files, "index."+fileNames[c], fileNames[c]+".exc")
	}
	return files
}

// Load parses every index and exception file under dir.
func Load(dir string) (*Database, error) {
	db := New()
	for _, c := range pos.Classes {
		name := fileNames[c]
		if err := db.readIndex(filepath.Join(dir, "index."+name), c); err != nil {
			return nil, err
		}
		if err := db.readExceptions(filepath.Join(dir, name+".exc"), c); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// AddLemma records word as a base form of class c.
func (db *Database) AddLemma(word string, c pos.Class) {
	db.Lemmas[c][strings.ToLower(word)] = struct{}{}
}

// AddException records that form inflects the given base forms in class c.
func (db *Database) AddException(form string, c pos.Class, bases ...string) {
	form = strings.ToLower(form)
	db.Exceptions[c][form] = append(db.Exceptions[c][form], bases...)
}

// Stats returns the number of lemmas and exception entries per class.
func (db *Database) Stats() (lemmas, exceptions int) {
	for _, c := range pos.Classes {
		lemmas += len(db.Lemmas[c])
		exceptions += len(db.Exceptions[c])
	}
	return lemmas, exceptions
}

// readIndex reads "lemma pos ..." lines. License lines start with a space.
// Collocations keep their underscores ("hot_dog"), which the tokenizer can
// produce as a single word.
func (db *Database) readIndex(path string, c pos.Class) error {
	return scanLines(path, func(line string) error {
		if line == "" || line[0] == ' ' {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("%s: malformed index line %q", path, line)
		}
		lemma := fields[0]
		if pos.Class(fields[1]) != c && !(c == pos.Adjective && fields[1] == "s") {
			return nil
		}
		db.AddLemma(lemma, c)
		return nil
	})
}

// readExceptions reads "inflected base [base...]" lines.
func (db *Database) readExceptions(path string, c pos.Class) error {
	return scanLines(path, func(line string) error {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil
		}
		db.AddException(fields[0], c, fields[1:]...)
		return nil
	})
}

func scanLines(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return internalerr.Missing(ResourceName, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
