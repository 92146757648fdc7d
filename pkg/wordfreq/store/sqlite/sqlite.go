package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordfreq/pkg/wordfreq/pos"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/wordnet"
)

// FileName is the compiled dictionary inside a data directory.
const FileName = "lexicon.db"

// Path returns the compiled dictionary location for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Store implements store.Dictionary on top of a compiled lexicon database.
type Store struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a lexicon database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS lemmas (
	word TEXT NOT NULL,
	class TEXT NOT NULL,
	PRIMARY KEY(word, class)
);

CREATE TABLE IF NOT EXISTS exceptions (
	form TEXT NOT NULL,
	class TEXT NOT NULL,
	seq INTEGER NOT NULL,
	base TEXT NOT NULL,
	PRIMARY KEY(form, class, seq)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Import replaces the database contents with src in a single transaction.
func (s *Store) Import(ctx context.Context, src *wordnet.Database) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lemmas`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM exceptions`); err != nil {
		return err
	}

	lemmaStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO lemmas (word, class) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer lemmaStmt.Close()

	excStmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO exceptions (form, class, seq, base) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer excStmt.Close()

	for _, class := range pos.Classes {
		for _, word := range sortedKeys(src.Lemmas[class]) {
			if _, err := lemmaStmt.ExecContext(ctx, word, string(class)); err != nil {
				return err
			}
		}
		for form, bases := range src.Exceptions[class] {
			for i, base := range bases {
				if _, err := excStmt.ExecContext(ctx, form, string(class), i, base); err != nil {
					return err
				}
			}
		}
	}

	return tx.Commit()
}

// HasLemma implements store.Dictionary.
func (s *Store) HasLemma(word string, class pos.Class) (bool, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM lemmas WHERE word=? AND class=?`, word, string(class)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Exceptions implements store.Dictionary.
func (s *Store) Exceptions(word string, class pos.Class) ([]string, error) {
	rows, err := s.db.Query(`SELECT base FROM exceptions WHERE form=? AND class=? ORDER BY seq`, word, string(class))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bases []string
	for rows.Next() {
		var base string
		if err := rows.Scan(&base); err != nil {
			return nil, err
		}
		bases = append(bases, base)
	}
	return bases, rows.Err()
}

// Stats counts the stored lemmas and exception forms.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	var st store.Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lemmas`).Scan(&st.Lemmas); err != nil {
		return st, err
	}
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM (SELECT DISTINCT form, class FROM exceptions)`).Scan(&st.Exceptions)
	return st, err
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
