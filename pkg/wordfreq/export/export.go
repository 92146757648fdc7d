// Package export writes and reads frequency lists as CSV.
//
// Files are UTF-8 with a `word,count` header and CRLF record terminators.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
)

// Header is the first record of every export.
var Header = []string{"word", "count"}

// WriteCSV writes entries to w in list order.
func WriteCSV(w io.Writer, entries []rank.Entry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Word, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes entries to the file at path, replacing it.
func SaveCSV(path string, entries []rank.Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := WriteCSV(f, entries); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadCSV parses an export back into entries.
func ReadCSV(r io.Reader) ([]rank.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header: %w", internalerr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != Header[0] || header[1] != Header[1] {
		return nil, fmt.Errorf("unexpected header %q: %w", header, internalerr.ErrInvalidInput)
	}

	entries := []rank.Entry{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(rec[1])
		if err != nil || count < 1 {
			line, _ := cr.FieldPos(1)
			return nil, fmt.Errorf("line %d: bad count %q: %w", line, rec[1], internalerr.ErrInvalidInput)
		}
		entries = append(entries, rank.Entry{Word: rec[0], Count: count})
	}
	return entries, nil
}

// LoadCSV reads an export from the file at path.
func LoadCSV(path string) ([]rank.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
