// Package source turns a command-line argument or request body into the
// text to count.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// Format names how file contents were decoded.
type Format string

const (
	Literal Format = "literal"
	Plain   Format = "text"
	HTML    Format = "html"
	JSONL   Format = "jsonl"
)

// Input is resolved text plus where it came from.
type Input struct {
	Text   string
	Path   string // empty for literal text
	Format Format

	// Skipped counts malformed JSONL lines that were ignored.
	Skipped int
}

// Resolve reads arg as a file when a regular file exists at that path and
// otherwise treats arg itself as the text. File contents must be UTF-8 and
// are used as they are unless format asks for a decoder.
func Resolve(arg string, format Format) (Input, error) {
	in := Input{Text: arg, Format: Literal}

	info, err := os.Stat(arg)
	if err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return Input{}, fmt.Errorf("read file %s: %w", arg, err)
		}
		if !utf8.Valid(data) {
			return Input{}, fmt.Errorf("read file %s: not valid UTF-8: %w", arg, internalerr.ErrInvalidInput)
		}
		data = bytes.TrimPrefix(data, []byte("\ufeff"))
		in = Input{Text: string(data), Path: arg, Format: Plain}
	}

	out, err := Decode(in, format)
	if err != nil {
		name := in.Path
		if name == "" {
			name = "argument"
		}
		return Input{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// Decode runs the decoder named by format over in.Text. An empty format,
// Plain or Literal leaves the text untouched.
func Decode(in Input, format Format) (Input, error) {
	var err error
	switch format {
	case "", Plain, Literal:
		return in, nil
	case HTML:
		in.Text, err = FromHTML(strings.NewReader(in.Text))
	case JSONL:
		var docs []Document
		docs, in.Skipped, err = ReadJSONL(strings.NewReader(in.Text))
		in.Text = JoinTexts(docs)
	default:
		return Input{}, fmt.Errorf("unknown format %q: %w", format, internalerr.ErrInvalidInput)
	}
	if err != nil {
		return Input{}, err
	}
	in.Format = format
	return in, nil
}

// ParseFormat validates a -format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", Plain, HTML, JSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, html or jsonl): %w", s, internalerr.ErrInvalidInput)
	}
}

// FromHTML extracts the visible text of an HTML document. Script and style
// contents are dropped and text nodes are separated by a space so words in
// adjacent elements do not merge.
func FromHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var parts []string
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.Join(parts, " "), nil
}

// Document is one record of a JSON-lines corpus.
type Document struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ReadJSONL parses one JSON object per line. Blank lines are ignored and
// malformed lines are skipped and counted; a stream with no valid record
// is an error.
func ReadJSONL(r io.Reader) ([]Document, int, error) {
	var docs []Document
	skipped := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			skipped++
			continue
		}
		docs = append(docs, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	if len(docs) == 0 {
		return nil, skipped, fmt.Errorf("no valid records: %w", internalerr.ErrInvalidInput)
	}
	return docs, skipped, nil
}

// JoinTexts concatenates document titles and bodies, one per line.
func JoinTexts(docs []Document) string {
	var b strings.Builder
	for _, d := range docs {
		for _, s := range []string{d.Title, d.Text} {
			if s == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(s)
		}
	}
	return b.String()
}
