package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveLiteralText(t *testing.T) {
	in, err := Resolve("dogs bark at night", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Text != "dogs bark at night" || in.Format != Literal || in.Path != "" {
		t.Errorf("Resolve = %+v", in)
	}
}

func TestResolveMissingPathIsText(t *testing.T) {
	arg := filepath.Join(t.TempDir(), "nope.txt")
	in, err := Resolve(arg, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Text != arg || in.Format != Literal {
		t.Errorf("Missing path should be literal text, got %+v", in)
	}
}

func TestResolveDirectoryIsText(t *testing.T) {
	dir := t.TempDir()
	in, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Format != Literal {
		t.Errorf("Directory should be literal text, got %+v", in)
	}
}

func TestResolvePlainFile(t *testing.T) {
	path := writeFile(t, "input.txt", []byte("\ufeffHello, file."))
	in, err := Resolve(path, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Text != "Hello, file." || in.Format != Plain || in.Path != path {
		t.Errorf("Resolve = %+v", in)
	}
}

func TestResolveRejectsInvalidUTF8(t *testing.T) {
	path := writeFile(t, "latin1.txt", []byte{'c', 'a', 'f', 0xe9})
	_, err := Resolve(path, "")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("Expected invalid input error, got %v", err)
	}
}

func TestResolveFileContentsVerbatim(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"page.html", `<p>dogs</p><script>cats cats</script>`},
		{"notes.jsonl", "The dogs were running home.\n"},
		{"feed.ndjson", `{"text":"dogs bark"}` + "\n"},
	}
	for _, tt := range tests {
		path := writeFile(t, tt.name, []byte(tt.data))
		in, err := Resolve(path, "")
		if err != nil {
			t.Errorf("Resolve(%s): %v", tt.name, err)
			continue
		}
		if in.Text != tt.data || in.Format != Plain {
			t.Errorf("Resolve(%s) = %+v, want contents unchanged", tt.name, in)
		}
	}
}

func TestResolveHTMLFormat(t *testing.T) {
	page := `<html><head><title>Dogs</title><style>p{color:red}</style></head>
<body><p>Dogs<b>bark</b></p><script>var x = "hidden";</script></body></html>`
	path := writeFile(t, "page.txt", []byte(page))

	in, err := Resolve(path, HTML)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Format != HTML {
		t.Errorf("Format = %s, want html", in.Format)
	}
	if in.Text != "Dogs Dogs bark" {
		t.Errorf("Text = %q", in.Text)
	}
}

func TestResolveJSONLFormat(t *testing.T) {
	data := `{"title":"First","text":"dogs bark"}
not json

{"text":"cats sleep"}
`
	path := writeFile(t, "corpus.jsonl", []byte(data))

	in, err := Resolve(path, JSONL)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Text != "First\ndogs bark\ncats sleep" {
		t.Errorf("Text = %q", in.Text)
	}
	if in.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", in.Skipped)
	}
}

func TestResolveJSONLFormatRejectsProse(t *testing.T) {
	path := writeFile(t, "notes.jsonl", []byte("The dogs were running home.\n"))
	if _, err := Resolve(path, JSONL); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("Expected invalid input error, got %v", err)
	}
}

func TestResolveLiteralHTML(t *testing.T) {
	in, err := Resolve("<p>dogs</p><p>cats</p>", HTML)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Text != "dogs cats" || in.Path != "" {
		t.Errorf("Resolve = %+v", in)
	}
}

func TestReadJSONLNoRecords(t *testing.T) {
	_, skipped, err := ReadJSONL(strings.NewReader("{oops\n\n"))
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("Expected invalid input error, got %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestFromHTMLFragment(t *testing.T) {
	got, err := FromHTML(strings.NewReader("<p>one</p><p>two &amp; three</p>"))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if got != "one two & three" {
		t.Errorf("FromHTML = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      "",
		"text":  Plain,
		"HTML":  HTML,
		"jsonl": JSONL,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected invalid input error for pdf, got %v", err)
	}
}
