// Package bootstrap makes sure the lexical resources exist in the local
// data directory, fetching missing NLTK packages and compiling lexicon.db.
package bootstrap

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/wordfreq/internal/fetch"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos/perceptron"
	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/sqlite"
	"github.com/cognicore/wordfreq/pkg/wordfreq/wordnet"
)

// Resource is one downloadable package.
type Resource struct {
	Name     string
	Category string   // corpora or taggers
	Files    []string // relative to the resource directory
}

// Resources lists everything the pipeline needs.
func Resources() []Resource {
	return []Resource{
		{Name: stoplist.ResourceName, Category: "corpora", Files: []string{stoplist.Language}},
		{Name: wordnet.ResourceName, Category: "corpora", Files: wordnet.RequiredFiles()},
		{Name: perceptron.ModelName, Category: "taggers", Files: perceptron.RequiredFiles()},
	}
}

// Dir returns the resource directory below dataDir.
func (r Resource) Dir(dataDir string) string {
	return filepath.Join(dataDir, r.Category, r.Name)
}

// Archive is the remote path of the package.
func (r Resource) Archive() string {
	return r.Category + "/" + r.Name + ".zip"
}

// Missing returns the required files that are absent.
func (r Resource) Missing(dataDir string) []string {
	var missing []string
	for _, f := range r.Files {
		info, err := os.Stat(filepath.Join(r.Dir(dataDir), f))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, f)
		}
	}
	return missing
}

// Options configures Ensure.
type Options struct {
	DataDir string
	Remote  string
	Timeout time.Duration

	// Force recompiles lexicon.db even when it exists.
	Force bool

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Report says what Ensure had to do.
type Report struct {
	Fetched  []string
	Compiled bool
}

// Ensure verifies every resource, fetching the missing ones, then compiles
// lexicon.db from WordNet when it is absent. A resource that is still
// incomplete afterwards yields a MissingResourceError naming it.
func Ensure(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DataDir == "" {
		return nil, fmt.Errorf("bootstrap: data directory required: %w", internalerr.ErrInvalidConfig)
	}
	if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	client := &fetch.Client{
		BaseURL:    opts.Remote,
		Timeout:    opts.Timeout,
		HTTPClient: opts.HTTPClient,
		Logger:     logger,
	}

	report := &Report{}
	for _, r := range Resources() {
		missing := r.Missing(opts.DataDir)
		if len(missing) == 0 {
			logger.Debug("resource present", zap.String("resource", r.Name))
			continue
		}

		logger.Info("fetching resource",
			zap.String("resource", r.Name),
			zap.Strings("missing", missing),
			zap.String("url", client.URL(r.Archive())),
		)
		if err := install(ctx, client, r, opts.DataDir); err != nil {
			return report, internalerr.Missing(r.Name, r.Dir(opts.DataDir), err)
		}
		if still := r.Missing(opts.DataDir); len(still) > 0 {
			return report, internalerr.Missing(r.Name, r.Dir(opts.DataDir),
				fmt.Errorf("archive lacks %s", strings.Join(still, ", ")))
		}
		report.Fetched = append(report.Fetched, r.Name)
	}

	compiled, err := compile(ctx, opts.DataDir, opts.Force)
	if err != nil {
		return report, fmt.Errorf("compile %s: %w", sqlite.FileName, err)
	}
	if compiled {
		logger.Info("compiled dictionary", zap.String("path", sqlite.Path(opts.DataDir)))
	}
	report.Compiled = compiled
	return report, nil
}

// install downloads the package archive and unpacks it into the category dir.
func install(ctx context.Context, client *fetch.Client, r Resource, dataDir string) error {
	tmp, err := os.CreateTemp(dataDir, r.Name+"-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := client.Download(ctx, r.Archive(), tmp)
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	return Extract(zr, filepath.Join(dataDir, r.Category))
}

// Extract unpacks zr below dest. Entries resolving outside dest are rejected.
func Extract(zr *zip.Reader, dest string) error {
	root := filepath.Clean(dest)
	for _, f := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s: %w", f.Name, dest, internalerr.ErrInvalidInput)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// compile builds lexicon.db from the WordNet files. It reports whether the
// database was written.
func compile(ctx context.Context, dataDir string, force bool) (bool, error) {
	dbPath := sqlite.Path(dataDir)
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}

	src, err := wordnet.Load(wordnet.Dir(dataDir))
	if err != nil {
		return false, err
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return false, err
	}
	if err := st.Import(ctx, src); err != nil {
		st.Close()
		return false, err
	}
	return true, st.Close()
}
