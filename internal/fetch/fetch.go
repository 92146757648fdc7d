// Package fetch downloads lexical resources over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// DefaultTimeout bounds a single download when the client has none.
const DefaultTimeout = 60 * time.Second

// Client fetches files relative to a base URL.
type Client struct {
	BaseURL string
	Timeout time.Duration

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// URL resolves a path against the base URL.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Download streams the file at path into w and returns the bytes copied.
// A 404 wraps ErrNotFound.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	if c.BaseURL == "" {
		return 0, fmt.Errorf("fetch: base URL required: %w", internalerr.ErrInvalidConfig)
	}
	url := c.URL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("fetch %s: %w", url, internalerr.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("fetch %s: %w", url, err)
	}
	c.logger().Debug("downloaded",
		zap.String("url", url),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)),
	)
	return n, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
