package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// File reads reports from the local filesystem.
type File struct {
	Stdin io.Reader // read for location "-"; defaults to os.Stdin
}

// Fetch returns the contents of the file at path.
func (f File) Fetch(_ context.Context, path string) (string, error) {
	if path == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

// HTTP downloads reports over HTTP(S).
type HTTP struct {
	httpCli *http.Client
}

// NewHTTP creates an HTTP source with the given request timeout.
func NewHTTP(timeout time.Duration) *HTTP {
	return &HTTP{httpCli: &http.Client{Timeout: timeout}}
}

// Fetch downloads url. A 404 or 410 response wraps fs.ErrNotExist.
func (h *HTTP) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := h.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching report: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return "", fmt.Errorf("report %s: %w", url, fs.ErrNotExist)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

// Auto sends http:// and https:// locations to HTTP and everything else to File.
type Auto struct {
	File File
	HTTP *HTTP
}

// Fetch dispatches on the location's scheme.
func (a Auto) Fetch(ctx context.Context, location string) (string, error) {
	if IsURL(location) {
		h := a.HTTP
		if h == nil {
			h = NewHTTP(60 * time.Second)
		}
		return h.Fetch(ctx, location)
	}
	return a.File.Fetch(ctx, location)
}

// IsURL reports whether location is an http or https URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
