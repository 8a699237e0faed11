// Package http provides a plain HTTP implementation of patentdoc.Fetcher.
// It also serves file:// URLs, which makes saved pages easy to replay.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/patentdoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements patentdoc.Fetcher at compile time.
var _ patentdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies with HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	transport *http.Transport
	timeout   time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.transport = http.DefaultTransport.(*http.Transport).Clone()
	f.transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	f.client = &http.Client{
		Transport: f.transport,
		Timeout:   f.timeout,
	}

	return f
}

// Fetch retrieves the body served for the given URL.
// gzip is negotiated and decoded by the transport; any other content
// encoding left on the response is reported as EUNSUPPORTED.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", patentdoc.Errorf(patentdoc.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", patentdoc.Errorf(patentdoc.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if enc := strings.TrimSpace(resp.Header.Get("Content-Encoding")); enc != "" && !strings.EqualFold(enc, "identity") {
		return "", patentdoc.Errorf(patentdoc.EUNSUPPORTED, "unsupported content encoding %q for %s", enc, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections held by the transport.
func (f *Fetcher) Close() error {
	f.transport.CloseIdleConnections()
	return nil
}
