// Package rod fetches patent pages through a headless Chrome browser.
package rod

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fwojciec/patentdoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements patentdoc.Fetcher at compile time.
var _ patentdoc.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves the response body of the main document a URL
// navigates to. The body is captured from the browser's network layer,
// so it is the HTML the server sent rather than the DOM after scripts
// ran. One browser serves every page of a scrape: the original page and
// its translations load as tabs of the same process.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// NewFetcher launches a headless browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	// Translations are fetched in parallel tabs, so background throttling
	// is off to let every tab load at full speed.
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the document's response body.
// Returns EUNSUPPORTED if the browser only exposes the body base64
// encoded, and ENOTFOUND if the server answers 404.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", patentdoc.Errorf(patentdoc.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	defer func() { _ = page.Close() }()

	body, err := responseBody(page.Context(ctx), url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	return body, nil
}

// document tracks the main document request while a page loads.
type document struct {
	requestID proto.NetworkRequestID
	status    int
	failure   string
}

// responseBody navigates page to url and reads the main document's body
// once it has finished loading.
func responseBody(page *rod.Page, url string) (string, error) {
	var doc document

	// EachEvent subscribes (and enables the Network domain) immediately,
	// so no event between Navigate and wait is lost.
	wait := page.EachEvent(
		func(e *proto.NetworkResponseReceived) {
			if doc.requestID == "" && e.Type == proto.NetworkResourceTypeDocument {
				doc.requestID = e.RequestID
				doc.status = e.Response.Status
			}
		},
		func(e *proto.NetworkLoadingFinished) bool {
			return doc.requestID != "" && e.RequestID == doc.requestID
		},
		func(e *proto.NetworkLoadingFailed) bool {
			if doc.requestID == "" || e.RequestID != doc.requestID {
				return false
			}
			doc.failure = e.ErrorText
			return true
		},
	)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	wait()

	switch {
	case doc.requestID == "":
		return "", fmt.Errorf("no document response for %s", url)
	case doc.failure != "":
		return "", fmt.Errorf("loading %s: %s", url, doc.failure)
	case doc.status == http.StatusNotFound:
		return "", patentdoc.Errorf(patentdoc.ENOTFOUND, "page not found: %s", url)
	case doc.status >= http.StatusBadRequest:
		return "", fmt.Errorf("fetching %s: status %d", url, doc.status)
	}

	res, err := proto.NetworkGetResponseBody{RequestID: doc.requestID}.Call(page)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if res.Base64Encoded {
		return "", patentdoc.Errorf(patentdoc.EUNSUPPORTED, "response body for %s is not text", url)
	}
	return res.Body, nil
}

// Close shuts down the browser and its launcher. Close is safe to call
// multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}
