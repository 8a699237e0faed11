package patentdoc

import "context"

// Fetcher retrieves the response body of a patent page.
type Fetcher interface {
	// Fetch returns the exact response body served for the URL.
	// The context controls timeout and cancellation.
	// Returns EUNSUPPORTED if the body arrived in a transport encoding
	// the fetcher does not decode.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
