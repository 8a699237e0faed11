package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/patentdoc"
	main "github.com/fwojciec/patentdoc/cmd/patentfetch"
	"github.com/fwojciec/patentdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Fetch command output
//
// The fetch command writes the scraped document to stdout and returns
// failures to its caller, which reports them once.

func TestFetchCmd_ReturnsScrapeErrorWithoutPrinting(t *testing.T) {
	t.Parallel()

	// Given: a scraper that fails with a structural error
	scrapeErr := patentdoc.Errorf(patentdoc.ESTRUCTURE, "no <article> element")
	deps, stdout, stderr := fetchDeps(func(context.Context, patentdoc.Target) ([]*patentdoc.Variant, error) {
		return nil, scrapeErr
	})
	cmd := &main.FetchCmd{Target: patentdoc.Target{ID: "US1", URL: patentdoc.PatentURL("US1", "")}, Format: "json"}

	// When: running the fetch command
	err := cmd.Run(deps)

	// Then: the error is returned unchanged and nothing is written
	require.ErrorIs(t, err, scrapeErr)
	assert.Empty(t, stderr.String())
	assert.Empty(t, stdout.String())
}

func TestFetchCmd_ReportsMissingVariants(t *testing.T) {
	t.Parallel()

	// Given: a scraper that finds nothing
	deps, _, stderr := fetchDeps(func(context.Context, patentdoc.Target) ([]*patentdoc.Variant, error) {
		return nil, nil
	})
	cmd := &main.FetchCmd{Target: patentdoc.Target{URL: "file:///tmp/page.html"}, Format: "json"}

	// When: running the fetch command
	err := cmd.Run(deps)

	// Then: a not-found error is returned
	assert.Equal(t, patentdoc.ENOTFOUND, patentdoc.ErrorCode(err))
	assert.Empty(t, stderr.String())
}

func TestFetchCmd_PrintsOriginalDocument(t *testing.T) {
	t.Parallel()

	// Given: a scraper returning the original page and a translation
	original := patentdoc.NewNode()
	original.Set("title", "Widget")
	translated := patentdoc.NewNode()
	translated.Set("title", "Vorrichtung")
	deps, stdout, _ := fetchDeps(func(context.Context, patentdoc.Target) ([]*patentdoc.Variant, error) {
		return []*patentdoc.Variant{
			{Language: "en", Data: original, HTML: "<article></article>"},
			{Language: "de", Data: translated, HTML: "<article></article>"},
		}, nil
	})
	cmd := &main.FetchCmd{Target: patentdoc.Target{ID: "US1", URL: patentdoc.PatentURL("US1", "")}, Format: "json"}

	// When: running the fetch command
	err := cmd.Run(deps)

	// Then: only the original document is printed
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, map[string]any{"title": "Widget"}, doc)
}

func fetchDeps(fn func(context.Context, patentdoc.Target) ([]*patentdoc.Variant, error)) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	deps := &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  &stdout,
		Stderr:  &stderr,
		Scraper: &mock.Scraper{ScrapeFn: fn},
	}
	return deps, &stdout, &stderr
}
