package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/patentdoc"
	main "github.com/fwojciec/patentdoc/cmd/patentfetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Story: CLI Help and Discovery
//
// Users discover patentfetch capabilities through help output. The CLI
// should make it clear that a patent ID or URL is required and which
// fetchers and formats are available.

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with --help flag
	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	// Then: help is displayed without error
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "patentfetch")
	assert.Contains(t, stdout.String(), "id-or-url")
	assert.Contains(t, stdout.String(), "--fetcher")
}

func TestCLI_ShowsHelpWhenNoArgumentsProvided(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with no arguments
	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	// Then: help is shown but an error is returned
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "patentfetch")
}

// Story: CLI Validation
//
// The CLI rejects unknown fetchers and output formats before any page is
// fetched, and rejects blank targets.

func TestCLI_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: asking for an unsupported output format
	err := m.Run(context.Background(), []string{"--format", "xml", "US1"}, &stdout, &stderr)

	// Then: an error is returned
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestCLI_RejectsUnknownFetcher(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: asking for an unsupported fetcher
	err := m.Run(context.Background(), []string{"--fetcher", "curl", "US1"}, &stdout, &stderr)

	// Then: an error is returned
	require.Error(t, err)
	assert.Contains(t, err.Error(), "curl")
}

func TestCLI_RejectsBlankTarget(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: passing a blank patent ID
	err := m.Run(context.Background(), []string{"--fetcher", "http", "  "}, &stdout, &stderr)

	// Then: the target is rejected as invalid
	require.Error(t, err)
	assert.Equal(t, patentdoc.EINVALID, patentdoc.ErrorCode(err))
	assert.Contains(t, patentdoc.ErrorMessage(err), "required")

	// Then: reporting the error is left to the caller
	assert.Empty(t, stderr.String())
}

// Story: Replaying a saved page
//
// A saved patent page can be parsed offline by passing its file:// URL
// with the http fetcher. Translations are never fetched for URL targets.

const savedPage = `<!DOCTYPE html>
<html><body>
<article>
	<span itemprop="title">Widget</span>
	<h2>Info</h2>
	<dl>
		<dt>Inventor</dt>
		<dd itemprop="inventor" repeat>Alice</dd>
		<dd itemprop="inventor" repeat>Bob</dd>
	</dl>
	<section itemprop="abstract" itemscope>
		<abstract lang="EN">A widget.</abstract>
	</section>
	<section itemprop="mystery" itemscope></section>
</article>
</body></html>`

func writeSavedPage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(savedPage), 0o644))
	return "file://" + path
}

func TestCLI_PrintsDocumentAsJSON(t *testing.T) {
	t.Parallel()

	// Given: a saved page on disk
	url := writeSavedPage(t)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: fetching it with the http fetcher
	err := m.Run(context.Background(), []string{"--fetcher", "http", url}, &stdout, &stderr)

	// Then: the document is printed as indented JSON in page order
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "Widget", doc["title"])
	assert.Equal(t, map[string]any{"inventor": map[string]any{"inventor": []any{"Alice", "Bob"}}}, doc["info"])
	assert.Nil(t, doc["mystery"])
	assert.Contains(t, stdout.String(), "\n  \"title\": \"Widget\"")

	// Then: the unknown section is reported on stderr
	assert.Contains(t, stderr.String(), "kind=unknown_section")
}

func TestCLI_PrintsVariantsAsYAML(t *testing.T) {
	t.Parallel()

	// Given: a saved page on disk
	url := writeSavedPage(t)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: requesting every language variant as YAML
	err := m.Run(context.Background(), []string{"--fetcher", "http", "--format", "yaml", "--languages", url}, &stdout, &stderr)

	// Then: a single original variant is printed without raw HTML
	require.NoError(t, err)
	var variants []map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &variants))
	require.Len(t, variants, 1)
	assert.Equal(t, "en", variants[0]["language"])
	assert.Equal(t, url, variants[0]["url"])
	assert.NotEmpty(t, variants[0]["htmlHash"])
	assert.NotContains(t, variants[0], "html")
}

func TestCLI_DebugLogsTimings(t *testing.T) {
	t.Parallel()

	// Given: a saved page on disk
	url := writeSavedPage(t)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with --debug
	err := m.Run(context.Background(), []string{"--fetcher", "http", "--debug", url}, &stdout, &stderr)

	// Then: fetch, parse and scrape are logged
	require.NoError(t, err)
	log := stderr.String()
	assert.Contains(t, log, "msg=fetch")
	assert.Contains(t, log, "msg=parse")
	assert.Contains(t, log, "msg=scrape")
}
