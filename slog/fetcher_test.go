package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/patentdoc"
	"github.com/fwojciec/patentdoc/mock"
	patentslog "github.com/fwojciec/patentdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageFetcher returns a fixed patent page body.
func pageFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return "<article></article>", nil
		},
	}
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs patent ID and language of a translation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		fetcher := patentslog.NewLoggingFetcher(pageFetcher(), logger)
		html, err := fetcher.Fetch(context.Background(), patentdoc.PatentURL("US9876543B2", "de"))

		require.NoError(t, err)
		assert.Equal(t, "<article></article>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "patent=US9876543B2")
		assert.Contains(t, output, "language=de")
		assert.Contains(t, output, "bytes=19")
		assert.Contains(t, output, "duration=")
	})

	t.Run("marks the original-language page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		fetcher := patentslog.NewLoggingFetcher(pageFetcher(), logger)
		_, err := fetcher.Fetch(context.Background(), patentdoc.PatentURL("US9876543B2", ""))

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "language=original")
	})

	t.Run("logs only the URL for a saved page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		fetcher := patentslog.NewLoggingFetcher(pageFetcher(), logger)
		_, err := fetcher.Fetch(context.Background(), "file:///tmp/US9876543B2.html")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "url=file:///tmp/US9876543B2.html")
		assert.NotContains(t, output, "patent=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", patentdoc.Errorf(patentdoc.EUNSUPPORTED, "content encoding br")
			},
		}

		fetcher := patentslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), patentdoc.PatentURL("US1", "ja"))

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "code=unsupported")
	})

	t.Run("logs plain errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection reset")
			},
		}

		fetcher := patentslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), patentdoc.PatentURL("US1", ""))

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="connection reset"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := patentslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
		assert.Empty(t, buf.String())
	})
}
