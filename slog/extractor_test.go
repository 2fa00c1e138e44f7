package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/mock"
	fsslog "github.com/fwojciec/feedscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	opts := feedscrape.ExtractOptions{PageURL: "https://www.linkedin.com/company/acme/posts/", MaxPosts: 10}

	t.Run("logs strategy, counts and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PostExtractor{
			ExtractFn: func(_ feedscrape.Document, _ feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
				return &feedscrape.ExtractResult{
					Strategy:   "div.feed-shared-update-v2",
					Containers: 3,
					Posts:      []*feedscrape.Post{{Position: 1, Text: "Acme is hiring engineers", URL: opts.PageURL}},
					Skipped: []feedscrape.Skip{
						{Index: 1, Identity: "urn:li:activity:1", Reason: feedscrape.SkipDuplicateIdentity},
						{Index: 2, Reason: feedscrape.SkipRepost},
					},
				}, nil
			},
		}

		ext := fsslog.NewLoggingExtractor(inner, logger)
		result, err := ext.Extract(&mock.Document{}, opts)

		require.NoError(t, err)
		assert.Len(t, result.Posts, 1)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "strategy=div.feed-shared-update-v2")
		assert.Contains(t, output, "containers=3")
		assert.Contains(t, output, "posts=1")
		assert.Contains(t, output, "skipped=2")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "skip container")
	})

	t.Run("logs each skipped container at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.PostExtractor{
			ExtractFn: func(_ feedscrape.Document, _ feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
				return &feedscrape.ExtractResult{
					Skipped: []feedscrape.Skip{
						{Index: 4, Identity: "urn:li:activity:7", Reason: feedscrape.SkipContainerFault, Err: errors.New("node detached")},
					},
				}, nil
			},
		}

		ext := fsslog.NewLoggingExtractor(inner, logger)
		_, err := ext.Extract(&mock.Document{}, opts)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="skip container"`)
		assert.Contains(t, output, "index=4")
		assert.Contains(t, output, "identity=urn:li:activity:7")
		assert.Contains(t, output, "reason=container_fault")
		assert.Contains(t, output, `err="node detached"`)
	})

	t.Run("warns when the debug dump failed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PostExtractor{
			ExtractFn: func(_ feedscrape.Document, _ feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
				return &feedscrape.ExtractResult{DumpErr: errors.New("read-only file system")}, nil
			},
		}

		ext := fsslog.NewLoggingExtractor(inner, logger)
		_, err := ext.Extract(&mock.Document{}, opts)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, `err="read-only file system"`)
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PostExtractor{
			ExtractFn: func(_ feedscrape.Document, _ feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
				return nil, feedscrape.Errorf(feedscrape.EINVALID, "max posts must be at least 1")
			},
		}

		ext := fsslog.NewLoggingExtractor(inner, logger)
		_, err := ext.Extract(&mock.Document{}, opts)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "max posts must be at least 1")
	})
}
