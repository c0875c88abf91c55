package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

// Fetcher is a decorator that retries transient failures before delegating
// to the wrapped SourceFetcher.
type Fetcher struct {
	inner      model.SourceFetcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewFetcher wraps a SourceFetcher with retry logic.
func NewFetcher(inner model.SourceFetcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Name returns the wrapped source's name.
func (f *Fetcher) Name() string { return f.inner.Name() }

// Fetch attempts the fetch, retrying on transient errors.
func (f *Fetcher) Fetch(ctx context.Context, language string, since time.Time) ([]model.RawPosting, error) {
	var postings []model.RawPosting
	err := Do(ctx, f.inner.Name(), f.maxRetries, f.baseDelay, f.logger, func(ctx context.Context) error {
		var err error
		postings, err = f.inner.Fetch(ctx, language, since)
		return err
	})
	if err != nil {
		return nil, err
	}
	return postings, nil
}
