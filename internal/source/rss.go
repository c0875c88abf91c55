package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/itjobhub/importer/internal/model"
)

// RSS fetches postings from a per-language list of RSS/Atom job feeds.
// A failing feed is logged and skipped; the fetch fails only when every
// configured feed for the language fails.
type RSS struct {
	feeds  map[string][]string // language -> feed URLs
	parser *gofeed.Parser
	logger *slog.Logger
}

func NewRSS(feeds map[string][]string, logger *slog.Logger) *RSS {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	return &RSS{feeds: feeds, parser: parser, logger: logger}
}

func (r *RSS) Name() string { return "RSS Feed" }

func (r *RSS) Fetch(ctx context.Context, language string, _ time.Time) ([]model.RawPosting, error) {
	urls := r.feeds[language]
	if len(urls) == 0 {
		return nil, nil
	}

	var (
		postings []model.RawPosting
		lastErr  error
		failed   int
	)
	for _, feedURL := range urls {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			r.logger.Warn("rss feed failed", "url", feedURL, "error", err)
			lastErr = err
			failed++
			continue
		}

		for _, item := range feed.Items {
			published := item.Published
			if item.PublishedParsed != nil {
				published = item.PublishedParsed.UTC().Format(time.RFC3339)
			}

			company := "Unknown"
			if item.Author != nil && item.Author.Name != "" {
				company = item.Author.Name
			}

			postings = append(postings, model.RawPosting{
				Title:       item.Title,
				Description: item.Description,
				Link:        item.Link,
				CompanyName: company,
				Source:      "RSS Feed",
				Language:    language,
				PublishedAt: published,
			})
		}
	}

	if failed == len(urls) && lastErr != nil {
		return nil, lastErr
	}
	return postings, nil
}
