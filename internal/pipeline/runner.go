// Package pipeline orchestrates one import run: for each language, walk the
// configured sources in order and push every posting through
// normalize → relevance → recency → dedup → enrich → persist.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/itjobhub/importer/internal/dedup"
	"github.com/itjobhub/importer/internal/filter"
	"github.com/itjobhub/importer/internal/model"
	"github.com/itjobhub/importer/internal/normalize"
	"github.com/itjobhub/importer/internal/store"
	"github.com/itjobhub/importer/internal/window"
)

// Enricher adds AI and geocoding data to a job in place. It must not fail
// the job; degradation is recorded on the job itself.
type Enricher interface {
	Enrich(ctx context.Context, job *model.Job)
}

// Runner owns one import pipeline: the source set, the filters and the
// store, reused across runs when scheduled.
type Runner struct {
	sources  []model.SourceFetcher
	store    store.Store
	window   *window.Filter
	keywords *filter.KeywordFilter
	enricher Enricher

	languages []string
	limit     int // newly stored jobs per language; 0 means unlimited
	days      int
	logger    *slog.Logger
	now       func() time.Time
}

// Options bundles the run parameters that vary between invocations.
type Options struct {
	Languages []string
	Limit     int
	Days      int
}

// NewRunner wires a pipeline. Sources are walked in the given order.
func NewRunner(
	sources []model.SourceFetcher,
	st store.Store,
	keywords *filter.KeywordFilter,
	enricher Enricher,
	opts Options,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		sources:   sources,
		store:     st,
		window:    window.New(opts.Days),
		keywords:  keywords,
		enricher:  enricher,
		languages: opts.Languages,
		limit:     opts.Limit,
		days:      opts.Days,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one full import across all configured languages and returns
// the run's statistics. Source and persistence failures are absorbed into
// the stats; the returned error is reserved for context cancellation.
func (r *Runner) Run(ctx context.Context) (*RunStats, error) {
	stats := NewRunStats()
	stats.StartedAt = r.now()
	defer func() { stats.FinishedAt = r.now() }()

	// One dedup set per run: sources republish each other's postings and
	// the same posting often shows up under several languages.
	deduper := dedup.New(r.store)
	since := r.sinceDate()

	for _, lang := range r.languages {
		langStats := stats.Language(lang)

		for _, src := range r.sources {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if langStats.LimitHit {
				break
			}

			srcStats := langStats.Source(src.Name())
			postings, err := src.Fetch(ctx, lang, since)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return stats, err
				}
				srcStats.FetchFailed = true
				r.logger.Error("source fetch failed, skipping source",
					"language", lang,
					"error", &model.FetchError{Source: src.Name(), Err: err},
				)
				continue
			}

			r.logger.Info("fetched postings",
				"source", src.Name(),
				"language", lang,
				"count", len(postings),
			)

			for _, raw := range postings {
				if err := ctx.Err(); err != nil {
					return stats, err
				}
				srcStats.Fetched++

				r.process(ctx, raw, deduper, langStats, srcStats)

				if r.limit > 0 && langStats.Stored >= r.limit {
					langStats.LimitHit = true
					r.logger.Info("import limit reached",
						"language", lang,
						"limit", r.limit,
					)
					break
				}
			}
		}
	}

	return stats, nil
}

// process takes one raw posting through the full pipeline and records the
// outcome on the stats blocks.
func (r *Runner) process(ctx context.Context, raw model.RawPosting, deduper *dedup.Deduplicator, langStats *LanguageStats, srcStats *SourceStats) {
	job, err := normalize.Posting(raw)
	if err != nil {
		srcStats.Invalid++
		r.logger.Debug("skipping invalid posting",
			"source", raw.Source,
			"link", raw.Link,
			"error", err,
		)
		return
	}

	if !r.keywords.Match(job.Title) {
		srcStats.Irrelevant++
		return
	}

	if !r.window.Admit(job.PublishedAt) {
		srcStats.Stale++
		return
	}

	dup, err := deduper.IsDuplicate(ctx, job)
	if err != nil {
		srcStats.Failed++
		r.logger.Error("dedup check failed", "link", job.Link, "error", err)
		return
	}
	if dup {
		srcStats.Duplicate++
		return
	}

	r.enricher.Enrich(ctx, &job)

	r.resolveEntities(ctx, &job)
	job.CreatedAt = r.now().UTC()

	if _, err := r.insertWithRetry(ctx, &job); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to another writer; the job exists, which is
			// exactly what we wanted.
			srcStats.Duplicate++
			deduper.MarkSeen(job)
			return
		}
		srcStats.Failed++
		r.logger.Error("storing job failed",
			"link", job.Link,
			"error", &model.PersistenceError{Entity: "job", Err: err},
		)
		return
	}

	deduper.MarkSeen(job)
	srcStats.Stored++
	langStats.Stored++
	switch job.Enrichment {
	case model.EnrichmentEnriched:
		srcStats.Enriched++
	default:
		srcStats.Degraded++
	}

	r.logger.Info("stored job",
		"title", job.Title,
		"company", job.CompanyName,
		"source", job.Source,
		"language", job.Language,
		"enrichment", string(job.Enrichment),
	)
}

// resolveEntities upserts the job's company and seniority references.
// Failures leave the reference empty; the job is still stored.
func (r *Runner) resolveEntities(ctx context.Context, job *model.Job) {
	if job.CompanyName != "" {
		company := model.Company{
			Name:    job.CompanyName,
			Address: job.FormattedAddress,
			Logo:    job.CompanyLogo,
			Geo:     job.Geo,
		}
		id, err := r.store.UpsertCompany(ctx, company)
		if err != nil {
			r.logger.Warn("company upsert failed",
				"company", job.CompanyName,
				"error", &model.PersistenceError{Entity: "company", Err: err},
			)
		} else {
			job.CompanyID = id
		}
	}

	if job.Seniority != "" {
		id, err := r.store.UpsertSeniority(ctx, job.Seniority)
		if err != nil {
			r.logger.Warn("seniority upsert failed",
				"level", job.Seniority,
				"error", &model.PersistenceError{Entity: "seniority", Err: err},
			)
		} else {
			job.SeniorityID = id
		}
	}
}

// insertWithRetry attempts the job insert, retrying once on a transient
// store failure. ErrDuplicate is passed through untouched.
func (r *Runner) insertWithRetry(ctx context.Context, job *model.Job) (string, error) {
	id, err := r.store.InsertJob(ctx, job)
	if err == nil || errors.Is(err, store.ErrDuplicate) {
		return id, err
	}

	r.logger.Warn("job insert failed, retrying once", "link", job.Link, "error", err)
	return r.store.InsertJob(ctx, job)
}

// sinceDate is the lower window bound passed to sources that support
// server-side date filtering.
func (r *Runner) sinceDate() time.Time {
	now := r.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -r.days)
}
