package enrich

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/itjobhub/importer/internal/model"
	"github.com/itjobhub/importer/internal/ratelimit"
	"github.com/itjobhub/importer/internal/retry"
)

// Coordinator drives the two enrichment calls per job and merges the
// results. A job always comes out storable: fully enriched when both calls
// succeed, degraded when either fails.
type Coordinator struct {
	categorizer Categorizer
	geocoder    Geocoder
	limiter     *ratelimit.ServiceLimiter
	maxRetries  int
	baseDelay   time.Duration
	logger      *slog.Logger

	// Set after a non-transient failure (bad credentials); subsequent jobs
	// short-circuit to degraded without further calls.
	categorizerDown bool
	geocoderDown    bool
}

// NewCoordinator wires the coordinator. categorizer or geocoder may be nil
// when the corresponding service is not configured; affected jobs are
// stored degraded.
func NewCoordinator(categorizer Categorizer, geocoder Geocoder, limiter *ratelimit.ServiceLimiter, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		categorizer: categorizer,
		geocoder:    geocoder,
		limiter:     limiter,
		maxRetries:  maxRetries,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

// Enrich runs categorization then geocoding on the job, in place. It never
// fails the job: the worst outcome is EnrichmentDegraded with the
// unenriched fields untouched.
func (c *Coordinator) Enrich(ctx context.Context, job *model.Job) {
	insights, ok := c.categorize(ctx, job)
	if !ok {
		job.Enrichment = model.EnrichmentDegraded
		return
	}

	c.merge(job, insights)

	address := geocodeAddress(job, insights)
	if address == "" {
		// Nothing to geocode; the enrichment that was applicable succeeded.
		job.Enrichment = model.EnrichmentEnriched
		return
	}

	loc, ok := c.geocode(ctx, job, address)
	if !ok || loc == nil {
		job.Enrichment = model.EnrichmentDegraded
		return
	}

	job.Geo = model.NewGeoPoint(loc.Lat, loc.Lng)
	job.FormattedAddress = loc.FormattedAddress
	if job.LocationRaw == "" {
		job.LocationRaw = loc.FormattedAddress
	}
	job.Enrichment = model.EnrichmentEnriched
}

func (c *Coordinator) categorize(ctx context.Context, job *model.Job) (*Insights, bool) {
	if c.categorizer == nil || c.categorizerDown {
		return nil, false
	}

	if err := c.limiter.Wait(ctx, "categorizer"); err != nil {
		return nil, false
	}

	var insights *Insights
	err := retry.Do(ctx, "categorize", c.maxRetries, c.baseDelay, c.logger, func(ctx context.Context) error {
		var err error
		insights, err = c.categorizer.Categorize(ctx, job.Title, job.Description)
		return err
	})
	if err != nil {
		if isAuthError(err) {
			// Credentials won't heal mid-run; log once, stop calling.
			c.categorizerDown = true
			c.logger.Error("categorizer disabled for this run", "error", err)
		} else {
			c.logger.Warn("categorization failed",
				"title", job.Title,
				"error", &model.EnrichmentError{Service: "categorizer", Err: err},
			)
		}
		return nil, false
	}
	return insights, true
}

func (c *Coordinator) geocode(ctx context.Context, job *model.Job, address string) (*Location, bool) {
	if c.geocoder == nil || c.geocoderDown {
		return nil, false
	}

	if err := c.limiter.Wait(ctx, "geocoder"); err != nil {
		return nil, false
	}

	var loc *Location
	err := retry.Do(ctx, "geocode", c.maxRetries, c.baseDelay, c.logger, func(ctx context.Context) error {
		var err error
		loc, err = c.geocoder.Geocode(ctx, address)
		return err
	})
	if err != nil {
		if isAuthError(err) {
			c.geocoderDown = true
			c.logger.Error("geocoder disabled for this run", "error", err)
		} else {
			c.logger.Warn("geocoding failed",
				"address", address,
				"error", &model.EnrichmentError{Service: "geocoder", Err: err},
			)
		}
		return nil, false
	}
	return loc, true
}

// merge applies categorization results to the job. Source-provided salary
// wins over the model's estimate.
func (c *Coordinator) merge(job *model.Job, insights *Insights) {
	job.Skills = insights.Skills
	job.Seniority = insights.Seniority
	job.City = insights.City
	job.Country = insights.Country

	if insights.EmploymentType != "" {
		job.EmploymentType = insights.EmploymentType
	}
	if insights.Remote {
		job.Remote = true
	}
	if job.SalaryMin == 0 {
		job.SalaryMin = insights.SalaryMin
	}
	if job.SalaryMax == 0 {
		job.SalaryMax = insights.SalaryMax
	}
}

// geocodeAddress picks the best address candidate: the model's formatted
// address, then city (+country).
func geocodeAddress(job *model.Job, insights *Insights) string {
	if insights.FormattedAddress != "" {
		return insights.FormattedAddress
	}
	if job.City != "" {
		parts := []string{job.City}
		if job.Country != "" {
			parts = append(parts, job.Country)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func isAuthError(err error) bool {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden
	}
	return false
}
