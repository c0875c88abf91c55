// Package normalize maps raw source postings into canonical jobs: required
// field validation, date parsing across source-specific formats, link
// canonicalization and description cleanup.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

// Posting converts one raw posting into an unenriched canonical Job.
// Link, title and a parsable published date are required; anything else is
// best effort. Returns a ValidationError when a required field is unusable.
func Posting(raw model.RawPosting) (model.Job, error) {
	if strings.TrimSpace(raw.Link) == "" {
		return model.Job{}, &model.ValidationError{Field: "link", Reason: "is missing"}
	}
	if strings.TrimSpace(raw.Title) == "" {
		return model.Job{}, &model.ValidationError{Field: "title", Reason: "is missing"}
	}

	published, ok := ParseDate(raw.PublishedAt)
	if !ok {
		return model.Job{}, &model.ValidationError{
			Field:  "published_at",
			Reason: fmt.Sprintf("unparsable date %q", raw.PublishedAt),
		}
	}

	job := model.Job{
		Link:        CanonicalLink(raw.Link),
		Title:       CleanText(raw.Title),
		Description: CleanDescription(raw.Description),
		CompanyName: CleanText(raw.CompanyName),
		CompanyLogo: raw.CompanyLogo,
		LocationRaw: CleanText(raw.LocationRaw),
		Remote:      raw.Remote,
		SalaryMin:   raw.SalaryMin,
		SalaryMax:   raw.SalaryMax,
		Source:      raw.Source,
		Language:    raw.Language,
		PublishedAt: published,
		Enrichment:  model.EnrichmentPending,
	}
	job.Fingerprint = Fingerprint(job.Title, job.CompanyName, job.PublishedAt, job.Language)
	return job, nil
}

// dateFormats covers the formats observed across sources: ISO variants,
// RSS pubDate styles and plain dates.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate parses a source date string into UTC. The second return value
// is false when no known format matches.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CleanText collapses whitespace (including non-breaking spaces) and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// Fingerprint derives the secondary dedup key from the normalized title,
// company, published day and language. Two postings for the same job
// republished under different URLs collide here.
func Fingerprint(title, company string, published time.Time, language string) string {
	payload := strings.Join([]string{
		strings.ToLower(CleanText(title)),
		strings.ToLower(CleanText(company)),
		published.UTC().Format("2006-01-02"),
		strings.ToLower(language),
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
