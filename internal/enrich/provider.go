// Package enrich augments deduplicated jobs with AI-derived attributes and
// geocoded locations. Enrichment failures never block ingestion: a job with
// partial data is preferable to a dropped job.
package enrich

import "context"

// Insights is the structured output of one categorization call.
type Insights struct {
	Language         string
	Skills           []string
	Seniority        string // Junior, Mid, Senior, Lead or Unknown
	EmploymentType   string
	Remote           bool
	SalaryMin        int
	SalaryMax        int
	FormattedAddress string
	City             string
	Country          string
}

// Categorizer extracts structured attributes from a job title/description.
type Categorizer interface {
	Categorize(ctx context.Context, title, description string) (*Insights, error)
}

// Location is a resolved geographic position.
type Location struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

// Geocoder resolves a free-form address to coordinates. A nil location with
// a nil error means the provider found no match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}

// LLMProvider sends a prompt to an LLM and returns the raw text response.
// Used only by the categorizer; not exported to the rest of the system.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
