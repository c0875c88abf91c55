package model

import (
	"context"
	"time"
)

// EnrichmentStatus records how far AI/geocode enrichment got for a job.
type EnrichmentStatus string

const (
	EnrichmentPending  EnrichmentStatus = "pending"
	EnrichmentEnriched EnrichmentStatus = "enriched"
	EnrichmentDegraded EnrichmentStatus = "degraded"
)

// GeoPoint is a GeoJSON Point as stored in the document store.
// Coordinates are [lng, lat] per the GeoJSON spec.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a lat/lng pair.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Job is the canonical posting used throughout the pipeline and persisted
// to the jobs collection, keyed by its normalized link.
type Job struct {
	ID          string `bson:"-"` // assigned by the store on insert
	Link        string `bson:"link"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`

	CompanyName string `bson:"company_name,omitempty"`
	CompanyLogo string `bson:"-"` // carried to the company upsert, not stored on the job
	CompanyID   string `bson:"company_id,omitempty"`

	LocationRaw      string    `bson:"location_raw,omitempty"`
	FormattedAddress string    `bson:"formatted_address,omitempty"`
	City             string    `bson:"city,omitempty"`
	Country          string    `bson:"country,omitempty"`
	Geo              *GeoPoint `bson:"location_geo,omitempty"`

	Skills         []string `bson:"skills,omitempty"`
	Seniority      string   `bson:"seniority,omitempty"` // label; SeniorityID references the entity
	SeniorityID    string   `bson:"seniority_id,omitempty"`
	EmploymentType string   `bson:"employment_type,omitempty"`
	Remote         bool     `bson:"remote"`
	SalaryMin      int      `bson:"salary_min,omitempty"`
	SalaryMax      int      `bson:"salary_max,omitempty"`

	Source      string    `bson:"source"`
	Language    string    `bson:"language"`
	PublishedAt time.Time `bson:"published_at"`
	Fingerprint string    `bson:"fingerprint"`

	Enrichment EnrichmentStatus `bson:"enrichment_status"`
	CreatedAt  time.Time        `bson:"created_at"`
}

// Company is the shared employer entity, one document per normalized
// (name, address) pair. Many jobs reference the same company.
type Company struct {
	ID      string    `bson:"-"`
	Name    string    `bson:"name"`
	Address string    `bson:"address,omitempty"`
	Logo    string    `bson:"logo_url,omitempty"`
	Geo     *GeoPoint `bson:"location_geo,omitempty"`

	TrustScore   float64   `bson:"trustScore"`
	TotalRatings int       `bson:"totalRatings"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Seniority is a categorical reference entity (Junior/Mid/Senior/Lead/Unknown),
// created lazily on first use and never deleted by this pipeline.
type Seniority struct {
	ID        string    `bson:"-"`
	Level     string    `bson:"level"`
	CreatedAt time.Time `bson:"created_at"`
}

// RawPosting is a posting as one source produced it, before normalization.
// Fields are best-effort; the Normalizer decides what is usable.
type RawPosting struct {
	Title       string
	Description string
	Link        string
	LocationRaw string
	CompanyName string
	CompanyLogo string
	Source      string
	Language    string
	PublishedAt string // raw date string in whatever format the source uses
	SalaryMin   int
	SalaryMax   int
	Remote      bool
}

// SourceFetcher produces raw postings from one external source for a
// language and lookback date. Implementations are read-only.
type SourceFetcher interface {
	Name() string
	Fetch(ctx context.Context, language string, since time.Time) ([]RawPosting, error)
}
