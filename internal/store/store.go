package store

import (
	"context"
	"errors"

	"github.com/itjobhub/importer/internal/model"
)

// ErrDuplicate is returned by InsertJob when the store's uniqueness
// constraint on the link rejects the insert. Callers treat it as a
// successful dedup, never as a failure.
var ErrDuplicate = errors.New("duplicate job")

// Store is the document store behind the pipeline: three logical
// collections (jobs, companies, seniorities). Every write is an
// independent atomic upsert, so a run aborted mid-job leaves no
// inconsistent state.
type Store interface {
	// HasJobWithLink reports whether a job with the given normalized link
	// already exists. This is the authoritative dedup check.
	HasJobWithLink(ctx context.Context, link string) (bool, error)

	// HasJobWithFingerprint reports whether a job with the given content
	// fingerprint already exists (secondary dedup signal).
	HasJobWithFingerprint(ctx context.Context, fingerprint string) (bool, error)

	// InsertJob inserts a job keyed by link and returns its ID.
	// Returns ErrDuplicate if a job with the same link already exists.
	InsertJob(ctx context.Context, job *model.Job) (string, error)

	// UpsertCompany resolves or creates the company for the normalized
	// (name, address) pair and returns its ID.
	UpsertCompany(ctx context.Context, company model.Company) (string, error)

	// UpsertSeniority resolves or creates the seniority level and returns
	// its ID.
	UpsertSeniority(ctx context.Context, level string) (string, error)

	// RecentJobs returns the most recently imported jobs, newest first.
	RecentJobs(ctx context.Context, limit int) ([]model.Job, error)

	Close(ctx context.Context) error
}
