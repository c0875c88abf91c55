// Package dedup guarantees at-most-one stored job per logical posting.
// The store lookup is authoritative; an in-run set of links and
// fingerprints already seen is a fast path layered on top, since one run
// crosses many sources that frequently republish each other's postings.
package dedup

import (
	"context"
	"fmt"

	"github.com/itjobhub/importer/internal/model"
	"github.com/itjobhub/importer/internal/store"
)

// Deduplicator answers "does this job already exist" against the store,
// by normalized link first and content fingerprint second.
type Deduplicator struct {
	store            store.Store
	seenLinks        map[string]bool
	seenFingerprints map[string]bool
}

// New creates a deduplicator bound to the given store for one run.
func New(st store.Store) *Deduplicator {
	return &Deduplicator{
		store:            st,
		seenLinks:        make(map[string]bool),
		seenFingerprints: make(map[string]bool),
	}
}

// IsDuplicate reports whether the candidate job already exists, either in
// this run or in the store.
func (d *Deduplicator) IsDuplicate(ctx context.Context, job model.Job) (bool, error) {
	if d.seenLinks[job.Link] || d.seenFingerprints[job.Fingerprint] {
		return true, nil
	}

	exists, err := d.store.HasJobWithLink(ctx, job.Link)
	if err != nil {
		return false, fmt.Errorf("dedup link check: %w", err)
	}
	if exists {
		d.seenLinks[job.Link] = true
		return true, nil
	}

	exists, err = d.store.HasJobWithFingerprint(ctx, job.Fingerprint)
	if err != nil {
		return false, fmt.Errorf("dedup fingerprint check: %w", err)
	}
	if exists {
		d.seenFingerprints[job.Fingerprint] = true
		return true, nil
	}

	return false, nil
}

// MarkSeen records a job in the in-run fast path after it was stored (or
// confirmed stored by a uniqueness conflict).
func (d *Deduplicator) MarkSeen(job model.Job) {
	d.seenLinks[job.Link] = true
	d.seenFingerprints[job.Fingerprint] = true
}
