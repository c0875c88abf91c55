package model

import (
	"fmt"
	"time"
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// FetchError marks a failure scoped to a single source: unreachable,
// rate-limited past retries, or a malformed payload. The run skips the
// source and continues.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError marks a single raw posting that cannot become a canonical
// job (missing required field or unparsable date). The record is dropped.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid posting: %s %s", e.Field, e.Reason)
}

// EnrichmentError marks an AI or geocoding call that failed or returned
// unusable data. The job proceeds to storage as degraded.
type EnrichmentError struct {
	Service string // "categorizer" or "geocoder"
	Err     error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// PersistenceError marks a store write that failed for a reason other than
// a uniqueness conflict. Uniqueness conflicts are not errors: they are a
// successful dedup.
type PersistenceError struct {
	Entity string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
