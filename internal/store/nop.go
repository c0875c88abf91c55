package store

import (
	"context"

	"github.com/itjobhub/importer/internal/model"
)

// NopStore is used in dry-run mode. Nothing is persisted, nothing is ever
// a duplicate, so the run shows what would be imported.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasJobWithLink(context.Context, string) (bool, error) { return false, nil }

func (s *NopStore) HasJobWithFingerprint(context.Context, string) (bool, error) {
	return false, nil
}

func (s *NopStore) InsertJob(context.Context, *model.Job) (string, error) { return "dry-run", nil }

func (s *NopStore) UpsertCompany(context.Context, model.Company) (string, error) {
	return "dry-run", nil
}

func (s *NopStore) UpsertSeniority(context.Context, string) (string, error) { return "dry-run", nil }

func (s *NopStore) RecentJobs(context.Context, int) ([]model.Job, error) { return nil, nil }

func (s *NopStore) Close(context.Context) error { return nil }
