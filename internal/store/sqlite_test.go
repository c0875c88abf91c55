package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { st.Close(context.Background()) })
	return st
}

func testJob(link string) *model.Job {
	return &model.Job{
		Link:        link,
		Title:       "Go Developer",
		Description: "Build services",
		Source:      "test",
		Language:    "en",
		PublishedAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		Fingerprint: "fp-" + link,
		Enrichment:  model.EnrichmentEnriched,
		Skills:      []string{"Go", "SQL"},
	}
}

func TestInsertJobAndLookups(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	job := testJob("https://example.com/jobs/1")

	id, err := st.InsertJob(ctx, job)
	if err != nil {
		t.Fatalf("InsertJob() error = %v", err)
	}
	if id == "" {
		t.Error("InsertJob() returned empty id")
	}

	ok, err := st.HasJobWithLink(ctx, job.Link)
	if err != nil || !ok {
		t.Errorf("HasJobWithLink() = %v, %v; want true", ok, err)
	}

	ok, err = st.HasJobWithFingerprint(ctx, job.Fingerprint)
	if err != nil || !ok {
		t.Errorf("HasJobWithFingerprint() = %v, %v; want true", ok, err)
	}

	ok, err = st.HasJobWithLink(ctx, "https://example.com/jobs/other")
	if err != nil || ok {
		t.Errorf("HasJobWithLink(unknown) = %v, %v; want false", ok, err)
	}
}

func TestInsertJobDuplicateLink(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if _, err := st.InsertJob(ctx, testJob("https://example.com/jobs/1")); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := st.InsertJob(ctx, testJob("https://example.com/jobs/1"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("second insert error = %v, want ErrDuplicate", err)
	}
}

func TestUpsertCompanyIsStable(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	company := model.Company{Name: "Acme", Address: "Milan, Italy"}

	id1, err := st.UpsertCompany(ctx, company)
	if err != nil {
		t.Fatalf("UpsertCompany() error = %v", err)
	}
	id2, err := st.UpsertCompany(ctx, company)
	if err != nil {
		t.Fatalf("UpsertCompany() second call error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("ids differ across upserts: %q vs %q", id1, id2)
	}

	// Same name at a different address is a distinct company.
	id3, err := st.UpsertCompany(ctx, model.Company{Name: "Acme", Address: "Berlin, Germany"})
	if err != nil {
		t.Fatalf("UpsertCompany() error = %v", err)
	}
	if id3 == id1 {
		t.Error("different address should produce a different company")
	}
}

func TestUpsertSeniorityIsStable(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id1, err := st.UpsertSeniority(ctx, "Senior")
	if err != nil {
		t.Fatalf("UpsertSeniority() error = %v", err)
	}
	id2, err := st.UpsertSeniority(ctx, "Senior")
	if err != nil {
		t.Fatalf("UpsertSeniority() second call error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("ids differ across upserts: %q vs %q", id1, id2)
	}

	other, err := st.UpsertSeniority(ctx, "Junior")
	if err != nil {
		t.Fatalf("UpsertSeniority() error = %v", err)
	}
	if other == id1 {
		t.Error("distinct levels should have distinct ids")
	}
}

func TestRecentJobs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, link := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		if _, err := st.InsertJob(ctx, testJob(link)); err != nil {
			t.Fatalf("InsertJob(%s): %v", link, err)
		}
	}

	jobs, err := st.RecentJobs(ctx, 2)
	if err != nil {
		t.Fatalf("RecentJobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("RecentJobs() returned %d jobs, want 2", len(jobs))
	}
	if jobs[0].Link != "https://example.com/3" {
		t.Errorf("newest first: got %q", jobs[0].Link)
	}
	if len(jobs[0].Skills) != 2 {
		t.Errorf("Skills round trip = %v", jobs[0].Skills)
	}
}
