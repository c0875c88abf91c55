package dedup

import (
	"context"
	"testing"

	"github.com/itjobhub/importer/internal/model"
	"github.com/itjobhub/importer/internal/normalize"
	"github.com/itjobhub/importer/internal/store"
)

// fakeStore is a map-backed store for dedup tests.
type fakeStore struct {
	links        map[string]bool
	fingerprints map[string]bool
	linkChecks   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		links:        make(map[string]bool),
		fingerprints: make(map[string]bool),
	}
}

func (s *fakeStore) HasJobWithLink(_ context.Context, link string) (bool, error) {
	s.linkChecks++
	return s.links[link], nil
}

func (s *fakeStore) HasJobWithFingerprint(_ context.Context, fp string) (bool, error) {
	return s.fingerprints[fp], nil
}

func (s *fakeStore) InsertJob(_ context.Context, job *model.Job) (string, error) {
	if s.links[job.Link] {
		return "", store.ErrDuplicate
	}
	s.links[job.Link] = true
	s.fingerprints[job.Fingerprint] = true
	return "id-1", nil
}

func (s *fakeStore) UpsertCompany(_ context.Context, _ model.Company) (string, error) {
	return "company-1", nil
}

func (s *fakeStore) UpsertSeniority(_ context.Context, _ string) (string, error) {
	return "seniority-1", nil
}

func (s *fakeStore) RecentJobs(_ context.Context, _ int) ([]model.Job, error) {
	return nil, nil
}

func (s *fakeStore) Close(_ context.Context) error { return nil }

func makeJob(rawLink, title string) model.Job {
	job := model.Job{
		Link:        normalize.CanonicalLink(rawLink),
		Title:       title,
		CompanyName: "Acme",
		Language:    "en",
	}
	job.Fingerprint = normalize.Fingerprint(job.Title, job.CompanyName, job.PublishedAt, job.Language)
	return job
}

func TestIsDuplicateAgainstStore(t *testing.T) {
	st := newFakeStore()
	st.links["https://example.com/jobs/1"] = true

	d := New(st)
	dup, err := d.IsDuplicate(context.Background(), makeJob("https://example.com/jobs/1", "Go Developer"))
	if err != nil {
		t.Fatalf("IsDuplicate() error = %v", err)
	}
	if !dup {
		t.Error("job with stored link should be duplicate")
	}
}

func TestIsDuplicateLinkVariants(t *testing.T) {
	st := newFakeStore()
	st.links["https://example.com/jobs/1"] = true
	d := New(st)

	variants := []string{
		"https://EXAMPLE.com/jobs/1",
		"https://example.com/jobs/1/",
		"https://example.com/jobs/1?utm_source=x",
	}
	for _, raw := range variants {
		dup, err := d.IsDuplicate(context.Background(), makeJob(raw, "Go Developer"))
		if err != nil {
			t.Fatalf("IsDuplicate(%q) error = %v", raw, err)
		}
		if !dup {
			t.Errorf("link variant %q should canonicalize to a duplicate", raw)
		}
	}
}

func TestIsDuplicateByFingerprint(t *testing.T) {
	st := newFakeStore()
	d := New(st)

	job := makeJob("https://a.example.com/jobs/1", "Go Developer")
	st.fingerprints[job.Fingerprint] = true

	// Different URL, same content fingerprint.
	republished := makeJob("https://b.example.com/postings/999", "Go Developer")
	dup, err := d.IsDuplicate(context.Background(), republished)
	if err != nil {
		t.Fatalf("IsDuplicate() error = %v", err)
	}
	if !dup {
		t.Error("republished posting should be caught by fingerprint")
	}
}

func TestMarkSeenShortCircuitsStoreLookup(t *testing.T) {
	st := newFakeStore()
	d := New(st)
	job := makeJob("https://example.com/jobs/1", "Go Developer")

	dup, err := d.IsDuplicate(context.Background(), job)
	if err != nil {
		t.Fatalf("IsDuplicate() error = %v", err)
	}
	if dup {
		t.Fatal("fresh job reported duplicate")
	}

	d.MarkSeen(job)
	checksBefore := st.linkChecks

	dup, err = d.IsDuplicate(context.Background(), job)
	if err != nil {
		t.Fatalf("IsDuplicate() error = %v", err)
	}
	if !dup {
		t.Error("marked job should be duplicate within the run")
	}
	if st.linkChecks != checksBefore {
		t.Error("in-run duplicate should not hit the store")
	}
}
