package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestJoobleFetchPostsQuery(t *testing.T) {
	var gotPath string
	var gotBody joobleRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"jobs": []map[string]any{
				{
					"title":    "Développeur Go",
					"company":  "",
					"snippet":  "Construire des services",
					"link":     "https://jooble.example/jobs/1",
					"location": "Paris",
					"source":   "example.fr",
					"updated":  "2024-06-10T08:00:00Z",
				},
			},
		})
	}))
	defer server.Close()

	j := NewJooble("secret-key", "developer", server.Client())
	j.baseURL = server.URL + "/api/"

	since := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	postings, err := j.Fetch(context.Background(), "fr", since)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if !strings.HasSuffix(gotPath, "/api/secret-key") {
		t.Errorf("path = %q, want api key in path", gotPath)
	}
	if gotBody.Keywords != "developer" {
		t.Errorf("keywords = %q", gotBody.Keywords)
	}
	if gotBody.Location != "France" {
		t.Errorf("location = %q, want country for language", gotBody.Location)
	}
	if gotBody.DateFrom != "2024-06-09" {
		t.Errorf("dateFrom = %q", gotBody.DateFrom)
	}

	if len(postings) != 1 {
		t.Fatalf("got %d postings, want 1", len(postings))
	}
	p := postings[0]
	if p.CompanyName != "Unknown" {
		t.Errorf("CompanyName = %q, want fallback for empty company", p.CompanyName)
	}
	if p.Source != "Jooble (example.fr)" {
		t.Errorf("Source = %q", p.Source)
	}
	if p.Description != "Construire des services" {
		t.Errorf("Description = %q, want snippet", p.Description)
	}
}
