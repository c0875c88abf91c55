package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestArbeitnowFetchConvertsUnixDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"title":        "Go Developer",
					"company_name": "Acme",
					"url":          "https://arbeitnow.example/jobs/1",
					"location":     "Berlin",
					"remote":       true,
					"created_at":   1718010000, // 2024-06-10T09:00:00Z
				},
			},
		})
	}))
	defer server.Close()

	a := NewArbeitnow(server.Client())
	a.apiURL = server.URL

	postings, err := a.Fetch(context.Background(), "de", time.Now())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("got %d postings, want 1", len(postings))
	}

	p := postings[0]
	if p.PublishedAt != "2024-06-10T09:00:00Z" {
		t.Errorf("PublishedAt = %q, want converted unix timestamp", p.PublishedAt)
	}
	if !p.Remote {
		t.Error("Remote flag lost")
	}
}

func TestArbeitnowSkipsUnsupportedLanguages(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	a := NewArbeitnow(server.Client())
	a.apiURL = server.URL

	postings, err := a.Fetch(context.Background(), "it", time.Now())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(postings) != 0 || called {
		t.Error("unsupported language should return nothing without a request")
	}
}
