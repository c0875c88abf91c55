package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

const joobleBaseURL = "https://jooble.org/api/"

// joobleLocations narrows the aggregator to a country for non-English runs.
var joobleLocations = map[string]string{
	"it": "Italy",
	"es": "Spain",
	"fr": "France",
	"de": "Germany",
}

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
}

type joobleJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
	Location string `json:"location"`
	Source   string `json:"source"`
	Updated  string `json:"updated"`
}

type joobleResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

// Jooble fetches from the Jooble aggregator API. Credentialed; the API key
// is part of the URL path.
type Jooble struct {
	apiKey  string
	query   string
	baseURL string
	client  *http.Client
}

func NewJooble(apiKey, query string, client *http.Client) *Jooble {
	return &Jooble{
		apiKey:  apiKey,
		query:   query,
		baseURL: joobleBaseURL,
		client:  client,
	}
}

func (j *Jooble) Name() string { return "Jooble" }

func (j *Jooble) Fetch(ctx context.Context, language string, since time.Time) ([]model.RawPosting, error) {
	body := joobleRequest{
		Keywords: j.query,
		Location: joobleLocations[language],
		DateFrom: since.UTC().Format("2006-01-02"),
	}

	var resp joobleResponse
	if err := postJSON(ctx, j.client, j.baseURL+j.apiKey, body, &resp); err != nil {
		return nil, fmt.Errorf("jooble: %w", err)
	}

	postings := make([]model.RawPosting, 0, len(resp.Jobs))
	for _, item := range resp.Jobs {
		company := item.Company
		if company == "" {
			company = "Unknown"
		}

		sourceName := "Jooble"
		if item.Source != "" {
			sourceName = fmt.Sprintf("Jooble (%s)", item.Source)
		}

		postings = append(postings, model.RawPosting{
			Title:       item.Title,
			Description: item.Snippet, // snippet is enough for categorization
			Link:        item.Link,
			LocationRaw: item.Location,
			CompanyName: company,
			Source:      sourceName,
			Language:    language,
			PublishedAt: item.Updated,
		})
	}
	return postings, nil
}
