package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

const arbeitnowURL = "https://www.arbeitnow.com/api/job-board-api"

type arbeitnowJob struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompanyName string   `json:"company_name"`
	URL         string   `json:"url"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"created_at"` // unix seconds
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// Arbeitnow fetches the Arbeitnow job board feed. The board is
// English/German only, so other languages yield nothing.
type Arbeitnow struct {
	apiURL string
	client *http.Client
}

func NewArbeitnow(client *http.Client) *Arbeitnow {
	return &Arbeitnow{apiURL: arbeitnowURL, client: client}
}

func (a *Arbeitnow) Name() string { return "Arbeitnow" }

func (a *Arbeitnow) Fetch(ctx context.Context, language string, _ time.Time) ([]model.RawPosting, error) {
	if language != "en" && language != "de" {
		return nil, nil
	}

	var resp arbeitnowResponse
	if err := getJSON(ctx, a.client, a.apiURL, &resp); err != nil {
		return nil, fmt.Errorf("arbeitnow: %w", err)
	}

	postings := make([]model.RawPosting, 0, len(resp.Data))
	for _, item := range resp.Data {
		var published string
		if item.CreatedAt > 0 {
			published = time.Unix(item.CreatedAt, 0).UTC().Format(time.RFC3339)
		}

		postings = append(postings, model.RawPosting{
			Title:       item.Title,
			Description: item.Description,
			Link:        item.URL,
			LocationRaw: item.Location,
			CompanyName: item.CompanyName,
			Source:      "Arbeitnow",
			Language:    language,
			PublishedAt: published,
			Remote:      item.Remote,
		})
	}
	return postings, nil
}
