package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

const remoteOKURL = "https://remoteok.com/api"

// The first array element is a legal notice, not a job; it is the only
// element with the legal field set.
type remoteOKJob struct {
	Legal       string   `json:"legal"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	CompanyLogo string   `json:"company_logo"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	ApplyURL    string   `json:"apply_url"`
	Location    string   `json:"location"`
	Date        string   `json:"date"` // RFC3339
	Tags        []string `json:"tags"`
}

// RemoteOK fetches the RemoteOK recent-jobs feed. English only, remote by
// definition.
type RemoteOK struct {
	apiURL string
	client *http.Client
}

func NewRemoteOK(client *http.Client) *RemoteOK {
	return &RemoteOK{apiURL: remoteOKURL, client: client}
}

func (r *RemoteOK) Name() string { return "RemoteOK" }

func (r *RemoteOK) Fetch(ctx context.Context, language string, _ time.Time) ([]model.RawPosting, error) {
	if language != "en" {
		return nil, nil
	}

	var items []remoteOKJob
	if err := getJSON(ctx, r.client, r.apiURL, &items); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}

	var postings []model.RawPosting
	for _, item := range items {
		if item.Legal != "" || item.Position == "" {
			continue
		}

		link := item.URL
		if link == "" {
			link = item.ApplyURL
		}

		postings = append(postings, model.RawPosting{
			Title:       item.Position,
			Description: item.Description,
			Link:        link,
			LocationRaw: item.Location,
			CompanyName: item.Company,
			CompanyLogo: item.CompanyLogo,
			Source:      "RemoteOK",
			Language:    "en",
			PublishedAt: item.Date,
			Remote:      true,
		})
	}
	return postings, nil
}
