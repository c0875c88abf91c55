package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

const jobicyBaseURL = "https://jobicy.com/api/v2/remote-jobs"

type jobicyJob struct {
	JobTitle        string `json:"jobTitle"`
	JobDescription  string `json:"jobDescription"`
	CompanyName     string `json:"companyName"`
	CompanyLogo     string `json:"companyLogo"`
	URL             string `json:"url"`
	JobGeo          string `json:"jobGeo"`
	JobType         string `json:"jobType"`
	PubDate         string `json:"pubDate"` // "2006-01-02 15:04:05"
	AnnualSalaryMin int    `json:"annualSalaryMin"`
	AnnualSalaryMax int    `json:"annualSalaryMax"`
}

type jobicyResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Jobs    []jobicyJob `json:"jobs"`
}

// Jobicy fetches the latest remote engineering jobs from the Jobicy API.
// Remote-first board, everything it returns is remote.
type Jobicy struct {
	baseURL string
	client  *http.Client
}

func NewJobicy(client *http.Client) *Jobicy {
	return &Jobicy{baseURL: jobicyBaseURL, client: client}
}

func (j *Jobicy) Name() string { return "Jobicy" }

func (j *Jobicy) Fetch(ctx context.Context, language string, _ time.Time) ([]model.RawPosting, error) {
	values := url.Values{}
	values.Set("count", "50")
	values.Set("industry", "engineering")

	var resp jobicyResponse
	if err := getJSON(ctx, j.client, j.baseURL+"?"+values.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("jobicy: %w", err)
	}
	if !resp.Success && resp.Message != "" {
		return nil, fmt.Errorf("jobicy: api reported failure: %s", resp.Message)
	}

	postings := make([]model.RawPosting, 0, len(resp.Jobs))
	for _, item := range resp.Jobs {
		postings = append(postings, model.RawPosting{
			Title:       item.JobTitle,
			Description: item.JobDescription,
			Link:        item.URL,
			LocationRaw: item.JobGeo,
			CompanyName: item.CompanyName,
			CompanyLogo: item.CompanyLogo,
			Source:      "Jobicy",
			Language:    language,
			PublishedAt: item.PubDate,
			SalaryMin:   item.AnnualSalaryMin,
			SalaryMax:   item.AnnualSalaryMax,
			Remote:      true,
		})
	}
	return postings, nil
}
