package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

const (
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize = 50
	adzunaMaxPages = 5
)

// adzunaCountries maps a posting language to the Adzuna country endpoint.
var adzunaCountries = map[string]string{
	"en": "gb",
	"it": "it",
	"es": "es",
	"fr": "fr",
	"de": "de",
}

type adzunaJob struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

// Adzuna fetches from the Adzuna search API, paginating through the IT
// category until a page comes back empty or the page cap is reached.
type Adzuna struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
}

// NewAdzuna creates the Adzuna fetcher. Both credentials are required;
// config disables the source when they are missing.
func NewAdzuna(appID, appKey string, client *http.Client) *Adzuna {
	return &Adzuna{
		appID:   appID,
		appKey:  appKey,
		baseURL: adzunaBaseURL,
		client:  client,
	}
}

func (a *Adzuna) Name() string { return "Adzuna" }

// Fetch pulls up to adzunaMaxPages pages of IT-category postings for the
// language's country endpoint, bounded by the lookback date.
func (a *Adzuna) Fetch(ctx context.Context, language string, since time.Time) ([]model.RawPosting, error) {
	country, ok := adzunaCountries[language]
	if !ok {
		country = "gb"
	}

	maxDaysOld := int(time.Since(since).Hours()/24) + 1
	if maxDaysOld < 1 {
		maxDaysOld = 1
	}

	var postings []model.RawPosting
	for page := 1; page <= adzunaMaxPages; page++ {
		values := url.Values{}
		values.Set("app_id", a.appID)
		values.Set("app_key", a.appKey)
		values.Set("results_per_page", fmt.Sprint(adzunaPageSize))
		values.Set("category", "it-jobs")
		values.Set("max_days_old", fmt.Sprint(maxDaysOld))
		values.Set("content-type", "application/json")

		pageURL := fmt.Sprintf("%s/%s/search/%d?%s", a.baseURL, country, page, values.Encode())

		var resp adzunaResponse
		if err := getJSON(ctx, a.client, pageURL, &resp); err != nil {
			return nil, fmt.Errorf("adzuna page %d: %w", page, err)
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, item := range resp.Results {
			postings = append(postings, model.RawPosting{
				Title:       item.Title,
				Description: item.Description,
				Link:        item.RedirectURL,
				LocationRaw: item.Location.DisplayName,
				CompanyName: item.Company.DisplayName,
				Source:      "Adzuna",
				Language:    language,
				PublishedAt: item.Created,
				SalaryMin:   int(item.SalaryMin),
				SalaryMax:   int(item.SalaryMax),
			})
		}
	}

	return postings, nil
}
