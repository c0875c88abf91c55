package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itjobhub/importer/internal/model"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder resolves addresses through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGeocoder creates a geocoder using the given API key.
func NewGoogleGeocoder(apiKey string, httpClient *http.Client) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:     apiKey,
		baseURL:    googleGeocodeURL,
		httpClient: httpClient,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves the address. Returns (nil, nil) when the provider has
// no match for it; that is a data condition, not a call failure.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*Location, error) {
	values := url.Values{}
	values.Set("address", address)
	values.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{StatusCode: resp.StatusCode}
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	case "OVER_QUERY_LIMIT":
		// Maps to a retryable condition for the retry layer.
		return nil, &model.HTTPError{StatusCode: http.StatusTooManyRequests}
	case "REQUEST_DENIED":
		return nil, &model.HTTPError{
			StatusCode: http.StatusForbidden,
			Err:        fmt.Errorf("geocoding request denied"),
		}
	default:
		return nil, fmt.Errorf("geocoding failed with status %s", payload.Status)
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}

	result := payload.Results[0]
	return &Location{
		Lat:              result.Geometry.Location.Lat,
		Lng:              result.Geometry.Location.Lng,
		FormattedAddress: result.FormattedAddress,
	}, nil
}
