package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// HTTPEstimator talks to a distance-matrix style geo service.
type HTTPEstimator struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPEstimator builds a client for the geo collaborator. The timeout
// bounds each request; the cache wraps calls in a shorter context anyway.
func NewHTTPEstimator(baseURL, apiKey string, timeout time.Duration) *HTTPEstimator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPEstimator{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			TransitDetails []string `json:"transit_details"`
		} `json:"elements"`
	} `json:"rows"`
}

// EstimateTravel queries the geo service for one origin-destination pair.
func (e *HTTPEstimator) EstimateTravel(ctx context.Context, origin, destination types.Location, mode Mode, departure time.Time) (Estimate, error) {
	q := url.Values{}
	q.Set("origins", locationParam(origin))
	q.Set("destinations", locationParam(destination))
	q.Set("mode", string(mode))
	if !departure.IsZero() {
		q.Set("departure_time", strconv.FormatInt(departure.Unix(), 10))
	}
	if e.apiKey != "" {
		q.Set("key", e.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/distancematrix/json", nil)
	if err != nil {
		return Estimate{}, err
	}
	req.URL.RawQuery = q.Encode()

	resp, err := e.client.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("geo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Estimate{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	var parsed matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Estimate{}, fmt.Errorf("failed to decode geo response: %w", err)
	}

	if parsed.Status != "OK" {
		return Estimate{}, fmt.Errorf("geo service status %q", parsed.Status)
	}
	if len(parsed.Rows) == 0 || len(parsed.Rows[0].Elements) == 0 {
		return Estimate{}, fmt.Errorf("geo response missing elements")
	}

	element := parsed.Rows[0].Elements[0]
	if element.Status != "OK" {
		return Estimate{}, fmt.Errorf("geo element status %q", element.Status)
	}

	return Estimate{
		DurationSeconds: element.Duration.Value,
		DistanceMeters:  element.Distance.Value,
		TransitDetails:  element.TransitDetails,
	}, nil
}

// locationParam serializes a location for the geo service, preferring
// exact coordinates over the free-form address.
func locationParam(loc types.Location) string {
	if loc.HasCoordinates() {
		return fmt.Sprintf("%f,%f", *loc.Lat, *loc.Lng)
	}
	return loc.Address
}
