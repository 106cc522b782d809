package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client reverse-geocodes coordinates into a human-readable address.
// Best-effort: a single GET, no retry.
type Client interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// NominatimClient resolves addresses through the OpenStreetMap Nominatim API.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode returns "<state> <city> <suburb>" from whichever parts the
// lookup yields, falling back to the country when no city is known.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", c.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode request failed: status %d", resp.StatusCode)
	}

	var payload struct {
		Address struct {
			State   string `json:"state"`
			City    string `json:"city"`
			Country string `json:"country"`
			Suburb  string `json:"suburb"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	city := payload.Address.City
	if city == "" {
		city = payload.Address.Country
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{payload.Address.State, city, payload.Address.Suburb} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " "), nil
}

// StubClient returns a fixed address, or an error when Err is set.
type StubClient struct {
	Address string
	Err     error
}

func (s *StubClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Address, nil
}
