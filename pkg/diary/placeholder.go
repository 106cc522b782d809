package diary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PlaceholderClient fetches a single random placeholder image for posts
// without one. The lookup is best-effort: callers degrade to no image on
// failure.
type PlaceholderClient interface {
	RandomImage(ctx context.Context) (string, error)
}

// CatAPIClient fetches placeholder images from thecatapi.com.
type CatAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatAPIClient(baseURL string) *CatAPIClient {
	return &CatAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CatAPIClient) RandomImage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/images/search", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("placeholder image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("placeholder image request failed: status %d", resp.StatusCode)
	}

	var images []struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return "", fmt.Errorf("failed to decode placeholder image response: %w", err)
	}
	if len(images) == 0 || images[0].URL == "" {
		return "", errors.New("placeholder image response is empty")
	}
	return images[0].URL, nil
}

// StubPlaceholderClient returns a fixed URL, or an error when Err is set.
type StubPlaceholderClient struct {
	URL string
	Err error
}

func (s *StubPlaceholderClient) RandomImage(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.URL, nil
}
