package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client looks up the current weather for coordinates. Best-effort: a single
// GET, no retry.
type Client interface {
	Current(ctx context.Context, lat, lon float64) (string, error)
}

// OpenWeatherClient reads current conditions from the OpenWeatherMap API.
type OpenWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOpenWeatherClient(baseURL string, apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current returns "<temp>°C <description>" with the description localized to
// Korean.
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (string, error) {
	url := fmt.Sprintf("%s/weather?lat=%f&lon=%f&units=metric&lang=kr&appid=%s", c.baseURL, lat, lon, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather request failed: status %d", resp.StatusCode)
	}

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return "", errors.New("weather response is empty")
	}
	return fmt.Sprintf("%.1f°C %s", payload.Main.Temp, payload.Weather[0].Description), nil
}

// StubClient returns a fixed report, or an error when Err is set.
type StubClient struct {
	Report string
	Err    error
}

func (s *StubClient) Current(ctx context.Context, lat, lon float64) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Report, nil
}
