package widgets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

var ErrNoCurrentWeather = errors.New("widgets: response has no current weather")

// WeatherClient reads the current temperature from Open-Meteo.
type WeatherClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewWeatherClient(baseURL string, timeout time.Duration) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherClient{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: timeout}}
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
}

// CurrentTemperature returns degrees Celsius at the given coordinates.
func (c *WeatherClient) CurrentTemperature(ctx context.Context, lat, lng float64) (float64, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch weather: status %d", resp.StatusCode)
	}
	var out forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode weather: %w", err)
	}
	if out.CurrentWeather == nil {
		return 0, ErrNoCurrentWeather
	}
	return out.CurrentWeather.Temperature, nil
}
