package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"wooltrace/internal/config"
	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

type openWeatherClient struct {
	httpClient *http.Client
	apiKey     string
	city       string
}

// NewClient creates a WeatherProvider backed by the OpenWeather API. An empty
// API key returns the mock provider instead, so the monitoring dashboard
// works on deployments without credentials.
func NewClient(cfg config.WeatherConfig) port.WeatherProvider {
	if cfg.APIKey == "" {
		return NewMockProvider(cfg.City)
	}

	timeout := cfg.TimeoutSecs
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &openWeatherClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		city:       cfg.City,
	}
}

// openWeatherResponse is the subset of the API payload the dashboard uses.
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Name string `json:"name"`
}

func (c *openWeatherClient) Current(ctx context.Context) (*domain.WeatherReading, error) {
	q := url.Values{}
	q.Set("q", c.city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openWeatherURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request: unexpected status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("weather response decode: %w", err)
	}

	condition := "Unknown"
	if len(payload.Weather) > 0 {
		condition = payload.Weather[0].Main
	}

	return &domain.WeatherReading{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Condition:   condition,
		Location:    payload.Name,
	}, nil
}

type mockProvider struct {
	city string
}

// NewMockProvider returns a WeatherProvider that produces plausible readings
// without calling any external API.
func NewMockProvider(city string) port.WeatherProvider {
	return &mockProvider{city: city}
}

func (m *mockProvider) Current(_ context.Context) (*domain.WeatherReading, error) {
	conditions := []string{"Clear", "Clouds", "Rain", "Drizzle"}
	return &domain.WeatherReading{
		Temperature: 15 + rand.Float64()*10,
		Humidity:    40 + rand.Intn(40),
		Condition:   conditions[rand.Intn(len(conditions))],
		Location:    m.city,
	}, nil
}
