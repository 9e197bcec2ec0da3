package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"familyboard/models"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1"

// Requested metric sets, matching what the dashboard displays.
const (
	currentFields = "temperature_2m,precipitation,wind_speed_10m,weather_code,relative_humidity_2m,apparent_temperature"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"
)

// Client fetches forecasts from the open-meteo API with a per-location
// in-memory cache so the dashboard's polling does not hammer the provider.
type Client struct {
	httpClient *http.Client
	baseURL    string

	cacheMu  sync.RWMutex
	cache    map[string]*cacheEntry
	cacheTTL time.Duration
}

type cacheEntry struct {
	report    *models.WeatherReport
	fetchedAt time.Time
}

// forecastResponse is the subset of the open-meteo payload we consume.
type forecastResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Precipitation float64 `json:"precipitation"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
		Humidity      float64 `json:"relative_humidity_2m"`
		FeelsLike     float64 `json:"apparent_temperature"`
	} `json:"current"`
	Daily struct {
		Time          []string  `json:"time"`
		WeatherCode   []int     `json:"weather_code"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// NewClient creates a new weather client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    openMeteoBaseURL,
		cache:      make(map[string]*cacheEntry),
		cacheTTL:   30 * time.Minute, // matches the dashboard's refresh interval
	}
}

// Forecast returns current conditions and the daily forecast for a location.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (*models.WeatherReport, error) {
	cacheKey := fmt.Sprintf("%.4f:%.4f", latitude, longitude)

	c.cacheMu.RLock()
	if entry, ok := c.cache[cacheKey]; ok && time.Since(entry.fetchedAt) < c.cacheTTL {
		c.cacheMu.RUnlock()
		return entry.report, nil
	}
	c.cacheMu.RUnlock()

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%v", latitude))
	query.Set("longitude", fmt.Sprintf("%v", longitude))
	query.Set("current", currentFields)
	query.Set("daily", dailyFields)
	query.Set("timezone", "auto")

	endpoint := fmt.Sprintf("%s/forecast?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api failed: %s", resp.Status)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	report := &models.WeatherReport{
		Current: models.CurrentConditions{
			Temperature:   int(math.Round(payload.Current.Temperature)),
			Precipitation: payload.Current.Precipitation,
			WindSpeed:     int(math.Round(payload.Current.WindSpeed)),
			WeatherCode:   payload.Current.WeatherCode,
			Humidity:      int(math.Round(payload.Current.Humidity)),
			FeelsLike:     int(math.Round(payload.Current.FeelsLike)),
		},
		Daily: make([]models.DailyForecast, 0, len(payload.Daily.Time)),
	}

	for i, date := range payload.Daily.Time {
		day := models.DailyForecast{Date: date}
		if i < len(payload.Daily.TempMax) {
			day.MaxTemp = int(math.Round(payload.Daily.TempMax[i]))
		}
		if i < len(payload.Daily.TempMin) {
			day.MinTemp = int(math.Round(payload.Daily.TempMin[i]))
		}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		if i < len(payload.Daily.Precipitation) {
			day.Precipitation = payload.Daily.Precipitation[i]
		}
		report.Daily = append(report.Daily, day)
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = &cacheEntry{report: report, fetchedAt: time.Now()}
	c.cacheMu.Unlock()

	return report, nil
}
