// Package weather fetches a 5-day forecast from WeatherAPI. The upstream
// wire types stay private; callers get the flattened Report.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
)

const (
	// DefaultBaseURL is the production WeatherAPI endpoint.
	DefaultBaseURL = "http://api.weatherapi.com/v1"

	forecastDays = 5
)

type Current struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed"`
	Pressure    float64 `json:"pressure"`
}

type Day struct {
	Date          string  `json:"date"`
	MaxTemp       float64 `json:"maxTemp"`
	MinTemp       float64 `json:"minTemp"`
	Description   string  `json:"description"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
}

type Report struct {
	Current  Current `json:"current"`
	Forecast []Day   `json:"forecast"`
}

// forecastResponse mirrors the WeatherAPI forecast.json structure, reduced
// to the fields we consume.
type forecastResponse struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		Humidity  float64 `json:"humidity"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		WindKph    float64 `json:"wind_kph"`
		PressureMb float64 `json:"pressure_mb"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC    float64 `json:"maxtemp_c"`
				MinTempC    float64 `json:"mintemp_c"`
				AvgHumidity float64 `json:"avghumidity"`
				RainChance  float64 `json:"daily_chance_of_rain"`
				Condition   struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
}

// NewClientWithBaseURL points the client at an alternate endpoint. Used by
// tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Forecast fetches current conditions plus a 5-day forecast for the given
// coordinates.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (*Report, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", fmt.Sprintf("%g,%g", latitude, longitude))
	q.Set("days", fmt.Sprintf("%d", forecastDays))
	q.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/forecast.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call weather api: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close weather response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather api returned status %d: %s", resp.StatusCode, errBody)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	report := &Report{
		Current: Current{
			Temperature: math.Round(body.Current.TempC),
			Humidity:    body.Current.Humidity,
			Description: body.Current.Condition.Text,
			WindSpeed:   math.Round(body.Current.WindKph),
			Pressure:    math.Round(body.Current.PressureMb),
		},
		Forecast: make([]Day, 0, len(body.Forecast.ForecastDay)),
	}
	for _, fd := range body.Forecast.ForecastDay {
		report.Forecast = append(report.Forecast, Day{
			Date:          fd.Date,
			MaxTemp:       math.Round(fd.Day.MaxTempC),
			MinTemp:       math.Round(fd.Day.MinTempC),
			Description:   fd.Day.Condition.Text,
			Humidity:      math.Round(fd.Day.AvgHumidity),
			Precipitation: fd.Day.RainChance,
		})
	}
	return report, nil
}
