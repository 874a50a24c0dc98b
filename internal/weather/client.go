// Package weather is a thin client for the OpenWeather geocoding, weather
// and air pollution APIs.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/logging"
)

var (
	ErrNoAPIKey     = errors.New("weather api key is not configured")
	ErrNotFound     = errors.New("location not found")
	ErrInvalidUnits = errors.New("units must be one of standard, metric, imperial")
	ErrUpstream     = errors.New("weather service request failed")
)

// Units accepted by OpenWeather.
const (
	UnitsStandard = "standard"
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

const (
	geocodePath          = "/geo/1.0/direct"
	forecastPath         = "/data/2.5/forecast"
	currentPath          = "/data/2.5/weather"
	airPollutionPath     = "/data/2.5/air_pollution"
	airPollutionFcstPath = "/data/2.5/air_pollution/forecast"
)

// Location is a geocoding hit.
type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// Client talks to OpenWeather
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	defaultUnits string
}

// NewClient creates a client from the weather config section
func NewClient(cfg config.WeatherConfig) *Client {
	units := cfg.Units
	if units == "" {
		units = UnitsImperial
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout()},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		defaultUnits: units,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Coords returns the first geocoding match for city, optionally narrowed
// by an ISO 3166 country code.
func (c *Client) Coords(ctx context.Context, city, countryCode string) (*Location, error) {
	q := strings.TrimSpace(city)
	if cc := strings.TrimSpace(countryCode); cc != "" {
		q += "," + cc
	}

	var hits []Location
	if err := c.get(ctx, geocodePath, url.Values{"q": {q}, "limit": {"1"}}, &hits); err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		logging.Warn("no coordinates found for %q", q)
		return nil, ErrNotFound
	}
	logging.Info("found coordinates for %q: %v, %v", q, hits[0].Lat, hits[0].Lon)
	return &hits[0], nil
}

// Forecast returns the 5 day / 3 hour forecast. Every entry's wind object
// gains a "direction" compass point.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, units string) (map[string]interface{}, error) {
	params, err := c.pointParams(lat, lon, units)
	if err != nil {
		return nil, err
	}

	var body map[string]interface{}
	if err := c.get(ctx, forecastPath, params, &body); err != nil {
		return nil, err
	}
	if list, ok := body["list"].([]interface{}); ok {
		for _, item := range list {
			if entry, ok := item.(map[string]interface{}); ok {
				addWindDirection(entry)
			}
		}
	}
	return body, nil
}

// CurrentWeather returns current conditions with wind.direction added.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64, units string) (map[string]interface{}, error) {
	params, err := c.pointParams(lat, lon, units)
	if err != nil {
		return nil, err
	}

	var body map[string]interface{}
	if err := c.get(ctx, currentPath, params, &body); err != nil {
		return nil, err
	}
	addWindDirection(body)
	return body, nil
}

// AirPollution returns the current air quality index and components.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := c.get(ctx, airPollutionPath, coordParams(lat, lon), &body); err != nil {
		return nil, err
	}
	return body, nil
}

// AirPollutionForecast returns the hourly air quality forecast.
func (c *Client) AirPollutionForecast(ctx context.Context, lat, lon float64) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := c.get(ctx, airPollutionFcstPath, coordParams(lat, lon), &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) pointParams(lat, lon float64, units string) (url.Values, error) {
	if units == "" {
		units = c.defaultUnits
	}
	switch units {
	case UnitsStandard, UnitsMetric, UnitsImperial:
	default:
		return nil, ErrInvalidUnits
	}
	params := coordParams(lat, lon)
	params.Set("units", units)
	return params, nil
}

func coordParams(lat, lon float64) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if !c.Configured() {
		return ErrNoAPIKey
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(path, outcomeError, start)
		logging.Error("weather %s?%s failed: %s", path, params.Encode(), redact(err, c.apiKey))
		return fmt.Errorf("%w: %v", ErrUpstream, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observe(path, strconv.Itoa(resp.StatusCode), start)
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logging.Error("weather %s?%s returned %d: %s", path, params.Encode(), resp.StatusCode, strings.TrimSpace(string(snippet)))
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		observe(path, outcomeError, start)
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}
	observe(path, outcomeOK, start)
	logging.Debug("weather %s?%s ok in %v", path, params.Encode(), time.Since(start))
	return nil
}

func addWindDirection(obj map[string]interface{}) {
	wind, ok := obj["wind"].(map[string]interface{})
	if !ok {
		return
	}
	if deg, ok := wind["deg"].(float64); ok {
		wind["direction"] = WindDirection(deg)
	}
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "***")
}
