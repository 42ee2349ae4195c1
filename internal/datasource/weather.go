package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/metrics"
)

const weatherProviderName = "weather"

// OpenMeteoClient resolves wind and precipitation forecasts for a venue.
type OpenMeteoClient struct {
	baseURL string
	http    *Client
	cache   Cache
	logger  *logrus.Logger
}

// NewOpenMeteoClient creates a weather provider.
func NewOpenMeteoClient(baseURL string, httpClient *Client, cache Cache, logger *logrus.Logger) *OpenMeteoClient {
	if cache == nil {
		cache = NoopCache{}
	}
	return &OpenMeteoClient{baseURL: baseURL, http: httpClient, cache: cache, logger: logger}
}

// Ping checks API reachability for readiness probes.
func (w *OpenMeteoClient) Ping(ctx context.Context) error {
	resp, err := w.http.Get(ctx, w.baseURL+"/v1/forecast?latitude=0&longitude=0&current=temperature_2m", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("weather ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Current returns the present conditions at a venue.
func (w *OpenMeteoClient) Current(ctx context.Context, lat, lon float64) (*WeatherObservation, error) {
	endpoint := fmt.Sprintf(
		"%s/v1/forecast?latitude=%.4f&longitude=%.4f&current=temperature_2m,wind_speed_10m,wind_gusts_10m,precipitation&wind_speed_unit=mph",
		w.baseURL, lat, lon)

	var payload struct {
		Current struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature_2m"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			WindGusts     float64 `json:"wind_gusts_10m"`
			Precipitation float64 `json:"precipitation"`
		} `json:"current"`
	}
	if err := w.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("weather fetch failed: %w", err)
	}

	return &WeatherObservation{
		Time:          payload.Current.Time,
		TemperatureC:  payload.Current.Temperature,
		WindMPH:       payload.Current.WindSpeed,
		WindGustMPH:   payload.Current.WindGusts,
		Precipitation: payload.Current.Precipitation,
	}, nil
}

// KickoffWindow returns the forecast sample closest to kickoff time.
func (w *OpenMeteoClient) KickoffWindow(ctx context.Context, lat, lon float64, kickoff string) (*WeatherObservation, error) {
	kickoffTime, err := parseTimestamp(kickoff)
	if err != nil {
		return nil, fmt.Errorf("kickoff window fetch failed: %w", err)
	}

	hourly, err := w.fetchHourly(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("kickoff window fetch failed: %w", err)
	}
	if len(hourly) == 0 {
		return nil, fmt.Errorf("kickoff window fetch failed: no hourly data")
	}

	best := hourly[0]
	bestDiff := math.MaxFloat64
	for _, obs := range hourly {
		t, err := parseTimestamp(obs.Time)
		if err != nil {
			continue
		}
		diff := math.Abs(t.Sub(kickoffTime).Hours())
		if diff < bestDiff {
			bestDiff = diff
			best = obs
		}
	}
	return &best, nil
}

// HourlyWindow returns every forecast sample between start and end inclusive.
func (w *OpenMeteoClient) HourlyWindow(ctx context.Context, lat, lon float64, start, end string) ([]WeatherObservation, error) {
	startTime, err := parseTimestamp(start)
	if err != nil {
		return nil, fmt.Errorf("hourly window fetch failed: %w", err)
	}
	endTime, err := parseTimestamp(end)
	if err != nil {
		return nil, fmt.Errorf("hourly window fetch failed: %w", err)
	}

	hourly, err := w.fetchHourly(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("hourly window fetch failed: %w", err)
	}

	var window []WeatherObservation
	for _, obs := range hourly {
		t, err := parseTimestamp(obs.Time)
		if err != nil {
			continue
		}
		if !t.Before(startTime) && !t.After(endTime) {
			window = append(window, obs)
		}
	}
	return window, nil
}

func (w *OpenMeteoClient) fetchHourly(ctx context.Context, lat, lon float64) ([]WeatherObservation, error) {
	cacheKey := fmt.Sprintf("weather:hourly:%.4f:%.4f", lat, lon)
	if cached, found := w.cache.Get(cacheKey); found {
		metrics.RecordProviderCacheHit(weatherProviderName)
		return cached.([]WeatherObservation), nil
	}

	endpoint := fmt.Sprintf(
		"%s/v1/forecast?latitude=%.4f&longitude=%.4f&hourly=temperature_2m,wind_speed_10m,wind_gusts_10m,precipitation&wind_speed_unit=mph",
		w.baseURL, lat, lon)

	var payload struct {
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature   []float64 `json:"temperature_2m"`
			WindSpeed     []float64 `json:"wind_speed_10m"`
			WindGusts     []float64 `json:"wind_gusts_10m"`
			Precipitation []float64 `json:"precipitation"`
		} `json:"hourly"`
	}
	if err := w.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	obs := make([]WeatherObservation, 0, len(payload.Hourly.Time))
	for i, ts := range payload.Hourly.Time {
		o := WeatherObservation{Time: ts}
		if i < len(payload.Hourly.Temperature) {
			o.TemperatureC = payload.Hourly.Temperature[i]
		}
		if i < len(payload.Hourly.WindSpeed) {
			o.WindMPH = payload.Hourly.WindSpeed[i]
		}
		if i < len(payload.Hourly.WindGusts) {
			o.WindGustMPH = payload.Hourly.WindGusts[i]
		}
		if i < len(payload.Hourly.Precipitation) {
			o.Precipitation = payload.Hourly.Precipitation[i]
		}
		obs = append(obs, o)
	}

	w.cache.Set(cacheKey, obs)
	return obs, nil
}

func (w *OpenMeteoClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := w.http.Get(ctx, endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		metrics.RecordProviderRequest(weatherProviderName, "error", time.Since(start).Seconds())
		return err
	}
	defer resp.Body.Close()
	metrics.RecordProviderRequest(weatherProviderName, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseTimestamp accepts RFC3339 and the bare ISO form used by the forecast API.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}
