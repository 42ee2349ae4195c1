package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/metrics"
)

const (
	masseyProviderName = "massey"
	masseyCacheKey     = "massey:ratings"
)

// MasseyClient resolves the Massey composite power rating table.
type MasseyClient struct {
	url    string
	http   *Client
	cache  Cache
	logger *logrus.Logger
}

// NewMasseyClient creates a power ratings provider.
func NewMasseyClient(url string, httpClient *Client, cache Cache, logger *logrus.Logger) *MasseyClient {
	if cache == nil {
		cache = NoopCache{}
	}
	return &MasseyClient{url: url, http: httpClient, cache: cache, logger: logger}
}

// Ping checks source reachability for readiness probes.
func (m *MasseyClient) Ping(ctx context.Context) error {
	resp, err := m.http.Get(ctx, m.url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("massey ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Ratings returns the current power rating table, cached between refreshes.
func (m *MasseyClient) Ratings(ctx context.Context) ([]PowerRating, error) {
	if cached, found := m.cache.Get(masseyCacheKey); found {
		metrics.RecordProviderCacheHit(masseyProviderName)
		return cached.([]PowerRating), nil
	}
	return m.Refresh(ctx)
}

// Refresh fetches the rating table from the source and replaces the cached
// copy. The scheduler calls this on its cron cadence.
func (m *MasseyClient) Refresh(ctx context.Context) ([]PowerRating, error) {
	start := time.Now()
	resp, err := m.http.Get(ctx, m.url, map[string]string{"Accept": "application/json"})
	if err != nil {
		metrics.RecordProviderRequest(masseyProviderName, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("massey ratings failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecordProviderRequest(masseyProviderName, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("massey ratings failed: unexpected status %d", resp.StatusCode)
	}

	var ratings []PowerRating
	if err := json.NewDecoder(resp.Body).Decode(&ratings); err != nil {
		return nil, fmt.Errorf("massey ratings failed: %w", err)
	}

	m.cache.Set(masseyCacheKey, ratings)
	m.logger.WithField("teams", len(ratings)).Debug("Power ratings refreshed")
	return ratings, nil
}
