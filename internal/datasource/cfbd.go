package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/metrics"
)

const cfbdProviderName = "cfbd"

// CFBDClient resolves team metadata, betting lines and matchup history from
// the college football data API.
type CFBDClient struct {
	baseURL string
	apiKey  string
	http    *Client
	cache   Cache
	logger  *logrus.Logger
}

// NewCFBDClient creates a CFBD provider. Pass NoopCache when response
// caching is disabled.
func NewCFBDClient(baseURL, apiKey string, httpClient *Client, cache Cache, logger *logrus.Logger) *CFBDClient {
	if cache == nil {
		cache = NoopCache{}
	}
	return &CFBDClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
		cache:   cache,
		logger:  logger,
	}
}

// Ping checks API reachability for readiness probes.
func (c *CFBDClient) Ping(ctx context.Context) error {
	resp, err := c.http.Get(ctx, c.baseURL+"/teams?limit=1", c.headers())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("cfbd ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Team returns metadata for a school by name.
func (c *CFBDClient) Team(ctx context.Context, name string) (*TeamRecord, error) {
	cacheKey := "cfbd:team:" + name
	if cached, found := c.cache.Get(cacheKey); found {
		metrics.RecordProviderCacheHit(cfbdProviderName)
		return cached.(*TeamRecord), nil
	}

	endpoint := fmt.Sprintf("%s/teams?school=%s", c.baseURL, url.QueryEscape(name))
	var teams []TeamRecord
	if err := c.getJSON(ctx, endpoint, &teams); err != nil {
		return nil, fmt.Errorf("team lookup failed: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("team not found: %s", name)
	}

	team := &teams[0]
	c.cache.Set(cacheKey, team)
	return team, nil
}

// Lines returns the betting lines quoted for a team's game in a given week.
func (c *CFBDClient) Lines(ctx context.Context, team string, year, week int) ([]GameLineSet, error) {
	cacheKey := fmt.Sprintf("cfbd:lines:%s:%d:%d", team, year, week)
	if cached, found := c.cache.Get(cacheKey); found {
		metrics.RecordProviderCacheHit(cfbdProviderName)
		return cached.([]GameLineSet), nil
	}

	endpoint := fmt.Sprintf("%s/lines?team=%s&year=%d&week=%d", c.baseURL, url.QueryEscape(team), year, week)
	var raw []rawGameLines
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("lines fetch failed: %w", err)
	}

	sets := make([]GameLineSet, 0, len(raw))
	for _, g := range raw {
		set := GameLineSet{
			HomeTeam: g.HomeTeam,
			AwayTeam: g.AwayTeam,
			Week:     g.Week,
			Season:   g.Season,
			Lines:    make([]GameLines, 0, len(g.Lines)),
		}
		for _, l := range g.Lines {
			set.Lines = append(set.Lines, GameLines{
				Provider:      l.Provider,
				Spread:        ParseLineValue(l.Spread),
				OverUnder:     ParseLineValue(l.OverUnder),
				HomeMoneyline: ParseLineValue(l.HomeMoneyline),
				AwayMoneyline: ParseLineValue(l.AwayMoneyline),
			})
		}
		sets = append(sets, set)
	}

	c.cache.Set(cacheKey, sets)
	return sets, nil
}

// Matchup returns head-to-head history between two teams since minYear.
func (c *CFBDClient) Matchup(ctx context.Context, team1, team2 string, minYear int) (*MatchupHistory, error) {
	cacheKey := fmt.Sprintf("cfbd:matchup:%s:%s:%d", team1, team2, minYear)
	if cached, found := c.cache.Get(cacheKey); found {
		metrics.RecordProviderCacheHit(cfbdProviderName)
		return cached.(*MatchupHistory), nil
	}

	endpoint := fmt.Sprintf("%s/teams/matchup?team1=%s&team2=%s&minYear=%d",
		c.baseURL, url.QueryEscape(team1), url.QueryEscape(team2), minYear)
	history := &MatchupHistory{}
	if err := c.getJSON(ctx, endpoint, history); err != nil {
		return nil, fmt.Errorf("matchup fetch failed: %w", err)
	}

	c.cache.Set(cacheKey, history)
	return history, nil
}

func (c *CFBDClient) headers() map[string]string {
	headers := map[string]string{"Accept": "application/json"}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}
	return headers
}

func (c *CFBDClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.http.Get(ctx, endpoint, c.headers())
	if err != nil {
		metrics.RecordProviderRequest(cfbdProviderName, "error", time.Since(start).Seconds())
		return err
	}
	defer resp.Body.Close()
	metrics.RecordProviderRequest(cfbdProviderName, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// rawGameLines mirrors the upstream lines payload, where numeric fields may
// arrive as numbers or formatted strings depending on the book.
type rawGameLines struct {
	HomeTeam string       `json:"homeTeam"`
	AwayTeam string       `json:"awayTeam"`
	Week     int          `json:"week"`
	Season   int          `json:"season"`
	Lines    []rawBookRow `json:"lines"`
}

type rawBookRow struct {
	Provider      string      `json:"provider"`
	Spread        interface{} `json:"spread"`
	OverUnder     interface{} `json:"overUnder"`
	HomeMoneyline interface{} `json:"homeMoneyline"`
	AwayMoneyline interface{} `json:"awayMoneyline"`
}
