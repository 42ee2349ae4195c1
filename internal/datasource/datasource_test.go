package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func testHTTPClient() *Client {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	return NewClient(cfg, testLogger())
}

// TestParseLineValue tests normalization of book-quoted line values
func TestParseLineValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *float64
	}{
		{"Plain number", -3.5, floatPtr(-3.5)},
		{"Numeric string", "-110", floatPtr(-110)},
		{"Plus-prefixed string", "+3.5", floatPtr(3.5)},
		{"Padded string", "  +7 ", floatPtr(7)},
		{"Empty string", "", nil},
		{"Garbage string", "pick'em", nil},
		{"Nil", nil, nil},
		{"Boolean", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLineValue(tt.value)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseLineValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ParseLineValue(%v) = %v, want %v", tt.value, *got, *tt.want)
			}
		})
	}
}

func floatPtr(f float64) *float64 { return &f }

// TestMemoryCache tests store, hit and flush behavior
func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute)

	if _, found := cache.Get("missing"); found {
		t.Error("expected miss on empty cache")
	}

	cache.Set("key", 42)
	v, found := cache.Get("key")
	if !found || v.(int) != 42 {
		t.Errorf("expected cached 42, got %v (found=%v)", v, found)
	}

	cache.Flush()
	if _, found := cache.Get("key"); found {
		t.Error("expected miss after flush")
	}
}

// TestNoopCache tests that the disabled-cache default never hits
func TestNoopCache(t *testing.T) {
	cache := NoopCache{}
	cache.Set("key", "value")
	if _, found := cache.Get("key"); found {
		t.Error("noop cache must never hit")
	}
}

// TestCFBDTeam tests team lookup with auth header and response caching
func TestCFBDTeam(t *testing.T) {
	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"school":"Georgia","mascot":"Bulldogs","conference":"SEC"}]`))
	}))
	defer server.Close()

	client := NewCFBDClient(server.URL, "test-key", testHTTPClient(), NewMemoryCache(time.Minute), testLogger())

	team, err := client.Team(context.Background(), "Georgia")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if team.School != "Georgia" || team.Conference != "SEC" {
		t.Errorf("unexpected team record: %+v", team)
	}

	// Second lookup must come from cache.
	if _, err := client.Team(context.Background(), "Georgia"); err != nil {
		t.Fatalf("expected no error on cached lookup, got %v", err)
	}
	if n := atomic.LoadInt64(&requests); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}
}

// TestCFBDTeamNotFound tests the empty-result error path
func TestCFBDTeamNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewCFBDClient(server.URL, "", testHTTPClient(), NoopCache{}, testLogger())
	if _, err := client.Team(context.Background(), "Nowhere State"); err == nil {
		t.Error("expected error for unknown team")
	}
}

// TestCFBDLinesNormalization tests string and numeric line values
func TestCFBDLinesNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"homeTeam":"Georgia","awayTeam":"Alabama","week":10,"season":2024,
			"lines":[
				{"provider":"consensus","spread":"-3.5","overUnder":"52.5","homeMoneyline":-150,"awayMoneyline":"+130"},
				{"provider":"sparse","spread":null}
			]
		}]`))
	}))
	defer server.Close()

	client := NewCFBDClient(server.URL, "", testHTTPClient(), NoopCache{}, testLogger())
	sets, err := client.Lines(context.Background(), "Georgia", 2024, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sets) != 1 || len(sets[0].Lines) != 2 {
		t.Fatalf("unexpected shape: %+v", sets)
	}

	consensus := sets[0].Lines[0]
	if consensus.Spread == nil || *consensus.Spread != -3.5 {
		t.Errorf("expected spread -3.5, got %v", consensus.Spread)
	}
	if consensus.AwayMoneyline == nil || *consensus.AwayMoneyline != 130 {
		t.Errorf("expected away moneyline 130, got %v", consensus.AwayMoneyline)
	}

	sparse := sets[0].Lines[1]
	if sparse.Spread != nil {
		t.Errorf("expected nil spread for sparse row, got %v", *sparse.Spread)
	}
}

// TestMasseyRatingsCached tests fetch plus cache reuse
func TestMasseyRatingsCached(t *testing.T) {
	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"team":"Georgia","rating":30.1,"rank":1},{"team":"Alabama","rating":27.8,"rank":4}]`))
	}))
	defer server.Close()

	client := NewMasseyClient(server.URL, testHTTPClient(), NewMemoryCache(time.Minute), testLogger())

	ratings, err := client.Ratings(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ratings) != 2 || ratings[0].Team != "Georgia" {
		t.Errorf("unexpected ratings: %+v", ratings)
	}

	if _, err := client.Ratings(context.Background()); err != nil {
		t.Fatalf("expected no error on cached lookup, got %v", err)
	}
	if n := atomic.LoadInt64(&requests); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}

	// Refresh always goes back to the source.
	if _, err := client.Refresh(context.Background()); err != nil {
		t.Fatalf("expected no error on refresh, got %v", err)
	}
	if n := atomic.LoadInt64(&requests); n != 2 {
		t.Errorf("expected refresh to hit upstream, got %d requests", n)
	}
}

// TestWeatherHourlyWindow tests inclusive window filtering
func TestWeatherHourlyWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hourly":{
			"time":["2024-11-23T17:00","2024-11-23T18:00","2024-11-23T19:00","2024-11-23T20:00"],
			"temperature_2m":[10,9,8,7],
			"wind_speed_10m":[5,12,15,11],
			"wind_gusts_10m":[8,20,25,18],
			"precipitation":[0,0,0.2,0.1]
		}}`))
	}))
	defer server.Close()

	client := NewOpenMeteoClient(server.URL, testHTTPClient(), NoopCache{}, testLogger())

	window, err := client.HourlyWindow(context.Background(), 33.9, -83.3, "2024-11-23T18:00", "2024-11-23T19:00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("expected 2 samples in window, got %d", len(window))
	}
	if window[0].WindMPH != 12 || window[1].WindMPH != 15 {
		t.Errorf("unexpected window contents: %+v", window)
	}
}

// TestWeatherKickoffWindow tests nearest-sample selection
func TestWeatherKickoffWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hourly":{
			"time":["2024-11-23T18:00","2024-11-23T19:00","2024-11-23T20:00"],
			"temperature_2m":[9,8,7],
			"wind_speed_10m":[12,15,11],
			"wind_gusts_10m":[20,25,18],
			"precipitation":[0,0.2,0.1]
		}}`))
	}))
	defer server.Close()

	client := NewOpenMeteoClient(server.URL, testHTTPClient(), NoopCache{}, testLogger())

	obs, err := client.KickoffWindow(context.Background(), 33.9, -83.3, "2024-11-23T19:10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if obs.Time != "2024-11-23T19:00" {
		t.Errorf("expected nearest sample 19:00, got %s", obs.Time)
	}
}

// TestClientConcurrentRequests tests breaker state under parallel use
func TestClientConcurrentRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testHTTPClient()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(context.Background(), server.URL, nil)
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected request error: %v", err)
	}
}

// TestClientCircuitBreakerOpens tests the breaker trips after repeated failures
func TestClientCircuitBreakerOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := server.URL
	server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	client := NewClient(cfg, testLogger())

	for i := 0; i < cfg.CircuitBreakerMax; i++ {
		if _, err := client.Get(context.Background(), unreachable, nil); err == nil {
			t.Fatal("expected connection error against closed server")
		}
	}

	_, err := client.Get(context.Background(), unreachable, nil)
	if err == nil || !strings.Contains(err.Error(), "circuit breaker open") {
		t.Errorf("expected circuit breaker open error, got %v", err)
	}
}

// TestParseTimestamp tests both accepted timestamp forms
func TestParseTimestamp(t *testing.T) {
	if _, err := parseTimestamp("2024-11-23T19:00:00Z"); err != nil {
		t.Errorf("expected RFC3339 to parse, got %v", err)
	}
	if _, err := parseTimestamp("2024-11-23T19:00"); err != nil {
		t.Errorf("expected bare ISO form to parse, got %v", err)
	}
	if _, err := parseTimestamp("next saturday"); err == nil {
		t.Error("expected parse failure for garbage timestamp")
	}
}
