package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/cfb-edge/internal/engine"
	"github.com/yourusername/cfb-edge/internal/metrics"
	"github.com/yourusername/cfb-edge/internal/models"
	"github.com/yourusername/cfb-edge/internal/validation"
)

// handleRoot returns the service metadata document.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service":          s.cfg.App.Name,
		"health":           "/health",
		"validation_first": true,
		"model":            engine.Metadata().Model,
		"endpoints": map[string]string{
			"build_inputs":    "GET/POST /cfb/build_inputs",
			"run_model":       "POST /cfb/run_model",
			"team":            "/cfb/team?name=Georgia",
			"lines":           "/cfb/lines?team=Georgia&year=2024&week=10",
			"matchup":         "/cfb/matchup?team1=Georgia&team2=Alabama&year=2024",
			"power_massey":    "/cfb/power/massey",
			"weather":         "/cfb/weather?lat=33.9&lon=-83.3",
			"weather_kickoff": "/cfb/weather/kickoff?lat=33.9&lon=-83.3&kickoff=2024-11-23T19:00:00Z",
			"weather_hourly":  "/cfb/weather/hourly?lat=33.9&lon=-83.3&start=2024-11-23T18:00:00Z&end=2024-11-23T22:00:00Z",
			"spread_edge":     "/cfb/spread/edge?team_sp=30.1&opp_sp=27.8&line=-6.5",
		},
	})
}

// handleHealth is the public liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok": true,
		"ts": time.Now().Unix(),
	})
}

// handleRunModel runs the full validation-first prediction pipeline.
func (s *Server) handleRunModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		respondError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	var req models.RunModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordRejection(metrics.ReasonSchema)
		s.modelLog.LogRejection(requestID, "malformed JSON")
		respondError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if !req.HasSections() {
		metrics.RecordRejection(metrics.ReasonSchema)
		s.modelLog.LogRejection(requestID, "missing sections")
		respondError(w, http.StatusBadRequest, models.ErrSchema.Error())
		return
	}

	if !s.validator.Validate(&req) {
		metrics.RecordRejection(metrics.ReasonValidation)
		s.modelLog.LogRejection(requestID, "validation failed")
		respondError(w, http.StatusBadRequest, "validation failed; use /cfb/build_inputs to construct a valid payload")
		return
	}

	in := models.InputSetFromMap(req.Inputs)
	mk := models.MarketSetFromMap(req.Market)

	out, err := s.engine.Run(in, mk)
	if err != nil {
		metrics.RecordRejection(metrics.ReasonComputation)
		s.modelLog.LogRejection(requestID, err.Error())
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("model execution failed: %v", err))
		return
	}

	elapsed := time.Since(start)
	metrics.RecordPrediction(out.Recommendation.Side, elapsed.Seconds())
	s.modelLog.LogModelRun(requestID, &out, float64(elapsed.Milliseconds()))

	respondJSON(w, http.StatusOK, models.RunModelResponse{Status: "ok", ModelOutput: out})
}

// handleBuildInputs is the discovery endpoint: it echoes a partial payload
// back with a list of the required fields that are still absent or empty.
// It never checks numeric bounds; that is the validator's job.
func (s *Server) handleBuildInputs(w http.ResponseWriter, r *http.Request) {
	var inputs map[string]interface{}
	var market map[string]interface{}

	// A JSON body is echoed back exactly as supplied, with omitted sections
	// as empty objects; everything else starts from the null skeleton.
	decoded := false
	if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req models.RunModelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			decoded = true
			inputs = req.Inputs
			market = req.Market
			if inputs == nil {
				inputs = map[string]interface{}{}
			}
			if market == nil {
				market = map[string]interface{}{}
			}
		}
	}
	if !decoded {
		inputs = emptySkeleton(validation.RequiredInputFields)
		market = emptySkeleton(validation.RequiredMarketFields)
	}

	missing := missingFields(inputs, validation.RequiredInputFields, "")
	missing = append(missing, missingFields(market, validation.RequiredMarketFields, "market.")...)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"inputs":  inputs,
		"market":  market,
		"missing": missing,
		"note":    "Populate missing numeric fields; then POST to /cfb/run_model.",
	})
}

func emptySkeleton(fields []string) map[string]interface{} {
	skeleton := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		skeleton[f] = nil
	}
	return skeleton
}

func missingFields(section map[string]interface{}, required []string, prefix string) []string {
	missing := make([]string, 0)
	sorted := append([]string(nil), required...)
	sort.Strings(sorted)
	for _, key := range sorted {
		v, ok := section[key]
		if !ok || v == nil || v == "" {
			missing = append(missing, prefix+key)
		}
	}
	return missing
}

// handleSpreadEdge is the quick power-rating edge check.
func (s *Server) handleSpreadEdge(w http.ResponseWriter, r *http.Request) {
	if msg := requireParams(r, "team_sp", "opp_sp", "line"); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	teamSP, err1 := strconv.ParseFloat(r.URL.Query().Get("team_sp"), 64)
	oppSP, err2 := strconv.ParseFloat(r.URL.Query().Get("opp_sp"), 64)
	line, err3 := strconv.ParseFloat(r.URL.Query().Get("line"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		respondError(w, http.StatusBadRequest, "params 'team_sp', 'opp_sp', and 'line' must be numeric")
		return
	}

	respondJSON(w, http.StatusOK, engine.QuickEdge(teamSP, oppSP, line))
}

// handleTeam resolves team metadata through the team provider.
func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	if s.providers.Team == nil {
		respondError(w, http.StatusServiceUnavailable, "team provider unavailable")
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "param 'name' is required")
		return
	}

	team, err := s.providers.Team.Team(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("team lookup failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// handleLines resolves betting lines through the lines provider.
func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	if s.providers.Lines == nil {
		respondError(w, http.StatusServiceUnavailable, "lines provider unavailable")
		return
	}
	if msg := requireParams(r, "team", "year", "week"); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	year, err1 := strconv.Atoi(r.URL.Query().Get("year"))
	week, err2 := strconv.Atoi(r.URL.Query().Get("week"))
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "params 'year' and 'week' must be integers")
		return
	}

	lines, err := s.providers.Lines.Lines(r.Context(), r.URL.Query().Get("team"), year, week)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("lines fetch failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

// handleMatchup resolves head-to-head history through the matchup provider.
func (s *Server) handleMatchup(w http.ResponseWriter, r *http.Request) {
	if s.providers.Matchup == nil {
		respondError(w, http.StatusServiceUnavailable, "matchup provider unavailable")
		return
	}
	if msg := requireParams(r, "team1", "team2", "year"); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "param 'year' must be an integer")
		return
	}

	matchup, err := s.providers.Matchup.Matchup(r.Context(), r.URL.Query().Get("team1"), r.URL.Query().Get("team2"), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("matchup fetch failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, matchup)
}

// handleMassey resolves the power rating table.
func (s *Server) handleMassey(w http.ResponseWriter, r *http.Request) {
	if s.providers.Ratings == nil {
		respondError(w, http.StatusServiceUnavailable, "ratings provider unavailable")
		return
	}

	ratings, err := s.providers.Ratings.Ratings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("massey ratings failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, ratings)
}

// handleWeather resolves present conditions at a venue.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if s.providers.Weather == nil {
		respondError(w, http.StatusServiceUnavailable, "weather provider unavailable")
		return
	}
	lat, lon, msg := latLonParams(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	obs, err := s.providers.Weather.Current(r.Context(), lat, lon)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("weather fetch failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, obs)
}

// handleWeatherKickoff resolves the forecast sample nearest kickoff.
func (s *Server) handleWeatherKickoff(w http.ResponseWriter, r *http.Request) {
	if s.providers.Weather == nil {
		respondError(w, http.StatusServiceUnavailable, "weather provider unavailable")
		return
	}
	if msg := requireParams(r, "lat", "lon", "kickoff"); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	lat, lon, msg := latLonParams(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	obs, err := s.providers.Weather.KickoffWindow(r.Context(), lat, lon, r.URL.Query().Get("kickoff"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("kickoff window fetch failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, obs)
}

// handleWeatherHourly resolves every forecast sample in a window.
func (s *Server) handleWeatherHourly(w http.ResponseWriter, r *http.Request) {
	if s.providers.Weather == nil {
		respondError(w, http.StatusServiceUnavailable, "weather provider unavailable")
		return
	}
	if msg := requireParams(r, "lat", "lon", "start", "end"); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	lat, lon, msg := latLonParams(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	obs, err := s.providers.Weather.HourlyWindow(r.Context(), lat, lon, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("hourly window fetch failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, obs)
}

// requireParams returns an error message naming every absent query param.
func requireParams(r *http.Request, names ...string) string {
	var missing []string
	for _, n := range names {
		if r.URL.Query().Get(n) == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return "missing required params: " + strings.Join(missing, ", ")
}

func latLonParams(r *http.Request) (float64, float64, string) {
	if msg := requireParams(r, "lat", "lon"); msg != "" {
		return 0, 0, msg
	}
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, "params 'lat' and 'lon' must be numeric"
	}
	return lat, lon, ""
}
