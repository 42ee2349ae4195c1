// Package models defines the request and result records exchanged with the
// spread prediction engine.
package models

// Recommendation sides.
const (
	SideHome  = "home"
	SideAway  = "away"
	SideNoBet = "no_bet"
)

// ModelInfo identifies the prediction model that produced a result.
type ModelInfo struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Lambda  float64 `json:"lambda"`
	Seed    int     `json:"seed"`
}

// Metadata wraps the model identity block of a result.
type Metadata struct {
	Model ModelInfo `json:"model"`
}

// ConfidenceInterval carries the 68% and 95% intervals around the predicted
// margin, each as [low, high].
type ConfidenceInterval struct {
	CI68 [2]float64 `json:"ci68"`
	CI95 [2]float64 `json:"ci95"`
}

// Recommendation is the staking advice attached to a prediction. The fraction
// is quarter-Kelly and never negative; side is no_bet when neither edge
// clears the expected-value threshold.
type Recommendation struct {
	Side                 string  `json:"side"`
	EdgeEVPerDollar      float64 `json:"edge_ev_per_$1"`
	QuarterKellyFraction float64 `json:"recommended_fraction_bankroll_quarter_kelly"`
}

// ModelOutput is the full structured result of one model run. Positive
// spread_pred favors the home side. Win and cover probabilities each sum to
// one across the two sides.
type ModelOutput struct {
	SpreadPred         float64            `json:"spread_pred"`
	WinProbHome        float64            `json:"win_prob_home"`
	WinProbAway        float64            `json:"win_prob_away"`
	ProbHomeCover      float64            `json:"prob_home_cover"`
	Variance           float64            `json:"variance"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	R2Reliability      float64            `json:"r2_reliability"`
	EdgeConfidence     float64            `json:"edge_confidence"`
	Recommendation     Recommendation     `json:"recommendation"`
	Metadata           Metadata           `json:"metadata"`
}

// RunModelResponse is the success envelope returned to the caller.
type RunModelResponse struct {
	Status      string      `json:"status"`
	ModelOutput ModelOutput `json:"model_output"`
}
