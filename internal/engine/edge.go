package engine

import (
	"math"

	"github.com/yourusername/cfb-edge/internal/stats"
)

// EdgeEstimate is the result of the quick power-rating edge check. It uses
// only two opposing ratings and a market line, without the full feature set.
type EdgeEstimate struct {
	ExpectedMargin float64 `json:"expected_margin"`
	MarketMargin   float64 `json:"market_margin"`
	EdgePoints     float64 `json:"edge_points"`
	ProbCover      float64 `json:"prob_cover"`
}

// QuickEdge compares the margin implied by two power ratings against a
// market line. The line follows book convention: negative favors the rated
// team. Cover probability uses the model's adjusted base deviation so the
// quick check and the full model agree on scale.
func QuickEdge(teamSP, oppSP, line float64) EdgeEstimate {
	margin := teamSP - oppSP
	marketMargin := -line
	edge := margin - marketMargin

	nEff := math.Min(12.0, 1.0/(1.0-Lambda))
	sigma := sigmaBase / math.Sqrt(nEff/4.0)

	return EdgeEstimate{
		ExpectedMargin: margin,
		MarketMargin:   marketMargin,
		EdgePoints:     edge,
		ProbCover:      stats.NormalCDF(edge / sigma),
	}
}
