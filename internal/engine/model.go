// Package engine implements the cfb_spread_model_v2 prediction engine: a
// deterministic, closed-form transform from validated matchup features and
// market quotes to margins, probabilities and a staking recommendation.
package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/cfb-edge/internal/models"
	"github.com/yourusername/cfb-edge/internal/staking"
	"github.com/yourusername/cfb-edge/internal/stats"
)

// Model identity. Fixed at build time, not user-configurable.
const (
	ModelName    = "cfb_spread_model_v2"
	ModelVersion = "2.0.0"
	Lambda       = 0.834421
	Seed         = 42
)

// Model coefficients.
const (
	bMatchup  = 7.0
	bHFA      = 1.2
	bRest     = 0.15
	bTravel   = -0.10
	bQB       = 3.0
	bInjury   = 0.35
	bWeather  = 0.03
	sigmaBase = 14.0
)

// SpreadModel is the prediction engine. It is stateless and every Run is an
// independent pure function of its inputs, safe for unbounded concurrent use.
type SpreadModel struct{}

// New returns the engine for the current model version.
func New() *SpreadModel {
	return &SpreadModel{}
}

// Metadata returns the identity block stamped onto every result.
func Metadata() models.Metadata {
	return models.Metadata{Model: models.ModelInfo{
		Name:    ModelName,
		Version: ModelVersion,
		Lambda:  Lambda,
		Seed:    Seed,
	}}
}

// Run executes the model against a validated input and market set. Any
// arithmetic fault is recovered and surfaced as a computation error rather
// than propagating; none is expected for inputs the validator accepted,
// since every divisor is provably non-zero within bounds.
func (m *SpreadModel) Run(in models.InputSet, mk models.MarketSet) (out models.ModelOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", models.ErrComputation, r)
		}
	}()

	matchupGap := (in.OffenseHome - in.DefenseAway) - (in.OffenseAway - in.DefenseHome)

	em := bMatchup*matchupGap +
		bHFA +
		bRest*in.RestDiffDays +
		bTravel*(in.AwayTravelMiles/500.0) +
		bQB*(in.QBHomeDelta-in.QBAwayDelta) +
		bInjury*(in.KeyInjuriesAway-in.KeyInjuriesHome) +
		bWeather*in.WindMPH*(in.PassRateHome-in.PassRateAway)

	// Wind below 10 mph adds no uncertainty; injuries only ever inflate it.
	wind := math.Max(0, in.WindMPH-10.0)
	injTotal := in.KeyInjuriesHome + in.KeyInjuriesAway
	rawSigma := sigmaBase * (1 + 0.01*wind) * (1 + 0.03*injTotal)

	nEff := math.Min(12.0, 1.0/(1.0-Lambda))
	sigmaAdj := rawSigma / math.Sqrt(nEff/4.0)

	zCover := (em - mk.Spread) / sigmaAdj
	pHomeCover := stats.NormalCDF(zCover)

	pHomeWin := stats.NormalCDF(em / sigmaAdj)

	r2 := 0.65 * (1 - math.Min(0.35, rawSigma/20.0)) * (0.85 + 0.15*math.Min(1.0, math.Abs(em-mk.Spread)/7.0))
	r2 = clamp(r2, 0, 0.95)

	edgeConfidence := clamp((math.Abs(zCover)/2.5)*r2, 0, 1)

	out = models.ModelOutput{
		SpreadPred:    em,
		WinProbHome:   pHomeWin,
		WinProbAway:   1.0 - pHomeWin,
		ProbHomeCover: pHomeCover,
		Variance:      sigmaAdj * sigmaAdj,
		ConfidenceInterval: models.ConfidenceInterval{
			CI68: [2]float64{em - sigmaAdj, em + sigmaAdj},
			CI95: [2]float64{em - 1.96*sigmaAdj, em + 1.96*sigmaAdj},
		},
		R2Reliability:  r2,
		EdgeConfidence: edgeConfidence,
		Recommendation: staking.Recommend(pHomeWin, 1.0-pHomeWin, mk.OddsHome, mk.OddsAway),
		Metadata:       Metadata(),
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
