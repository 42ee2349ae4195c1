// Package staking sizes bets from model win probabilities using a
// quarter-Kelly rule.
package staking

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/yourusername/cfb-edge/internal/models"
	"github.com/yourusername/cfb-edge/internal/odds"
)

const (
	// EVThreshold is the minimum expected value per unit stake before a side
	// is worth backing at all.
	EVThreshold = 0.03

	// KellyFraction scales the full Kelly stake down to a quarter.
	KellyFraction = 0.25
)

// ExpectedValue returns the expected profit per unit stake for a side with
// win probability p quoted at American odds.
func ExpectedValue(p, american float64) float64 {
	dec := odds.AmericanToDecimal(american)
	return p*(dec-1.0) - (1.0 - p)
}

// QuarterKelly returns the recommended bankroll fraction for a side. The
// fraction is zero whenever the net odds or the Kelly numerator are
// non-positive, and is never negative.
func QuarterKelly(p, american float64) float64 {
	b := odds.AmericanToDecimal(american) - 1.0
	if b <= 0 {
		return 0
	}
	q := 1.0 - p
	fStar := (b*p - q) / b
	return math.Max(0, KellyFraction*fStar)
}

// Recommend picks the side with the higher expected value, ties broken
// toward home, or declines to bet when neither side clears the threshold.
// The decision is deterministic and free of side effects.
func Recommend(pHomeWin, pAwayWin, oddsHome, oddsAway float64) models.Recommendation {
	evHome := ExpectedValue(pHomeWin, oddsHome)
	evAway := ExpectedValue(pAwayWin, oddsAway)

	if evHome < EVThreshold && evAway < EVThreshold {
		return models.Recommendation{Side: models.SideNoBet}
	}
	if evHome >= evAway {
		return models.Recommendation{
			Side:                 models.SideHome,
			EdgeEVPerDollar:      evHome,
			QuarterKellyFraction: QuarterKelly(pHomeWin, oddsHome),
		}
	}
	return models.Recommendation{
		Side:                 models.SideAway,
		EdgeEVPerDollar:      evAway,
		QuarterKellyFraction: QuarterKelly(pAwayWin, oddsAway),
	}
}

// StakeAmount converts a bankroll and a recommended fraction into a currency
// amount rounded to the cent. Non-positive bankrolls or fractions stake
// nothing.
func StakeAmount(bankroll, fraction float64) decimal.Decimal {
	if bankroll <= 0 || fraction <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(bankroll).Mul(decimal.NewFromFloat(fraction)).Round(2)
}
