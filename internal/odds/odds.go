// Package odds converts between American and decimal odds quotes.
package odds

import "math"

// AmericanToDecimal converts an American odds quote to a decimal payout
// multiplier. A zero quote maps to 1.0 so downstream maths never divides by
// zero; a 1.0 multiplier pays no profit and can never be worth backing.
func AmericanToDecimal(o float64) float64 {
	switch {
	case o > 0:
		return 1 + o/100.0
	case o < 0:
		return 1 + 100.0/math.Abs(o)
	default:
		return 1.0
	}
}

// ImpliedProbability returns the win probability implied by decimal odds.
func ImpliedProbability(decimal float64) float64 {
	if decimal <= 0 {
		return 0
	}
	return 1.0 / decimal
}

// RemoveVig strips the bookmaker overround from a two-way market, returning
// fair probabilities that sum to one.
func RemoveVig(decHome, decAway float64) (float64, float64) {
	rawHome := ImpliedProbability(decHome)
	rawAway := ImpliedProbability(decAway)
	total := rawHome + rawAway
	if total <= 0 {
		return 0, 0
	}
	return rawHome / total, rawAway / total
}
