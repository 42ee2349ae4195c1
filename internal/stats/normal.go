// Package stats provides the probability kernel shared by every probability
// computation in the engine.
package stats

import "math"

// NormalCDF returns the standard normal cumulative distribution function
// evaluated at z, computed through the error function to double precision.
func NormalCDF(z float64) float64 {
	return 0.5 * (1.0 + math.Erf(z/math.Sqrt2))
}
