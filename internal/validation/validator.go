// Package validation gates every model run behind a strict input contract.
package validation

import (
	"encoding/json"

	"github.com/yourusername/cfb-edge/internal/models"
)

// Validator decides whether a raw model request is computable. The contract
// is a single accept/reject signal with no partial success: the reason for a
// rejection is deliberately not reported, and the build_inputs discovery
// endpoint exists to list missing fields instead. Alternate implementations
// must produce the same decision as the canonical one for every vector in
// AcceptanceVectors.
type Validator interface {
	Validate(req *models.RunModelRequest) bool
}

// RangeValidator is the canonical Validator. A field is valid iff it is
// present, a real number (booleans are explicitly not numbers) and inside
// its section's bound.
type RangeValidator struct{}

// NewRangeValidator returns the canonical validator.
func NewRangeValidator() *RangeValidator {
	return &RangeValidator{}
}

// Validate checks all fourteen inputs fields and all three market fields.
// Every field is examined even after the first failure; the decision is the
// conjunction of all checks.
func (v *RangeValidator) Validate(req *models.RunModelRequest) bool {
	if req == nil || req.Inputs == nil || req.Market == nil {
		return false
	}

	ok := true
	for _, key := range RequiredInputFields {
		value, present := req.Inputs[key]
		if !present {
			ok = false
			continue
		}
		ok = numericInRange(value, InputMin, InputMax) && ok
	}
	for _, key := range RequiredMarketFields {
		value, present := req.Market[key]
		if !present {
			ok = false
			continue
		}
		ok = numericInRange(value, MarketMin, MarketMax) && ok
	}
	return ok
}

func numericInRange(value interface{}, min, max float64) bool {
	f, isNumber := asNumber(value)
	return isNumber && f >= min && f <= max
}

// asNumber reports whether value is a real number. encoding/json decodes
// every numeric token to float64, but payloads assembled in process may
// carry other numeric kinds; booleans are rejected in all cases.
func asNumber(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
