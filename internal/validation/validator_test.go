package validation

import (
	"encoding/json"
	"testing"

	"github.com/yourusername/cfb-edge/internal/models"
)

func TestRangeValidatorMatchesAcceptanceVectors(t *testing.T) {
	v := NewRangeValidator()
	for _, vec := range AcceptanceVectors() {
		t.Run(vec.Name, func(t *testing.T) {
			if got := v.Validate(vec.Req); got != vec.Accept {
				t.Errorf("Validate() = %v, want %v", got, vec.Accept)
			}
		})
	}
}

func TestRangeValidatorNilRequest(t *testing.T) {
	v := NewRangeValidator()
	if v.Validate(nil) {
		t.Error("nil request must be rejected")
	}
	if v.Validate(&models.RunModelRequest{}) {
		t.Error("request without sections must be rejected")
	}
}

func TestRangeValidatorDecodedJSON(t *testing.T) {
	payload := `{
		"inputs": {
			"offense_home": 35, "defense_home": 20, "offense_away": 28,
			"defense_away": 24, "home_field_points": 2.5, "rest_diff_days": 0,
			"away_travel_miles": 300, "qb_home_delta": 0, "qb_away_delta": 0,
			"key_injuries_home": 0, "key_injuries_away": 0, "wind_mph": 5,
			"pass_rate_home": 0.55, "pass_rate_away": 0.55
		},
		"market": {"spread": -3, "odds_home": -150, "odds_away": 130}
	}`

	var req models.RunModelRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if !NewRangeValidator().Validate(&req) {
		t.Error("decoded reference payload must validate")
	}
}

func TestRangeValidatorNumericKinds(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"float64", 12.5, true},
		{"int", 12, true},
		{"int64", int64(12), true},
		{"json.Number", json.Number("12.5"), true},
		{"bool true", true, false},
		{"bool false", false, false},
		{"string", "12.5", false},
		{"nil", nil, false},
		{"nested object", map[string]interface{}{"v": 1}, false},
	}

	v := NewRangeValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := completeRequest(map[string]interface{}{"wind_mph": tt.value}, nil)
			if got := v.Validate(req); got != tt.want {
				t.Errorf("Validate() with wind_mph=%v (%T) = %v, want %v", tt.value, tt.value, got, tt.want)
			}
		})
	}
}

func TestRangeValidatorChecksEveryField(t *testing.T) {
	// One bad field in each section; the decision must still be the
	// conjunction over all seventeen fields.
	req := completeRequest(
		map[string]interface{}{"offense_home": InputMax + 1},
		map[string]interface{}{"odds_away": true},
	)
	if NewRangeValidator().Validate(req) {
		t.Error("request with failures in both sections must be rejected")
	}
}

func TestRequiredFieldCounts(t *testing.T) {
	if len(RequiredInputFields) != 14 {
		t.Errorf("expected 14 input fields, got %d", len(RequiredInputFields))
	}
	if len(RequiredMarketFields) != 3 {
		t.Errorf("expected 3 market fields, got %d", len(RequiredMarketFields))
	}
}
