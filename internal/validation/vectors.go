package validation

import "github.com/yourusername/cfb-edge/internal/models"

// AcceptanceVector pairs a request with the decision the canonical validator
// makes for it.
type AcceptanceVector struct {
	Name   string
	Req    *models.RunModelRequest
	Accept bool
}

// AcceptanceVectors returns the shared decision fixtures. Any pluggable
// Validator must agree with the canonical implementation on every vector;
// the property test in this package enforces that for RangeValidator, and an
// alternate implementation earns its place by passing the same test.
func AcceptanceVectors() []AcceptanceVector {
	return []AcceptanceVector{
		{Name: "complete payload", Req: completeRequest(nil, nil), Accept: true},
		{Name: "boundary input values", Req: completeRequest(map[string]interface{}{
			"offense_home": InputMax,
			"defense_away": InputMin,
		}, nil), Accept: true},
		{Name: "boundary market values", Req: completeRequest(nil, map[string]interface{}{
			"odds_home": MarketMax,
			"odds_away": MarketMin,
		}), Accept: true},
		{Name: "missing inputs section", Req: &models.RunModelRequest{
			Market: completeRequest(nil, nil).Market,
		}, Accept: false},
		{Name: "missing market section", Req: &models.RunModelRequest{
			Inputs: completeRequest(nil, nil).Inputs,
		}, Accept: false},
		{Name: "missing input field", Req: withoutInput("wind_mph"), Accept: false},
		{Name: "missing market field", Req: withoutMarket("spread"), Accept: false},
		{Name: "boolean input", Req: completeRequest(map[string]interface{}{
			"wind_mph": true,
		}, nil), Accept: false},
		{Name: "boolean market field", Req: completeRequest(nil, map[string]interface{}{
			"odds_home": false,
		}), Accept: false},
		{Name: "string input", Req: completeRequest(map[string]interface{}{
			"offense_home": "35",
		}, nil), Accept: false},
		{Name: "null input", Req: completeRequest(map[string]interface{}{
			"rest_diff_days": nil,
		}, nil), Accept: false},
		{Name: "input above bound", Req: completeRequest(map[string]interface{}{
			"away_travel_miles": InputMax + 1,
		}, nil), Accept: false},
		{Name: "input below bound", Req: completeRequest(map[string]interface{}{
			"qb_home_delta": InputMin - 0.5,
		}, nil), Accept: false},
		{Name: "market above bound", Req: completeRequest(nil, map[string]interface{}{
			"odds_away": MarketMax + 1,
		}), Accept: false},
		{Name: "market below bound", Req: completeRequest(nil, map[string]interface{}{
			"spread": MarketMin - 1,
		}), Accept: false},
	}
}

// completeRequest builds a fully valid request, then applies overrides to
// individual fields of either section.
func completeRequest(inputOverrides, marketOverrides map[string]interface{}) *models.RunModelRequest {
	inputs := map[string]interface{}{
		"offense_home":      35.0,
		"defense_home":      20.0,
		"offense_away":      28.0,
		"defense_away":      24.0,
		"home_field_points": 2.5,
		"rest_diff_days":    0.0,
		"away_travel_miles": 300.0,
		"qb_home_delta":     0.0,
		"qb_away_delta":     0.0,
		"key_injuries_home": 0.0,
		"key_injuries_away": 0.0,
		"wind_mph":          5.0,
		"pass_rate_home":    0.55,
		"pass_rate_away":    0.55,
	}
	market := map[string]interface{}{
		"spread":    -3.0,
		"odds_home": -150.0,
		"odds_away": 130.0,
	}
	for k, v := range inputOverrides {
		inputs[k] = v
	}
	for k, v := range marketOverrides {
		market[k] = v
	}
	return &models.RunModelRequest{Inputs: inputs, Market: market}
}

func withoutInput(key string) *models.RunModelRequest {
	req := completeRequest(nil, nil)
	delete(req.Inputs, key)
	return req
}

func withoutMarket(key string) *models.RunModelRequest {
	req := completeRequest(nil, nil)
	delete(req.Market, key)
	return req
}
