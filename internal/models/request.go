package models

import "encoding/json"

// RunModelRequest is the raw body of a model run. Both sections stay as
// generic maps until validation has passed, so the validator can tell a
// missing key from a null, a boolean from a number.
type RunModelRequest struct {
	Inputs map[string]interface{} `json:"inputs"`
	Market map[string]interface{} `json:"market"`
}

// HasSections reports whether both required top-level sections are present.
func (r *RunModelRequest) HasSections() bool {
	return r != nil && r.Inputs != nil && r.Market != nil
}

// InputSet holds the fourteen validated team and game features consumed by
// the prediction engine. All values are plain numbers in [-9999, 9999].
type InputSet struct {
	OffenseHome     float64
	DefenseHome     float64
	OffenseAway     float64
	DefenseAway     float64
	HomeFieldPoints float64
	RestDiffDays    float64
	AwayTravelMiles float64
	QBHomeDelta     float64
	QBAwayDelta     float64
	KeyInjuriesHome float64
	KeyInjuriesAway float64
	WindMPH         float64
	PassRateHome    float64
	PassRateAway    float64
}

// MarketSet holds the validated market fields. Spread follows the book
// convention where a negative number favors the home side; odds are quoted
// American-style.
type MarketSet struct {
	Spread   float64
	OddsHome float64
	OddsAway float64
}

// InputSetFromMap builds an InputSet from a validated inputs section.
// It must only be called after the validator has accepted the request.
func InputSetFromMap(m map[string]interface{}) InputSet {
	return InputSet{
		OffenseHome:     numberAt(m, "offense_home"),
		DefenseHome:     numberAt(m, "defense_home"),
		OffenseAway:     numberAt(m, "offense_away"),
		DefenseAway:     numberAt(m, "defense_away"),
		HomeFieldPoints: numberAt(m, "home_field_points"),
		RestDiffDays:    numberAt(m, "rest_diff_days"),
		AwayTravelMiles: numberAt(m, "away_travel_miles"),
		QBHomeDelta:     numberAt(m, "qb_home_delta"),
		QBAwayDelta:     numberAt(m, "qb_away_delta"),
		KeyInjuriesHome: numberAt(m, "key_injuries_home"),
		KeyInjuriesAway: numberAt(m, "key_injuries_away"),
		WindMPH:         numberAt(m, "wind_mph"),
		PassRateHome:    numberAt(m, "pass_rate_home"),
		PassRateAway:    numberAt(m, "pass_rate_away"),
	}
}

// MarketSetFromMap builds a MarketSet from a validated market section.
func MarketSetFromMap(m map[string]interface{}) MarketSet {
	return MarketSet{
		Spread:   numberAt(m, "spread"),
		OddsHome: numberAt(m, "odds_home"),
		OddsAway: numberAt(m, "odds_away"),
	}
}

// numberAt mirrors the numeric kinds the validator accepts; the two must
// never drift, or a validated field would silently flatten to zero here.
func numberAt(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
