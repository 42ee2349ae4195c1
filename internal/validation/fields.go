package validation

// RequiredInputFields lists every numeric field the inputs section must
// carry. The discovery endpoint reports missing fields against this same
// list, so the two can never drift apart.
var RequiredInputFields = []string{
	"offense_home", "defense_home", "offense_away", "defense_away",
	"home_field_points", "rest_diff_days", "away_travel_miles",
	"qb_home_delta", "qb_away_delta", "key_injuries_home", "key_injuries_away",
	"wind_mph", "pass_rate_home", "pass_rate_away",
}

// RequiredMarketFields lists every numeric field the market section must carry.
var RequiredMarketFields = []string{"spread", "odds_home", "odds_away"}

// Section bounds, inclusive.
const (
	InputMin  = -9999.0
	InputMax  = 9999.0
	MarketMin = -20000.0
	MarketMax = 20000.0
)
