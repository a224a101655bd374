// Package compliance implements the pitching/catching safety rules for youth
// baseball: six per-game and cross-game violation checks plus the rest-day
// calculator that derives when a pitcher may next take the mound. Everything
// in this package is a pure function over its inputs; missing or inapplicable
// data maps to "no violation", never to an error.
package compliance

// RestTier is one band of an age rule's rest-day schedule: a pitcher who threw
// between MinPitches and MaxPitches (inclusive) owes RestDays full days of rest.
type RestTier struct {
	MinPitches int `json:"min_pitches"`
	MaxPitches int `json:"max_pitches"`
	RestDays   int `json:"rest_days"`
}

// AgeRule maps a contiguous league-age range to its per-game pitch ceiling and
// rest-day schedule. Ranges in a rule set must not overlap.
type AgeRule struct {
	AgeMin            int        `json:"age_min"`
	AgeMax            int        `json:"age_max"`
	MaxPitchesPerGame int        `json:"max_pitches_per_game"`
	RestTiers         []RestTier `json:"rest_tiers"`
}

// DefaultAgeRules returns the current Little League pitch count limits and
// rest-day schedule for league ages 6 through 12.
func DefaultAgeRules() []AgeRule {
	return []AgeRule{
		{
			AgeMin: 6, AgeMax: 8, MaxPitchesPerGame: 50,
			RestTiers: []RestTier{
				{MinPitches: 1, MaxPitches: 20, RestDays: 0},
				{MinPitches: 21, MaxPitches: 35, RestDays: 1},
				{MinPitches: 36, MaxPitches: 50, RestDays: 2},
			},
		},
		{
			AgeMin: 9, AgeMax: 10, MaxPitchesPerGame: 75,
			RestTiers: []RestTier{
				{MinPitches: 1, MaxPitches: 20, RestDays: 0},
				{MinPitches: 21, MaxPitches: 35, RestDays: 1},
				{MinPitches: 36, MaxPitches: 50, RestDays: 2},
				{MinPitches: 51, MaxPitches: 65, RestDays: 3},
				{MinPitches: 66, MaxPitches: 75, RestDays: 4},
			},
		},
		{
			AgeMin: 11, AgeMax: 12, MaxPitchesPerGame: 85,
			RestTiers: []RestTier{
				{MinPitches: 1, MaxPitches: 20, RestDays: 0},
				{MinPitches: 21, MaxPitches: 35, RestDays: 1},
				{MinPitches: 36, MaxPitches: 50, RestDays: 2},
				{MinPitches: 51, MaxPitches: 65, RestDays: 3},
				{MinPitches: 66, MaxPitches: 85, RestDays: 4},
			},
		},
	}
}

// FindAgeRule returns the rule whose age range contains age. A player outside
// every range (for example a 13-year-old in a table that stops at 12) has no
// applicable rule; every rule that depends on one is skipped for that player.
func FindAgeRule(rules []AgeRule, age int) (AgeRule, bool) {
	for _, r := range rules {
		if age >= r.AgeMin && age <= r.AgeMax {
			return r, true
		}
	}
	return AgeRule{}, false
}

// RequiredRestDays resolves the rest-day tier for the given official pitch
// count. A count outside every tier (including zero) has no tier.
func (r AgeRule) RequiredRestDays(officialPitchCount int) (int, bool) {
	for _, t := range r.RestTiers {
		if officialPitchCount >= t.MinPitches && officialPitchCount <= t.MaxPitches {
			return t.RestDays, true
		}
	}
	return 0, false
}
