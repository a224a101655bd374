package compliance

import (
	"fmt"

	"github.com/google/uuid"
)

// Rule identifies one of the six safety rules. The numeric values are the
// rule numbers used in league paperwork and violation displays.
type Rule int

const (
	// RuleConsecutivePitching: a pitcher removed from the mound may never
	// return in the same game.
	RuleConsecutivePitching Rule = 1
	// RuleCatchAfterHighCount: 41+ pitches forbids catching for the rest of
	// the game.
	RuleCatchAfterHighCount Rule = 2
	// RulePitchAfterFourCaught: four innings caught forbids pitching
	// afterwards.
	RulePitchAfterFourCaught Rule = 3
	// RuleReturnToCatch: a player who caught before pitching 21+ pitches may
	// not return to catch.
	RuleReturnToCatch Rule = 4
	// RuleAgePitchCeiling: the per-game pitch limit for the player's age.
	RuleAgePitchCeiling Rule = 5
	// RuleRestDays: pitching again before the rest-day schedule allows it.
	RuleRestDays Rule = 6
)

// String returns a short identifier for the rule.
func (r Rule) String() string {
	switch r {
	case RuleConsecutivePitching:
		return "consecutive_pitching"
	case RuleCatchAfterHighCount:
		return "catch_after_high_count"
	case RulePitchAfterFourCaught:
		return "pitch_after_four_caught"
	case RuleReturnToCatch:
		return "return_to_catch"
	case RuleAgePitchCeiling:
		return "age_pitch_ceiling"
	case RuleRestDays:
		return "rest_days"
	}
	return fmt.Sprintf("rule_%d", int(r))
}

// Violation records one broken rule for one player, with enough context to
// render a human-readable message. Violations are advisory; they never block
// saving the underlying game data.
type Violation struct {
	Rule       Rule      `json:"rule"`
	RuleName   string    `json:"rule_name"`
	PlayerID   uuid.UUID `json:"player_id"`
	PitchCount int       `json:"pitch_count,omitempty"`
	MaxPitches int       `json:"max_pitches,omitempty"`
	EligibleOn *Date     `json:"eligible_on,omitempty"`
	Message    string    `json:"message"`
}

// The rule predicates below expect innings slices that are sorted ascending
// with duplicates removed (see SortedDistinct); EvaluatePlayer normalizes
// before calling them.

// BrokenPitchingSequence implements rule 1. A gap between adjacent pitched
// innings is the observable signature of "removed from the mound, then
// returned". Works for any inning range, including extra innings.
func BrokenPitchingSequence(pitched []int) bool {
	for i := 1; i < len(pitched); i++ {
		if pitched[i]-pitched[i-1] > 1 {
			return true
		}
	}
	return false
}

// CaughtAfterHighCount implements rule 2. With an official count of 41 or
// more, any catching after the last pitching inning violates; catching earlier
// in the game does not.
func CaughtAfterHighCount(pitched, caught []int, officialCount int) bool {
	if officialCount < 41 || len(pitched) == 0 || len(caught) == 0 {
		return false
	}
	lastPitched := pitched[len(pitched)-1]
	for _, inning := range caught {
		if inning > lastPitched {
			return true
		}
	}
	return false
}

// PitchedAfterFourCaught implements rule 3. Once a player has caught four
// innings, pitching in any later inning violates. Pitching before the fourth
// catching inning is still allowed.
func PitchedAfterFourCaught(pitched, caught []int) bool {
	if len(caught) < 4 {
		return false
	}
	fourthCatch := caught[3]
	for _, inning := range pitched {
		if inning > fourthCatch {
			return true
		}
	}
	return false
}

// ReturnedToCatch implements rule 4, the catcher-pitcher-catcher sequence:
// a player who caught one to three innings before their first pitching inning,
// then threw 21+ official pitches, may not catch again afterwards. Only
// catching strictly before pitching began counts toward the one-to-three
// window; a player who first catches after pitching is not "returning".
func ReturnedToCatch(pitched, caught []int, officialCount int) bool {
	if len(pitched) == 0 || officialCount < 21 {
		return false
	}
	firstPitched := pitched[0]
	lastPitched := pitched[len(pitched)-1]

	var before, after int
	for _, inning := range caught {
		switch {
		case inning < firstPitched:
			before++
		case inning > lastPitched:
			after++
		}
	}
	return before >= 1 && before <= 3 && after >= 1
}

// ExceedsAgeCeiling implements rule 5. The returned limit is the applicable
// per-game maximum; a count exactly at the limit is compliant. A player with
// no matching age rule has no ceiling and never violates.
func ExceedsAgeCeiling(rules []AgeRule, age, officialCount int) (limit int, violated bool) {
	rule, ok := FindAgeRule(rules, age)
	if !ok {
		return 0, false
	}
	return rule.MaxPitchesPerGame, officialCount > rule.MaxPitchesPerGame
}

// PitchedBeforeEligible implements rule 6, the only cross-game rule. It
// violates when the player pitched this game strictly before the eligibility
// date carried over from their latest prior appearance. Pitching exactly on
// the eligible date is compliant, as is pitching with no prior history.
func PitchedBeforeEligible(gameDate Date, nextEligible *Date, pitchedThisGame bool) bool {
	if !pitchedThisGame || nextEligible == nil {
		return false
	}
	return gameDate.Before(*nextEligible)
}
