package compliance

import (
	"fmt"

	"github.com/google/uuid"
)

// PlayerLine is everything the rules need for one player in one game: the raw
// innings reported by the game-entry form (unsorted and possibly duplicated),
// the pitch counts, and the eligibility date carried over from the player's
// latest prior pitching appearance (nil if they have never pitched).
type PlayerLine struct {
	PlayerID               uuid.UUID
	Age                    int
	Pitched                []int
	Caught                 []int
	FinalPitchCount        int
	PenultimateBatterCount int
	NextEligible           *Date
}

// GameEvaluation is the aggregate result for one game: the advisory flag
// written back to the game plus the per-player detail list for display.
type GameEvaluation struct {
	HasViolation bool        `json:"has_violation"`
	Violations   []Violation `json:"violations"`
}

// EvaluateGame runs all six rules over every player line and reduces to a
// single flag plus the full detail list. Evaluation is deterministic and
// idempotent: the same lines, in any order, always produce the same result.
func EvaluateGame(rules []AgeRule, gameDate Date, lines []PlayerLine) GameEvaluation {
	var all []Violation
	for _, line := range lines {
		all = append(all, EvaluatePlayer(rules, gameDate, line)...)
	}
	return GameEvaluation{HasViolation: len(all) > 0, Violations: all}
}

// EvaluatePlayer runs all six rules for a single player. Innings are
// normalized (sorted, de-duplicated) first, so callers may pass rows exactly
// as an untrusted form submitted them.
func EvaluatePlayer(rules []AgeRule, gameDate Date, line PlayerLine) []Violation {
	pitched := SortedDistinct(line.Pitched)
	caught := SortedDistinct(line.Caught)
	count := OfficialPitchCount(line.PenultimateBatterCount, len(pitched) > 0)

	var violations []Violation
	add := func(v Violation) {
		v.RuleName = v.Rule.String()
		v.PlayerID = line.PlayerID
		violations = append(violations, v)
	}

	if BrokenPitchingSequence(pitched) {
		add(Violation{
			Rule:    RuleConsecutivePitching,
			Message: "pitched in non-consecutive innings; a removed pitcher may not return to the mound",
		})
	}
	if CaughtAfterHighCount(pitched, caught, count) {
		add(Violation{
			Rule:       RuleCatchAfterHighCount,
			PitchCount: count,
			Message:    fmt.Sprintf("caught after pitching %d pitches; 41 or more forbids catching for the rest of the game", count),
		})
	}
	if PitchedAfterFourCaught(pitched, caught) {
		add(Violation{
			Rule:    RulePitchAfterFourCaught,
			Message: "pitched after catching four innings",
		})
	}
	if ReturnedToCatch(pitched, caught, count) {
		add(Violation{
			Rule:       RuleReturnToCatch,
			PitchCount: count,
			Message:    fmt.Sprintf("returned to catch after pitching %d pitches following earlier catching innings", count),
		})
	}
	if limit, violated := ExceedsAgeCeiling(rules, line.Age, count); violated {
		add(Violation{
			Rule:       RuleAgePitchCeiling,
			PitchCount: count,
			MaxPitches: limit,
			Message:    fmt.Sprintf("threw %d pitches; maximum for age %d is %d", count, line.Age, limit),
		})
	}
	if PitchedBeforeEligible(gameDate, line.NextEligible, len(pitched) > 0) {
		eligible := *line.NextEligible
		add(Violation{
			Rule:       RuleRestDays,
			EligibleOn: &eligible,
			Message:    fmt.Sprintf("pitched on %s but is not eligible until %s", gameDate, eligible),
		})
	}
	return violations
}
