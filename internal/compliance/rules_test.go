package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Rule 1: consecutive pitching ---

func TestBrokenPitchingSequence_ConsecutiveInnings(t *testing.T) {
	assert.False(t, BrokenPitchingSequence([]int{1, 2, 3}))
}

func TestBrokenPitchingSequence_GapViolates(t *testing.T) {
	assert.True(t, BrokenPitchingSequence([]int{1, 2, 4}))
}

func TestBrokenPitchingSequence_LateStartAllowed(t *testing.T) {
	// Entering in the 4th is fine as long as the innings run unbroken.
	assert.False(t, BrokenPitchingSequence([]int{4, 5, 6}))
}

func TestBrokenPitchingSequence_SingleOrEmpty(t *testing.T) {
	assert.False(t, BrokenPitchingSequence([]int{3}))
	assert.False(t, BrokenPitchingSequence(nil))
}

func TestBrokenPitchingSequence_ExtraInnings(t *testing.T) {
	// Rule must hold for any inning range, not a fixed 6 or 7.
	assert.False(t, BrokenPitchingSequence([]int{9, 10, 11, 12}))
	assert.True(t, BrokenPitchingSequence([]int{9, 10, 12}))
}

// --- Rule 2: no catching after a high pitch count ---

func TestCaughtAfterHighCount_CatchingAfterViolates(t *testing.T) {
	assert.True(t, CaughtAfterHighCount([]int{1, 2, 3}, []int{4}, 45))
}

func TestCaughtAfterHighCount_CatchingBeforeAllowed(t *testing.T) {
	// Caught in innings 1-2, then pitched 3-4 with 45 pitches: only catching
	// after the last pitching inning counts.
	assert.False(t, CaughtAfterHighCount([]int{3, 4}, []int{1, 2}, 45))
}

func TestCaughtAfterHighCount_BelowThresholdAllowed(t *testing.T) {
	assert.False(t, CaughtAfterHighCount([]int{1, 2, 3}, []int{4}, 40))
}

func TestCaughtAfterHighCount_ThresholdIsInclusive(t *testing.T) {
	assert.True(t, CaughtAfterHighCount([]int{1, 2, 3}, []int{4}, 41))
}

func TestCaughtAfterHighCount_RequiresBothPositions(t *testing.T) {
	assert.False(t, CaughtAfterHighCount([]int{1, 2, 3}, nil, 45))
	assert.False(t, CaughtAfterHighCount(nil, []int{4}, 45))
}

// --- Rule 3: no pitching after four catching innings ---

func TestPitchedAfterFourCaught_Violates(t *testing.T) {
	assert.True(t, PitchedAfterFourCaught([]int{5}, []int{1, 2, 3, 4}))
}

func TestPitchedAfterFourCaught_PitchingBeforeFourthCatchAllowed(t *testing.T) {
	// Pitched the 1st, then caught 2-5. All pitching happened before the
	// fourth catching inning, so no violation.
	assert.False(t, PitchedAfterFourCaught([]int{1}, []int{2, 3, 4, 5}))
}

func TestPitchedAfterFourCaught_ThreeCaughtAllowed(t *testing.T) {
	assert.False(t, PitchedAfterFourCaught([]int{6}, []int{1, 2, 3}))
}

func TestPitchedAfterFourCaught_EmptyPitched(t *testing.T) {
	assert.False(t, PitchedAfterFourCaught(nil, []int{1, 2, 3, 4}))
}

// --- Rule 4: no return to catch after a moderate pitch count ---

func TestReturnedToCatch_RegressionCountsOnlyCatchingBeforePitching(t *testing.T) {
	// Caught 1-3, pitched 4-9, caught again in the 10th. Four total catching
	// innings, but only the three before pitching began count toward the
	// one-to-three window, so this violates.
	assert.True(t, ReturnedToCatch([]int{4, 5, 6, 7, 8, 9}, []int{1, 2, 3, 10}, 30))
}

func TestReturnedToCatch_NoCatchingAfterAllowed(t *testing.T) {
	// All four catching innings precede pitching and the player never returns
	// to catch: not a catcher-pitcher-catcher sequence.
	assert.False(t, ReturnedToCatch([]int{5, 6}, []int{1, 2, 3, 4}, 30))
}

func TestReturnedToCatch_OnlyCaughtAfterPitchingAllowed(t *testing.T) {
	// A player who only catches after pitching never "returned".
	assert.False(t, ReturnedToCatch([]int{1, 2}, []int{3, 4}, 30))
}

func TestReturnedToCatch_BelowThresholdAllowed(t *testing.T) {
	assert.False(t, ReturnedToCatch([]int{2, 3}, []int{1, 4}, 20))
}

func TestReturnedToCatch_ThresholdIsInclusive(t *testing.T) {
	assert.True(t, ReturnedToCatch([]int{2, 3}, []int{1, 4}, 21))
}

func TestReturnedToCatch_FourCaughtBeforePitchingOutsideWindow(t *testing.T) {
	// Four innings caught strictly before pitching is outside the one-to-three
	// window for this rule (rule 3 covers it instead).
	assert.False(t, ReturnedToCatch([]int{5, 6}, []int{1, 2, 3, 4, 7}, 30))
}

func TestReturnedToCatch_NeverPitched(t *testing.T) {
	assert.False(t, ReturnedToCatch(nil, []int{1, 2, 3}, 0))
}

// --- Rule 5: age-based pitch ceiling ---

func TestExceedsAgeCeiling_AtLimitCompliant(t *testing.T) {
	limit, violated := ExceedsAgeCeiling(DefaultAgeRules(), 10, 75)
	assert.Equal(t, 75, limit)
	assert.False(t, violated)
}

func TestExceedsAgeCeiling_OverLimitViolates(t *testing.T) {
	limit, violated := ExceedsAgeCeiling(DefaultAgeRules(), 10, 76)
	assert.Equal(t, 75, limit)
	assert.True(t, violated)
}

func TestExceedsAgeCeiling_YoungestBand(t *testing.T) {
	_, violated := ExceedsAgeCeiling(DefaultAgeRules(), 7, 51)
	assert.True(t, violated)
}

func TestExceedsAgeCeiling_NoMatchingRuleSkipped(t *testing.T) {
	// Age outside the policy table: rule inapplicable, never a violation.
	_, violated := ExceedsAgeCeiling(DefaultAgeRules(), 13, 200)
	assert.False(t, violated)
}

// --- Rule 6: rest-day eligibility ---

func TestPitchedBeforeEligible_Violates(t *testing.T) {
	eligible := MustParseDate("2025-05-14")
	assert.True(t, PitchedBeforeEligible(MustParseDate("2025-05-12"), &eligible, true))
}

func TestPitchedBeforeEligible_OnEligibleDateCompliant(t *testing.T) {
	eligible := MustParseDate("2025-05-14")
	assert.False(t, PitchedBeforeEligible(MustParseDate("2025-05-14"), &eligible, true))
}

func TestPitchedBeforeEligible_NoPriorHistory(t *testing.T) {
	assert.False(t, PitchedBeforeEligible(MustParseDate("2025-05-12"), nil, true))
}

func TestPitchedBeforeEligible_DidNotPitch(t *testing.T) {
	eligible := MustParseDate("2025-05-14")
	assert.False(t, PitchedBeforeEligible(MustParseDate("2025-05-12"), &eligible, false))
}
