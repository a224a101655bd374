package compliance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateGame_CleanGame(t *testing.T) {
	lines := []PlayerLine{
		{PlayerID: uuid.New(), Age: 10, Pitched: []int{1, 2, 3}, PenultimateBatterCount: 30},
		{PlayerID: uuid.New(), Age: 11, Caught: []int{1, 2, 3}},
	}
	result := EvaluateGame(DefaultAgeRules(), MustParseDate("2025-05-10"), lines)
	assert.False(t, result.HasViolation)
	assert.Empty(t, result.Violations)
}

func TestEvaluateGame_OnePlayerFlagsGame(t *testing.T) {
	bad := uuid.New()
	lines := []PlayerLine{
		{PlayerID: uuid.New(), Age: 10, Pitched: []int{1, 2}, PenultimateBatterCount: 20},
		{PlayerID: bad, Age: 10, Pitched: []int{1, 2, 4}, PenultimateBatterCount: 20},
	}
	result := EvaluateGame(DefaultAgeRules(), MustParseDate("2025-05-10"), lines)
	assert.True(t, result.HasViolation)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, RuleConsecutivePitching, result.Violations[0].Rule)
	assert.Equal(t, bad, result.Violations[0].PlayerID)
}

func TestEvaluatePlayer_MultipleViolationsReported(t *testing.T) {
	// 80 official pitches at age 10 breaks the ceiling, and catching the 8th
	// after last pitching the 7th breaks the high-count rule too.
	line := PlayerLine{
		PlayerID:               uuid.New(),
		Age:                    10,
		Pitched:                []int{1, 2, 3, 4, 5, 6, 7},
		Caught:                 []int{8},
		PenultimateBatterCount: 79,
	}
	violations := EvaluatePlayer(DefaultAgeRules(), MustParseDate("2025-05-10"), line)
	require.Len(t, violations, 2)

	rules := []Rule{violations[0].Rule, violations[1].Rule}
	assert.Contains(t, rules, RuleCatchAfterHighCount)
	assert.Contains(t, rules, RuleAgePitchCeiling)
}

func TestEvaluatePlayer_OrderIndependent(t *testing.T) {
	id := uuid.New()
	sorted := PlayerLine{
		PlayerID: id, Age: 10,
		Pitched:                []int{4, 5, 6},
		Caught:                 []int{1, 2, 3, 7},
		PenultimateBatterCount: 29,
	}
	shuffled := PlayerLine{
		PlayerID: id, Age: 10,
		Pitched:                []int{6, 4, 5, 4},
		Caught:                 []int{7, 3, 1, 2, 2},
		PenultimateBatterCount: 29,
	}

	gameDate := MustParseDate("2025-05-10")
	assert.Equal(t,
		EvaluatePlayer(DefaultAgeRules(), gameDate, sorted),
		EvaluatePlayer(DefaultAgeRules(), gameDate, shuffled))
}

func TestEvaluatePlayer_Idempotent(t *testing.T) {
	line := PlayerLine{
		PlayerID: uuid.New(), Age: 12,
		Pitched:                []int{1, 3},
		PenultimateBatterCount: 50,
	}
	gameDate := MustParseDate("2025-05-10")
	first := EvaluatePlayer(DefaultAgeRules(), gameDate, line)
	second := EvaluatePlayer(DefaultAgeRules(), gameDate, line)
	assert.Equal(t, first, second)
}

func TestEvaluatePlayer_RestDayViolationCarriesEligibleDate(t *testing.T) {
	eligible := MustParseDate("2025-05-14")
	line := PlayerLine{
		PlayerID: uuid.New(), Age: 10,
		Pitched:                []int{1},
		PenultimateBatterCount: 10,
		NextEligible:           &eligible,
	}
	violations := EvaluatePlayer(DefaultAgeRules(), MustParseDate("2025-05-12"), line)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleRestDays, violations[0].Rule)
	require.NotNil(t, violations[0].EligibleOn)
	assert.Equal(t, "2025-05-14", violations[0].EligibleOn.String())
	assert.Contains(t, violations[0].Message, "2025-05-14")
}

func TestEvaluatePlayer_CeilingViolationCarriesCountAndLimit(t *testing.T) {
	line := PlayerLine{
		PlayerID: uuid.New(), Age: 10,
		Pitched:                []int{1, 2, 3},
		PenultimateBatterCount: 75,
	}
	violations := EvaluatePlayer(DefaultAgeRules(), MustParseDate("2025-05-10"), line)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleAgePitchCeiling, violations[0].Rule)
	assert.Equal(t, 76, violations[0].PitchCount)
	assert.Equal(t, 75, violations[0].MaxPitches)
}

func TestEvaluatePlayer_NoAssignmentsNoViolations(t *testing.T) {
	eligible := MustParseDate("2025-05-14")
	line := PlayerLine{
		PlayerID: uuid.New(), Age: 10,
		// Did not pitch: a stored eligibility date alone is not a violation,
		// and the penultimate count is ignored entirely.
		PenultimateBatterCount: 90,
		NextEligible:           &eligible,
	}
	assert.Empty(t, EvaluatePlayer(DefaultAgeRules(), MustParseDate("2025-05-12"), line))
}

func TestEvaluatePlayer_SameInningBothPositions(t *testing.T) {
	// The schema cannot stop a player being recorded as pitcher and catcher in
	// the same inning. The lists are evaluated independently; here inning 4
	// counts as catching after the final pitching inning (3) only.
	line := PlayerLine{
		PlayerID: uuid.New(), Age: 10,
		Pitched:                []int{1, 2, 3},
		Caught:                 []int{3, 4},
		PenultimateBatterCount: 44,
	}
	violations := EvaluatePlayer(DefaultAgeRules(), MustParseDate("2025-05-10"), line)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleCatchAfterHighCount, violations[0].Rule)
}
