package compliance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedDistinct_SortsAndDedupes(t *testing.T) {
	assert.Equal(t, []int{1, 2, 4, 6}, SortedDistinct([]int{6, 2, 4, 1, 2, 6}))
}

func TestSortedDistinct_LeavesInputUntouched(t *testing.T) {
	in := []int{3, 1, 2}
	SortedDistinct(in)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestSortedDistinct_Empty(t *testing.T) {
	assert.Nil(t, SortedDistinct(nil))
}

func TestGroupInnings_SplitsByPositionPerPlayer(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	rows := []AssignmentRow{
		{PlayerID: a, Inning: 3, Position: PositionPitcher},
		{PlayerID: a, Inning: 1, Position: PositionPitcher},
		{PlayerID: a, Inning: 2, Position: PositionPitcher},
		{PlayerID: a, Inning: 5, Position: PositionCatcher},
		{PlayerID: b, Inning: 4, Position: PositionCatcher},
		{PlayerID: b, Inning: 4, Position: PositionCatcher}, // duplicate row
	}

	grouped := GroupInnings(rows)
	require.Len(t, grouped, 2)
	assert.Equal(t, []int{1, 2, 3}, grouped[a].Pitched)
	assert.Equal(t, []int{5}, grouped[a].Caught)
	assert.Empty(t, grouped[b].Pitched)
	assert.Equal(t, []int{4}, grouped[b].Caught)
}

func TestGroupInnings_IgnoresOtherPositions(t *testing.T) {
	a := uuid.New()
	grouped := GroupInnings([]AssignmentRow{
		{PlayerID: a, Inning: 1, Position: "shortstop"},
	})
	assert.Empty(t, grouped)
}

func TestOfficialPitchCount_AddsOneGuaranteedPitch(t *testing.T) {
	assert.Equal(t, 45, OfficialPitchCount(44, true))
}

func TestOfficialPitchCount_ZeroWhenNeverPitched(t *testing.T) {
	assert.Equal(t, 0, OfficialPitchCount(44, false))
}
