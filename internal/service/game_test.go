package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
)

func TestValidateSection_DuplicatePlayer(t *testing.T) {
	id := uuid.New()
	err := validateSection([]PlayerSectionInput{
		{PlayerID: id, CaughtInnings: []int{1}},
		{PlayerID: id, CaughtInnings: []int{2}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestValidateSection_MissingPlayerID(t *testing.T) {
	err := validateSection([]PlayerSectionInput{{CaughtInnings: []int{1}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player_id")
}

func TestValidateSection_InningOutOfRange(t *testing.T) {
	err := validateSection([]PlayerSectionInput{
		{PlayerID: uuid.New(), PitchedInnings: []int{13}, FinalPitchCount: 10, PenultimateBatterCount: 8},
	})
	require.Error(t, err)
}

func TestValidateSection_PitchCountsCheckedOnlyForPitchers(t *testing.T) {
	// A catcher-only row with zeroed counts is fine.
	err := validateSection([]PlayerSectionInput{
		{PlayerID: uuid.New(), CaughtInnings: []int{1, 2}},
	})
	assert.NoError(t, err)

	// A pitcher row with penultimate > final is not.
	err = validateSection([]PlayerSectionInput{
		{PlayerID: uuid.New(), PitchedInnings: []int{1}, FinalPitchCount: 10, PenultimateBatterCount: 11},
	})
	require.Error(t, err)
}

func TestBuildAssignments_DeduplicatesAndSorts(t *testing.T) {
	gameID := uuid.New()
	playerID := uuid.New()
	out := buildAssignments(gameID, []PlayerSectionInput{
		{PlayerID: playerID, PitchedInnings: []int{3, 1, 3}, CaughtInnings: []int{5}},
	})

	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].Inning)
	assert.Equal(t, compliance.PositionPitcher, out[0].Position)
	assert.Equal(t, 3, out[1].Inning)
	assert.Equal(t, 5, out[2].Inning)
	assert.Equal(t, compliance.PositionCatcher, out[2].Position)
	for _, a := range out {
		assert.Equal(t, gameID, a.GameID)
		assert.Equal(t, playerID, a.PlayerID)
	}
}
