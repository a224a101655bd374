package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("coach@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidateLeagueAge(t *testing.T) {
	assert.NoError(t, ValidateLeagueAge(10))
	assert.NoError(t, ValidateLeagueAge(13)) // storable even with no age rule
	assert.Error(t, ValidateLeagueAge(3))
	assert.Error(t, ValidateLeagueAge(19))
}

func TestValidateInning(t *testing.T) {
	assert.NoError(t, ValidateInning(1))
	assert.NoError(t, ValidateInning(12))
	assert.Error(t, ValidateInning(0))
	assert.Error(t, ValidateInning(13))
}

func TestValidatePosition(t *testing.T) {
	assert.NoError(t, ValidatePosition(compliance.PositionPitcher))
	assert.NoError(t, ValidatePosition(compliance.PositionCatcher))
	assert.Error(t, ValidatePosition("shortstop"))
}

func TestValidatePitchCounts(t *testing.T) {
	assert.NoError(t, ValidatePitchCounts(50, 44))
	assert.NoError(t, ValidatePitchCounts(50, 50))
	assert.Error(t, ValidatePitchCounts(44, 50))
	assert.Error(t, ValidatePitchCounts(-1, 0))
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := assert.AnError
	err := ErrInternal("save game", cause)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "save game")
	assert.Equal(t, cause, err.Unwrap())
}

func TestNewViolationFlaggedEvent(t *testing.T) {
	gameID := uuid.New()
	draft := NewViolationFlaggedEvent(gameID, compliance.MustParseDate("2025-05-10"), []compliance.Violation{
		{Rule: compliance.RuleConsecutivePitching, PlayerID: uuid.New()},
	})
	require.Equal(t, EventViolationFlagged, draft.EventType)
	assert.Equal(t, AggregateGame, draft.AggregateType)
	assert.Equal(t, gameID.String(), draft.AggregateID)
	assert.Equal(t, gameID.String(), draft.PartitionKey)
	assert.NotEmpty(t, draft.Payload)
}
