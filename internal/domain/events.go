package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventViolationFlagged   EventType = "scorekeeper.game.violation_flagged"
	EventViolationCleared   EventType = "scorekeeper.game.violation_cleared"
	EventEligibilityUpdated EventType = "scorekeeper.pitching.eligibility_updated"
	EventRosterImported     EventType = "scorekeeper.team.roster_imported"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateGame   AggregateType = "game"
	AggregatePlayer AggregateType = "player"
	AggregateTeam   AggregateType = "team"
)

// OutboxDraft is the payload written to the event_outbox table. Drafts are
// inserted in the same transaction as the data change they describe and
// published to Kafka by cmd/notifier.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// NewViolationFlaggedEvent describes a game save whose evaluation found at
// least one safety-rule violation. Downstream consumers notify coaches.
func NewViolationFlaggedEvent(gameID uuid.UUID, gameDate compliance.Date, violations []compliance.Violation) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"game_id":    gameID.String(),
		"game_date":  gameDate.String(),
		"violations": violations,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateGame,
		AggregateID:   gameID.String(),
		EventType:     EventViolationFlagged,
		PartitionKey:  gameID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewViolationClearedEvent describes a re-save that brought a previously
// flagged game back into compliance.
func NewViolationClearedEvent(gameID uuid.UUID) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{"game_id": gameID.String()})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateGame,
		AggregateID:   gameID.String(),
		EventType:     EventViolationCleared,
		PartitionKey:  gameID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewEligibilityUpdatedEvent describes a recomputed next-eligible-pitch date.
func NewEligibilityUpdatedEvent(playerID, gameID uuid.UUID, nextEligible compliance.Date) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"player_id":                playerID.String(),
		"game_id":                  gameID.String(),
		"next_eligible_pitch_date": nextEligible.String(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   playerID.String(),
		EventType:     EventEligibilityUpdated,
		PartitionKey:  playerID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewRosterImportedEvent describes a completed CSV roster import.
func NewRosterImportedEvent(teamID uuid.UUID, imported int) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"team_id":  teamID.String(),
		"imported": imported,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateTeam,
		AggregateID:   teamID.String(),
		EventType:     EventRosterImported,
		PartitionKey:  teamID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
