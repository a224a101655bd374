package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
)

// OutboxPoller drains the event_outbox table and publishes events to Kafka.
// Events are deleted only after a successful publish, so delivery is
// at-least-once; consumers de-duplicate on event_id.
type OutboxPoller struct {
	pool      *pgxpool.Pool
	producer  *KafkaProducer
	outbox    repository.OutboxRepository
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// NewOutboxPoller creates an outbox poller.
func NewOutboxPoller(pool *pgxpool.Pool, producer *KafkaProducer, outbox repository.OutboxRepository, logger *slog.Logger) *OutboxPoller {
	return &OutboxPoller{
		pool:      pool,
		producer:  producer,
		outbox:    outbox,
		logger:    logger,
		interval:  2 * time.Second,
		batchSize: 100,
	}
}

// Run polls until ctx is cancelled.
func (p *OutboxPoller) Run(ctx context.Context) error {
	p.logger.Info("outbox poller started", "interval", p.interval, "batch_size", p.batchSize)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox poller stopped")
			return nil
		case <-ticker.C:
			if err := p.poll(ctx); err != nil {
				p.logger.Error("outbox poll error", "error", err)
			}
		}
	}
}

func (p *OutboxPoller) poll(ctx context.Context) error {
	events, seqIDs, err := p.outbox.FetchUnpublished(ctx, p.pool, p.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	var published []int64
	for i, e := range events {
		msg, _ := json.Marshal(map[string]interface{}{
			"event_id":       e.EventID,
			"aggregate_type": e.AggregateType,
			"aggregate_id":   e.AggregateID,
			"event_type":     e.EventType,
			"payload":        e.Payload,
			"occurred_at":    e.OccurredAt,
		})

		if err := p.producer.Publish(ctx, string(e.EventType), []byte(e.PartitionKey), msg); err != nil {
			p.logger.Error("kafka publish failed", "event_id", e.EventID, "error", err)
			continue
		}
		published = append(published, seqIDs[i])
	}

	if err := p.outbox.MarkPublished(ctx, p.pool, published); err != nil {
		return err
	}
	if len(published) > 0 {
		p.logger.Info("outbox events published", "count", len(published))
	}
	return nil
}
