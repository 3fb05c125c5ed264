package fanout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// Dispatcher drains the transition outbox into Kafka. Rows are sent in
// insertion order and marked published afterwards, so delivery is
// at-least-once and every consumer must be idempotent.
type Dispatcher struct {
	repo     repository.Repository
	producer sarama.SyncProducer
	log      *zap.Logger
	interval time.Duration
}

func NewDispatcher(repo repository.Repository, producer sarama.SyncProducer, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		producer: producer,
		log:      log.Named("dispatcher"),
		interval: 200 * time.Millisecond,
	}
}

const dispatchBatch = 100

func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.drain(ctx); err != nil {
				d.log.Error("drain outbox", zap.Error(err))
			}
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) error {
	rows, err := d.repo.FetchUnpublished(ctx, dispatchBatch)
	if err != nil {
		return err
	}
	for _, row := range rows {
		event := toEvent(row)
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		msg := &sarama.ProducerMessage{
			Topic: kafka.TransitionsTopic,
			Key:   sarama.StringEncoder(row.RequestUid),
			Value: sarama.ByteEncoder(data),
		}
		if _, _, err := d.producer.SendMessage(msg); err != nil {
			// stop the batch: a later row for the same request must not
			// overtake this one
			return err
		}
		if err := d.repo.MarkPublished(ctx, row.ID); err != nil {
			return err
		}
	}
	return nil
}

func toEvent(row repository.Outbox) kafka.TransitionEvent {
	event := kafka.TransitionEvent{
		RequestUid:      row.RequestUid,
		BookUid:         row.BookUid,
		FromStatus:      row.FromStatus,
		ToStatus:        row.ToStatus,
		ActorName:       row.ActorName,
		CounterpartName: row.Counterpart,
		OccurredAt:      row.OccurredAt,
	}
	if row.DueDate != nil {
		event.DueDate = row.DueDate.Format(time.DateOnly)
	}
	if row.Message != nil {
		event.Message = *row.Message
	}
	return event
}
