package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/pkg/kafka"
)

type transition func(ctx context.Context, event kafka.TransitionEvent) error

type TransitionConsumer struct {
	transitionHandler transition
	log               *zap.Logger
	ready             chan bool
}

func NewTransitionConsumer(transition transition, log *zap.Logger) *TransitionConsumer {
	return &TransitionConsumer{
		transitionHandler: transition,
		log:               log.Named("consumer"),
		ready:             make(chan bool),
	}
}

func (consumer *TransitionConsumer) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(consumer.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *TransitionConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *TransitionConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.TransitionEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.transitionHandler(context.Background(), event); err != nil {
				consumer.log.Error("consumer.transitionHandler", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

type activity func(ctx context.Context, event kafka.ActivityEvent) error

type ActivityConsumer struct {
	activityHandler activity
	log             *zap.Logger
	ready           chan bool
}

func NewActivityConsumer(activity activity, log *zap.Logger) *ActivityConsumer {
	return &ActivityConsumer{
		activityHandler: activity,
		log:             log.Named("consumer"),
		ready:           make(chan bool),
	}
}

func (consumer *ActivityConsumer) Setup(sarama.ConsumerGroupSession) error {
	close(consumer.ready)
	return nil
}

func (consumer *ActivityConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *ActivityConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.ActivityEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.activityHandler(context.Background(), event); err != nil {
				consumer.log.Error("consumer.activityHandler", zap.Error(err))
				continue
			}

			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
