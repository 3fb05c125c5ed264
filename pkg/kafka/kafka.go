package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

const (
	TransitionsTopic = "lending.transitions"
	ActivityTopic    = "lending.activity"

	NotificationConsumerGroup   = "notification-group"
	ActivityConsumerGroup       = "activity-group"
	ActivityEventsConsumerGroup = "activity-events-group"
	RealtimeConsumerGroup       = "realtime-group"
)

// TransitionEvent is a committed lifecycle transition published from the outbox.
// Messages are keyed by RequestUid so per-request order survives partitioning.
type TransitionEvent struct {
	RequestUid      string    `json:"requestUid"`
	BookUid         string    `json:"bookUid"`
	FromStatus      string    `json:"fromStatus"`
	ToStatus        string    `json:"toStatus"`
	ActorName       string    `json:"actorName"`
	CounterpartName string    `json:"counterpartName"`
	DueDate         string    `json:"dueDate,omitempty"`
	Message         string    `json:"message,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// ActivityEvent carries message/review events from external collaborators.
type ActivityEvent struct {
	CommunityUid string            `json:"communityUid,omitempty"`
	EventType    string            `json:"eventType"`
	ActorName    string            `json:"actorName"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	OccurredAt   time.Time         `json:"occurredAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer group session loop until ctx is done.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topics ...string) {
	for {
		if err := consumer.Consume(ctx, topics, handler); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}
