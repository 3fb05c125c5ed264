package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/internal/fanout"
	"github.com/Astemirdum/lending-service/lending/internal/handler"
	"github.com/Astemirdum/lending-service/lending/internal/queue"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/lending/internal/server"
	"github.com/Astemirdum/lending-service/lending/internal/service"
	"github.com/Astemirdum/lending-service/lending/internal/service/catalog"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/kafka"
	"github.com/Astemirdum/lending-service/pkg/logger"
	"github.com/Astemirdum/lending-service/pkg/postgres"
	"github.com/Astemirdum/lending-service/pkg/pubsub"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "lending")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %w", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %w", err)
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka.NewProducer %w", err)
	}
	svc := service.NewService(repo, catalog.NewService(log, cfg), queue.NewEnqueuer(producer), log)

	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	defer consumeCancel()
	g, gCtx := errgroup.WithContext(consumeCtx)

	dispatcher := fanout.NewDispatcher(repo, producer, log)
	g.Go(func() error {
		return dispatcher.Run(gCtx)
	})

	notifier := fanout.NewNotifier(repo, log)
	if err := runConsumer(gCtx, g, cfg.Kafka, kafka.NotificationConsumerGroup,
		handler.NewTransitionConsumer(notifier.HandleTransition, log), kafka.TransitionsTopic); err != nil {
		return err
	}

	recorder := fanout.NewRecorder(repo, log)
	if err := runConsumer(gCtx, g, cfg.Kafka, kafka.ActivityConsumerGroup,
		handler.NewTransitionConsumer(recorder.HandleTransition, log), kafka.TransitionsTopic); err != nil {
		return err
	}
	if err := runConsumer(gCtx, g, cfg.Kafka, kafka.ActivityEventsConsumerGroup,
		handler.NewActivityConsumer(recorder.HandleActivityEvent, log), kafka.ActivityTopic); err != nil {
		return err
	}

	broker := pubsub.NewBroker()
	bridge := func(_ context.Context, event kafka.TransitionEvent) error {
		broker.Publish(event)
		return nil
	}
	if err := runConsumer(gCtx, g, cfg.Kafka, kafka.RealtimeConsumerGroup,
		handler.NewTransitionConsumer(bridge, log), kafka.TransitionsTopic); err != nil {
		return err
	}

	h := handler.New(svc, broker, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	consumeCancel()
	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error("consumers stop", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}

func runConsumer(ctx context.Context, g *errgroup.Group, cfg kafka.Config, group string, h sarama.ConsumerGroupHandler, topics ...string) error {
	consumer, err := kafka.NewConsumer(cfg, group)
	if err != nil {
		return fmt.Errorf("kafka.NewConsumer %w", err)
	}
	g.Go(func() error {
		defer consumer.Close() //nolint:errcheck
		kafka.Consume(ctx, consumer, h, topics...)
		return nil
	})
	return nil
}
