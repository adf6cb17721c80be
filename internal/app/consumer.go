package app

import (
	"context"
	"fmt"

	"hris-core/internal/bootstrap"
	"hris-core/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer listens to leave and attendance events and invalidates cached
// analytics until a shutdown signal arrives.
func RunConsumer(i *Infra) error {
	cfg := i.Config
	logger := i.Logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("kafka.broker is required")
	}

	svc, err := buildServices(i)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        cfg.Kafka.GroupID,
		GroupTopics:    []string{cfg.Kafka.LeaveTopic, cfg.Kafka.AttendanceTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAttendanceChanges(ctx, reader, svc.analytics, logger)

	i.Audit.Log(ctx, bootstrap.AuditLog{
		Action:  "CONSUMER_STARTED",
		Message: "Analytics invalidation consumer started",
		Meta: map[string]any{
			"group_id": cfg.Kafka.GroupID,
			"topics":   []string{cfg.Kafka.LeaveTopic, cfg.Kafka.AttendanceTopic},
		},
	})

	sig := bootstrap.WaitForSignal()
	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}
