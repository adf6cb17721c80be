package app

import (
	"context"
	"fmt"

	"hris-core/internal/bootstrap"
	"hris-core/internal/jobs"
	"hris-core/internal/messaging/kafka/producer"
	"hris-core/internal/shared/connection"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const kafkaRetries = 5

// RunWorker relays the outbox to Kafka and runs the nightly absentee job
// until a shutdown signal arrives.
func RunWorker(i *Infra) error {
	cfg := i.Config
	logger := i.Logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("kafka.broker is required")
	}

	svc, err := buildServices(i)
	if err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, kafkaRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, svc.outbox, kafkaWriter, logger, cfg.Kafka.PollInterval)

	scheduler := cron.New(cron.WithLocation(i.Calendar.Location))
	absentees := jobs.NewAbsenteeJob(
		svc.attendance,
		i.Calendar,
		svc.outbox,
		cfg.Kafka.AttendanceTopic,
		cfg.Jobs.AbsenteeTimeout,
		logger,
	)
	if _, err := absentees.Schedule(scheduler, cfg.Jobs.AbsenteeSpec); err != nil {
		return fmt.Errorf("schedule absentee job: %w", err)
	}
	scheduler.Start()

	i.Audit.Log(ctx, bootstrap.AuditLog{
		Action:  "WORKER_STARTED",
		Message: "Outbox relay and scheduler started",
		Meta: map[string]any{
			"absentee_spec": cfg.Jobs.AbsenteeSpec,
			"time_zone":     i.Calendar.Location.String(),
		},
	})

	sig := bootstrap.WaitForSignal()
	logger.Info("worker shutting down", zap.String("signal", sig.String()))

	<-scheduler.Stop().Done()
	cancel()

	i.Audit.Log(context.Background(), bootstrap.AuditLog{
		Action:  "WORKER_STOPPED",
		Message: "Worker is shutting down",
		Meta:    map[string]any{"signal": sig.String()},
	})
	return nil
}
