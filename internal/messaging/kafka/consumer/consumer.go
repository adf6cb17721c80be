package consumer

import (
	"context"
	"encoding/json"

	"hris-core/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// CacheInvalidator drops cached rollups that may include the changed days.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ConsumeAttendanceChanges evicts cached analytics whenever a leave decision,
// a clock punch or import, or a nightly absentee run changes day statuses.
func ConsumeAttendanceChanges(
	ctx context.Context,
	reader MessageReader,
	cache CacheInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_changes")
	log.Info("attendance changes consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance changes consumer stopped")
				return
			}
			log.Error("fetch attendance change message failed", zap.Error(err))
			continue
		}

		if err := handleMessage(ctx, msg, cache, log); err != nil {
			// Leave uncommitted so the group redelivers it.
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance change message failed", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, cache CacheInvalidator, log *zap.Logger) error {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		log.Error("decode event envelope failed", zap.String("topic", msg.Topic), zap.Error(err))
		return nil
	}

	switch env.EventType {
	case events.LeaveStatusChangedType:
		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave status event failed", zap.Error(err))
			return nil
		}
		log.Info("leave status changed",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("from", event.From),
			zap.String("to", event.To),
		)
	case events.AbsenteesMarkedType:
		var event events.AbsenteesMarkedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode absentees event failed", zap.Error(err))
			return nil
		}
		log.Info("absentees marked", zap.String("date", event.Date), zap.Int64("count", event.Count))
	case events.AttendanceRecordedType:
		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance recorded event failed", zap.Error(err))
			return nil
		}
		log.Info("attendance recorded",
			zap.String("source", event.Source),
			zap.String("from", event.From),
			zap.String("to", event.To),
			zap.Int64("count", event.Count),
		)
	default:
		log.Debug("ignoring event", zap.String("event_type", env.EventType))
		return nil
	}

	if err := cache.Invalidate(ctx); err != nil {
		log.Error("invalidate analytics cache failed", zap.Error(err))
		return err
	}
	return nil
}
