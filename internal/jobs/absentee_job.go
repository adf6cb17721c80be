package jobs

import (
	"context"
	"time"

	"hris-core/internal/calendar"
	"hris-core/internal/events"
	"hris-core/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type AbsenteeMarker interface {
	MarkAbsentees(ctx context.Context, date calendar.Date) (int64, error)
}

// AbsenteeJob marks yesterday's unexplained absences once a day.
type AbsenteeJob struct {
	marker  AbsenteeMarker
	cal     calendar.Calendar
	outbox  kafka.OutboxRepository
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewAbsenteeJob(
	marker AbsenteeMarker,
	cal calendar.Calendar,
	outbox kafka.OutboxRepository,
	topic string,
	timeout time.Duration,
	logger *zap.Logger,
) *AbsenteeJob {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.L()
	}
	return &AbsenteeJob{
		marker:  marker,
		cal:     cal,
		outbox:  outbox,
		topic:   topic,
		timeout: timeout,
		logger:  logger.Named("jobs.absentee"),
	}
}

// Run marks absentees for the day before today in the calendar's zone.
func (j *AbsenteeJob) Run(ctx context.Context) (int64, error) {
	date := j.cal.Today().AddDays(-1)

	count, err := j.marker.MarkAbsentees(ctx, date)
	if err != nil {
		j.logger.Error("mark absentees failed", zap.String("date", date.String()), zap.Error(err))
		return 0, err
	}
	j.logger.Info("absentee run finished", zap.String("date", date.String()), zap.Int64("count", count))

	if count == 0 || j.outbox == nil || j.topic == "" {
		return count, nil
	}
	event, err := kafka.NewOutboxEvent(
		"",
		events.AttendanceAggregateType,
		uuid.NewString(),
		events.AbsenteesMarkedType,
		j.topic,
		events.AbsenteesMarkedEvent{
			EventType:  events.AbsenteesMarkedType,
			Date:       date.String(),
			Count:      count,
			OccurredAt: j.cal.CurrentTime().UTC(),
		},
	)
	if err == nil {
		err = j.outbox.Create(ctx, event)
	}
	if err != nil {
		// The rows are already committed; only the cache hint is lost.
		j.logger.Warn("record absentees event failed", zap.Error(err))
	}
	return count, nil
}

// Schedule registers the job on c using a standard five-field cron spec.
func (j *AbsenteeJob) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_, _ = j.Run(ctx)
	})
}
