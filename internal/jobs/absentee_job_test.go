package jobs_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"hris-core/internal/calendar"
	"hris-core/internal/jobs"
	"hris-core/internal/messaging/kafka"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMarker struct {
	dates []calendar.Date
	count int64
	err   error
}

func (f *fakeMarker) MarkAbsentees(_ context.Context, date calendar.Date) (int64, error) {
	f.dates = append(f.dates, date)
	return f.count, f.err
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) { return nil, nil }
func (f *fakeOutbox) MarkSent(context.Context, string) error { return nil }
func (f *fakeOutbox) MarkFailed(context.Context, string, string) error { return nil }

func jakartaCalendar(t *testing.T) calendar.Calendar {
	t.Helper()
	cal, err := calendar.New("Asia/Jakarta", nil)
	require.NoError(t, err)
	// 18:00 UTC on the 14th is already the 15th in Jakarta.
	cal.Now = func() time.Time { return time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC) }
	return cal
}

func TestAbsenteeJob_Run(t *testing.T) {
	t.Run("marks yesterday in the organization zone", func(t *testing.T) {
		marker := &fakeMarker{count: 3}
		outbox := &fakeOutbox{}
		job := jobs.NewAbsenteeJob(marker, jakartaCalendar(t), outbox, "hr.attendance.events.v1", time.Minute, zap.NewNop())

		count, err := job.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		require.Len(t, marker.dates, 1)
		assert.Equal(t, "2026-10-14", marker.dates[0].String())
		require.Len(t, outbox.created, 1)
		assert.Equal(t, "attendance.absentees_marked", outbox.created[0].EventType)
	})

	t.Run("nothing marked emits nothing", func(t *testing.T) {
		outbox := &fakeOutbox{}
		job := jobs.NewAbsenteeJob(&fakeMarker{}, jakartaCalendar(t), outbox, "topic", 0, zap.NewNop())

		_, err := job.Run(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, outbox.created)
	})

	t.Run("marker failure is returned", func(t *testing.T) {
		job := jobs.NewAbsenteeJob(&fakeMarker{err: errors.New("db down")}, jakartaCalendar(t), nil, "", 0, zap.NewNop())

		_, err := job.Run(context.Background())

		assert.Error(t, err)
	})
}

func TestAbsenteeJob_Schedule(t *testing.T) {
	job := jobs.NewAbsenteeJob(&fakeMarker{}, calendar.Default(), nil, "", 0, zap.NewNop())
	c := cron.New()

	_, err := job.Schedule(c, "15 0 * * *")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = job.Schedule(c, "every night")
	assert.Error(t, err)
}
