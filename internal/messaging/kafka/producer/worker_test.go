package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"hris-core/internal/messaging/kafka"
	"hris-core/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(context.Context, kafka.OutboxEvent) error { return nil }
func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}
func (f *fakeOutbox) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutbox) MarkFailed(_ context.Context, id, reason string) error {
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	written []kafkago.Message
	failKey string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPending(t *testing.T) {
	ok, err := kafka.NewOutboxEvent("req-1", "leave", "agg-ok", "leave.status_changed", "hr.leave.status.v1", map[string]string{"to": "approved"})
	require.NoError(t, err)
	bad, err := kafka.NewOutboxEvent("", "leave", "agg-bad", "leave.status_changed", "hr.leave.status.v1", map[string]string{"to": "rejected"})
	require.NoError(t, err)

	repo := &fakeOutbox{pending: []kafka.OutboxEvent{ok, bad}, failed: map[string]string{}}
	writer := &fakeWriter{failKey: "agg-bad"}

	sent, err := producer.ProcessPending(context.Background(), repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{ok.ID}, repo.sent)
	assert.Contains(t, repo.failed, bad.ID)
	require.Len(t, writer.written, 1)
	assert.Equal(t, "hr.leave.status.v1", writer.written[0].Topic)
	assert.Len(t, writer.written[0].Headers, 3)
}

func TestNewOutboxEvent_Validation(t *testing.T) {
	_, err := kafka.NewOutboxEvent("", "leave", "", "leave.status_changed", "topic", map[string]int{})
	assert.Error(t, err)

	_, err = kafka.NewOutboxEvent("", "leave", "id", "leave.status_changed", "", map[string]int{})
	assert.Error(t, err)
}
