package bootstrap

import (
	"context"
	"testing"
	"time"

	"hris-core/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))
	audit.now = func() time.Time { return time.Date(2026, 10, 18, 1, 2, 3, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithActor(ctx, contextutil.Actor{EmployeeID: "emp-9", Role: "HR"})
	audit.Log(ctx, AuditLog{Action: "LEAVE_APPROVED", Message: "leave approved", Meta: map[string]any{"leave_id": "l-1"}})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, "audit", e.LoggerName)
		fields := e.ContextMap()
		assert.Equal(t, "2026-10-18T01:02:03Z", fields["timestamp"])
		assert.Equal(t, "LEAVE_APPROVED", fields["action"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "emp-9", fields["employee_id"])
		assert.Equal(t, "HR", fields["role"])
		assert.NotContains(t, fields, "user_id")
	}
}
