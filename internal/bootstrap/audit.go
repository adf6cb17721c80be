package bootstrap

import "context"

// AuditLog is one process-level audit record: startup, shutdown, scheduled
// runs.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
