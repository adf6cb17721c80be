package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	actorKey
	loggerKey
)

// Actor is the authenticated caller behind a request.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

// IsZero reports whether no caller has been attached.
func (a Actor) IsZero() bool {
	return a == Actor{}
}

// Fields renders the actor as log fields, skipping empty values.
func (a Actor) Fields() []zap.Field {
	var fields []zap.Field
	if a.UserID != "" {
		fields = append(fields, zap.String("user_id", a.UserID))
	}
	if a.EmployeeID != "" {
		fields = append(fields, zap.String("employee_id", a.EmployeeID))
	}
	if a.Role != "" {
		fields = append(fields, zap.String("role", a.Role))
	}
	return fields
}

func value[T any](ctx context.Context, key ctxKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	return v, ok
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	rid, _ := value[string](ctx, requestIDKey)
	return rid
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the caller attached by the request middleware, or the
// zero Actor for background work such as jobs and consumers.
func GetActor(ctx context.Context) Actor {
	a, _ := value[Actor](ctx, actorKey)
	return a
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, then defaultLogger, then a
// no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if l, ok := value[*zap.Logger](ctx, loggerKey); ok && l != nil {
		return l
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}
