package middleware

import (
	"hris-core/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger and the authenticated actor
// to the request context, where services pick them up through contextutil.
// It must run after AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
		}
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		actor := contextutil.Actor{
			UserID:     c.GetString("user_id_validated"),
			EmployeeID: c.GetString("employee_id"),
			Role:       c.GetString("role"),
		}
		reqLogger := logger.With(append([]zap.Field{zap.String("request_id", rid)}, actor.Fields()...)...)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActor(ctx, actor)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
