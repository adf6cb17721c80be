package attendance

import (
	"hris-core/internal/middleware"
	"hris-core/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetAll,
		)
		attendances.GET("/status",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.Timeline,
		)
		attendances.POST("/clock-in",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.ClockOut,
		)
		attendances.POST("/import",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "attendance", "import"),
			middleware.Idempotency(rdb),
			h.Import,
		)
	}
}
