package analytics

import (
	"hris-core/internal/middleware"
	"hris-core/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, logger *zap.Logger) {
	analytics := r.Group("/analytics")
	analytics.Use(middleware.AuthMiddleware())
	analytics.Use(middleware.ContextLogger(logger))
	{
		analytics.GET("/attendance",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "analytics", "read"),
			h.Attendance,
		)
	}
}
