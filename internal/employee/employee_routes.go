package employee

import (
	"hris-core/internal/middleware"
	"hris-core/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the read-only employee directory. Every route shares
// one per-user limiter and the employee:read grant.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, logger *zap.Logger) {
	directory := r.Group("/employees",
		middleware.AuthMiddleware(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(3, 10),
		middleware.RBACAuthorize(rbacService, "employee", "read"),
	)
	directory.GET("", handler.GetAll)
	directory.GET("/:id", handler.GetByID)
}
