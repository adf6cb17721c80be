package department

import (
	"hris-core/internal/middleware"
	"hris-core/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the department directory. It is part of the employee
// directory, so it is guarded by the same employee:read grant.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, logger *zap.Logger) {
	directory := r.Group("/departments",
		middleware.AuthMiddleware(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(5, 20),
		middleware.RBACAuthorize(rbacService, "employee", "read"),
	)
	directory.GET("", h.GetAll)
	directory.GET("/:id", h.GetByID)
}
