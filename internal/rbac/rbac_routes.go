package rbac

import (
	"hris-core/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", middleware.RBACAuthorize(service, "rbac", "read"), handler.Policies)
		group.POST("/reload", middleware.RoleMiddleware(RoleSuperAdmin, RoleAdmin), handler.Reload)
	}
}
