package middleware

import (
	"hris-core/internal/domain"
	"hris-core/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const actionReadAll = "read_all"

// RBACService is satisfied by rbac.Service; declared here so the rbac
// package can use this middleware on its own routes.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize rejects the request unless the caller's role may perform
// action on resource. On success it also sets has_read_all, telling handlers
// whether the caller may see other employees' records of that resource.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" || c.GetString("employee_id") == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{Role: role, Resource: resource, Action: action})
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			return
		}

		readAll, err := service.Enforce(domain.EnforceRequest{Role: role, Resource: resource, Action: actionReadAll})
		c.Set("has_read_all", err == nil && readAll)

		c.Next()
	}
}
