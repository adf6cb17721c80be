package rbac

import (
	"net/http"
	"strings"

	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers for the caller's own role; the role in the body is ignored.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(appErr)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	req.Role = c.GetString("role")
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Failed to evaluate permission", nil)
		return
	}

	readAll := false
	if allowed && req.Action == "read" {
		readAll, _ = h.service.Enforce(EnforceRequest{Role: req.Role, Resource: req.Resource, Action: ActionReadAll})
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed, ReadAll: readAll}, nil)
}

func (h *Handler) Policies(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Policies(), nil)
}

func (h *Handler) Reload(c *gin.Context) {
	if err := h.service.LoadPolicy(c.Request.Context()); err != nil {
		h.logger.Error("reload policy failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Failed to reload policy", nil)
		return
	}
	response.Success(c, http.StatusOK, h.service.Policies(), nil)
}
