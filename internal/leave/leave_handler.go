package leave

import (
	"net/http"
	"strconv"
	"strings"

	leaveerrors "hris-core/internal/leave/errors"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

// canManageAll is true for callers allowed to act on other employees' leave.
func canManageAll(c *gin.Context) bool {
	role := strings.ToUpper(strings.TrimSpace(c.GetString("role")))
	if !c.GetBool("has_read_all") {
		return false
	}
	switch role {
	case "SUPER_ADMIN", "ADMIN", "HR", "MANAGER":
		return true
	}
	return false
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), getActorID(c), canManageAll(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var query ListLeaveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), query, getActorID(c), canManageAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"), getActorID(c), canManageAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), getActorID(c), canManageAll(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), getActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), getActorID(c), req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.Param("id"), getActorID(c), canManageAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Balances reports the caller's balances, or another employee's when the
// caller may read all.
func (h *Handler) Balances(c *gin.Context) {
	employeeID, ok := h.targetEmployee(c)
	if !ok {
		return
	}
	year, ok := h.queryYear(c)
	if !ok {
		return
	}

	resp, err := h.service.Balances(c.Request.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckSubmission(c *gin.Context) {
	employeeID, ok := h.targetEmployee(c)
	if !ok {
		return
	}
	year, ok := h.queryYear(c)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("days"))
		return
	}

	resp, err := h.service.CanSubmit(c.Request.Context(), employeeID, c.Query("leave_type"), year, days)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LeaveTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.LeaveTypes(), nil)
}

func (h *Handler) targetEmployee(c *gin.Context) (string, bool) {
	actorID := getActorID(c)
	employeeID := c.DefaultQuery("employee_id", actorID)
	if employeeID != actorID && !canManageAll(c) {
		h.writeServiceError(c, leaveerrors.ErrForbiddenEmployee)
		return "", false
	}
	return employeeID, true
}

func (h *Handler) queryYear(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.writeServiceError(c, leaveerrors.ErrInvalidYear)
		return 0, false
	}
	return year, true
}
