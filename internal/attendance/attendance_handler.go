package attendance

import (
	attendanceerrors "hris-core/internal/attendance/errors"
	"hris-core/internal/calendar"
	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	cal     calendar.Calendar
	logger  *zap.Logger
}

func NewHandler(service Service, cal calendar.Calendar, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, cal: cal, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
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

func canReadAll(c *gin.Context) bool {
	role := strings.ToUpper(strings.TrimSpace(c.GetString("role")))
	return c.GetBool("has_read_all") && isPrivilegedRole(role)
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := ListFilter{
		From:       c.Query("from"),
		To:         c.Query("to"),
		EmployeeID: c.Query("employee_id"),
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter, getActorID(c), canReadAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

// Timeline resolves one status per day for an employee. Without from/to it
// covers the last 30 days.
func (h *Handler) Timeline(c *gin.Context) {
	actorID := getActorID(c)
	employeeID := c.DefaultQuery("employee_id", actorID)
	if employeeID != actorID && !canReadAll(c) {
		h.writeServiceError(c, attendanceerrors.ErrForbiddenTimeline)
		return
	}

	rng, err := windowFromQuery(c.Query("from"), c.Query("to"), h.cal.Today())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Timeline(c.Request.Context(), employeeID, rng)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func isPrivilegedRole(role string) bool {
	switch role {
	case "SUPER_ADMIN", "ADMIN", "HR", "MANAGER":
		return true
	default:
		return false
	}
}
