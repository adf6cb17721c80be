package analytics

import (
	"errors"
	"net/http"
	"strings"

	analyticserrors "hris-core/internal/analytics/errors"
	"hris-core/internal/calendar"
	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultDailyWindow   = 30
	defaultMonthlyWindow = 12
)

type Handler struct {
	service Service
	cal     calendar.Calendar
	logger  *zap.Logger
}

func NewHandler(service Service, cal calendar.Calendar, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("analytics.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.handler")
	}
	return &Handler{service: service, cal: cal, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("analytics request failed",
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
	if !c.GetBool("has_read_all") {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(c.GetString("role"))) {
	case "SUPER_ADMIN", "ADMIN", "HR", "MANAGER":
		return true
	}
	return false
}

// Attendance returns rate, breakdown and series for a window. Without from
// and to it covers the last 30 days (daily) or the last 12 months (monthly).
// Callers without read-all rights only ever see their own days.
func (h *Handler) Attendance(c *gin.Context) {
	bucket, ok := ParseBucket(strings.ToLower(c.Query("bucket")))
	if !ok {
		h.writeServiceError(c, analyticserrors.ErrInvalidBucket)
		return
	}

	groupBy := strings.ToLower(c.Query("group_by"))
	if groupBy != "" && groupBy != "department" {
		h.writeServiceError(c, analyticserrors.ErrInvalidGroupBy)
		return
	}

	rng, err := h.window(c.Query("from"), c.Query("to"), bucket)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := Query{
		Range:             rng,
		Bucket:            bucket,
		GroupByDepartment: groupBy == "department",
		Department:        c.Query("department"),
		EmployeeID:        c.Query("employee_id"),
	}
	if !canReadAll(c) {
		actorID := getActorID(c)
		if q.EmployeeID != "" && q.EmployeeID != actorID {
			h.writeServiceError(c, analyticserrors.ErrForbiddenScope)
			return
		}
		q.EmployeeID = actorID
	}

	resp, err := h.service.Attendance(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) window(from, to string, bucket Bucket) (calendar.Range, error) {
	end := h.cal.Today()
	if to != "" {
		d, err := calendar.ParseDate(to)
		if err != nil {
			return calendar.Range{}, analyticserrors.ErrInvalidDate
		}
		end = d
	}

	if from == "" {
		if bucket == BucketMonthly {
			return calendar.LastNMonths(end, defaultMonthlyWindow), nil
		}
		return calendar.LastNDays(end, defaultDailyWindow), nil
	}

	start, err := calendar.ParseDate(from)
	if err != nil {
		return calendar.Range{}, analyticserrors.ErrInvalidDate
	}
	rng, err := calendar.NewRange(start, end)
	if errors.Is(err, calendar.ErrInvalidRange) {
		return calendar.Range{}, analyticserrors.ErrInvalidRange
	}
	return rng, err
}
