package holiday

import (
	"net/http"
	"strconv"

	holidayerrors "hris-core/internal/holiday/errors"
	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeServiceError(c, holidayerrors.ErrInvalidYear)
			return
		}
		year = n
	}

	hs, err := h.service.List(c.Request.Context(), year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hs, nil)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
