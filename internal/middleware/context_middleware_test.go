package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-core/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var actor contextutil.Actor
	var rid string
	r := gin.New()
	r.GET("/ping",
		func(c *gin.Context) {
			c.Set("user_id_validated", "user-1")
			c.Set("employee_id", "emp-1")
			c.Set("role", "MANAGER")
		},
		ContextLogger(zap.New(core)),
		func(c *gin.Context) {
			ctx := c.Request.Context()
			actor = contextutil.GetActor(ctx)
			rid = contextutil.GetRequestID(ctx)
			contextutil.GetLogger(ctx, nil).Info("handled")
			c.Status(http.StatusNoContent)
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "rid-7", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "rid-7", rid)
	assert.Equal(t, contextutil.Actor{UserID: "user-1", EmployeeID: "emp-1", Role: "MANAGER"}, actor)

	if assert.Equal(t, 1, logs.Len()) {
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "rid-7", fields["request_id"])
		assert.Equal(t, "emp-1", fields["employee_id"])
		assert.Equal(t, "MANAGER", fields["role"])
	}
}
