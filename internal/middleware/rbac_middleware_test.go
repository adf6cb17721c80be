package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-core/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type grantTable map[string]bool

func (g grantTable) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == "BROKEN" {
		return false, errors.New("enforcer down")
	}
	return g[req.Role+":"+req.Resource+":"+req.Action], nil
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	grants := grantTable{
		"HR:leave:read":       true,
		"HR:leave:read_all":   true,
		"EMPLOYEE:leave:read": true,
	}

	run := func(role, employeeID, action string) (int, bool) {
		var readAll bool
		r := gin.New()
		r.GET("/leaves",
			func(c *gin.Context) {
				c.Set("role", role)
				c.Set("employee_id", employeeID)
			},
			RBACAuthorize(grants, "leave", action),
			func(c *gin.Context) {
				readAll = c.GetBool("has_read_all")
				c.Status(http.StatusOK)
			},
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves", nil))
		return w.Code, readAll
	}

	t.Run("allowed with read all", func(t *testing.T) {
		code, readAll := run("HR", "emp-1", "read")
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, readAll)
	})

	t.Run("allowed for own records only", func(t *testing.T) {
		code, readAll := run("EMPLOYEE", "emp-2", "read")
		assert.Equal(t, http.StatusOK, code)
		assert.False(t, readAll)
	})

	t.Run("forbidden", func(t *testing.T) {
		code, _ := run("EMPLOYEE", "emp-2", "approve")
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("missing auth context", func(t *testing.T) {
		code, _ := run("", "", "read")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		code, _ := run("BROKEN", "emp-1", "read")
		assert.Equal(t, http.StatusInternalServerError, code)
	})
}
