package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type enforceEnvelope struct {
	Ok   bool            `json:"ok"`
	Data EnforceResponse `json:"data"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := newTestService(t, &stubRepo{rows: []RolePermission{
		{Role: "HR", Resource: "leave", Action: "read"},
		{Role: "HR", Resource: "leave", Action: ActionReadAll},
		{Role: "EMPLOYEE", Resource: "leave", Action: "read"},
	}})
	handler := NewHandler(svc, zap.NewNop())

	call := func(role string, body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewReader(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("role", role)
		handler.Enforce(c)
		return w
	}

	t.Run("caller role with read all", func(t *testing.T) {
		w := call("hr", map[string]string{"resource": "leave", "action": "read"})
		require.Equal(t, http.StatusOK, w.Code)

		var env enforceEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Data.Allowed)
		assert.True(t, env.Data.ReadAll)
	})

	t.Run("role in body is ignored", func(t *testing.T) {
		w := call("EMPLOYEE", map[string]string{"role": "HR", "resource": "leave", "action": "read"})
		require.Equal(t, http.StatusOK, w.Code)

		var env enforceEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Data.Allowed)
		assert.False(t, env.Data.ReadAll)
	})

	t.Run("missing action", func(t *testing.T) {
		w := call("HR", map[string]string{"resource": "leave"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
