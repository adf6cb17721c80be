package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hris-core/internal/leave"
	leaveerrors "hris-core/internal/leave/errors"
	"hris-core/internal/leave/mock"
	"hris-core/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success uses user_id_validated fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)

		actorID := uuid.NewString()
		req := leave.CreateLeaveRequest{LeaveType: "sick", StartDate: "2026-11-02", EndDate: "2026-11-04"}
		svc.EXPECT().
			Create(gomock.Any(), actorID, false, req).
			Return(leave.LeaveResponse{ID: uuid.NewString(), TotalDays: 3, Status: "pending"}, nil)

		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"leave_type":"sick","start_date":"2026-11-02","end_date":"2026-11-04"}`)
		c.Set("user_id_validated", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
	})

	t.Run("binding failure never reaches the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := leave.NewHandler(mock.NewMockService(ctrl))

		c, w := newTestContext(http.MethodPost, "/leaves", `{"start_date":"2026-11-02"}`)
		c.Set("employee_id", uuid.NewString())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, apperror.CodeValidationError, env.Error.Code)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance)

		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"leave_type":"sick","start_date":"2026-11-02","end_date":"2026-11-20"}`)
		c.Set("employee_id", uuid.NewString())

		h.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLeaveHandler_Decisions(t *testing.T) {
	leaveID := uuid.NewString()
	approverID := uuid.NewString()

	t.Run("approve returns balance and violation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)
		svc.EXPECT().Approve(gomock.Any(), leaveID, approverID).Return(leave.TransitionResult{
			Leave:     leave.LeaveResponse{ID: leaveID, Status: "approved"},
			Changed:   true,
			Balance:   &leave.Balance{LeaveType: "sick", Total: 10, Used: 13, Available: -3, Negative: true},
			Violation: apperror.NewInvariantViolation("available leave balance is negative after approval", nil),
		}, nil)

		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/approve", "")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var data struct {
			Changed   bool `json:"changed"`
			Violation *struct {
				Code string `json:"code"`
			} `json:"invariant_violation"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
		assert.True(t, data.Changed)
		require.NotNil(t, data.Violation)
		assert.Equal(t, apperror.CodeInvariantViolation, data.Violation.Code)
	})

	t.Run("lost race maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)
		svc.EXPECT().Approve(gomock.Any(), leaveID, approverID).
			Return(leave.TransitionResult{}, leaveerrors.ErrConcurrentTransition)

		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/approve", "")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("reject requires reason in body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := leave.NewHandler(mock.NewMockService(ctrl))

		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/reject", `{}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reject passes reason through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)
		svc.EXPECT().Reject(gomock.Any(), leaveID, approverID, "overlaps audit week").
			Return(leave.TransitionResult{Leave: leave.LeaveResponse{Status: "rejected"}, Changed: true}, nil)

		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/reject", `{"rejection_reason":"overlaps audit week"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_Balances(t *testing.T) {
	actorID := uuid.NewString()
	otherID := uuid.NewString()

	t.Run("other employee requires read-all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := leave.NewHandler(mock.NewMockService(ctrl))

		c, w := newTestContext(http.MethodGet, "/leaves/balances?employee_id="+otherID, "")
		c.Set("employee_id", actorID)
		c.Set("role", "EMPLOYEE")
		c.Set("has_read_all", true)

		h.Balances(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("manager reads another employee", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)
		svc.EXPECT().Balances(gomock.Any(), otherID, 2026).
			Return(leave.BalanceResponse{EmployeeID: otherID, Year: 2026}, nil)

		c, w := newTestContext(http.MethodGet, "/leaves/balances?employee_id="+otherID+"&year=2026", "")
		c.Set("employee_id", actorID)
		c.Set("role", "manager")
		c.Set("has_read_all", true)

		h.Balances(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non numeric year", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := leave.NewHandler(mock.NewMockService(ctrl))

		c, w := newTestContext(http.MethodGet, "/leaves/balances?year=twenty", "")
		c.Set("employee_id", actorID)

		h.Balances(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("submission check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leave.NewHandler(svc)
		svc.EXPECT().CanSubmit(gomock.Any(), actorID, "sick", 0, 4).
			Return(leave.SubmitCheck{Allowed: true}, nil)

		c, w := newTestContext(http.MethodGet, "/leaves/balances/check?leave_type=sick&days=4", "")
		c.Set("employee_id", actorID)

		h.CheckSubmission(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_LeaveTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := leave.NewHandler(svc)
	svc.EXPECT().LeaveTypes().Return([]leave.LeaveType{{ID: "sick", MaxDaysPerYear: 10}})

	c, w := newTestContext(http.MethodGet, "/leave-types", "")
	h.LeaveTypes(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var types []leave.LeaveType
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &types))
	assert.Equal(t, "sick", types[0].ID)
}
