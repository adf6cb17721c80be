package leave_test

import (
	"testing"
	"time"

	"hris-core/internal/attendance"
	"hris-core/internal/calendar"
	"hris-core/internal/leave"
	leaveerrors "hris-core/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sick = leave.LeaveType{ID: "sick", Name: "Sick Leave", MaxDaysPerYear: 10}

func request(employeeID uuid.UUID, leaveType, start, end string, status leave.Status) leave.Leave {
	s := calendar.MustParseDate(start)
	e := calendar.MustParseDate(end)
	return leave.Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  s.Time(),
		EndDate:    e.Time(),
		TotalDays:  leave.CountDays(s, e),
		Status:     status,
	}
}

func TestComputeBalance(t *testing.T) {
	emp := uuid.New()
	other := uuid.New()
	requests := []leave.Leave{
		request(emp, "sick", "2026-02-02", "2026-02-03", leave.StatusApproved),
		request(emp, "sick", "2026-03-10", "2026-03-12", leave.StatusPending),
		request(emp, "sick", "2026-04-01", "2026-04-01", leave.StatusRejected),
		request(emp, "sick", "2026-05-01", "2026-05-04", leave.StatusCancelled),
		request(emp, "annual", "2026-06-01", "2026-06-05", leave.StatusApproved),
		request(other, "sick", "2026-06-01", "2026-06-05", leave.StatusApproved),
		request(emp, "sick", "2025-06-01", "2025-06-05", leave.StatusApproved),
	}

	b := leave.ComputeBalance(sick, emp.String(), 2026, requests)

	assert.Equal(t, 10, b.Total)
	assert.Equal(t, 2, b.Used)
	assert.Equal(t, 3, b.Pending)
	assert.Equal(t, 5, b.Available)
	assert.False(t, b.Negative)
}

func TestComputeBalance_SpanningYears(t *testing.T) {
	emp := uuid.New()
	requests := []leave.Leave{
		request(emp, "sick", "2025-12-30", "2026-01-02", leave.StatusApproved),
	}

	prev := leave.ComputeBalance(sick, emp.String(), 2025, requests)
	next := leave.ComputeBalance(sick, emp.String(), 2026, requests)

	assert.Equal(t, 4, prev.Used)
	assert.Equal(t, 4, next.Used)
}

func TestComputeBalance_NegativeIsReported(t *testing.T) {
	emp := uuid.New()
	requests := []leave.Leave{
		request(emp, "sick", "2026-01-05", "2026-01-12", leave.StatusApproved),
		request(emp, "sick", "2026-02-02", "2026-02-06", leave.StatusPending),
	}

	b := leave.ComputeBalance(sick, emp.String(), 2026, requests)

	assert.Equal(t, -3, b.Available)
	assert.True(t, b.Negative)
	assert.False(t, leave.CanSubmit(b, 0))
}

func TestCanSubmit(t *testing.T) {
	b := leave.Balance{Total: 10, Used: 3, Pending: 0, Available: 7}
	assert.True(t, leave.CanSubmit(b, 7))
	assert.False(t, leave.CanSubmit(b, 8))
}

func TestComputeBalances_FollowsCatalogOrder(t *testing.T) {
	catalog, err := leave.NewCatalog([]leave.LeaveType{
		{ID: "Annual", MaxDaysPerYear: 12},
		{ID: "sick", MaxDaysPerYear: 10},
	})
	require.NoError(t, err)

	balances := leave.ComputeBalances(catalog, uuid.NewString(), 2026, nil)

	require.Len(t, balances, 2)
	assert.Equal(t, "annual", balances[0].LeaveType)
	assert.Equal(t, 12, balances[0].Available)
	assert.Equal(t, 10, balances[1].Available)
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := leave.NewCatalog([]leave.LeaveType{{ID: "sick"}, {ID: " SICK "}})
	assert.Error(t, err)

	_, err = leave.NewCatalog([]leave.LeaveType{{ID: "sick", MaxDaysPerYear: -1}})
	assert.Error(t, err)

	catalog, err := leave.NewCatalog([]leave.LeaveType{{ID: "sick", MaxDaysPerYear: 10}})
	require.NoError(t, err)
	lt, ok := catalog.Lookup("Sick")
	assert.True(t, ok)
	assert.Equal(t, 10, lt.MaxDaysPerYear)
}

func TestCanTransition(t *testing.T) {
	all := []leave.Status{leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			want := from != to && to != leave.StatusPending
			assert.Equal(t, want, leave.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	actor := uuid.New()

	t.Run("approve records approver", func(t *testing.T) {
		l := request(uuid.New(), "sick", "2026-10-20", "2026-10-21", leave.StatusPending)

		changed, err := leave.Transition(&l, leave.StatusApproved, actor, "", now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, leave.StatusApproved, l.Status)
		require.NotNil(t, l.ApprovedBy)
		assert.Equal(t, actor, *l.ApprovedBy)
		assert.Equal(t, now, *l.ApprovedAt)
	})

	t.Run("same target is a no-op", func(t *testing.T) {
		l := request(uuid.New(), "sick", "2026-10-20", "2026-10-21", leave.StatusApproved)
		before := l

		changed, err := leave.Transition(&l, leave.StatusApproved, actor, "", now)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, before, l)
	})

	t.Run("reject requires a reason and clears approval", func(t *testing.T) {
		l := request(uuid.New(), "sick", "2026-10-20", "2026-10-21", leave.StatusPending)
		_, err := leave.Transition(&l, leave.StatusApproved, actor, "", now)
		require.NoError(t, err)

		_, err = leave.Transition(&l, leave.StatusRejected, actor, "  ", now)
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
		assert.Equal(t, leave.StatusApproved, l.Status)

		changed, err := leave.Transition(&l, leave.StatusRejected, actor, "team offsite", now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Nil(t, l.ApprovedBy)
		assert.Nil(t, l.ApprovedAt)
		require.NotNil(t, l.RejectionReason)
		assert.Equal(t, "team offsite", *l.RejectionReason)
	})

	t.Run("pending is never a target", func(t *testing.T) {
		l := request(uuid.New(), "sick", "2026-10-20", "2026-10-21", leave.StatusCancelled)

		_, err := leave.Transition(&l, leave.StatusPending, actor, "", now)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})
}

func TestTransition_LedgerIdentityHolds(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	actor := uuid.New()
	emp := uuid.New()
	requests := []leave.Leave{
		request(emp, "sick", "2026-03-02", "2026-03-04", leave.StatusPending),
		request(emp, "sick", "2026-04-06", "2026-04-07", leave.StatusPending),
	}

	steps := []struct {
		idx    int
		target leave.Status
	}{
		{0, leave.StatusApproved},
		{0, leave.StatusApproved},
		{1, leave.StatusCancelled},
		{0, leave.StatusRejected},
		{1, leave.StatusApproved},
		{0, leave.StatusCancelled},
		{0, leave.StatusApproved},
	}

	for _, step := range steps {
		_, err := leave.Transition(&requests[step.idx], step.target, actor, "reason", now)
		require.NoError(t, err)

		b := leave.ComputeBalance(sick, emp.String(), 2026, requests)
		assert.Equal(t, b.Total-b.Used-b.Pending, b.Available)
	}

	b := leave.ComputeBalance(sick, emp.String(), 2026, requests)
	assert.Equal(t, 5, b.Used)
	assert.Equal(t, 0, b.Pending)
}

func TestApprovedFragments(t *testing.T) {
	emp := uuid.New()
	requests := []leave.Leave{
		request(emp, "sick", "2026-10-12", "2026-10-14", leave.StatusApproved),
		request(emp, "annual", "2026-10-16", "2026-10-16", leave.StatusPending),
		request(emp, "annual", "2026-10-20", "2026-10-21", leave.StatusApproved),
	}
	rng, err := calendar.ParseRange("2026-10-13", "2026-10-20")
	require.NoError(t, err)

	frags := leave.ApprovedFragments(requests, rng)

	require.Len(t, frags, 3)
	assert.Equal(t, "2026-10-13", frags[0].Date.String())
	assert.Equal(t, "2026-10-14", frags[1].Date.String())
	assert.Equal(t, "2026-10-20", frags[2].Date.String())
	for _, f := range frags {
		assert.Equal(t, "leave", f.Status)
		assert.Equal(t, attendance.SourceLeave, f.Source)
		assert.Equal(t, emp.String(), f.EmployeeID)
	}
}
