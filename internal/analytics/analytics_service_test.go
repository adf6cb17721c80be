package analytics_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hris-core/internal/analytics"
	analyticserrors "hris-core/internal/analytics/errors"
	"hris-core/internal/attendance"
	"hris-core/internal/calendar"
	"hris-core/internal/employee"
	employeeMock "hris-core/internal/employee/mock"
	"hris-core/internal/holiday"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeLoader struct {
	snap  attendance.Snapshot
	calls int
}

func (f *fakeLoader) Load(_ context.Context, _ string, rng calendar.Range) (attendance.Snapshot, error) {
	f.calls++
	s := f.snap
	s.Range = rng
	return s, nil
}

type analyticsDeps struct {
	service   analytics.Service
	employees *employeeMock.MockRepository
	loader    *fakeLoader
	redismock redismock.ClientMock
}

func setupAnalyticsTest(t *testing.T) *analyticsDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	cal := calendar.Default()
	cal.Now = func() time.Time { return time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC) }
	resolver := attendance.NewResolver(cal, decimal.Zero)

	rdb, redisMock := redismock.NewClientMock()
	employees := employeeMock.NewMockRepository(ctrl)
	loader := &fakeLoader{}

	return &analyticsDeps{
		service:   analytics.NewService(loader, resolver, employees, rdb, time.Minute),
		employees: employees,
		loader:    loader,
		redismock: redisMock,
	}
}

func TestAnalyticsService_Attendance(t *testing.T) {
	ctx := context.Background()
	eng := uuid.New()
	newcomer := uuid.New()
	emps := []employee.Employee{
		{
			ID:          eng,
			FullName:    "Dewi",
			JoiningDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Department:  &employee.DepartmentRef{Name: "Engineering"},
		},
		{
			ID:          newcomer,
			FullName:    "Raka",
			JoiningDate: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		},
	}
	frag := func(id uuid.UUID, date, status string) attendance.Fragment {
		return attendance.Fragment{EmployeeID: id.String(), Date: calendar.MustParseDate(date), Status: status}
	}
	rng, err := calendar.ParseRange("2026-10-12", "2026-10-16")
	require.NoError(t, err)

	t.Run("computes and caches on miss", func(t *testing.T) {
		deps := setupAnalyticsTest(t)
		deps.loader.snap = attendance.Snapshot{
			Fragments: []attendance.Fragment{
				frag(eng, "2026-10-12", "present"),
				frag(eng, "2026-10-13", "present"),
				frag(eng, "2026-10-14", "half-day"),
				frag(newcomer, "2026-10-14", "present"),
			},
			Holidays: holiday.NewSet(nil),
		}
		deps.employees.EXPECT().FindAll(gomock.Any()).Return(emps, nil)
		deps.redismock.ExpectGet(analytics.CacheVersionKey).RedisNil()
		deps.redismock.Regexp().ExpectGet(`analytics:attendance:v0:.*`).RedisNil()
		deps.redismock.Regexp().ExpectSet(`analytics:attendance:v0:.*`, `.*`, time.Minute).SetVal("OK")

		r, err := deps.service.Attendance(ctx, analytics.Query{Range: rng, GroupByDepartment: true})

		require.NoError(t, err)
		assert.Equal(t, analytics.Tally{Present: 3, HalfDay: 1, Workdays: 4}, r.Tally)
		assert.Equal(t, 88, r.Rate)
		require.Len(t, r.Departments, 2)
		assert.Equal(t, "Engineering", r.Departments[0].Department)
		assert.Equal(t, 83, r.Departments[0].Rate)
		assert.Equal(t, analytics.Unassigned, r.Departments[1].Department)
		assert.Equal(t, 100, r.Departments[1].Rate)
		assert.Len(t, r.Series, 5)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("serves cached rollup", func(t *testing.T) {
		deps := setupAnalyticsTest(t)
		cached, err := json.Marshal(analytics.Rollup{Range: rng, Bucket: analytics.BucketDaily, Rate: 42})
		require.NoError(t, err)

		deps.redismock.ExpectGet(analytics.CacheVersionKey).SetVal("3")
		deps.redismock.Regexp().ExpectGet(`analytics:attendance:v3:.*`).SetVal(string(cached))

		r, err := deps.service.Attendance(ctx, analytics.Query{Range: rng})

		require.NoError(t, err)
		assert.Equal(t, 42, r.Rate)
		assert.Equal(t, 0, deps.loader.calls)
	})

	t.Run("department filter", func(t *testing.T) {
		deps := setupAnalyticsTest(t)
		deps.loader.snap = attendance.Snapshot{
			Fragments: []attendance.Fragment{frag(newcomer, "2026-10-14", "present")},
			Holidays:  holiday.NewSet(nil),
		}
		deps.employees.EXPECT().FindAll(gomock.Any()).Return(emps, nil)
		deps.redismock.ExpectGet(analytics.CacheVersionKey).RedisNil()
		deps.redismock.Regexp().ExpectGet(`analytics:attendance:v0:.*`).RedisNil()
		deps.redismock.Regexp().ExpectSet(`analytics:attendance:v0:.*`, `.*`, time.Minute).SetVal("OK")

		r, err := deps.service.Attendance(ctx, analytics.Query{Range: rng, Department: "engineering"})

		require.NoError(t, err)
		assert.Equal(t, 3, r.Tally.Workdays)
		assert.Equal(t, 0, r.Rate)
	})

	t.Run("inactive employees are left out", func(t *testing.T) {
		deps := setupAnalyticsTest(t)
		departed := uuid.New()
		staff := []employee.Employee{
			{ID: eng, FullName: "Dewi", Status: employee.StatusActive},
			{ID: departed, FullName: "Bima", Status: employee.StatusInactive},
		}
		deps.loader.snap = attendance.Snapshot{
			Fragments: []attendance.Fragment{
				frag(eng, "2026-10-12", "present"),
				frag(eng, "2026-10-13", "present"),
				frag(eng, "2026-10-14", "present"),
			},
			Holidays: holiday.NewSet(nil),
		}
		deps.employees.EXPECT().FindAll(gomock.Any()).Return(staff, nil)
		deps.redismock.ExpectGet(analytics.CacheVersionKey).RedisNil()
		deps.redismock.Regexp().ExpectGet(`analytics:attendance:v0:.*`).RedisNil()
		deps.redismock.Regexp().ExpectSet(`analytics:attendance:v0:.*`, `.*`, time.Minute).SetVal("OK")

		r, err := deps.service.Attendance(ctx, analytics.Query{Range: rng})

		require.NoError(t, err)
		assert.Equal(t, analytics.Tally{Present: 3, Workdays: 3}, r.Tally)
		assert.Equal(t, 100, r.Rate)
		for _, c := range r.Breakdown {
			assert.NotEqual(t, attendance.DayAbsent, c.Status)
		}
	})

	t.Run("range too large", func(t *testing.T) {
		deps := setupAnalyticsTest(t)
		wide, err := calendar.ParseRange("2025-01-01", "2026-10-14")
		require.NoError(t, err)

		_, err = deps.service.Attendance(ctx, analytics.Query{Range: wide})

		assert.ErrorIs(t, err, analyticserrors.ErrRangeTooLarge)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupAnalyticsTest(t)

		_, err := deps.service.Attendance(ctx, analytics.Query{Range: rng, EmployeeID: "nope"})

		assert.ErrorIs(t, err, analyticserrors.ErrInvalidEmployeeID)
	})
}

func TestAnalyticsService_Invalidate(t *testing.T) {
	deps := setupAnalyticsTest(t)
	deps.redismock.ExpectIncr(analytics.CacheVersionKey).SetVal(4)

	assert.NoError(t, deps.service.Invalidate(context.Background()))
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}
