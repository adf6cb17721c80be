package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hris-core/internal/employee"
	employeeerrors "hris-core/internal/employee/errors"
	employeeMock "hris-core/internal/employee/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   employee.NewService(repo, dbRedis, time.Hour),
		repo:      repo,
		redismock: redisMock,
	}
}

func sampleEmployees() []employee.Employee {
	eng := uuid.New()
	return []employee.Employee{
		{
			ID:           uuid.New(),
			DepartmentID: &eng,
			FullName:     "Ayu Lestari",
			Email:        "ayu@example.com",
			JoiningDate:  time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			Status:       employee.StatusActive,
			Department:   &employee.DepartmentRef{ID: eng, Name: "Engineering"},
		},
		{
			ID:          uuid.New(),
			FullName:    "Budi Santoso",
			Email:       "budi@example.com",
			JoiningDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Status:      employee.StatusOnLeave,
		},
	}
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss loads from repository and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		emps := sampleEmployees()

		deps.redismock.ExpectGet(employee.EmployeeListCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(emps, nil)
		deps.redismock.Regexp().ExpectSet(employee.EmployeeListCacheKey, `.*`, time.Hour).SetVal("OK")

		res, err := deps.service.GetAll(ctx, employee.ListFilter{})

		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "Engineering", res[0].Department)
		assert.Equal(t, "", res[1].Department)
		assert.Equal(t, "2024-01-08", res[0].JoiningDate)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]employee.EmployeeResponse{
			{ID: uuid.NewString(), FullName: "Citra", Department: "Finance", Status: "active"},
		})
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey).SetVal(string(cached))

		res, err := deps.service.GetAll(ctx, employee.ListFilter{Department: "finance"})

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "Citra", res[0].FullName)
	})

	t.Run("filters by status and query", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(sampleEmployees(), nil)
		deps.redismock.Regexp().ExpectSet(employee.EmployeeListCacheKey, `.*`, time.Hour).SetVal("OK")

		res, err := deps.service.GetAll(ctx, employee.ListFilter{Status: "on-leave", Query: "BUDI"})

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "Budi Santoso", res[0].FullName)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetAll(ctx, employee.ListFilter{Status: "retired"})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatusFilter)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx, employee.ListFilter{})
		assert.EqualError(t, err, "db down")
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := sampleEmployees()[0]
		deps.repo.EXPECT().FindByID(ctx, emp.ID.String()).Return(&emp, nil)

		res, err := deps.service.GetByID(ctx, emp.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Ayu Lestari", res.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}
