package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hris-core/internal/department"
	departmenterrors "hris-core/internal/department/errors"
	departmentMock "hris-core/internal/department/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   department.NewService(repo, rdb, time.Hour),
		repo:      repo,
		redismock: redisMock,
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	engID := uuid.MustParse("0b4f4f0e-4a52-4a7e-9c1e-7f5f1d1c0a01")

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]department.DepartmentResponse{{ID: engID.String(), Name: "Engineering", Headcount: 4}})
		deps.redismock.ExpectGet(department.DepartmentListCacheKey).SetVal(string(cached))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(4), resp[0].Headcount)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(department.DepartmentListCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return([]department.Summary{
			{ID: engID, Name: "Engineering", Headcount: 4},
		}, nil)
		deps.redismock.Regexp().ExpectSet(department.DepartmentListCacheKey, `.*`, time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []department.DepartmentResponse{{ID: engID.String(), Name: "Engineering", Headcount: 4}}, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(department.DepartmentListCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := "0b4f4f0e-4a52-4a7e-9c1e-7f5f1d1c0a01"

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, "nope")

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, id).Return(&department.Summary{ID: uuid.MustParse(id), Name: "Finance", Headcount: 2}, nil)

		resp, err := deps.service.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, "Finance", resp.Name)
		assert.Equal(t, int64(2), resp.Headcount)
	})
}
