package employee

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employeeerrors "hris-core/internal/employee/errors"
	"hris-core/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeListCacheKey = "employees:list"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &service{
		repo:     repo,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error) {
	if filter.Status != "" {
		switch EmploymentStatus(filter.Status) {
		case StatusActive, StatusOnLeave, StatusInactive:
		default:
			return nil, employeeerrors.ErrInvalidStatusFilter
		}
	}

	all, err := s.cachedList(ctx)
	if err != nil {
		return nil, err
	}
	return applyFilter(all, filter), nil
}

// cachedList reads the full roster through redis. Employees are master data
// owned by the HR store, so a stale read for one TTL is acceptable.
func (s *service) cachedList(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeListCacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("list employees failed",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.Error(err),
			)
			return nil, err
		}

		resp := mapToListResponse(emps)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeListCacheKey, payload, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func applyFilter(all []EmployeeResponse, filter ListFilter) []EmployeeResponse {
	q := strings.TrimSpace(strings.ToLower(filter.Query))
	out := make([]EmployeeResponse, 0, len(all))
	for _, e := range all {
		if filter.Department != "" && !strings.EqualFold(e.Department, filter.Department) {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.FullName), q) && !strings.Contains(strings.ToLower(e.Email), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}
