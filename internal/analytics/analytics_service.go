package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	analyticserrors "hris-core/internal/analytics/errors"
	"hris-core/internal/attendance"
	"hris-core/internal/calendar"
	"hris-core/internal/employee"
	"hris-core/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	maxRangeDays = 366

	// CacheVersionKey is bumped to invalidate every cached rollup at once.
	CacheVersionKey = "analytics:attendance:version"
)

type SnapshotLoader interface {
	Load(ctx context.Context, employeeID string, rng calendar.Range) (attendance.Snapshot, error)
}

type EmployeeDirectory interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
}

type Query struct {
	Range             calendar.Range
	Bucket            Bucket
	GroupByDepartment bool
	Department        string
	EmployeeID        string
}

func (q Query) cacheKey(version int64) string {
	return fmt.Sprintf("analytics:attendance:v%d:%s:%s:%s:%t:%s:%s",
		version, q.Range.Start, q.Range.End, q.Bucket, q.GroupByDepartment, q.Department, q.EmployeeID)
}

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type Service interface {
	Attendance(ctx context.Context, q Query) (Rollup, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	loader    SnapshotLoader
	resolver  *attendance.Resolver
	employees EmployeeDirectory
	rdb       *redis.Client
	cacheTTL  time.Duration
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	loader SnapshotLoader,
	resolver *attendance.Resolver,
	employees EmployeeDirectory,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &service{
		loader:    loader,
		resolver:  resolver,
		employees: employees,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Attendance(ctx context.Context, q Query) (Rollup, error) {
	if q.Range.Len() > maxRangeDays {
		return Rollup{}, analyticserrors.ErrRangeTooLarge.WithDetails(map[string]any{"max_days": maxRangeDays, "days": q.Range.Len()})
	}
	if q.EmployeeID != "" {
		if _, err := uuid.Parse(q.EmployeeID); err != nil {
			return Rollup{}, analyticserrors.ErrInvalidEmployeeID
		}
	}
	if q.Bucket == "" {
		q.Bucket = BucketDaily
	}

	key := q.cacheKey(s.version(ctx))
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var r Rollup
			if json.Unmarshal([]byte(cached), &r) == nil {
				return r, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		r, err := s.compute(ctx, q)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(r); err == nil {
				if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("cache attendance rollup failed", zap.Error(err))
				}
			}
		}
		return r, nil
	})
	if err != nil {
		return Rollup{}, err
	}
	return v.(Rollup), nil
}

// Invalidate drops every cached rollup by moving to a new key version.
func (s *service) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Incr(ctx, CacheVersionKey).Err()
}

func (s *service) version(ctx context.Context) int64 {
	if s.rdb == nil {
		return 0
	}
	v, err := s.rdb.Get(ctx, CacheVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("read analytics cache version failed", zap.Error(err))
	}
	return v
}

func (s *service) compute(ctx context.Context, q Query) (Rollup, error) {
	emps, err := s.employees.FindAll(ctx)
	if err != nil {
		return Rollup{}, err
	}

	snap, err := s.loader.Load(ctx, q.EmployeeID, q.Range)
	if err != nil {
		s.logger.Error("load attendance snapshot failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return Rollup{}, err
	}

	byEmployee := make(map[string][]attendance.Fragment)
	for _, f := range snap.Fragments {
		byEmployee[f.EmployeeID] = append(byEmployee[f.EmployeeID], f)
	}

	statuses := make(map[Key]attendance.DayStatus)
	departments := make(map[string]string)
	for _, e := range emps {
		id := e.ID.String()
		if e.Status == employee.StatusInactive {
			continue
		}
		if q.EmployeeID != "" && id != q.EmployeeID {
			continue
		}
		dept := e.DepartmentName()
		if dept == "" {
			dept = Unassigned
		}
		if q.Department != "" && !strings.EqualFold(dept, q.Department) {
			continue
		}
		departments[id] = dept

		var joined calendar.Date
		if !e.JoiningDate.IsZero() {
			joined = calendar.FromTime(e.JoiningDate, time.UTC)
		}
		for _, day := range s.resolver.ResolveRange(id, q.Range, byEmployee[id], snap.Holidays) {
			if !joined.IsZero() && day.Date.Before(joined) {
				continue
			}
			statuses[Key{EmployeeID: id, Date: day.Date}] = day.Status
		}
	}

	opts := Options{Bucket: q.Bucket}
	if q.GroupByDepartment {
		opts.Departments = departments
	}

	s.logger.Debug("attendance rollup computed",
		zap.String("range", q.Range.String()),
		zap.String("bucket", string(q.Bucket)),
		zap.Int("employees", len(departments)),
		zap.Int("days", len(statuses)),
	)
	return Aggregate(statuses, q.Range, opts), nil
}
