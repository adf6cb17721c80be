package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hris-core/internal/calendar"
	"hris-core/internal/shared/database"

	"gorm.io/gorm"
)

// ErrStatusChanged is returned when a conditional write finds the row in a
// different status than the caller read.
var ErrStatusChanged = errors.New("leave status changed concurrently")

type ListFilter struct {
	EmployeeID string
	Status     Status
	LeaveType  string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, filter ListFilter) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindApprovedInRange(ctx context.Context, employeeID string, rng calendar.Range) ([]Leave, error)
	UpdateDetails(ctx context.Context, l *Leave) error
	UpdateStatus(ctx context.Context, l *Leave, from Status) error
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Leave, error) {
	var leaves []Leave
	q := r.db.WithContext(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		q = q.Where("leave_type = ?", filter.LeaveType)
	}
	err := q.Order("start_date DESC, created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

// FindApprovedInRange lists approved requests overlapping rng. An empty
// employeeID covers every employee.
func (r *repository) FindApprovedInRange(ctx context.Context, employeeID string, rng calendar.Range) ([]Leave, error) {
	var leaves []Leave
	q := r.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", rng.Start.String(), rng.End.String())
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Order("start_date ASC").Find(&leaves).Error
	return leaves, err
}

// UpdateDetails rewrites the editable fields of a pending request.
func (r *repository) UpdateDetails(ctx context.Context, l *Leave) error {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]any{
			"leave_type": l.LeaveType,
			"start_date": l.StartDate,
			"end_date":   l.EndDate,
			"total_days": l.TotalDays,
			"reason":     l.Reason,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// UpdateStatus persists a decision only if the row is still in status from.
func (r *repository) UpdateStatus(ctx context.Context, l *Leave, from Status) error {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", l.ID, from).
		Updates(map[string]any{
			"status":           l.Status,
			"approved_by":      l.ApprovedBy,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []Status{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
