package attendance

import (
	"context"
	"database/sql"

	"hris-core/internal/calendar"
	"hris-core/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *Record) error
	CreateBatch(ctx context.Context, recs []Record) (int64, error)
	FindClock(ctx context.Context, employeeID string, date calendar.Date) (*Record, error)
	FindInRange(ctx context.Context, employeeID string, rng calendar.Range) ([]Record, error)
	Update(ctx context.Context, rec *Record) error
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

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// CreateBatch inserts recs and silently skips rows that collide with an
// existing unique key. It returns the number of rows actually written.
func (r *repository) CreateBatch(ctx context.Context, recs []Record) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(recs, 200)
	return res.RowsAffected, res.Error
}

func (r *repository) FindClock(ctx context.Context, employeeID string, date calendar.Date) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.String()).
		Where("source = ?", SourceClock).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindInRange lists fragments within rng. An empty employeeID returns every
// employee's fragments.
func (r *repository) FindInRange(ctx context.Context, employeeID string, rng calendar.Range) ([]Record, error) {
	var rows []Record
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Where("attendance_date BETWEEN ? AND ?", rng.Start.String(), rng.End.String())
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Order("attendance_date DESC, check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
