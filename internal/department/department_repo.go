package department

import (
	"context"

	"gorm.io/gorm"
)

const summarySelect = "departments.id, departments.name, COUNT(employees.id) AS headcount"

const activeEmployeesJoin = "LEFT JOIN employees ON employees.department_id = departments.id " +
	"AND employees.status = 'active' AND employees.deleted_at IS NULL"

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Summary, error)
	FindByID(ctx context.Context, id string) (*Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Department{}).
		Select(summarySelect).
		Joins(activeEmployeesJoin).
		Group("departments.id, departments.name")
}

func (r *repository) FindAll(ctx context.Context) ([]Summary, error) {
	var rows []Summary
	err := r.summaries(ctx).
		Order("departments.name").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Summary, error) {
	var rows []Summary
	err := r.summaries(ctx).
		Where("departments.id = ?", id).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
