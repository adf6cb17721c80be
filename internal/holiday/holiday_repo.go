package holiday

import (
	"context"

	"hris-core/internal/calendar"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Holiday, error)
	FindInRange(ctx context.Context, r calendar.Range) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var rows []HolidayRecord
	err := r.db.WithContext(ctx).
		Order("holiday_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapRecords(rows), nil
}

func (r *repository) FindInRange(ctx context.Context, rng calendar.Range) ([]Holiday, error) {
	var rows []HolidayRecord
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", rng.Start.String(), rng.End.String()).
		Order("holiday_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapRecords(rows), nil
}

func mapRecords(rows []HolidayRecord) []Holiday {
	out := make([]Holiday, len(rows))
	for i, row := range rows {
		out[i] = FromRecord(row)
	}
	return out
}
