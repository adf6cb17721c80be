package holiday

import (
	"context"

	"hris-core/internal/calendar"
	holidayerrors "hris-core/internal/holiday/errors"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, year int) ([]Holiday, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

// List returns the declared holidays of year, or every holiday when year is 0.
func (s *service) List(ctx context.Context, year int) ([]Holiday, error) {
	if year == 0 {
		return s.repo.FindAll(ctx)
	}
	if year < 1000 || year > 9999 {
		return nil, holidayerrors.ErrInvalidYear
	}
	hs, err := s.repo.FindInRange(ctx, calendar.YearRange(year))
	if err != nil {
		s.logger.Error("list holidays failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	return hs, nil
}
