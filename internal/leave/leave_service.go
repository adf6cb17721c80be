package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"hris-core/internal/attendance"
	"hris-core/internal/bootstrap"
	"hris-core/internal/calendar"
	"hris-core/internal/events"
	leaveerrors "hris-core/internal/leave/errors"
	"hris-core/internal/messaging/kafka"
	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmitCheck is the advisory answer to "may this employee request n days".
type SubmitCheck struct {
	Allowed bool    `json:"allowed"`
	Balance Balance `json:"balance"`
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, canManageAll bool, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, query ListLeaveQuery, actorID string, canReadAll bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id, actorID string, canReadAll bool) (LeaveResponse, error)
	Update(ctx context.Context, id, actorID string, canManageAll bool, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id, actorID string) (TransitionResult, error)
	Reject(ctx context.Context, id, actorID, reason string) (TransitionResult, error)
	Cancel(ctx context.Context, id, actorID string, canManageAll bool) (TransitionResult, error)
	Balances(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
	CanSubmit(ctx context.Context, employeeID, leaveType string, year, days int) (SubmitCheck, error)
	LeaveTypes() []LeaveType
	ApprovedFragments(ctx context.Context, employeeID string, rng calendar.Range) ([]attendance.Fragment, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	catalog Catalog
	cal     calendar.Calendar
	outbox  kafka.OutboxRepository
	topic   string
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, catalog Catalog, cal calendar.Calendar, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, catalog, cal, nil, "", nil, logger...)
}

// NewServiceWithOutbox also records a LeaveStatusChangedEvent in the outbox
// and an audit entry for every effective transition. Either may be nil.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	catalog Catalog,
	cal calendar.Calendar,
	outbox kafka.OutboxRepository,
	topic string,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		catalog: catalog,
		cal:     cal,
		outbox:  outbox,
		topic:   topic,
		audit:   audit,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, canManageAll bool, req CreateLeaveRequest) (LeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeID := actor
	if req.EmployeeID != "" {
		if employeeID, err = uuid.Parse(req.EmployeeID); err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
		}
	}
	if employeeID != actor && !canManageAll {
		return LeaveResponse{}, leaveerrors.ErrForbiddenEmployee
	}

	lt, period, err := s.validateDetails(req.LeaveType, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	days := CountDays(period.Start, period.End)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkSubmission(ctx, qtx, employeeID, lt, period, days, nil); err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  lt.ID,
		StartDate:  period.Start.Time(),
		EndDate:    period.End.Time(),
		TotalDays:  days,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  actor,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave submitted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_type", lt.ID),
		zap.Int("total_days", days),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, query ListLeaveQuery, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	filter := ListFilter{EmployeeID: query.EmployeeID, LeaveType: normalizeTypeID(query.LeaveType)}
	if query.Status != "" {
		status, ok := ParseStatus(query.Status)
		if !ok {
			return nil, leaveerrors.ErrInvalidStatusFilter
		}
		filter.Status = status
	}
	if !canReadAll {
		if _, err := uuid.Parse(actorID); err != nil {
			return nil, leaveerrors.ErrInvalidActorID
		}
		filter.EmployeeID = actorID
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id, actorID string, canReadAll bool) (LeaveResponse, error) {
	l, err := s.find(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !canReadAll && l.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

// Update edits a pending request. Changing the dates recomputes TotalDays in
// the same write so the ledger never sees a stale count.
func (s *service) Update(ctx context.Context, id, actorID string, canManageAll bool, req UpdateLeaveRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	lt, period, err := s.validateDetails(req.LeaveType, req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := s.find(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !canManageAll && l.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrForbiddenEmployee
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	days := CountDays(period.Start, period.End)
	if err := s.checkSubmission(ctx, qtx, l.EmployeeID, lt, period, days, &l.ID); err != nil {
		return LeaveResponse{}, err
	}

	l.LeaveType = lt.ID
	l.StartDate = period.Start.Time()
	l.EndDate = period.End.Time()
	l.TotalDays = days
	l.Reason = req.Reason
	if err := qtx.UpdateDetails(ctx, l); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return LeaveResponse{}, leaveerrors.ErrNotPending
		}
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave updated",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_id", id),
		zap.Int("total_days", days),
	)
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, id, actorID string) (TransitionResult, error) {
	return s.transition(ctx, id, actorID, StatusApproved, "", true)
}

func (s *service) Reject(ctx context.Context, id, actorID, reason string) (TransitionResult, error) {
	return s.transition(ctx, id, actorID, StatusRejected, reason, true)
}

func (s *service) Cancel(ctx context.Context, id, actorID string, canManageAll bool) (TransitionResult, error) {
	return s.transition(ctx, id, actorID, StatusCancelled, "", canManageAll)
}

func (s *service) transition(ctx context.Context, id, actorID string, target Status, reason string, canManageAll bool) (TransitionResult, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return TransitionResult{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave transition begin tx failed", zap.Error(err))
		return TransitionResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := s.find(ctx, qtx, id)
	if err != nil {
		return TransitionResult{}, err
	}
	if !canManageAll && l.EmployeeID != actor {
		return TransitionResult{}, leaveerrors.ErrForbiddenEmployee
	}

	from := l.Status
	changed, err := Transition(l, target, actor, reason, s.cal.CurrentTime())
	if err != nil {
		return TransitionResult{}, err
	}

	if changed {
		if err := qtx.UpdateStatus(ctx, l, from); err != nil {
			if errors.Is(err, ErrStatusChanged) {
				s.logger.Warn("leave transition lost race",
					zap.String("leave_id", id),
					zap.String("from", string(from)),
					zap.String("to", string(target)),
				)
				return TransitionResult{}, leaveerrors.ErrConcurrentTransition
			}
			return TransitionResult{}, err
		}
		if err := s.enqueueStatusChanged(ctx, tx, *l, from, actor); err != nil {
			s.logger.Error("leave transition outbox failed", zap.Error(err))
			return TransitionResult{}, err
		}
	}

	history, err := qtx.FindByEmployee(ctx, l.EmployeeID.String())
	if err != nil {
		return TransitionResult{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("leave transition commit failed", zap.Error(err))
		return TransitionResult{}, err
	}

	result := TransitionResult{Leave: mapToResponse(*l), Changed: changed}
	if lt, ok := s.catalog.Lookup(l.LeaveType); ok {
		// A request is charged to every year it touches, so each one is checked.
		for _, year := range yearsOf(l.Period()) {
			b := ComputeBalance(lt, l.EmployeeID.String(), year, history)
			result.Balances = append(result.Balances, b)
			if result.Balance == nil || b.Available < result.Balance.Available {
				worst := b
				result.Balance = &worst
			}
			if changed && target == StatusApproved && b.Negative {
				s.logger.Warn("leave balance invariant violated",
					zap.String("leave_id", id),
					zap.String("employee_id", b.EmployeeID),
					zap.String("leave_type", b.LeaveType),
					zap.Int("year", b.Year),
					zap.Int("available", b.Available),
				)
			}
		}
		if b := result.Balance; b != nil && changed && target == StatusApproved && b.Negative {
			result.Violation = apperror.NewInvariantViolation(
				"available leave balance is negative after approval",
				map[string]any{
					"employee_id": b.EmployeeID,
					"leave_type":  b.LeaveType,
					"year":        b.Year,
					"available":   b.Available,
				},
			)
		}
	}

	if changed {
		s.logger.Info("leave status changed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("leave_id", id),
			zap.String("actor_id", actorID),
			zap.String("from", string(from)),
			zap.String("to", string(target)),
		)
		if s.audit != nil {
			s.audit.Log(ctx, bootstrap.AuditLog{
				Action:  "LEAVE_" + strings.ToUpper(string(target)),
				Message: "leave status changed",
				Meta: map[string]any{
					"leave_id":    id,
					"employee_id": l.EmployeeID.String(),
					"actor_id":    actorID,
					"from":        string(from),
					"to":          string(target),
				},
			})
		}
	}
	return result, nil
}

func (s *service) Balances(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = s.cal.Today().Year()
	}
	if year < 1000 || year > 9999 {
		return BalanceResponse{}, leaveerrors.ErrInvalidYear
	}

	history, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   ComputeBalances(s.catalog, employeeID, year, history),
	}, nil
}

func (s *service) CanSubmit(ctx context.Context, employeeID, leaveType string, year, days int) (SubmitCheck, error) {
	if days < 0 {
		return SubmitCheck{}, leaveerrors.ErrNegativeDays
	}
	lt, ok := s.catalog.Lookup(leaveType)
	if !ok {
		return SubmitCheck{}, leaveerrors.ErrUnknownLeaveType
	}
	resp, err := s.Balances(ctx, employeeID, year)
	if err != nil {
		return SubmitCheck{}, err
	}
	for _, b := range resp.Balances {
		if b.LeaveType == lt.ID {
			return SubmitCheck{Allowed: CanSubmit(b, days), Balance: b}, nil
		}
	}
	return SubmitCheck{}, leaveerrors.ErrUnknownLeaveType
}

func (s *service) LeaveTypes() []LeaveType {
	return s.catalog.All()
}

func (s *service) ApprovedFragments(ctx context.Context, employeeID string, rng calendar.Range) ([]attendance.Fragment, error) {
	approved, err := s.repo.FindApprovedInRange(ctx, employeeID, rng)
	if err != nil {
		return nil, err
	}
	return ApprovedFragments(approved, rng), nil
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) validateDetails(leaveType, start, end string) (LeaveType, calendar.Range, error) {
	lt, ok := s.catalog.Lookup(leaveType)
	if !ok {
		return LeaveType{}, calendar.Range{}, leaveerrors.ErrUnknownLeaveType
	}
	period, err := calendar.ParseRange(start, end)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidRange) {
			return LeaveType{}, calendar.Range{}, leaveerrors.ErrInvalidDateRange
		}
		return LeaveType{}, calendar.Range{}, leaveerrors.ErrInvalidDateFormat
	}
	return lt, period, nil
}

// checkSubmission rejects overlapping periods and requests that do not fit
// the balance of every year the period touches. exclude skips the request
// being edited.
func (s *service) checkSubmission(
	ctx context.Context,
	repo Repository,
	employeeID uuid.UUID,
	lt LeaveType,
	period calendar.Range,
	days int,
	exclude *uuid.UUID,
) error {
	var excludeID *string
	if exclude != nil {
		v := exclude.String()
		excludeID = &v
	}
	overlap, err := repo.HasOverlappingPeriod(ctx, employeeID.String(), period.Start.Time(), period.End.Time(), excludeID)
	if err != nil {
		s.logger.Error("leave overlap check failed", zap.Error(err))
		return err
	}
	if overlap {
		return leaveerrors.ErrLeaveOverlap
	}

	history, err := repo.FindByEmployee(ctx, employeeID.String())
	if err != nil {
		return err
	}
	if exclude != nil {
		kept := history[:0:0]
		for _, r := range history {
			if r.ID != *exclude {
				kept = append(kept, r)
			}
		}
		history = kept
	}

	for _, year := range yearsOf(period) {
		b := ComputeBalance(lt, employeeID.String(), year, history)
		if !CanSubmit(b, days) {
			s.logger.Warn("leave exceeds balance",
				zap.String("employee_id", employeeID.String()),
				zap.String("leave_type", lt.ID),
				zap.Int("year", year),
				zap.Int("available", b.Available),
				zap.Int("requested", days),
			)
			return leaveerrors.ErrInsufficientBalance
		}
	}
	return nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, l Leave, from Status, actor uuid.UUID) error {
	if s.outbox == nil || s.topic == "" {
		return nil
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		events.LeaveAggregateType,
		l.ID.String(),
		events.LeaveStatusChangedType,
		s.topic,
		events.LeaveStatusChangedEvent{
			EventType:  events.LeaveStatusChangedType,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			LeaveType:  l.LeaveType,
			From:       string(from),
			To:         string(l.Status),
			StartDate:  l.Start().String(),
			EndDate:    l.End().String(),
			ActorID:    actor.String(),
			OccurredAt: s.cal.CurrentTime().UTC().Truncate(time.Second),
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}
