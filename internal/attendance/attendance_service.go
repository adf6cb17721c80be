package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	attendanceerrors "hris-core/internal/attendance/errors"
	"hris-core/internal/calendar"
	"hris-core/internal/employee"
	"hris-core/internal/events"
	"hris-core/internal/messaging/kafka"
	"hris-core/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxTimelineDays   = 366
	defaultListWindow = 30
)

// EmployeeDirectory lists the employees expected to show up for work.
type EmployeeDirectory interface {
	FindActive(ctx context.Context) ([]employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
	GetAll(ctx context.Context, filter ListFilter, actorID string, canReadAll bool) ([]AttendanceResponse, error)
	Timeline(ctx context.Context, employeeID string, rng calendar.Range) (TimelineResponse, error)
	MarkAbsentees(ctx context.Context, date calendar.Date) (int64, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	loader    *Loader
	resolver  *Resolver
	employees EmployeeDirectory
	outbox    kafka.OutboxRepository
	topic     string
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	loader *Loader,
	resolver *Resolver,
	employees EmployeeDirectory,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, loader, resolver, employees, nil, "", logger...)
}

// NewServiceWithOutbox also records an AttendanceRecordedEvent in the same
// transaction as every clock punch and import, so cached rollups get evicted.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	loader *Loader,
	resolver *Resolver,
	employees EmployeeDirectory,
	outbox kafka.OutboxRepository,
	topic string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		loader:    loader,
		resolver:  resolver,
		employees: employees,
		outbox:    outbox,
		topic:     topic,
		logger:    l,
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	cal := s.resolver.Calendar()
	now := cal.CurrentTime().UTC()
	today := cal.Today()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindClock(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	row := &Record{
		ID:             uuid.New(),
		EmployeeID:     empID,
		AttendanceDate: today.Time(),
		CheckIn:        &now,
		Status:         string(RawPresent),
		Source:         SourceClock,
		Notes:          req.Notes,
	}
	if err := qtx.Create(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		return AttendanceResponse{}, err
	}
	if err := s.enqueueRecorded(ctx, tx, employeeID, SourceClock, today, today, 1); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", employeeID),
		zap.String("date", today.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	cal := s.resolver.Calendar()
	now := cal.CurrentTime().UTC()
	today := cal.Today()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindClock(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.CheckOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := s.enqueueRecorded(ctx, tx, employeeID, SourceClock, today, today, 1); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// Import stores externally captured fragments. Rows with a malformed
// timestamp are kept as absent fragments; rows colliding with an existing
// external reference are skipped.
func (s *service) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	if len(req.Records) == 0 {
		return ImportResult{}, attendanceerrors.ErrEmptyImport
	}

	loc := s.resolver.Calendar().Location
	result := ImportResult{Received: len(req.Records), Rejected: []ImportRejection{}}
	rows := make([]Record, 0, len(req.Records))

	for i, in := range req.Records {
		row, reason, downgraded := buildImportRow(in, loc)
		if reason != "" {
			result.Rejected = append(result.Rejected, ImportRejection{Index: i, Reason: reason})
			continue
		}
		if downgraded != nil {
			s.logger.Warn("import row has malformed timestamp, stored as absent",
				zap.Int("index", i),
				zap.String("employee_id", in.EmployeeID),
				zap.String("date", in.Date),
				zap.Error(downgraded),
			)
			result.Downgraded++
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return result, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	inserted, err := s.repo.WithTx(tx).CreateBatch(ctx, rows)
	if err != nil {
		s.logger.Error("import attendance failed", zap.Error(err))
		return ImportResult{}, err
	}
	if inserted > 0 {
		from, to := rowSpan(rows)
		if err := s.enqueueRecorded(ctx, tx, "", SourceImport, from, to, inserted); err != nil {
			s.logger.Error("import attendance outbox failed", zap.Error(err))
			return ImportResult{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	result.Inserted = inserted
	result.Skipped = int64(len(rows)) - inserted
	s.logger.Info("attendance import finished",
		zap.Int("received", result.Received),
		zap.Int64("inserted", result.Inserted),
		zap.Int64("skipped", result.Skipped),
		zap.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}

// buildImportRow returns either a rejection reason or a row to store. A
// non-nil error means the row was downgraded to absent.
func buildImportRow(in ImportRecord, loc *time.Location) (Record, string, error) {
	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return Record{}, "invalid date, expected YYYY-MM-DD", nil
	}
	empID, err := uuid.Parse(in.EmployeeID)
	if err != nil {
		return Record{}, "invalid employee_id", nil
	}

	status, ok := ParseRawStatus(in.Status)
	if in.Status != "" && !ok {
		return Record{}, fmt.Sprintf("unknown status %q", in.Status), nil
	}
	if status == RawLeave {
		return Record{}, "leave days come from approved leave requests", nil
	}

	row := Record{
		ID:             uuid.New(),
		EmployeeID:     empID,
		AttendanceDate: date.Time(),
		Source:         SourceImport,
		ExternalRef:    in.ExternalRef,
		Notes:          in.Notes,
	}

	frag := Fragment{Date: date, CheckIn: in.CheckIn, CheckOut: in.CheckOut, Punches: in.Punches}
	span, clockErr := fragmentClock(frag, date, loc)
	if clockErr != nil {
		note := clockErr.Error()
		row.Status = string(RawAbsent)
		row.Notes = &note
		return row, "", clockErr
	}

	checkIn, checkOut := span.in, span.checkOut()
	if status == "" {
		if checkIn.IsZero() && checkOut.IsZero() {
			return Record{}, "status or a check-in time is required", nil
		}
		status = RawPresent
	}
	row.Status = string(status)
	if !checkIn.IsZero() {
		t := checkIn.UTC()
		row.CheckIn = &t
	}
	if !checkOut.IsZero() {
		t := checkOut.UTC()
		row.CheckOut = &t
	}
	return row, "", nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	rng, err := s.listRange(filter)
	if err != nil {
		return nil, err
	}

	employeeID := filter.EmployeeID
	if !canReadAll {
		employeeID = actorID
	}
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
	}

	rows, err := s.repo.FindInRange(ctx, employeeID, rng)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) listRange(filter ListFilter) (calendar.Range, error) {
	return windowFromQuery(filter.From, filter.To, s.resolver.Calendar().Today())
}

// windowFromQuery builds a range from optional from/to params. Missing ends
// default to today and to a 30 day window ending at to.
func windowFromQuery(from, to string, today calendar.Date) (calendar.Range, error) {
	if from == "" && to == "" {
		return calendar.LastNDays(today, defaultListWindow), nil
	}
	if to == "" {
		to = today.String()
	}
	if from == "" {
		end, err := calendar.ParseDate(to)
		if err != nil {
			return calendar.Range{}, attendanceerrors.ErrInvalidDate
		}
		from = end.AddDays(-(defaultListWindow - 1)).String()
	}
	return parseRange(from, to)
}

func (s *service) Timeline(ctx context.Context, employeeID string, rng calendar.Range) (TimelineResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimelineResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if rng.Len() > maxTimelineDays {
		return TimelineResponse{}, attendanceerrors.ErrRangeTooLarge.WithDetails(map[string]any{"max_days": maxTimelineDays})
	}

	snap, err := s.loader.Load(ctx, employeeID, rng)
	if err != nil {
		s.logger.Error("load attendance snapshot failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimelineResponse{}, err
	}

	days := s.resolver.ResolveRange(employeeID, rng, snap.Fragments, snap.Holidays)
	summary := make(map[DayStatus]int)
	for _, d := range days {
		summary[d.Status]++
	}
	return TimelineResponse{EmployeeID: employeeID, Range: rng, Days: days, Summary: summary}, nil
}

// MarkAbsentees writes an absent fragment for every active employee whose
// past date resolves to absent without any stored evidence. Running it twice
// for the same date writes nothing the second time.
func (s *service) MarkAbsentees(ctx context.Context, date calendar.Date) (int64, error) {
	if !date.Before(s.resolver.Calendar().Today()) {
		return 0, attendanceerrors.ErrAbsenteeDateNotPast
	}

	emps, err := s.employees.FindActive(ctx)
	if err != nil {
		return 0, err
	}
	rng := calendar.Range{Start: date, End: date}
	snap, err := s.loader.Load(ctx, "", rng)
	if err != nil {
		return 0, err
	}

	stored := make(map[string]bool)
	for _, f := range snap.Fragments {
		if f.Source != SourceLeave {
			stored[f.EmployeeID] = true
		}
	}

	var rows []Record
	for _, e := range emps {
		id := e.ID.String()
		if stored[id] {
			continue
		}
		if !e.JoiningDate.IsZero() && calendar.FromTime(e.JoiningDate, time.UTC).After(date) {
			continue
		}
		if s.resolver.Resolve(date, snap.ForEmployee(id), snap.Holidays).Status != DayAbsent {
			continue
		}
		ref := fmt.Sprintf("absentee:%s:%s", id, date)
		rows = append(rows, Record{
			ID:             uuid.New(),
			EmployeeID:     e.ID,
			AttendanceDate: date.Time(),
			Status:         string(RawAbsent),
			Source:         SourceNightly,
			ExternalRef:    &ref,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted, err := s.repo.WithTx(tx).CreateBatch(ctx, rows)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("absentees marked", zap.String("date", date.String()), zap.Int64("count", inserted))
	return inserted, nil
}

func (s *service) enqueueRecorded(ctx context.Context, tx *sql.Tx, employeeID, source string, from, to calendar.Date, count int64) error {
	if s.outbox == nil || s.topic == "" {
		return nil
	}
	aggregateID := employeeID
	if aggregateID == "" {
		aggregateID = uuid.NewString()
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		events.AttendanceAggregateType,
		aggregateID,
		events.AttendanceRecordedType,
		s.topic,
		events.AttendanceRecordedEvent{
			EventType:  events.AttendanceRecordedType,
			EmployeeID: employeeID,
			Source:     source,
			From:       from.String(),
			To:         to.String(),
			Count:      count,
			OccurredAt: s.resolver.Calendar().CurrentTime().UTC().Truncate(time.Second),
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// rowSpan returns the earliest and latest attendance date among rows.
func rowSpan(rows []Record) (calendar.Date, calendar.Date) {
	var from, to calendar.Date
	for _, r := range rows {
		d := calendar.FromTime(r.AttendanceDate, time.UTC)
		if from.IsZero() || d.Before(from) {
			from = d
		}
		if to.IsZero() || d.After(to) {
			to = d
		}
	}
	return from, to
}

func parseRange(from, to string) (calendar.Range, error) {
	rng, err := calendar.ParseRange(from, to)
	switch {
	case errors.Is(err, calendar.ErrInvalidRange):
		return calendar.Range{}, attendanceerrors.ErrInvalidRange
	case err != nil:
		return calendar.Range{}, attendanceerrors.ErrInvalidDate
	}
	return rng, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(a Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
		Source:         a.Source,
		ExternalRef:    a.ExternalRef,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
