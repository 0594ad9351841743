package attendance

import (
	"context"
	"encoding/json"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/employee"
	"go-attendance/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, filter FilterRequest) ([]AttendanceResponse, error)
	GetByDateAndEmployee(ctx context.Context, actorID, date, employeeID string) (AttendanceResponse, error)
	Update(ctx context.Context, actorID, date, employeeID string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, actorID, date, employeeID string) error
	BuildMonthlyReport(ctx context.Context, actorID, employeeID, month string, today time.Time) (MonthlyReportResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, employees employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create attendance requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeLookupError(err)
	}
	if !actor.Role.Privileged() {
		return AttendanceResponse{}, attendanceerrors.ErrNotOwnRecord
	}

	target, err := s.employees.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeLookupError(err)
	}
	if target.ID == actor.ID {
		return AttendanceResponse{}, attendanceerrors.ErrSelfAttendance
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, err
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	row := &Attendance{
		EmployeeID: target.ID,
		Date:       date,
		Status:     status,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, row)
	})
	if err != nil {
		s.logger.Warn("create attendance persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return AttendanceResponse{}, MapRepositoryError(err)
	}

	s.invalidateReportCache(ctx, target.EmployeeID, date)
	s.logger.Info("create attendance success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", string(status)),
	)
	return mapToResponse(*row, target.EmployeeID), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, filter FilterRequest) ([]AttendanceResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return nil, mapEmployeeLookupError(err)
	}

	targetID := filter.EmployeeID
	if !actor.Role.Privileged() {
		if targetID != "" && targetID != actor.EmployeeID {
			return nil, attendanceerrors.ErrNotOwnRecord
		}
		targetID = actor.EmployeeID
	}

	listFilter := ListFilter{}
	byEmployee := map[string]string{} // uuid -> business id, for the response

	if targetID != "" {
		target, err := s.employees.FindByEmployeeID(ctx, targetID)
		if err != nil {
			return nil, mapEmployeeLookupError(err)
		}
		listFilter.EmployeeID = &target.ID
		byEmployee[target.ID.String()] = target.EmployeeID
	}
	if filter.Date != "" {
		date, err := parseDate(filter.Date)
		if err != nil {
			return nil, err
		}
		listFilter.Date = &date
	}
	if filter.Status != "" {
		status, err := ParseStatus(filter.Status)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidStatus
		}
		listFilter.Status = status
	}

	rows, err := s.repo.FindAll(ctx, listFilter)
	if err != nil {
		return nil, MapRepositoryError(err)
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		businessID, ok := byEmployee[row.EmployeeID.String()]
		if !ok {
			e, err := s.employees.FindByID(ctx, row.EmployeeID)
			if err != nil {
				return nil, mapEmployeeLookupError(err)
			}
			businessID = e.EmployeeID
			byEmployee[row.EmployeeID.String()] = businessID
		}
		resp[i] = mapToResponse(row, businessID)
	}
	return resp, nil
}

func (s *service) GetByDateAndEmployee(ctx context.Context, actorID, date, employeeID string) (AttendanceResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeLookupError(err)
	}
	if !actor.Role.Privileged() && actor.EmployeeID != employeeID {
		return AttendanceResponse{}, attendanceerrors.ErrNotOwnRecord
	}

	target, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeLookupError(err)
	}
	day, err := parseDate(date)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, target.ID, day)
	if err != nil {
		return AttendanceResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*row, target.EmployeeID), nil
}

func (s *service) Update(ctx context.Context, actorID, date, employeeID string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeLookupError(err)
	}
	if !actor.Role.Privileged() {
		return AttendanceResponse{}, attendanceerrors.ErrNotOwnRecord
	}

	target, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeLookupError(err)
	}
	day, err := parseDate(date)
	if err != nil {
		return AttendanceResponse{}, err
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, target.ID, day)
	if err != nil {
		return AttendanceResponse{}, MapRepositoryError(err)
	}

	// Employee and date are immutable; only the status may change.
	row.Status = status

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(ctx, row)
	})
	if err != nil {
		return AttendanceResponse{}, MapRepositoryError(err)
	}

	s.invalidateReportCache(ctx, target.EmployeeID, day)
	return mapToResponse(*row, target.EmployeeID), nil
}

func (s *service) Delete(ctx context.Context, actorID, date, employeeID string) error {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return mapEmployeeLookupError(err)
	}
	if !actor.Role.Privileged() {
		return attendanceerrors.ErrNotOwnRecord
	}

	target, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return mapEmployeeLookupError(err)
	}
	day, err := parseDate(date)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindByEmployeeAndDate(ctx, target.ID, day); err != nil {
		return MapRepositoryError(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, target.ID, day)
	})
	if err != nil {
		return MapRepositoryError(err)
	}

	s.invalidateReportCache(ctx, target.EmployeeID, day)
	return nil
}

// BuildMonthlyReport reconstructs the complete day-by-day timeline for one
// employee and month, inferring ABSENT for days with no stored row, bounded
// by the employee's join date and today. It also counts absences for the
// immediately preceding calendar month. Read-only and idempotent.
func (s *service) BuildMonthlyReport(ctx context.Context, actorID, employeeID, month string, today time.Time) (MonthlyReportResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return MonthlyReportResponse{}, mapEmployeeLookupError(err)
	}
	if !actor.Role.Privileged() && actor.EmployeeID != employeeID {
		return MonthlyReportResponse{}, attendanceerrors.ErrNotOwnRecord
	}

	emp, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return MonthlyReportResponse{}, mapEmployeeLookupError(err)
	}

	monthStart, err := parseMonth(month)
	if err != nil {
		return MonthlyReportResponse{}, err
	}
	monthEnd, prevStart, prevEnd := reportWindows(monthStart)
	today = dateOnly(today)

	// Fully elapsed months are immutable with respect to the today bound, so
	// their reconciled content can be cached. The balance is always fresh.
	cacheable := monthEnd.Before(today)
	cacheKey := ReportCacheKey(emp.EmployeeID, month)

	if cacheable && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cr cachedReport
			if json.Unmarshal([]byte(cached), &cr) == nil {
				return s.assembleReport(emp, cr), nil
			}
		}
	}

	// Collapse concurrent identical builds. The flight key includes today for
	// non-cacheable months because today shapes their content.
	flightKey := cacheKey
	if !cacheable {
		flightKey += ":" + dateKey(today)
	}

	v, err, _ := s.sf.Do(flightKey, func() (interface{}, error) {
		rows, err := s.repo.FindByEmployeeAndDateRange(ctx, emp.ID, monthStart, monthEnd)
		if err != nil {
			return nil, MapRepositoryError(err)
		}
		prevRows, err := s.repo.FindByEmployeeAndDateRange(ctx, emp.ID, prevStart, prevEnd)
		if err != nil {
			return nil, MapRepositoryError(err)
		}

		entries, absentThisMonth, absentLastMonth := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			emp.DateJoined, today,
			indexByDate(rows), indexByDate(prevRows),
		)

		cr := cachedReport{
			AbsentThisMonth: absentThisMonth,
			AbsentLastMonth: absentLastMonth,
			Logs:            entries,
		}

		if cacheable && s.rdb != nil {
			if payload, err := json.Marshal(cr); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, reportCacheTTL)
			}
		}

		return cr, nil
	})
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	return s.assembleReport(emp, v.(cachedReport)), nil
}

func (s *service) assembleReport(emp *employee.Employee, cr cachedReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		EmployeeID:          emp.EmployeeID,
		AbsentThisMonth:     cr.AbsentThisMonth,
		AbsentLastMonth:     cr.AbsentLastMonth,
		AvailablePaidLeaves: emp.AvailablePaidLeaves,
		Logs:                cr.Logs,
	}
}

// invalidateReportCache drops cached reports whose content the written date
// can change. Cache failures are logged and ignored.
func (s *service) invalidateReportCache(ctx context.Context, employeeID string, date time.Time) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ReportCacheKeys(employeeID, date)...).Err(); err != nil {
		s.logger.Warn("report cache invalidation failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// mapEmployeeLookupError keeps employee-not-found semantics without leaking
// attendance-flavored messages for a missing employee.
func mapEmployeeLookupError(err error) error {
	return employee.MapLookupError(err)
}

func mapToResponse(a Attendance, employeeID string) AttendanceResponse {
	return AttendanceResponse{
		EmployeeID: employeeID,
		Date:       a.Date.Format("2006-01-02"),
		Status:     string(a.Status),
	}
}
