package leaverequest

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/employee"
	leaverequesterrors "go-attendance/internal/leaverequest/errors"
	"go-attendance/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idGenerationAttempts = 5

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actorID string, filter FilterRequest) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID string, id int64) (LeaveRequestResponse, error)
	Update(ctx context.Context, actorID string, id int64, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actorID string, id int64, req ProcessLeaveRequestRequest) (LeaveRequestResponse, error)
	Deny(ctx context.Context, actorID string, id int64, req ProcessLeaveRequestRequest) (LeaveRequestResponse, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	employees   employee.Repository
	attendances attendance.Repository
	rdb         *redis.Client
	logger      *zap.Logger

	// newID is swapped in tests to force deterministic or colliding IDs.
	newID func() int64
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	attendances attendance.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		attendances: attendances,
		rdb:         rdb,
		logger:      l,
		newID:       randomRequestID,
	}
}

// randomRequestID draws a uniformly random 10-digit ID.
func randomRequestID() int64 {
	return rand.Int64N(9_000_000_000) + 1_000_000_000
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return LeaveRequestResponse{}, employee.MapLookupError(err)
	}
	if actor.AvailablePaidLeaves <= 0 {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInsufficientBalance
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lr := &LeaveRequest{
		EmployeeID: actor.ID,
		Date:       date,
		Status:     StatusPending,
		Message:    req.Message,
	}

	for attempt := 1; attempt <= idGenerationAttempts; attempt++ {
		lr.ID = s.newID()
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).Create(ctx, lr)
		})
		if err == nil {
			break
		}
		if !isIDCollision(err) {
			return LeaveRequestResponse{}, mapRepositoryError(err)
		}
		s.logger.Warn("leave request id collision, retrying",
			zap.String("request_id", rid),
			zap.Int64("candidate_id", lr.ID),
			zap.Int("attempt", attempt),
		)
		err = leaverequesterrors.ErrIDGenerationFailed
	}
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("request_id", rid),
		zap.Int64("id", lr.ID),
		zap.String("employee_id", actorID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*lr, actor.EmployeeID, ""), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, filter FilterRequest) ([]LeaveRequestResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return nil, employee.MapLookupError(err)
	}

	targetID := filter.EmployeeID
	if !actor.Role.Privileged() {
		if targetID != "" && targetID != actor.EmployeeID {
			return nil, leaverequesterrors.ErrNotOwnRequest
		}
		targetID = actor.EmployeeID
	}

	listFilter := ListFilter{Status: Status(filter.Status)}
	if targetID != "" {
		target, err := s.employees.FindByEmployeeID(ctx, targetID)
		if err != nil {
			return nil, employee.MapLookupError(err)
		}
		listFilter.EmployeeID = &target.ID
	}

	rows, err := s.repo.FindAll(ctx, listFilter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.mapRows(ctx, rows)
}

func (s *service) GetByID(ctx context.Context, actorID string, id int64) (LeaveRequestResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return LeaveRequestResponse{}, employee.MapLookupError(err)
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if !actor.Role.Privileged() && lr.EmployeeID != actor.ID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotOwnRequest
	}

	return s.mapRow(ctx, *lr)
}

func (s *service) Update(ctx context.Context, actorID string, id int64, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return LeaveRequestResponse{}, employee.MapLookupError(err)
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if lr.EmployeeID != actor.ID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotOwnRequest
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotEditable
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		lr.Date = date
	}
	if req.Message != nil {
		lr.Message = *req.Message
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(ctx, lr)
	})
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*lr, actor.EmployeeID, ""), nil
}

// Approve transitions a pending request to APPROVED, decrements the
// employee's paid leave balance, and records an ON_LEAVE attendance for the
// requested date. The three writes happen in one transaction; if any fails
// the request stays PENDING.
func (s *service) Approve(ctx context.Context, actorID string, id int64, req ProcessLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actor, lr, err := s.loadForProcessing(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	target, err := s.employees.FindByID(ctx, lr.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, employee.MapLookupError(err)
	}

	lr.Status = StatusApproved
	lr.ProcessorID = &actor.ID
	lr.ResponseMessage = req.ResponseMessage

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, lr); err != nil {
			return mapRepositoryError(err)
		}

		affected, err := s.employees.WithTx(tx).DecrementPaidLeaves(ctx, lr.EmployeeID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return leaverequesterrors.ErrInsufficientBalance
		}

		err = s.attendances.WithTx(tx).Create(ctx, &attendance.Attendance{
			EmployeeID: lr.EmployeeID,
			Date:       lr.Date,
			Status:     attendance.StatusOnLeave,
		})
		if err != nil {
			if errors.Is(attendance.MapRepositoryError(err), attendanceerrors.ErrDuplicateAttendance) {
				return leaverequesterrors.ErrAttendanceConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("leave request approval rolled back",
			zap.String("request_id", rid),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.invalidateReportCache(ctx, target.EmployeeID, lr.Date)
	s.logger.Info("leave request approved",
		zap.String("request_id", rid),
		zap.Int64("id", id),
		zap.String("employee_id", target.EmployeeID),
		zap.String("processor_id", actorID),
	)
	return mapToResponse(*lr, target.EmployeeID, actor.EmployeeID), nil
}

// Deny transitions a pending request to DENIED. No balance or attendance
// side effects.
func (s *service) Deny(ctx context.Context, actorID string, id int64, req ProcessLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actor, lr, err := s.loadForProcessing(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	target, err := s.employees.FindByID(ctx, lr.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, employee.MapLookupError(err)
	}

	lr.Status = StatusDenied
	lr.ProcessorID = &actor.ID
	lr.ResponseMessage = req.ResponseMessage

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(ctx, lr)
	})
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave request denied",
		zap.String("request_id", rid),
		zap.Int64("id", id),
		zap.String("employee_id", target.EmployeeID),
		zap.String("processor_id", actorID),
	)
	return mapToResponse(*lr, target.EmployeeID, actor.EmployeeID), nil
}

// loadForProcessing runs the shared guards for approval and denial. Guard
// order is fixed: missing request, then self-processing, then state.
func (s *service) loadForProcessing(ctx context.Context, actorID string, id int64) (*employee.Employee, *LeaveRequest, error) {
	actor, err := s.employees.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return nil, nil, employee.MapLookupError(err)
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	if lr.EmployeeID == actor.ID {
		return nil, nil, leaverequesterrors.ErrSelfProcessing
	}
	if lr.Status != StatusPending {
		return nil, nil, leaverequesterrors.ErrAlreadyProcessed
	}
	return actor, lr, nil
}

func (s *service) invalidateReportCache(ctx context.Context, employeeID string, date time.Time) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, attendance.ReportCacheKeys(employeeID, date)...).Err(); err != nil {
		s.logger.Warn("report cache invalidation failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

// mapRows resolves business employee IDs for a result page, memoizing
// lookups across rows.
func (s *service) mapRows(ctx context.Context, rows []LeaveRequest) ([]LeaveRequestResponse, error) {
	byUUID := map[string]string{}
	resolve := func(id string, lookup func() (*employee.Employee, error)) (string, error) {
		if v, ok := byUUID[id]; ok {
			return v, nil
		}
		e, err := lookup()
		if err != nil {
			return "", employee.MapLookupError(err)
		}
		byUUID[id] = e.EmployeeID
		return e.EmployeeID, nil
	}

	resp := make([]LeaveRequestResponse, len(rows))
	for i, row := range rows {
		row := row
		employeeID, err := resolve(row.EmployeeID.String(), func() (*employee.Employee, error) {
			return s.employees.FindByID(ctx, row.EmployeeID)
		})
		if err != nil {
			return nil, err
		}
		processorID := ""
		if row.ProcessorID != nil {
			processorID, err = resolve(row.ProcessorID.String(), func() (*employee.Employee, error) {
				return s.employees.FindByID(ctx, *row.ProcessorID)
			})
			if err != nil {
				return nil, err
			}
		}
		resp[i] = mapToResponse(row, employeeID, processorID)
	}
	return resp, nil
}

func (s *service) mapRow(ctx context.Context, row LeaveRequest) (LeaveRequestResponse, error) {
	rows, err := s.mapRows(ctx, []LeaveRequest{row})
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return rows[0], nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(lr LeaveRequest, employeeID, processorID string) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      employeeID,
		ProcessorID:     processorID,
		Date:            lr.Date.Format("2006-01-02"),
		Status:          string(lr.Status),
		Message:         lr.Message,
		ResponseMessage: lr.ResponseMessage,
		CreatedAt:       lr.CreatedAt.Format(time.RFC3339),
	}
}
