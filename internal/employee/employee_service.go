package employee

import (
	"context"
	"time"

	"go-attendance/internal/domain"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actorID string, filter FilterRequest) ([]EmployeeResponse, error)
	GetByEmployeeID(ctx context.Context, actorID, employeeID string) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, employeeID string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actorID, employeeID string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	actor, err := s.repo.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !actor.Role.Privileged() {
		return EmployeeResponse{}, employeeerrors.ErrNotOwnProfile
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	dateJoined := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DateJoined != "" {
		dateJoined, err = parseDate(req.DateJoined)
		if err != nil {
			return EmployeeResponse{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		EmployeeID:          req.EmployeeID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Password:            string(hashed),
		Role:                role,
		DateJoined:          dateJoined,
		AvailablePaidLeaves: DefaultPaidLeaves,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, e)
	})
	if err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", e.EmployeeID),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, filter FilterRequest) ([]EmployeeResponse, error) {
	actor, err := s.repo.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	// General employees only ever see themselves, whatever the filter says.
	if !actor.Role.Privileged() {
		return []EmployeeResponse{mapToResponse(*actor)}, nil
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployeeID(ctx context.Context, actorID, employeeID string) (EmployeeResponse, error) {
	actor, err := s.repo.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !actor.Role.Privileged() && actor.EmployeeID != employeeID {
		return EmployeeResponse{}, employeeerrors.ErrNotOwnProfile
	}

	e, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actorID, employeeID string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if actorID != employeeID {
		return EmployeeResponse{}, employeeerrors.ErrNotOwnProfile
	}

	e, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.FirstName != "" {
		e.FirstName = req.FirstName
	}
	if req.LastName != "" {
		e.LastName = req.LastName
	}
	if req.Email != "" {
		e.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}
		e.Password = string(hashed)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(ctx, e)
	})
	if err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, actorID, employeeID string) error {
	actor, err := s.repo.FindByEmployeeID(ctx, actorID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !actor.Role.Privileged() {
		return employeeerrors.ErrNotOwnProfile
	}

	// Verify the target exists so a delete of an unknown id is a 404, not a
	// silent no-op.
	if _, err := s.repo.FindByEmployeeID(ctx, employeeID); err != nil {
		return mapRepositoryError(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, employeeID)
	})
	if err != nil {
		s.logger.Error("delete employee failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", employeeID))
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:          e.EmployeeID,
		FirstName:           e.FirstName,
		LastName:            e.LastName,
		FullName:            e.FullName(),
		Email:               e.Email,
		Role:                e.Role.String(),
		DateJoined:          e.DateJoined.Format("2006-01-02"),
		AvailablePaidLeaves: e.AvailablePaidLeaves,
	}
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}
