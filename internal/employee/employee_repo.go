package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	FindAll(ctx context.Context, filter FilterRequest) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	DecrementPaidLeaves(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, employeeID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&e).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context, filter FilterRequest) ([]Employee, error) {
	db := r.db.WithContext(ctx).Model(&Employee{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Email != "" {
		db = db.Where("email = ?", filter.Email)
	}
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Name != "" {
		db = db.Where("first_name || ' ' || last_name ILIKE ?", "%"+filter.Name+"%")
	}

	var rows []Employee
	err := db.Order("employee_id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// DecrementPaidLeaves decrements the balance by one and returns the affected
// row count. The balance > 0 guard lives in the query so the column can never
// go negative, regardless of concurrent approvals.
func (r *repository) DecrementPaidLeaves(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Employee{}).
		Where("id = ?", id).
		Where("available_paid_leaves > 0").
		UpdateColumn("available_paid_leaves", gorm.Expr("available_paid_leaves - 1"))
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&Employee{}).Error
}
