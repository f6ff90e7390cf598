package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	Search     string // matches display name or email, case-insensitive
	Department string
}

// EmployeeRepository defines the interface for data access of Employee entities
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	GetByAzureOID(ctx context.Context, azureOID string) (*model.Employee, error)
	List(ctx context.Context, filter EmployeeFilter, page, limit int) ([]model.Employee, int64, error)
	ListAll(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceRoles(ctx context.Context, employee *model.Employee, roles []model.Role) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository returns a new instance of EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create and Update omit associations so a preloaded Country or Roles slice
// is never written back. Role assignment goes through ReplaceRoles.
func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := GetDB(ctx, r.db).Preload("Country").Preload("Roles").First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	if err := GetDB(ctx, r.db).First(&employee, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByAzureOID(ctx context.Context, azureOID string) (*model.Employee, error) {
	var employee model.Employee
	if err := GetDB(ctx, r.db).Preload("Country").Preload("Roles").First(&employee, "azure_oid = ?", azureOID).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter, page, limit int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Employee{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("display_name ILIKE ? OR email ILIKE ?", like, like)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Country").
		Order("display_name ASC").
		Offset(offset).Limit(limit).
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepository) ListAll(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := GetDB(ctx, r.db).Preload("Country").Order("display_name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Employee{}).Error
}

func (r *employeeRepository) ReplaceRoles(ctx context.Context, employee *model.Employee, roles []model.Role) error {
	return GetDB(ctx, r.db).Model(employee).Association("Roles").Replace(roles)
}
