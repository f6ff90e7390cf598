package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModuleRepository defines the interface for data access of Module entities
type ModuleRepository interface {
	Create(ctx context.Context, module *model.Module) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Module, error)
	GetByKey(ctx context.Context, moduleKey string) (*model.Module, error)
	List(ctx context.Context, includeInactive bool) ([]model.Module, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]model.Module, error)
	ListRoots(ctx context.Context) ([]model.Module, error)
	Update(ctx context.Context, module *model.Module) error
	Delete(ctx context.Context, id uuid.UUID) error
	DetachChildren(ctx context.Context, parentID uuid.UUID) error
}

type moduleRepository struct {
	db *gorm.DB
}

// NewModuleRepository returns a new instance of ModuleRepository
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) Create(ctx context.Context, module *model.Module) error {
	return GetDB(ctx, r.db).Create(module).Error
}

func (r *moduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Module, error) {
	var module model.Module
	if err := GetDB(ctx, r.db).First(&module, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepository) GetByKey(ctx context.Context, moduleKey string) (*model.Module, error) {
	var module model.Module
	if err := GetDB(ctx, r.db).First(&module, "module_key = ?", moduleKey).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepository) List(ctx context.Context, includeInactive bool) ([]model.Module, error) {
	var modules []model.Module
	query := GetDB(ctx, r.db).Order("display_order ASC, module_name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]model.Module, error) {
	var modules []model.Module
	if err := GetDB(ctx, r.db).
		Where("parent_module_id = ?", parentID).
		Order("display_order ASC, module_name ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepository) ListRoots(ctx context.Context) ([]model.Module, error) {
	var modules []model.Module
	if err := GetDB(ctx, r.db).
		Where("parent_module_id IS NULL").
		Order("display_order ASC, module_name ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepository) Update(ctx context.Context, module *model.Module) error {
	return GetDB(ctx, r.db).Save(module).Error
}

func (r *moduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("module_id = ?", id).Delete(&model.RoleModule{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Module{}).Error
}

func (r *moduleRepository) DetachChildren(ctx context.Context, parentID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Model(&model.Module{}).
		Where("parent_module_id = ?", parentID).
		Update("parent_module_id", nil).Error
}
