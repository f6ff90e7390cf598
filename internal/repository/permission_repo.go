package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository defines the interface for data access of RoleModule
// permission rows.
type PermissionRepository interface {
	Create(ctx context.Context, rm *model.RoleModule) error
	Get(ctx context.Context, roleID, moduleID uuid.UUID) (*model.RoleModule, error)
	ListAll(ctx context.Context) ([]model.RoleModule, error)
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]model.RoleModule, error)
	ListByRoleIDs(ctx context.Context, roleIDs []uuid.UUID) ([]model.RoleModule, error)
	ListByModule(ctx context.Context, moduleID uuid.UUID) ([]model.RoleModule, error)
	Update(ctx context.Context, rm *model.RoleModule) error
	Delete(ctx context.Context, roleID, moduleID uuid.UUID) error
	ReplaceForRole(ctx context.Context, roleID uuid.UUID, rows []model.RoleModule) error
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository returns a new instance of PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) Create(ctx context.Context, rm *model.RoleModule) error {
	return GetDB(ctx, r.db).Create(rm).Error
}

func (r *permissionRepository) Get(ctx context.Context, roleID, moduleID uuid.UUID) (*model.RoleModule, error) {
	var rm model.RoleModule
	if err := GetDB(ctx, r.db).
		Preload("Role").Preload("Module").
		First(&rm, "role_id = ? AND module_id = ?", roleID, moduleID).Error; err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *permissionRepository) ListAll(ctx context.Context) ([]model.RoleModule, error) {
	var rows []model.RoleModule
	if err := GetDB(ctx, r.db).
		Preload("Role").Preload("Module").
		Joins("JOIN roles ON roles.id = role_modules.role_id").
		Joins("JOIN modules ON modules.id = role_modules.module_id").
		Order("roles.name ASC, modules.display_order ASC, modules.module_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepository) ListByRole(ctx context.Context, roleID uuid.UUID) ([]model.RoleModule, error) {
	var rows []model.RoleModule
	if err := GetDB(ctx, r.db).
		Preload("Module").
		Joins("JOIN modules ON modules.id = role_modules.module_id").
		Where("role_modules.role_id = ?", roleID).
		Order("modules.display_order ASC, modules.module_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepository) ListByRoleIDs(ctx context.Context, roleIDs []uuid.UUID) ([]model.RoleModule, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var rows []model.RoleModule
	if err := GetDB(ctx, r.db).
		Preload("Module").
		Where("role_id IN ?", roleIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepository) ListByModule(ctx context.Context, moduleID uuid.UUID) ([]model.RoleModule, error) {
	var rows []model.RoleModule
	if err := GetDB(ctx, r.db).
		Preload("Role").
		Joins("JOIN roles ON roles.id = role_modules.role_id").
		Where("role_modules.module_id = ?", moduleID).
		Order("roles.name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepository) Update(ctx context.Context, rm *model.RoleModule) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(rm).Error
}

func (r *permissionRepository) Delete(ctx context.Context, roleID, moduleID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("role_id = ? AND module_id = ?", roleID, moduleID).
		Delete(&model.RoleModule{}).Error
}

func (r *permissionRepository) ReplaceForRole(ctx context.Context, roleID uuid.UUID, rows []model.RoleModule) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("role_id = ?", roleID).Delete(&model.RoleModule{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}
