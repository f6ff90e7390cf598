package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HardwareFilter narrows hardware listings.
type HardwareFilter struct {
	Status     string
	DeviceType string
	EmployeeID *uuid.UUID
}

// HardwareRepository defines the interface for data access of Hardware assets
type HardwareRepository interface {
	Create(ctx context.Context, hardware *model.Hardware) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Hardware, error)
	GetBySerialNumber(ctx context.Context, serial string) (*model.Hardware, error)
	List(ctx context.Context, filter HardwareFilter, page, limit int) ([]model.Hardware, int64, error)
	ListAll(ctx context.Context) ([]model.Hardware, error)
	Update(ctx context.Context, hardware *model.Hardware) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type hardwareRepository struct {
	db *gorm.DB
}

// NewHardwareRepository returns a new instance of HardwareRepository
func NewHardwareRepository(db *gorm.DB) HardwareRepository {
	return &hardwareRepository{db: db}
}

func (r *hardwareRepository) Create(ctx context.Context, hardware *model.Hardware) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(hardware).Error
}

func (r *hardwareRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Hardware, error) {
	var hardware model.Hardware
	if err := GetDB(ctx, r.db).Preload("Employee").First(&hardware, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hardware, nil
}

func (r *hardwareRepository) GetBySerialNumber(ctx context.Context, serial string) (*model.Hardware, error) {
	var hardware model.Hardware
	if err := GetDB(ctx, r.db).First(&hardware, "serial_number = ?", serial).Error; err != nil {
		return nil, err
	}
	return &hardware, nil
}

func (r *hardwareRepository) List(ctx context.Context, filter HardwareFilter, page, limit int) ([]model.Hardware, int64, error) {
	var assets []model.Hardware
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Hardware{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DeviceType != "" {
		query = query.Where("device_type = ?", filter.DeviceType)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Employee").
		Order("device_name ASC").
		Offset(offset).Limit(limit).
		Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

func (r *hardwareRepository) ListAll(ctx context.Context) ([]model.Hardware, error) {
	var assets []model.Hardware
	if err := GetDB(ctx, r.db).Preload("Employee").Order("device_name ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *hardwareRepository) Update(ctx context.Context, hardware *model.Hardware) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(hardware).Error
}

func (r *hardwareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Hardware{}).Error
}
