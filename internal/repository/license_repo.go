package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LicenseRepository defines the interface for data access of License entities
type LicenseRepository interface {
	Create(ctx context.Context, license *model.License) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.License, error)
	List(ctx context.Context, page, limit int) ([]model.License, int64, error)
	ListAll(ctx context.Context) ([]model.License, error)
	Update(ctx context.Context, license *model.License) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type licenseRepository struct {
	db *gorm.DB
}

// NewLicenseRepository returns a new instance of LicenseRepository
func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{db: db}
}

func (r *licenseRepository) Create(ctx context.Context, license *model.License) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(license).Error
}

func (r *licenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.License, error) {
	var license model.License
	if err := GetDB(ctx, r.db).Preload("Employee").First(&license, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &license, nil
}

func (r *licenseRepository) List(ctx context.Context, page, limit int) ([]model.License, int64, error) {
	var licenses []model.License
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.License{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Employee").Order("software ASC").Offset(offset).Limit(limit).Find(&licenses).Error; err != nil {
		return nil, 0, err
	}

	return licenses, total, nil
}

func (r *licenseRepository) ListAll(ctx context.Context) ([]model.License, error) {
	var licenses []model.License
	if err := GetDB(ctx, r.db).Preload("Employee").Order("software ASC").Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

func (r *licenseRepository) Update(ctx context.Context, license *model.License) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(license).Error
}

func (r *licenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.License{}).Error
}
