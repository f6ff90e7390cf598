package repository

import (
	"context"

	"primefire/internal/model"

	"gorm.io/gorm"
)

// CountryRepository defines the interface for data access of Country entities
type CountryRepository interface {
	Create(ctx context.Context, country *model.Country) error
	GetByCode(ctx context.Context, code string) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
}

type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository returns a new instance of CountryRepository
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) Create(ctx context.Context, country *model.Country) error {
	return GetDB(ctx, r.db).Create(country).Error
}

func (r *countryRepository) GetByCode(ctx context.Context, code string) (*model.Country, error) {
	var country model.Country
	if err := GetDB(ctx, r.db).First(&country, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) List(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}
