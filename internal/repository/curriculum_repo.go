package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CurriculumRepository defines the interface for data access of Curriculum
// (applicant) entities
type CurriculumRepository interface {
	Create(ctx context.Context, curriculum *model.Curriculum) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Curriculum, error)
	List(ctx context.Context, page, limit int) ([]model.Curriculum, int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.Curriculum, error)
	ListByStatus(ctx context.Context, status string) ([]model.Curriculum, error)
	Update(ctx context.Context, curriculum *model.Curriculum) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type curriculumRepository struct {
	db *gorm.DB
}

// NewCurriculumRepository returns a new instance of CurriculumRepository
func NewCurriculumRepository(db *gorm.DB) CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) Create(ctx context.Context, curriculum *model.Curriculum) error {
	return GetDB(ctx, r.db).Create(curriculum).Error
}

func (r *curriculumRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Curriculum, error) {
	var curriculum model.Curriculum
	if err := GetDB(ctx, r.db).First(&curriculum, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &curriculum, nil
}

func (r *curriculumRepository) List(ctx context.Context, page, limit int) ([]model.Curriculum, int64, error) {
	var curriculums []model.Curriculum
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Curriculum{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&curriculums).Error; err != nil {
		return nil, 0, err
	}

	return curriculums, total, nil
}

func (r *curriculumRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.Curriculum, error) {
	var curriculums []model.Curriculum
	if err := GetDB(ctx, r.db).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&curriculums).Error; err != nil {
		return nil, err
	}
	return curriculums, nil
}

func (r *curriculumRepository) ListByStatus(ctx context.Context, status string) ([]model.Curriculum, error) {
	var curriculums []model.Curriculum
	if err := GetDB(ctx, r.db).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&curriculums).Error; err != nil {
		return nil, err
	}
	return curriculums, nil
}

func (r *curriculumRepository) Update(ctx context.Context, curriculum *model.Curriculum) error {
	return GetDB(ctx, r.db).Save(curriculum).Error
}

func (r *curriculumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Curriculum{}).Error
}
