package service

import (
	"context"
	"fmt"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateJobRequest struct {
	Title        string          `json:"title" binding:"required"`
	Department   string          `json:"department"`
	Location     string          `json:"location"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
	Status       string          `json:"status"`
	SalaryMin    decimal.Decimal `json:"salary_min"`
	SalaryMax    decimal.Decimal `json:"salary_max"`
}

type UpdateJobRequest struct {
	Title        *string          `json:"title"`
	Department   *string          `json:"department"`
	Location     *string          `json:"location"`
	Description  *string          `json:"description"`
	Requirements *string          `json:"requirements"`
	Status       *string          `json:"status"`
	SalaryMin    *decimal.Decimal `json:"salary_min"`
	SalaryMax    *decimal.Decimal `json:"salary_max"`
}

type JobResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Department   string          `json:"department"`
	Location     string          `json:"location"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
	Status       string          `json:"status"`
	SalaryMin    decimal.Decimal `json:"salary_min"`
	SalaryMax    decimal.Decimal `json:"salary_max"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// --- Interface ---

type JobService interface {
	CreateJob(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	GetJob(ctx context.Context, id string) (JobResponse, error)
	GetJobs(ctx context.Context, status string, page, limit int) ([]JobResponse, int64, error)
	UpdateJob(ctx context.Context, id string, req UpdateJobRequest) (JobResponse, error)
	DeleteJob(ctx context.Context, id string) error
}

// --- Implementation ---

type jobService struct {
	jobRepo repository.JobRepository
}

func NewJobService(jobRepo repository.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

var validJobStatuses = map[string]bool{
	model.JobStatusOpen:   true,
	model.JobStatusClosed: true,
	model.JobStatusDraft:  true,
}

func validateSalaryRange(min, max decimal.Decimal) error {
	if min.IsNegative() || max.IsNegative() {
		return fmt.Errorf("salary cannot be negative")
	}
	if !max.IsZero() && min.GreaterThan(max) {
		return fmt.Errorf("salary_min cannot exceed salary_max")
	}
	return nil
}

func (s *jobService) CreateJob(ctx context.Context, req CreateJobRequest) (JobResponse, error) {
	status := req.Status
	if status == "" {
		status = model.JobStatusOpen
	}
	if !validJobStatuses[status] {
		return JobResponse{}, fmt.Errorf("status must be one of: open, closed, draft")
	}
	if err := validateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return JobResponse{}, err
	}

	job := &model.Job{
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       status,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return JobResponse{}, fmt.Errorf("failed to create job: %w", err)
	}
	return toJobResponse(*job), nil
}

func (s *jobService) GetJob(ctx context.Context, id string) (JobResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return JobResponse{}, fmt.Errorf("invalid job ID")
	}
	job, err := s.jobRepo.GetByID(ctx, uid)
	if err != nil {
		return JobResponse{}, fmt.Errorf("job not found: %w", err)
	}
	return toJobResponse(*job), nil
}

func (s *jobService) GetJobs(ctx context.Context, status string, page, limit int) ([]JobResponse, int64, error) {
	if status != "" && !validJobStatuses[status] {
		return nil, 0, fmt.Errorf("status must be one of: open, closed, draft")
	}

	jobs, total, err := s.jobRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch jobs: %w", err)
	}

	res := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		res = append(res, toJobResponse(j))
	}
	return res, total, nil
}

func (s *jobService) UpdateJob(ctx context.Context, id string, req UpdateJobRequest) (JobResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return JobResponse{}, fmt.Errorf("invalid job ID")
	}
	job, err := s.jobRepo.GetByID(ctx, uid)
	if err != nil {
		return JobResponse{}, fmt.Errorf("job not found: %w", err)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return JobResponse{}, fmt.Errorf("title cannot be empty")
		}
		job.Title = *req.Title
	}
	if req.Department != nil {
		job.Department = *req.Department
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Status != nil {
		if !validJobStatuses[*req.Status] {
			return JobResponse{}, fmt.Errorf("status must be one of: open, closed, draft")
		}
		job.Status = *req.Status
	}
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
	}
	if err := validateSalaryRange(job.SalaryMin, job.SalaryMax); err != nil {
		return JobResponse{}, err
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return JobResponse{}, fmt.Errorf("failed to update job: %w", err)
	}
	return toJobResponse(*job), nil
}

func (s *jobService) DeleteJob(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid job ID")
	}
	if _, err := s.jobRepo.GetByID(ctx, uid); err != nil {
		return fmt.Errorf("job not found: %w", err)
	}
	return s.jobRepo.Delete(ctx, uid)
}

// --- Response mappers ---

func toJobResponse(j model.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Department:   j.Department,
		Location:     j.Location,
		Description:  j.Description,
		Requirements: j.Requirements,
		Status:       j.Status,
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
