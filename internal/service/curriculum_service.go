package service

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// allowedCVExtensions is the upload allow-list. Anything else is rejected
// before touching disk.
var allowedCVExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// --- DTOs ---

// CreateCurriculumRequest binds from JSON on the plain create endpoint and
// from multipart form fields on the upload endpoint.
type CreateCurriculumRequest struct {
	CandidateName  string  `json:"candidate_name" form:"candidate_name" binding:"required"`
	CandidateEmail string  `json:"candidate_email" form:"candidate_email"`
	Phone          string  `json:"phone" form:"phone"`
	JobID          *string `json:"job_id" form:"job_id"`
	Status         string  `json:"status" form:"status"`
	Notes          string  `json:"notes" form:"notes"`
}

type UpdateCurriculumRequest struct {
	CandidateName  *string `json:"candidate_name"`
	CandidateEmail *string `json:"candidate_email"`
	Phone          *string `json:"phone"`
	JobID          *string `json:"job_id"` // empty string detaches the job
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
}

type CurriculumResponse struct {
	ID             uuid.UUID  `json:"id"`
	CandidateName  string     `json:"candidate_name"`
	CandidateEmail string     `json:"candidate_email"`
	Phone          string     `json:"phone"`
	JobID          *uuid.UUID `json:"job_id,omitempty"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes"`
	FileName       string     `json:"file_name,omitempty"`
	ContentType    string     `json:"content_type,omitempty"`
	HasFile        bool       `json:"has_file"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FileDownload points the handler at a stored file on disk.
type FileDownload struct {
	Path        string
	FileName    string
	ContentType string
}

// --- Interface ---

type CurriculumService interface {
	CreateCurriculum(ctx context.Context, req CreateCurriculumRequest) (CurriculumResponse, error)
	// CreateFromUpload stores the CV under the upload directory with a random
	// name and creates the record in one go.
	CreateFromUpload(ctx context.Context, req CreateCurriculumRequest, fileName, contentType string, file io.Reader) (CurriculumResponse, error)
	GetCurriculum(ctx context.Context, id string) (CurriculumResponse, error)
	GetCurriculums(ctx context.Context, page, limit int) ([]CurriculumResponse, int64, error)
	GetCurriculumsByJob(ctx context.Context, jobID string) ([]CurriculumResponse, error)
	GetCurriculumsByStatus(ctx context.Context, status string) ([]CurriculumResponse, error)
	GetCurriculumFile(ctx context.Context, id string) (FileDownload, error)
	UpdateCurriculum(ctx context.Context, id string, req UpdateCurriculumRequest) (CurriculumResponse, error)
	// DeleteCurriculum removes the record and its stored file. A missing file
	// on disk is not an error.
	DeleteCurriculum(ctx context.Context, id string) error
}

// --- Implementation ---

type curriculumService struct {
	curriculumRepo repository.CurriculumRepository
	jobRepo        repository.JobRepository
	uploadDir      string
}

func NewCurriculumService(
	curriculumRepo repository.CurriculumRepository,
	jobRepo repository.JobRepository,
	uploadDir string,
) CurriculumService {
	return &curriculumService{
		curriculumRepo: curriculumRepo,
		jobRepo:        jobRepo,
		uploadDir:      uploadDir,
	}
}

var validCurriculumStatuses = map[string]bool{
	model.CurriculumStatusReceived:  true,
	model.CurriculumStatusScreening: true,
	model.CurriculumStatusInterview: true,
	model.CurriculumStatusOffer:     true,
	model.CurriculumStatusHired:     true,
	model.CurriculumStatusRejected:  true,
}

const curriculumStatusHint = "status must be one of: received, screening, interview, offer, hired, rejected"

func (s *curriculumService) CreateCurriculum(ctx context.Context, req CreateCurriculumRequest) (CurriculumResponse, error) {
	curriculum, err := s.buildCurriculum(ctx, req)
	if err != nil {
		return CurriculumResponse{}, err
	}
	if err := s.curriculumRepo.Create(ctx, curriculum); err != nil {
		return CurriculumResponse{}, fmt.Errorf("failed to create curriculum: %w", err)
	}
	return toCurriculumResponse(*curriculum), nil
}

func (s *curriculumService) CreateFromUpload(ctx context.Context, req CreateCurriculumRequest, fileName, contentType string, file io.Reader) (CurriculumResponse, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedCVExtensions[ext] {
		return CurriculumResponse{}, fmt.Errorf("file type %s not allowed, use: .pdf, .doc, .docx, .txt", ext)
	}

	curriculum, err := s.buildCurriculum(ctx, req)
	if err != nil {
		return CurriculumResponse{}, err
	}

	dir := filepath.Join(s.uploadDir, "curriculums")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CurriculumResponse{}, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	storedPath := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(storedPath)
	if err != nil {
		return CurriculumResponse{}, fmt.Errorf("failed to store file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(storedPath)
		return CurriculumResponse{}, fmt.Errorf("failed to store file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(storedPath)
		return CurriculumResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	curriculum.FileName = filepath.Base(fileName)
	curriculum.FilePath = storedPath
	curriculum.ContentType = contentType

	if err := s.curriculumRepo.Create(ctx, curriculum); err != nil {
		os.Remove(storedPath)
		return CurriculumResponse{}, fmt.Errorf("failed to create curriculum: %w", err)
	}
	return toCurriculumResponse(*curriculum), nil
}

func (s *curriculumService) GetCurriculum(ctx context.Context, id string) (CurriculumResponse, error) {
	curriculum, err := s.findCurriculum(ctx, id)
	if err != nil {
		return CurriculumResponse{}, err
	}
	return toCurriculumResponse(*curriculum), nil
}

func (s *curriculumService) GetCurriculums(ctx context.Context, page, limit int) ([]CurriculumResponse, int64, error) {
	curriculums, total, err := s.curriculumRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch curriculums: %w", err)
	}
	return toCurriculumResponses(curriculums), total, nil
}

func (s *curriculumService) GetCurriculumsByJob(ctx context.Context, jobID string) ([]CurriculumResponse, error) {
	jid, err := uuid.Parse(jobID)
	if err != nil {
		return nil, fmt.Errorf("invalid job ID")
	}
	if _, err := s.jobRepo.GetByID(ctx, jid); err != nil {
		return nil, fmt.Errorf("job not found: %w", err)
	}

	curriculums, err := s.curriculumRepo.ListByJob(ctx, jid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch curriculums: %w", err)
	}
	return toCurriculumResponses(curriculums), nil
}

func (s *curriculumService) GetCurriculumsByStatus(ctx context.Context, status string) ([]CurriculumResponse, error) {
	if !validCurriculumStatuses[status] {
		return nil, fmt.Errorf(curriculumStatusHint)
	}

	curriculums, err := s.curriculumRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch curriculums: %w", err)
	}
	return toCurriculumResponses(curriculums), nil
}

func (s *curriculumService) GetCurriculumFile(ctx context.Context, id string) (FileDownload, error) {
	curriculum, err := s.findCurriculum(ctx, id)
	if err != nil {
		return FileDownload{}, err
	}
	if curriculum.FilePath == "" {
		return FileDownload{}, fmt.Errorf("curriculum has no file")
	}
	return FileDownload{
		Path:        curriculum.FilePath,
		FileName:    curriculum.FileName,
		ContentType: curriculum.ContentType,
	}, nil
}

func (s *curriculumService) UpdateCurriculum(ctx context.Context, id string, req UpdateCurriculumRequest) (CurriculumResponse, error) {
	curriculum, err := s.findCurriculum(ctx, id)
	if err != nil {
		return CurriculumResponse{}, err
	}

	if req.CandidateName != nil {
		if *req.CandidateName == "" {
			return CurriculumResponse{}, fmt.Errorf("candidate_name cannot be empty")
		}
		curriculum.CandidateName = *req.CandidateName
	}
	if req.CandidateEmail != nil {
		if *req.CandidateEmail != "" {
			if _, err := mail.ParseAddress(*req.CandidateEmail); err != nil {
				return CurriculumResponse{}, fmt.Errorf("invalid email format")
			}
		}
		curriculum.CandidateEmail = *req.CandidateEmail
	}
	if req.Phone != nil {
		curriculum.Phone = *req.Phone
	}
	if req.JobID != nil {
		if *req.JobID == "" {
			curriculum.JobID = nil
		} else {
			jid, err := uuid.Parse(*req.JobID)
			if err != nil {
				return CurriculumResponse{}, fmt.Errorf("invalid job ID")
			}
			if _, err := s.jobRepo.GetByID(ctx, jid); err != nil {
				return CurriculumResponse{}, fmt.Errorf("job not found: %w", err)
			}
			curriculum.JobID = &jid
		}
	}
	if req.Status != nil {
		if !validCurriculumStatuses[*req.Status] {
			return CurriculumResponse{}, fmt.Errorf(curriculumStatusHint)
		}
		curriculum.Status = *req.Status
	}
	if req.Notes != nil {
		curriculum.Notes = *req.Notes
	}

	if err := s.curriculumRepo.Update(ctx, curriculum); err != nil {
		return CurriculumResponse{}, fmt.Errorf("failed to update curriculum: %w", err)
	}
	return toCurriculumResponse(*curriculum), nil
}

func (s *curriculumService) DeleteCurriculum(ctx context.Context, id string) error {
	curriculum, err := s.findCurriculum(ctx, id)
	if err != nil {
		return err
	}

	if err := s.curriculumRepo.Delete(ctx, curriculum.ID); err != nil {
		return fmt.Errorf("failed to delete curriculum: %w", err)
	}
	if curriculum.FilePath != "" {
		if err := os.Remove(curriculum.FilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove file: %w", err)
		}
	}
	return nil
}

// --- Helpers ---

func (s *curriculumService) findCurriculum(ctx context.Context, id string) (*model.Curriculum, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid curriculum ID")
	}
	curriculum, err := s.curriculumRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("curriculum not found: %w", err)
	}
	return curriculum, nil
}

func (s *curriculumService) buildCurriculum(ctx context.Context, req CreateCurriculumRequest) (*model.Curriculum, error) {
	if req.CandidateName == "" {
		return nil, fmt.Errorf("candidate_name is required")
	}
	if req.CandidateEmail != "" {
		if _, err := mail.ParseAddress(req.CandidateEmail); err != nil {
			return nil, fmt.Errorf("invalid email format")
		}
	}

	status := req.Status
	if status == "" {
		status = model.CurriculumStatusReceived
	}
	if !validCurriculumStatuses[status] {
		return nil, fmt.Errorf(curriculumStatusHint)
	}

	curriculum := &model.Curriculum{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Phone:          req.Phone,
		Status:         status,
		Notes:          req.Notes,
	}

	if req.JobID != nil && *req.JobID != "" {
		jid, err := uuid.Parse(*req.JobID)
		if err != nil {
			return nil, fmt.Errorf("invalid job ID")
		}
		if _, err := s.jobRepo.GetByID(ctx, jid); err != nil {
			return nil, fmt.Errorf("job not found: %w", err)
		}
		curriculum.JobID = &jid
	}
	return curriculum, nil
}

// --- Response mappers ---

func toCurriculumResponse(c model.Curriculum) CurriculumResponse {
	return CurriculumResponse{
		ID:             c.ID,
		CandidateName:  c.CandidateName,
		CandidateEmail: c.CandidateEmail,
		Phone:          c.Phone,
		JobID:          c.JobID,
		Status:         c.Status,
		Notes:          c.Notes,
		FileName:       c.FileName,
		ContentType:    c.ContentType,
		HasFile:        c.FilePath != "",
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCurriculumResponses(curriculums []model.Curriculum) []CurriculumResponse {
	res := make([]CurriculumResponse, 0, len(curriculums))
	for _, c := range curriculums {
		res = append(res, toCurriculumResponse(c))
	}
	return res
}
