package service

import (
	"context"
	"fmt"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"
	"primefire/pkg/secrets"

	"github.com/google/uuid"
)

// maskedSecret replaces stored license secrets in list responses.
const maskedSecret = "********"

// --- DTOs ---

type CreateLicenseRequest struct {
	Software   string     `json:"software" binding:"required"`
	Version    string     `json:"version"`
	Account    string     `json:"account"`
	Key        string     `json:"key"`
	Password   string     `json:"password"`
	ExpiryDate *time.Time `json:"expiry_date"`
	EmployeeID *string    `json:"employee_id"`
}

type UpdateLicenseRequest struct {
	Software   *string    `json:"software"`
	Version    *string    `json:"version"`
	Account    *string    `json:"account"`
	Key        *string    `json:"key"`
	Password   *string    `json:"password"`
	ExpiryDate *time.Time `json:"expiry_date"`
	EmployeeID *string    `json:"employee_id"` // empty string unassigns
}

type LicenseResponse struct {
	ID           uuid.UUID  `json:"id"`
	Software     string     `json:"software"`
	Version      string     `json:"version"`
	Account      string     `json:"account"`
	Key          string     `json:"key,omitempty"`
	Password     string     `json:"password,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	EmployeeID   *uuid.UUID `json:"employee_id,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// --- Interface ---

type LicenseService interface {
	CreateLicense(ctx context.Context, req CreateLicenseRequest) (LicenseResponse, error)
	// GetLicense returns the license with Key and Password decrypted.
	GetLicense(ctx context.Context, id string) (LicenseResponse, error)
	// GetLicenses masks Key and Password.
	GetLicenses(ctx context.Context, page, limit int) ([]LicenseResponse, int64, error)
	UpdateLicense(ctx context.Context, id string, req UpdateLicenseRequest) (LicenseResponse, error)
	DeleteLicense(ctx context.Context, id string) error
	ExportRows(ctx context.Context) (headers []string, rows [][]string, err error)
}

// --- Implementation ---

type licenseService struct {
	licenseRepo  repository.LicenseRepository
	employeeRepo repository.EmployeeRepository
	cipher       secrets.Cipher
}

func NewLicenseService(
	licenseRepo repository.LicenseRepository,
	employeeRepo repository.EmployeeRepository,
	cipher secrets.Cipher,
) LicenseService {
	return &licenseService{
		licenseRepo:  licenseRepo,
		employeeRepo: employeeRepo,
		cipher:       cipher,
	}
}

func (s *licenseService) CreateLicense(ctx context.Context, req CreateLicenseRequest) (LicenseResponse, error) {
	license := &model.License{
		Software:   req.Software,
		Version:    req.Version,
		Account:    req.Account,
		ExpiryDate: req.ExpiryDate,
	}

	var err error
	if license.Key, err = s.cipher.Encrypt(req.Key); err != nil {
		return LicenseResponse{}, fmt.Errorf("failed to encrypt license key: %w", err)
	}
	if license.Password, err = s.cipher.Encrypt(req.Password); err != nil {
		return LicenseResponse{}, fmt.Errorf("failed to encrypt license password: %w", err)
	}

	if req.EmployeeID != nil && *req.EmployeeID != "" {
		employee, err := s.resolveEmployee(ctx, *req.EmployeeID)
		if err != nil {
			return LicenseResponse{}, err
		}
		license.EmployeeID = &employee.ID
		license.Employee = employee
	}

	if err := s.licenseRepo.Create(ctx, license); err != nil {
		return LicenseResponse{}, fmt.Errorf("failed to create license: %w", err)
	}

	res := toLicenseResponse(*license)
	res.Key = req.Key
	res.Password = req.Password
	return res, nil
}

func (s *licenseService) GetLicense(ctx context.Context, id string) (LicenseResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return LicenseResponse{}, fmt.Errorf("invalid license ID")
	}
	license, err := s.licenseRepo.GetByID(ctx, uid)
	if err != nil {
		return LicenseResponse{}, fmt.Errorf("license not found: %w", err)
	}

	res := toLicenseResponse(*license)
	if res.Key, err = s.cipher.Decrypt(license.Key); err != nil {
		return LicenseResponse{}, fmt.Errorf("failed to decrypt license key: %w", err)
	}
	if res.Password, err = s.cipher.Decrypt(license.Password); err != nil {
		return LicenseResponse{}, fmt.Errorf("failed to decrypt license password: %w", err)
	}
	return res, nil
}

func (s *licenseService) GetLicenses(ctx context.Context, page, limit int) ([]LicenseResponse, int64, error) {
	licenses, total, err := s.licenseRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch licenses: %w", err)
	}

	res := make([]LicenseResponse, 0, len(licenses))
	for _, l := range licenses {
		r := toLicenseResponse(l)
		if l.Key != "" {
			r.Key = maskedSecret
		}
		if l.Password != "" {
			r.Password = maskedSecret
		}
		res = append(res, r)
	}
	return res, total, nil
}

func (s *licenseService) UpdateLicense(ctx context.Context, id string, req UpdateLicenseRequest) (LicenseResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return LicenseResponse{}, fmt.Errorf("invalid license ID")
	}
	license, err := s.licenseRepo.GetByID(ctx, uid)
	if err != nil {
		return LicenseResponse{}, fmt.Errorf("license not found: %w", err)
	}

	if req.Software != nil {
		if *req.Software == "" {
			return LicenseResponse{}, fmt.Errorf("software cannot be empty")
		}
		license.Software = *req.Software
	}
	if req.Version != nil {
		license.Version = *req.Version
	}
	if req.Account != nil {
		license.Account = *req.Account
	}
	if req.Key != nil {
		if license.Key, err = s.cipher.Encrypt(*req.Key); err != nil {
			return LicenseResponse{}, fmt.Errorf("failed to encrypt license key: %w", err)
		}
	}
	if req.Password != nil {
		if license.Password, err = s.cipher.Encrypt(*req.Password); err != nil {
			return LicenseResponse{}, fmt.Errorf("failed to encrypt license password: %w", err)
		}
	}
	if req.ExpiryDate != nil {
		license.ExpiryDate = req.ExpiryDate
	}
	if req.EmployeeID != nil {
		if *req.EmployeeID == "" {
			license.EmployeeID = nil
			license.Employee = nil
		} else {
			employee, err := s.resolveEmployee(ctx, *req.EmployeeID)
			if err != nil {
				return LicenseResponse{}, err
			}
			license.EmployeeID = &employee.ID
			license.Employee = employee
		}
	}

	if err := s.licenseRepo.Update(ctx, license); err != nil {
		return LicenseResponse{}, fmt.Errorf("failed to update license: %w", err)
	}

	res := toLicenseResponse(*license)
	if license.Key != "" {
		res.Key = maskedSecret
	}
	if license.Password != "" {
		res.Password = maskedSecret
	}
	return res, nil
}

func (s *licenseService) DeleteLicense(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid license ID")
	}
	if _, err := s.licenseRepo.GetByID(ctx, uid); err != nil {
		return fmt.Errorf("license not found: %w", err)
	}
	return s.licenseRepo.Delete(ctx, uid)
}

var licenseExportHeaders = []string{
	"Software", "Version", "Account", "Expiry Date", "Assigned To", "Created At",
}

// ExportRows never includes key or password material.
func (s *licenseService) ExportRows(ctx context.Context) ([]string, [][]string, error) {
	licenses, err := s.licenseRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch licenses: %w", err)
	}

	rows := make([][]string, 0, len(licenses))
	for _, l := range licenses {
		expiry := ""
		if l.ExpiryDate != nil {
			expiry = l.ExpiryDate.Format("2006-01-02")
		}
		assigned := ""
		if l.Employee != nil {
			assigned = l.Employee.DisplayName
		}
		rows = append(rows, []string{
			l.Software, l.Version, l.Account, expiry, assigned,
			l.CreatedAt.Format(time.RFC3339),
		})
	}
	return licenseExportHeaders, rows, nil
}

// --- Helpers ---

func (s *licenseService) resolveEmployee(ctx context.Context, id string) (*model.Employee, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("employee not found: %w", err)
	}
	return employee, nil
}

// --- Response mappers ---

func toLicenseResponse(l model.License) LicenseResponse {
	name := ""
	if l.Employee != nil {
		name = l.Employee.DisplayName
	}
	return LicenseResponse{
		ID:           l.ID,
		Software:     l.Software,
		Version:      l.Version,
		Account:      l.Account,
		ExpiryDate:   l.ExpiryDate,
		EmployeeID:   l.EmployeeID,
		EmployeeName: name,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
