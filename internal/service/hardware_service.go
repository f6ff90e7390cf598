package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateHardwareRequest struct {
	DeviceName      string     `json:"device_name" binding:"required"`
	DeviceType      string     `json:"device_type" binding:"required"`
	SerialNumber    string     `json:"serial_number" binding:"required"`
	Processor       string     `json:"processor"`
	RAMGB           int        `json:"ram_gb"`
	StorageType     string     `json:"storage_type"`
	StorageSizeGB   int        `json:"storage_size_gb"`
	GPU             string     `json:"gpu"`
	OperatingSystem string     `json:"operating_system"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	WarrantyStart   *time.Time `json:"warranty_start"`
	WarrantyEnd     *time.Time `json:"warranty_end"`
	Status          string     `json:"status"`
	EmployeeID      *string    `json:"employee_id"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes"`
}

type UpdateHardwareRequest struct {
	DeviceName      *string    `json:"device_name"`
	DeviceType      *string    `json:"device_type"`
	SerialNumber    *string    `json:"serial_number"`
	Processor       *string    `json:"processor"`
	RAMGB           *int       `json:"ram_gb"`
	StorageType     *string    `json:"storage_type"`
	StorageSizeGB   *int       `json:"storage_size_gb"`
	GPU             *string    `json:"gpu"`
	OperatingSystem *string    `json:"operating_system"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	WarrantyStart   *time.Time `json:"warranty_start"`
	WarrantyEnd     *time.Time `json:"warranty_end"`
	Status          *string    `json:"status"`
	EmployeeID      *string    `json:"employee_id"` // empty string unassigns
	Location        *string    `json:"location"`
	Notes           *string    `json:"notes"`
}

type HardwareResponse struct {
	ID              uuid.UUID  `json:"id"`
	DeviceName      string     `json:"device_name"`
	DeviceType      string     `json:"device_type"`
	SerialNumber    string     `json:"serial_number"`
	Processor       string     `json:"processor"`
	RAMGB           int        `json:"ram_gb"`
	StorageType     string     `json:"storage_type"`
	StorageSizeGB   int        `json:"storage_size_gb"`
	GPU             string     `json:"gpu"`
	OperatingSystem string     `json:"operating_system"`
	PurchaseDate    *time.Time `json:"purchase_date,omitempty"`
	WarrantyStart   *time.Time `json:"warranty_start,omitempty"`
	WarrantyEnd     *time.Time `json:"warranty_end,omitempty"`
	Status          string     `json:"status"`
	EmployeeID      *uuid.UUID `json:"employee_id,omitempty"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type HardwareListFilter struct {
	Status     string
	DeviceType string
	EmployeeID string
}

// --- Interface ---

type HardwareService interface {
	CreateHardware(ctx context.Context, req CreateHardwareRequest) (HardwareResponse, error)
	GetHardware(ctx context.Context, id string) (HardwareResponse, error)
	GetHardwareList(ctx context.Context, filter HardwareListFilter, page, limit int) ([]HardwareResponse, int64, error)
	UpdateHardware(ctx context.Context, id string, req UpdateHardwareRequest) (HardwareResponse, error)
	DeleteHardware(ctx context.Context, id string) error
	ExportRows(ctx context.Context) (headers []string, rows [][]string, err error)
}

// --- Implementation ---

type hardwareService struct {
	hardwareRepo repository.HardwareRepository
	employeeRepo repository.EmployeeRepository
}

func NewHardwareService(hardwareRepo repository.HardwareRepository, employeeRepo repository.EmployeeRepository) HardwareService {
	return &hardwareService{hardwareRepo: hardwareRepo, employeeRepo: employeeRepo}
}

// --- Validation helpers ---

func inDomain(value string, domain []string) bool {
	for _, v := range domain {
		if v == value {
			return true
		}
	}
	return false
}

func domainHint(field string, domain []string) error {
	return fmt.Errorf("%s must be one of: %s", field, strings.Join(domain, ", "))
}

func (s *hardwareService) CreateHardware(ctx context.Context, req CreateHardwareRequest) (HardwareResponse, error) {
	if !inDomain(req.DeviceType, model.HardwareDeviceTypes) {
		return HardwareResponse{}, domainHint("device_type", model.HardwareDeviceTypes)
	}
	if req.StorageType != "" && !inDomain(req.StorageType, model.HardwareStorageTypes) {
		return HardwareResponse{}, domainHint("storage_type", model.HardwareStorageTypes)
	}
	status := req.Status
	if status == "" {
		status = "Active"
	}
	if !inDomain(status, model.HardwareStatuses) {
		return HardwareResponse{}, domainHint("status", model.HardwareStatuses)
	}
	if _, err := s.hardwareRepo.GetBySerialNumber(ctx, req.SerialNumber); err == nil {
		return HardwareResponse{}, fmt.Errorf("serial number already registered")
	}

	hardware := &model.Hardware{
		DeviceName:      req.DeviceName,
		DeviceType:      req.DeviceType,
		SerialNumber:    req.SerialNumber,
		Processor:       req.Processor,
		RAMGB:           req.RAMGB,
		StorageType:     req.StorageType,
		StorageSizeGB:   req.StorageSizeGB,
		GPU:             req.GPU,
		OperatingSystem: req.OperatingSystem,
		PurchaseDate:    req.PurchaseDate,
		WarrantyStart:   req.WarrantyStart,
		WarrantyEnd:     req.WarrantyEnd,
		Status:          status,
		Location:        req.Location,
		Notes:           req.Notes,
	}

	if req.EmployeeID != nil && *req.EmployeeID != "" {
		employee, err := s.resolveAssignee(ctx, *req.EmployeeID)
		if err != nil {
			return HardwareResponse{}, err
		}
		hardware.EmployeeID = &employee.ID
		hardware.Employee = employee
	}

	if err := s.hardwareRepo.Create(ctx, hardware); err != nil {
		return HardwareResponse{}, fmt.Errorf("failed to create hardware: %w", err)
	}
	return toHardwareResponse(*hardware), nil
}

func (s *hardwareService) GetHardware(ctx context.Context, id string) (HardwareResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return HardwareResponse{}, fmt.Errorf("invalid hardware ID")
	}
	hardware, err := s.hardwareRepo.GetByID(ctx, uid)
	if err != nil {
		return HardwareResponse{}, fmt.Errorf("hardware not found: %w", err)
	}
	return toHardwareResponse(*hardware), nil
}

func (s *hardwareService) GetHardwareList(ctx context.Context, filter HardwareListFilter, page, limit int) ([]HardwareResponse, int64, error) {
	if filter.Status != "" && !inDomain(filter.Status, model.HardwareStatuses) {
		return nil, 0, domainHint("status", model.HardwareStatuses)
	}
	if filter.DeviceType != "" && !inDomain(filter.DeviceType, model.HardwareDeviceTypes) {
		return nil, 0, domainHint("device_type", model.HardwareDeviceTypes)
	}

	repoFilter := repository.HardwareFilter{
		Status:     filter.Status,
		DeviceType: filter.DeviceType,
	}
	if filter.EmployeeID != "" {
		eid, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid employee ID")
		}
		repoFilter.EmployeeID = &eid
	}

	items, total, err := s.hardwareRepo.List(ctx, repoFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch hardware: %w", err)
	}

	res := make([]HardwareResponse, 0, len(items))
	for _, h := range items {
		res = append(res, toHardwareResponse(h))
	}
	return res, total, nil
}

func (s *hardwareService) UpdateHardware(ctx context.Context, id string, req UpdateHardwareRequest) (HardwareResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return HardwareResponse{}, fmt.Errorf("invalid hardware ID")
	}
	hardware, err := s.hardwareRepo.GetByID(ctx, uid)
	if err != nil {
		return HardwareResponse{}, fmt.Errorf("hardware not found: %w", err)
	}

	if req.DeviceName != nil {
		if *req.DeviceName == "" {
			return HardwareResponse{}, fmt.Errorf("device_name cannot be empty")
		}
		hardware.DeviceName = *req.DeviceName
	}
	if req.DeviceType != nil {
		if !inDomain(*req.DeviceType, model.HardwareDeviceTypes) {
			return HardwareResponse{}, domainHint("device_type", model.HardwareDeviceTypes)
		}
		hardware.DeviceType = *req.DeviceType
	}
	if req.SerialNumber != nil && *req.SerialNumber != hardware.SerialNumber {
		if *req.SerialNumber == "" {
			return HardwareResponse{}, fmt.Errorf("serial_number cannot be empty")
		}
		if existing, err := s.hardwareRepo.GetBySerialNumber(ctx, *req.SerialNumber); err == nil && existing.ID != hardware.ID {
			return HardwareResponse{}, fmt.Errorf("serial number already registered")
		}
		hardware.SerialNumber = *req.SerialNumber
	}
	if req.Processor != nil {
		hardware.Processor = *req.Processor
	}
	if req.RAMGB != nil {
		hardware.RAMGB = *req.RAMGB
	}
	if req.StorageType != nil {
		if *req.StorageType != "" && !inDomain(*req.StorageType, model.HardwareStorageTypes) {
			return HardwareResponse{}, domainHint("storage_type", model.HardwareStorageTypes)
		}
		hardware.StorageType = *req.StorageType
	}
	if req.StorageSizeGB != nil {
		hardware.StorageSizeGB = *req.StorageSizeGB
	}
	if req.GPU != nil {
		hardware.GPU = *req.GPU
	}
	if req.OperatingSystem != nil {
		hardware.OperatingSystem = *req.OperatingSystem
	}
	if req.PurchaseDate != nil {
		hardware.PurchaseDate = req.PurchaseDate
	}
	if req.WarrantyStart != nil {
		hardware.WarrantyStart = req.WarrantyStart
	}
	if req.WarrantyEnd != nil {
		hardware.WarrantyEnd = req.WarrantyEnd
	}
	if req.Status != nil {
		if !inDomain(*req.Status, model.HardwareStatuses) {
			return HardwareResponse{}, domainHint("status", model.HardwareStatuses)
		}
		hardware.Status = *req.Status
	}
	if req.EmployeeID != nil {
		if *req.EmployeeID == "" {
			hardware.EmployeeID = nil
			hardware.Employee = nil
		} else {
			employee, err := s.resolveAssignee(ctx, *req.EmployeeID)
			if err != nil {
				return HardwareResponse{}, err
			}
			hardware.EmployeeID = &employee.ID
			hardware.Employee = employee
		}
	}
	if req.Location != nil {
		hardware.Location = *req.Location
	}
	if req.Notes != nil {
		hardware.Notes = *req.Notes
	}

	if err := s.hardwareRepo.Update(ctx, hardware); err != nil {
		return HardwareResponse{}, fmt.Errorf("failed to update hardware: %w", err)
	}
	return toHardwareResponse(*hardware), nil
}

func (s *hardwareService) DeleteHardware(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid hardware ID")
	}
	if _, err := s.hardwareRepo.GetByID(ctx, uid); err != nil {
		return fmt.Errorf("hardware not found: %w", err)
	}
	return s.hardwareRepo.Delete(ctx, uid)
}

var hardwareExportHeaders = []string{
	"Device Name", "Device Type", "Serial Number", "Processor", "RAM (GB)",
	"Storage Type", "Storage (GB)", "GPU", "Operating System", "Purchase Date",
	"Warranty End", "Status", "Assigned To", "Location",
}

func (s *hardwareService) ExportRows(ctx context.Context) ([]string, [][]string, error) {
	items, err := s.hardwareRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch hardware: %w", err)
	}

	formatDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}

	rows := make([][]string, 0, len(items))
	for _, h := range items {
		assigned := ""
		if h.Employee != nil {
			assigned = h.Employee.DisplayName
		}
		rows = append(rows, []string{
			h.DeviceName, h.DeviceType, h.SerialNumber, h.Processor,
			fmt.Sprintf("%d", h.RAMGB), h.StorageType, fmt.Sprintf("%d", h.StorageSizeGB),
			h.GPU, h.OperatingSystem, formatDate(h.PurchaseDate),
			formatDate(h.WarrantyEnd), h.Status, assigned, h.Location,
		})
	}
	return hardwareExportHeaders, rows, nil
}

// --- Helpers ---

func (s *hardwareService) resolveAssignee(ctx context.Context, id string) (*model.Employee, error) {
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

func toHardwareResponse(h model.Hardware) HardwareResponse {
	name := ""
	if h.Employee != nil {
		name = h.Employee.DisplayName
	}
	return HardwareResponse{
		ID:              h.ID,
		DeviceName:      h.DeviceName,
		DeviceType:      h.DeviceType,
		SerialNumber:    h.SerialNumber,
		Processor:       h.Processor,
		RAMGB:           h.RAMGB,
		StorageType:     h.StorageType,
		StorageSizeGB:   h.StorageSizeGB,
		GPU:             h.GPU,
		OperatingSystem: h.OperatingSystem,
		PurchaseDate:    h.PurchaseDate,
		WarrantyStart:   h.WarrantyStart,
		WarrantyEnd:     h.WarrantyEnd,
		Status:          h.Status,
		EmployeeID:      h.EmployeeID,
		EmployeeName:    name,
		Location:        h.Location,
		Notes:           h.Notes,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}
