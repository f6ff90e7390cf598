package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateEmployeeRequest struct {
	FirstName     string   `json:"first_name" binding:"required"`
	LastName      string   `json:"last_name" binding:"required"`
	DisplayName   string   `json:"display_name"`
	Title         string   `json:"title"`
	Department    string   `json:"department"`
	Office        string   `json:"office"`
	Email         string   `json:"email" binding:"required"`
	MobilePhone   string   `json:"mobile_phone"`
	OfficePhone   string   `json:"office_phone"`
	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	Country       string   `json:"country"`
	RoleIDs       []string `json:"role_ids"`
}

type UpdateEmployeeRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	DisplayName   *string `json:"display_name"`
	Title         *string `json:"title"`
	Department    *string `json:"department"`
	Office        *string `json:"office"`
	Email         *string `json:"email"`
	MobilePhone   *string `json:"mobile_phone"`
	OfficePhone   *string `json:"office_phone"`
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"` // empty string clears the country
}

type AssignRolesRequest struct {
	RoleIDs []string `json:"role_ids" binding:"required"`
}

type EmployeeResponse struct {
	ID            uuid.UUID        `json:"id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	DisplayName   string           `json:"display_name"`
	Title         string           `json:"title"`
	Department    string           `json:"department"`
	Office        string           `json:"office"`
	Email         string           `json:"email"`
	MobilePhone   string           `json:"mobile_phone"`
	OfficePhone   string           `json:"office_phone"`
	StreetAddress string           `json:"street_address"`
	City          string           `json:"city"`
	State         string           `json:"state"`
	PostalCode    string           `json:"postal_code"`
	Country       *CountryResponse `json:"country,omitempty"`
	AzureOID      string           `json:"azure_oid,omitempty"`
	AzureUPN      string           `json:"azure_upn,omitempty"`
	LastSyncedAt  *time.Time       `json:"last_synced_at,omitempty"`
	Roles         []RoleResponse   `json:"roles"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// --- Interface ---

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	GetEmployees(ctx context.Context, search, department string, page, limit int) ([]EmployeeResponse, int64, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
	AssignRoles(ctx context.Context, id string, roleIDs []string) (EmployeeResponse, error)
	// ExportRows flattens all employees into spreadsheet rows.
	ExportRows(ctx context.Context) (headers []string, rows [][]string, err error)
}

// --- Implementation ---

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	roleRepo     repository.RoleRepository
	countrySvc   CountryService
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	roleRepo repository.RoleRepository,
	countrySvc CountryService,
) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		countrySvc:   countrySvc,
	}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid email format")
	}
	if _, err := s.employeeRepo.GetByEmail(ctx, req.Email); err == nil {
		return EmployeeResponse{}, fmt.Errorf("email already in use")
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}

	employee := &model.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DisplayName:   displayName,
		Title:         req.Title,
		Department:    req.Department,
		Office:        req.Office,
		Email:         req.Email,
		MobilePhone:   req.MobilePhone,
		OfficePhone:   req.OfficePhone,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
	}

	if req.Country != "" {
		country, _, err := s.countrySvc.GetOrCreate(ctx, req.Country)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if country == nil {
			return EmployeeResponse{}, fmt.Errorf("unrecognized country %q", req.Country)
		}
		employee.CountryID = &country.ID
		employee.Country = country
	}

	if len(req.RoleIDs) > 0 {
		roles, err := s.resolveRoles(ctx, req.RoleIDs)
		if err != nil {
			return EmployeeResponse{}, err
		}
		employee.Roles = roles
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return toEmployeeResponse(*employee), nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id string) (EmployeeResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, uid)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("employee not found: %w", err)
	}
	return toEmployeeResponse(*employee), nil
}

func (s *employeeService) GetEmployees(ctx context.Context, search, department string, page, limit int) ([]EmployeeResponse, int64, error) {
	filter := repository.EmployeeFilter{Search: search, Department: department}
	employees, total, err := s.employeeRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch employees: %w", err)
	}

	res := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		res = append(res, toEmployeeResponse(e))
	}
	return res, total, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, uid)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("employee not found: %w", err)
	}

	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return EmployeeResponse{}, fmt.Errorf("invalid email format")
		}
		if existing, err := s.employeeRepo.GetByEmail(ctx, *req.Email); err == nil && existing.ID != employee.ID {
			return EmployeeResponse{}, fmt.Errorf("email already in use")
		}
		employee.Email = *req.Email
	}
	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.DisplayName != nil {
		employee.DisplayName = *req.DisplayName
	}
	if req.Title != nil {
		employee.Title = *req.Title
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Office != nil {
		employee.Office = *req.Office
	}
	if req.MobilePhone != nil {
		employee.MobilePhone = *req.MobilePhone
	}
	if req.OfficePhone != nil {
		employee.OfficePhone = *req.OfficePhone
	}
	if req.StreetAddress != nil {
		employee.StreetAddress = *req.StreetAddress
	}
	if req.City != nil {
		employee.City = *req.City
	}
	if req.State != nil {
		employee.State = *req.State
	}
	if req.PostalCode != nil {
		employee.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		if *req.Country == "" {
			employee.CountryID = nil
			employee.Country = nil
		} else {
			country, _, err := s.countrySvc.GetOrCreate(ctx, *req.Country)
			if err != nil {
				return EmployeeResponse{}, err
			}
			if country == nil {
				return EmployeeResponse{}, fmt.Errorf("unrecognized country %q", *req.Country)
			}
			employee.CountryID = &country.ID
			employee.Country = country
		}
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return toEmployeeResponse(*employee), nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid employee ID")
	}
	if _, err := s.employeeRepo.GetByID(ctx, uid); err != nil {
		return fmt.Errorf("employee not found: %w", err)
	}
	return s.employeeRepo.Delete(ctx, uid)
}

func (s *employeeService) AssignRoles(ctx context.Context, id string, roleIDs []string) (EmployeeResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, uid)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("employee not found: %w", err)
	}

	roles, err := s.resolveRoles(ctx, roleIDs)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.employeeRepo.ReplaceRoles(ctx, employee, roles); err != nil {
		return EmployeeResponse{}, fmt.Errorf("failed to assign roles: %w", err)
	}
	employee.Roles = roles
	return toEmployeeResponse(*employee), nil
}

var employeeExportHeaders = []string{
	"First Name", "Last Name", "Display Name", "Title", "Department", "Office",
	"Email", "Mobile Phone", "Office Phone", "Street Address", "City", "State",
	"Postal Code", "Country", "Azure UPN", "Last Synced At",
}

func (s *employeeService) ExportRows(ctx context.Context) ([]string, [][]string, error) {
	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		country := ""
		if e.Country != nil {
			country = e.Country.Name
		}
		lastSynced := ""
		if e.LastSyncedAt != nil {
			lastSynced = e.LastSyncedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			e.FirstName, e.LastName, e.DisplayName, e.Title, e.Department, e.Office,
			e.Email, e.MobilePhone, e.OfficePhone, e.StreetAddress, e.City, e.State,
			e.PostalCode, country, e.AzureUPN, lastSynced,
		})
	}
	return employeeExportHeaders, rows, nil
}

// --- Helpers ---

func (s *employeeService) resolveRoles(ctx context.Context, roleIDs []string) ([]model.Role, error) {
	ids := make([]uuid.UUID, 0, len(roleIDs))
	for i, raw := range roleIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("role_ids[%d]: invalid role ID", i)
		}
		ids = append(ids, id)
	}

	roles, err := s.roleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	if len(roles) != len(ids) {
		return nil, fmt.Errorf("one or more roles not found")
	}
	return roles, nil
}

// --- Response mappers ---

func toEmployeeResponse(e model.Employee) EmployeeResponse {
	var country *CountryResponse
	if e.Country != nil {
		c := toCountryResponse(*e.Country)
		country = &c
	}

	roles := make([]RoleResponse, 0, len(e.Roles))
	for _, r := range e.Roles {
		roles = append(roles, toRoleResponse(r))
	}

	return EmployeeResponse{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		DisplayName:   e.DisplayName,
		Title:         e.Title,
		Department:    e.Department,
		Office:        e.Office,
		Email:         e.Email,
		MobilePhone:   e.MobilePhone,
		OfficePhone:   e.OfficePhone,
		StreetAddress: e.StreetAddress,
		City:          e.City,
		State:         e.State,
		PostalCode:    e.PostalCode,
		Country:       country,
		AzureOID:      e.AzureOID,
		AzureUPN:      e.AzureUPN,
		LastSyncedAt:  e.LastSyncedAt,
		Roles:         roles,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
