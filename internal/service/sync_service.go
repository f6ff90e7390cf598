package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"primefire/internal/graph"
	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// companyDomainLabel identifies company accounts: a directory user belongs to
// the company when any dot-separated label of their email domain equals it, so
// both primefire.com and primefire.com.mx addresses match.
const companyDomainLabel = "primefire"

// ErrDirectoryUnavailable marks Microsoft Graph failures so handlers can
// answer 500 instead of blaming the request.
var ErrDirectoryUnavailable = errors.New("directory request failed")

// SyncStats summarizes one directory sync run.
type SyncStats struct {
	TotalMSUsers     int       `json:"total_ms_users"`
	PrimefireUsers   int       `json:"primefire_users"`
	Processed        int       `json:"processed"`
	Created          int       `json:"created"`
	Updated          int       `json:"updated"`
	Errors           int       `json:"errors"`
	CountriesCreated int       `json:"countries_created"`
	Timestamp        time.Time `json:"timestamp"`
}

// --- Interface ---

type SyncService interface {
	// Run pulls all directory users and upserts the company ones locally.
	// Per-user failures are counted, not fatal.
	Run(ctx context.Context) (SyncStats, error)
	// PullEmployee refreshes a single employee from the directory.
	PullEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error)
	// PushEmployee writes an employee's local profile back to the directory.
	PushEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error)
}

// --- Implementation ---

type syncService struct {
	employeeRepo repository.EmployeeRepository
	countrySvc   CountryService
	graphClient  graph.Client
	log          *logrus.Logger
}

func NewSyncService(
	employeeRepo repository.EmployeeRepository,
	countrySvc CountryService,
	graphClient graph.Client,
	log *logrus.Logger,
) SyncService {
	return &syncService{
		employeeRepo: employeeRepo,
		countrySvc:   countrySvc,
		graphClient:  graphClient,
		log:          log,
	}
}

func (s *syncService) Run(ctx context.Context) (SyncStats, error) {
	stats := SyncStats{Timestamp: time.Now().UTC()}

	users, err := s.graphClient.ListUsers(ctx)
	if err != nil {
		return stats, fmt.Errorf("%w: failed to list users: %v", ErrDirectoryUnavailable, err)
	}
	stats.TotalMSUsers = len(users)

	for _, u := range users {
		fields := graph.MapUserToEmployeeFields(u)
		if !isCompanyEmail(fields.Email) {
			continue
		}
		stats.PrimefireUsers++
		stats.Processed++

		created, countriesCreated, err := s.upsertEmployee(ctx, fields)
		if err != nil {
			stats.Errors++
			s.log.WithError(err).WithFields(logrus.Fields{
				"azure_oid": fields.AzureOID,
				"email":     fields.Email,
			}).Error("failed to sync directory user")
			continue
		}
		stats.CountriesCreated += countriesCreated
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	s.log.WithFields(logrus.Fields{
		"total":     stats.TotalMSUsers,
		"primefire": stats.PrimefireUsers,
		"created":   stats.Created,
		"updated":   stats.Updated,
		"errors":    stats.Errors,
	}).Info("directory sync finished")
	return stats, nil
}

func (s *syncService) PullEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error) {
	uid, err := uuid.Parse(employeeID)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, uid)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("employee not found: %w", err)
	}
	if employee.AzureOID == "" {
		return EmployeeResponse{}, fmt.Errorf("employee is not linked to a directory account")
	}

	user, err := s.graphClient.GetUser(ctx, employee.AzureOID)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("%w: failed to fetch user: %v", ErrDirectoryUnavailable, err)
	}

	fields := graph.MapUserToEmployeeFields(*user)
	if _, err := s.applyFields(ctx, employee, fields); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return toEmployeeResponse(*employee), nil
}

func (s *syncService) PushEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error) {
	uid, err := uuid.Parse(employeeID)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, uid)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("employee not found: %w", err)
	}
	if employee.AzureOID == "" {
		return EmployeeResponse{}, fmt.Errorf("employee is not linked to a directory account")
	}

	fields := graph.MapEmployeeToUserFields(employee)
	if len(fields) == 0 {
		return toEmployeeResponse(*employee), nil
	}

	if _, err := s.graphClient.UpdateUser(ctx, employee.AzureOID, fields); err != nil {
		return EmployeeResponse{}, fmt.Errorf("%w: failed to update user: %v", ErrDirectoryUnavailable, err)
	}

	now := time.Now().UTC()
	employee.LastSyncedAt = &now
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return toEmployeeResponse(*employee), nil
}

// --- Helpers ---

// upsertEmployee creates or refreshes the local employee matching the
// directory fields. Matching is by directory object ID.
func (s *syncService) upsertEmployee(ctx context.Context, fields graph.EmployeeFields) (created bool, countriesCreated int, err error) {
	employee, err := s.employeeRepo.GetByAzureOID(ctx, fields.AzureOID)
	switch {
	case err == nil:
		countriesCreated, err = s.applyFields(ctx, employee, fields)
		if err != nil {
			return false, 0, err
		}
		if err := s.employeeRepo.Update(ctx, employee); err != nil {
			return false, 0, fmt.Errorf("failed to update employee: %w", err)
		}
		return false, countriesCreated, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		employee = &model.Employee{AzureOID: fields.AzureOID}
		countriesCreated, err = s.applyFields(ctx, employee, fields)
		if err != nil {
			return false, 0, err
		}
		if employee.Email == "" {
			return false, 0, fmt.Errorf("directory user has no email")
		}
		if err := s.employeeRepo.Create(ctx, employee); err != nil {
			return false, 0, fmt.Errorf("failed to create employee: %w", err)
		}
		return true, countriesCreated, nil

	default:
		return false, 0, fmt.Errorf("failed to look up employee: %w", err)
	}
}

// applyFields copies non-empty directory values onto the employee and stamps
// the sync time. Empty directory values never blank out local data.
func (s *syncService) applyFields(ctx context.Context, employee *model.Employee, fields graph.EmployeeFields) (countriesCreated int, err error) {
	setIfPresent(&employee.AzureUPN, fields.AzureUPN)
	setIfPresent(&employee.FirstName, fields.FirstName)
	setIfPresent(&employee.LastName, fields.LastName)
	setIfPresent(&employee.DisplayName, fields.DisplayName)
	setIfPresent(&employee.Title, fields.Title)
	setIfPresent(&employee.Department, fields.Department)
	setIfPresent(&employee.Office, fields.Office)
	setIfPresent(&employee.Email, fields.Email)
	setIfPresent(&employee.MobilePhone, fields.MobilePhone)
	setIfPresent(&employee.OfficePhone, fields.OfficePhone)
	setIfPresent(&employee.StreetAddress, fields.StreetAddress)
	setIfPresent(&employee.City, fields.City)
	setIfPresent(&employee.State, fields.State)
	setIfPresent(&employee.PostalCode, fields.PostalCode)

	if employee.DisplayName == "" {
		employee.DisplayName = strings.TrimSpace(employee.FirstName + " " + employee.LastName)
	}
	if employee.DisplayName == "" {
		employee.DisplayName = employee.Email
	}

	if fields.Country != "" {
		country, created, err := s.countrySvc.GetOrCreate(ctx, fields.Country)
		if err != nil {
			return 0, err
		}
		if created {
			countriesCreated++
		}
		// Unrecognized values leave the stored country untouched.
		if country != nil {
			employee.CountryID = &country.ID
			employee.Country = country
		}
	}

	now := time.Now().UTC()
	employee.LastSyncedAt = &now
	return countriesCreated, nil
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// isCompanyEmail reports whether the address belongs to the company domain.
func isCompanyEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	for _, label := range strings.Split(strings.ToLower(email[at+1:]), ".") {
		if label == companyDomainLabel {
			return true
		}
	}
	return false
}
