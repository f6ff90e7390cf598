package database

import (
	"fmt"

	"primefire/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate auto-migrates all models. A failure is logged, not fatal, so the
// API can still start against a schema that is managed elsewhere.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&model.Country{},
		&model.Role{},
		&model.Module{},
		&model.RoleModule{},
		&model.Employee{},
		&model.Job{},
		&model.Curriculum{},
		&model.License{},
		&model.Hardware{},
		&model.Ticket{},
		&model.TicketMessage{},
		&model.TicketAttachment{},
	)
	if err != nil {
		logrus.WithError(err).Warn("failed to auto-migrate models")
	}
}

// defaultModules is the navigation catalog created on first boot.
var defaultModules = []model.Module{
	{ModuleKey: "employees", ModuleName: "Employees", RouteURL: "/employees", Icon: "users", DisplayOrder: 1},
	{ModuleKey: "roles", ModuleName: "Roles", RouteURL: "/roles", Icon: "shield", DisplayOrder: 2},
	{ModuleKey: "modules", ModuleName: "Modules", RouteURL: "/modules", Icon: "grid", DisplayOrder: 3},
	{ModuleKey: "permissions", ModuleName: "Permissions", RouteURL: "/permissions", Icon: "lock", DisplayOrder: 4},
	{ModuleKey: "licenses", ModuleName: "Licenses", RouteURL: "/licenses", Icon: "key", DisplayOrder: 5},
	{ModuleKey: "jobs", ModuleName: "Jobs", RouteURL: "/jobs", Icon: "briefcase", DisplayOrder: 6},
	{ModuleKey: "curriculums", ModuleName: "Curriculums", RouteURL: "/curriculums", Icon: "file-text", DisplayOrder: 7},
	{ModuleKey: "hardware", ModuleName: "Hardware", RouteURL: "/hardware", Icon: "monitor", DisplayOrder: 8},
	{ModuleKey: "tickets", ModuleName: "Tickets", RouteURL: "/tickets", Icon: "life-buoy", DisplayOrder: 9},
	{ModuleKey: "countries", ModuleName: "Countries", RouteURL: "/countries", Icon: "globe", DisplayOrder: 10},
}

// Seed creates the default module catalog and, when no roles exist yet, an
// Administrator role granted every flag on every module. It is idempotent.
func Seed(db *gorm.DB) error {
	for _, m := range defaultModules {
		module := m
		module.IsActive = true
		if err := db.Where(model.Module{ModuleKey: module.ModuleKey}).FirstOrCreate(&module).Error; err != nil {
			return fmt.Errorf("failed to seed module %s: %w", m.ModuleKey, err)
		}
	}

	var roleCount int64
	if err := db.Model(&model.Role{}).Count(&roleCount).Error; err != nil {
		return fmt.Errorf("failed to count roles: %w", err)
	}
	if roleCount > 0 {
		return nil
	}

	admin := model.Role{Name: "Administrator", Description: "Full access to every module"}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create administrator role: %w", err)
	}

	var modules []model.Module
	if err := db.Find(&modules).Error; err != nil {
		return fmt.Errorf("failed to list modules: %w", err)
	}
	for _, m := range modules {
		grant := model.RoleModule{
			RoleID:       admin.ID,
			ModuleID:     m.ID,
			CanView:      true,
			CanCreate:    true,
			CanEdit:      true,
			CanDelete:    true,
			CanExport:    true,
			AdminActions: true,
			OtherActions: true,
		}
		if err := db.Create(&grant).Error; err != nil {
			return fmt.Errorf("failed to grant %s to administrator: %w", m.ModuleKey, err)
		}
	}

	logrus.WithField("modules", len(modules)).Info("seeded administrator role")
	return nil
}
