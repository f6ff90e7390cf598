package model

import (
	"time"

	"github.com/google/uuid"
)

// Hardware device type / storage / status domains, enforced both as check
// constraints and in the service layer.
var (
	HardwareDeviceTypes  = []string{"Laptop", "Desktop", "Workstation", "Server"}
	HardwareStorageTypes = []string{"HDD", "SSD", "NVMe", "Hybrid"}
	HardwareStatuses     = []string{"Active", "In Repair", "Retired", "Spare"}
)

// Hardware is a tracked IT asset, optionally assigned to an employee.
type Hardware struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeviceName      string     `gorm:"type:varchar(255);not null" json:"device_name"`
	DeviceType      string     `gorm:"type:varchar(50);not null;check:device_type IN ('Laptop','Desktop','Workstation','Server')" json:"device_type"`
	SerialNumber    string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"serial_number"`
	Processor       string     `gorm:"type:varchar(255)" json:"processor"`
	RAMGB           int        `gorm:"column:ram_gb" json:"ram_gb"`
	StorageType     string     `gorm:"type:varchar(20);check:storage_type IN ('HDD','SSD','NVMe','Hybrid')" json:"storage_type"`
	StorageSizeGB   int        `gorm:"column:storage_size_gb" json:"storage_size_gb"`
	GPU             string     `gorm:"type:varchar(255)" json:"gpu"`
	OperatingSystem string     `gorm:"type:varchar(100)" json:"operating_system"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	WarrantyStart   *time.Time `json:"warranty_start"`
	WarrantyEnd     *time.Time `json:"warranty_end"`
	Status          string     `gorm:"type:varchar(20);default:'Active';check:status IN ('Active','In Repair','Retired','Spare')" json:"status"`
	EmployeeID      *uuid.UUID `gorm:"type:uuid" json:"employee_id"`
	Employee        *Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL;" json:"-"`
	Location        string     `gorm:"type:varchar(255)" json:"location"`
	Notes           string     `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
