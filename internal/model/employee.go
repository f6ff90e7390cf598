package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the local mirror of a directory user plus HR profile fields.
// AzureOID is the stable external identifier used as the upsert key during
// directory sync.
type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName     string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName      string     `gorm:"type:varchar(100)" json:"last_name"`
	DisplayName   string     `gorm:"type:varchar(255)" json:"display_name"`
	Title         string     `gorm:"type:varchar(255)" json:"title"`
	Department    string     `gorm:"type:varchar(255)" json:"department"`
	Office        string     `gorm:"type:varchar(255)" json:"office"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	MobilePhone   string     `gorm:"type:varchar(50)" json:"mobile_phone"`
	OfficePhone   string     `gorm:"type:varchar(50)" json:"office_phone"`
	StreetAddress string     `gorm:"type:varchar(255)" json:"street_address"`
	City          string     `gorm:"type:varchar(100)" json:"city"`
	State         string     `gorm:"type:varchar(100)" json:"state"`
	PostalCode    string     `gorm:"type:varchar(20)" json:"postal_code"`
	CountryID     *uuid.UUID `gorm:"type:uuid" json:"country_id"`
	Country       *Country   `gorm:"foreignKey:CountryID;constraint:OnDelete:SET NULL;" json:"country,omitempty"`
	AzureOID      string     `gorm:"type:varchar(64);uniqueIndex" json:"azure_oid"`
	AzureUPN      string     `gorm:"type:varchar(255)" json:"azure_upn"`
	LastSyncedAt  *time.Time `json:"last_synced_at"`
	Roles         []Role     `gorm:"many2many:employee_roles;" json:"roles,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
