package model

import (
	"time"

	"github.com/google/uuid"
)

// License tracks purchased software licenses. Key and Password are stored
// encrypted; the service layer seals and opens them.
type License struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Software   string     `gorm:"type:varchar(255);not null" json:"software"`
	Version    string     `gorm:"type:varchar(100)" json:"version"`
	Account    string     `gorm:"type:varchar(255)" json:"account"`
	Key        string     `gorm:"type:text" json:"key"`
	Password   string     `gorm:"type:text" json:"password"`
	ExpiryDate *time.Time `json:"expiry_date"`
	EmployeeID *uuid.UUID `gorm:"type:uuid" json:"employee_id"`
	Employee   *Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL;" json:"-"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
