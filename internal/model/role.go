package model

import (
	"time"

	"github.com/google/uuid"
)

// Role groups employees for permission assignment. Capability flags live on
// RoleModule rows, not on the role itself.
type Role struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Employees   []Employee `gorm:"many2many:employee_roles;" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
