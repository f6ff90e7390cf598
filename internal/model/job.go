package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job statuses
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Job is an open position candidates can apply to. Listings are public;
// mutations require the jobs module permissions.
type Job struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string          `gorm:"type:varchar(255);not null" json:"title"`
	Department   string          `gorm:"type:varchar(255)" json:"department"`
	Location     string          `gorm:"type:varchar(255)" json:"location"`
	Description  string          `gorm:"type:text" json:"description"`
	Requirements string          `gorm:"type:text" json:"requirements"`
	Status       string          `gorm:"type:varchar(20);default:'open'" json:"status"`
	SalaryMin    decimal.Decimal `gorm:"type:numeric(12,2)" json:"salary_min"`
	SalaryMax    decimal.Decimal `gorm:"type:numeric(12,2)" json:"salary_max"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
