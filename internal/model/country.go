package model

import (
	"time"

	"github.com/google/uuid"
)

// Country stores a canonical ISO-3166 alpha-2 code. Rows are created on
// demand when directory sync sees a country it has not stored yet.
type Country struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"country_id"`
	Code      string    `gorm:"type:varchar(2);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
