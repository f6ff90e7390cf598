package model

import (
	"time"

	"github.com/google/uuid"
)

// Curriculum pipeline statuses
const (
	CurriculumStatusReceived  = "received"
	CurriculumStatusScreening = "screening"
	CurriculumStatusInterview = "interview"
	CurriculumStatusOffer     = "offer"
	CurriculumStatusHired     = "hired"
	CurriculumStatusRejected  = "rejected"
)

// Curriculum is an applicant record, optionally carrying an uploaded CV file
// stored on disk under the configured upload directory.
type Curriculum struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CandidateName  string     `gorm:"type:varchar(255);not null" json:"candidate_name"`
	CandidateEmail string     `gorm:"type:varchar(255)" json:"candidate_email"`
	Phone          string     `gorm:"type:varchar(50)" json:"phone"`
	JobID          *uuid.UUID `gorm:"type:uuid" json:"job_id"`
	Job            *Job       `gorm:"foreignKey:JobID;constraint:OnDelete:SET NULL;" json:"-"`
	Status         string     `gorm:"type:varchar(20);default:'received'" json:"status"`
	Notes          string     `gorm:"type:text" json:"notes"`
	FileName       string     `gorm:"type:varchar(255)" json:"file_name"`
	FilePath       string     `gorm:"type:varchar(512)" json:"-"`
	ContentType    string     `gorm:"type:varchar(100)" json:"content_type"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
