package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses
const (
	TicketStatusTodo       = "todo"
	TicketStatusActive     = "active"
	TicketStatusInactive   = "inactive"
	TicketStatusClosed     = "closed"
	TicketStatusDone       = "done"
	TicketStatusInProgress = "in_progress"
	TicketStatusOnHold     = "on_hold"
)

// Ticket priorities
const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

var (
	TicketStatuses   = []string{TicketStatusTodo, TicketStatusActive, TicketStatusInactive, TicketStatusClosed, TicketStatusDone, TicketStatusInProgress, TicketStatusOnHold}
	TicketPriorities = []string{TicketPriorityLow, TicketPriorityNormal, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent}
	TicketSLAs       = []string{"12h", "24h", "48h", "1w", "2w", "4w"}
)

// Ticket is an internal support request. Mutations are restricted to the
// creator, the assignee, or holders of tickets admin actions.
type Ticket struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(20);default:'todo'" json:"status"`
	Priority    string     `gorm:"type:varchar(20);default:'normal'" json:"priority"`
	SLA         string     `gorm:"column:sla;type:varchar(10)" json:"sla"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid" json:"assigned_to"`
	Assignee    *Employee  `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL;" json:"-"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	Creator     *Employee  `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TicketMessage is a threaded comment on a ticket. EditedAt is set when the
// body changes after creation.
type TicketMessage struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TicketID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"ticket_id"`
	Ticket     *Ticket    `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE;" json:"-"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null" json:"employee_id"`
	Author     *Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	EditedAt   *time.Time `json:"edited_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TicketAttachment is an uploaded file tied to a ticket, stored on disk.
type TicketAttachment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TicketID    uuid.UUID `gorm:"type:uuid;not null;index" json:"ticket_id"`
	Ticket      *Ticket   `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE;" json:"-"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath    string    `gorm:"type:varchar(512);not null" json:"-"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
