package repository

import (
	"context"

	"primefire/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	Status     string
	Priority   string
	SLA        string
	AssignedTo *uuid.UUID
	CreatedBy  *uuid.UUID
	Search     string // matches title or description, case-insensitive
}

// TicketRepository defines the interface for data access of tickets, their
// messages and attachments.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, filter TicketFilter, page, limit int) ([]model.Ticket, int64, error)
	Update(ctx context.Context, ticket *model.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateMessage(ctx context.Context, message *model.TicketMessage) error
	GetMessageByID(ctx context.Context, id uuid.UUID) (*model.TicketMessage, error)
	ListMessages(ctx context.Context, ticketID uuid.UUID) ([]model.TicketMessage, error)
	UpdateMessage(ctx context.Context, message *model.TicketMessage) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error

	CreateAttachment(ctx context.Context, attachment *model.TicketAttachment) error
	GetAttachmentByID(ctx context.Context, id uuid.UUID) (*model.TicketAttachment, error)
	ListAttachments(ctx context.Context, ticketID uuid.UUID) ([]model.TicketAttachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository returns a new instance of TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := GetDB(ctx, r.db).
		Preload("Assignee").
		Preload("Creator").
		First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter, page, limit int) ([]model.Ticket, int64, error) {
	var tickets []model.Ticket
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Ticket{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.SLA != "" {
		query = query.Where("sla = ?", filter.SLA)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Assignee").
		Preload("Creator").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tickets).Error; err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Ticket{}).Error
}

func (r *ticketRepository) CreateMessage(ctx context.Context, message *model.TicketMessage) error {
	return GetDB(ctx, r.db).Create(message).Error
}

func (r *ticketRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*model.TicketMessage, error) {
	var message model.TicketMessage
	if err := GetDB(ctx, r.db).
		Preload("Author").
		First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ticketRepository) ListMessages(ctx context.Context, ticketID uuid.UUID) ([]model.TicketMessage, error) {
	var messages []model.TicketMessage
	if err := GetDB(ctx, r.db).
		Preload("Author").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ticketRepository) UpdateMessage(ctx context.Context, message *model.TicketMessage) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(message).Error
}

func (r *ticketRepository) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TicketMessage{}).Error
}

func (r *ticketRepository) CreateAttachment(ctx context.Context, attachment *model.TicketAttachment) error {
	return GetDB(ctx, r.db).Create(attachment).Error
}

func (r *ticketRepository) GetAttachmentByID(ctx context.Context, id uuid.UUID) (*model.TicketAttachment, error) {
	var attachment model.TicketAttachment
	if err := GetDB(ctx, r.db).First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *ticketRepository) ListAttachments(ctx context.Context, ticketID uuid.UUID) ([]model.TicketAttachment, error) {
	var attachments []model.TicketAttachment
	if err := GetDB(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *ticketRepository) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TicketAttachment{}).Error
}
