package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrForbidden is returned when the acting employee is not allowed to touch
// the target record. Handlers translate it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// Websocket event names published on ticket activity.
const (
	EventTicketCreated = "ticket_created"
	EventTicketUpdated = "ticket_updated"
	EventTicketDeleted = "ticket_deleted"
	EventTicketMessage = "ticket_message"
)

// EventPublisher pushes ticket events to connected websocket clients.
type EventPublisher interface {
	Publish(event string, data interface{})
}

// --- DTOs ---

type CreateTicketRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	SLA         string  `json:"sla"`
	AssignedTo  *string `json:"assigned_to"`
}

type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	SLA         *string `json:"sla"`         // empty string clears the SLA
	AssignedTo  *string `json:"assigned_to"` // empty string unassigns
}

// TicketListFilter narrows GetTickets. Zero values mean "no filter".
type TicketListFilter struct {
	Status     string
	Priority   string
	SLA        string
	AssignedTo string
	CreatedBy  string
	Search     string
}

type CreateTicketMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

type UpdateTicketMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// AttachmentUpload carries an incoming multipart file into the service.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

type TicketResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	SLA          string     `json:"sla"`
	AssignedTo   *uuid.UUID `json:"assigned_to"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatorName  string     `json:"creator_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type TicketMessageResponse struct {
	ID         uuid.UUID  `json:"id"`
	TicketID   uuid.UUID  `json:"ticket_id"`
	EmployeeID uuid.UUID  `json:"employee_id"`
	AuthorName string     `json:"author_name,omitempty"`
	Body       string     `json:"body"`
	EditedAt   *time.Time `json:"edited_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

type TicketAttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	TicketID    uuid.UUID `json:"ticket_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Interface ---

// TicketService manages tickets, their message threads and attachments.
// Mutations take the acting employee so row-level rules can be enforced:
// updates are open to the creator, the assignee, or holders of admin actions
// on the tickets module; deletes to the creator or admins.
type TicketService interface {
	CreateTicket(ctx context.Context, actor *model.Employee, req CreateTicketRequest) (TicketResponse, error)
	GetTicket(ctx context.Context, id string) (TicketResponse, error)
	GetTickets(ctx context.Context, filter TicketListFilter, page, limit int) ([]TicketResponse, int64, error)
	UpdateTicket(ctx context.Context, actor *model.Employee, id string, req UpdateTicketRequest) (TicketResponse, error)
	DeleteTicket(ctx context.Context, actor *model.Employee, id string) error

	GetTicketMessages(ctx context.Context, ticketID string) ([]TicketMessageResponse, error)
	AddTicketMessage(ctx context.Context, actor *model.Employee, ticketID string, req CreateTicketMessageRequest) (TicketMessageResponse, error)
	UpdateTicketMessage(ctx context.Context, actor *model.Employee, ticketID, messageID string, req UpdateTicketMessageRequest) (TicketMessageResponse, error)
	DeleteTicketMessage(ctx context.Context, actor *model.Employee, ticketID, messageID string) error

	GetTicketAttachments(ctx context.Context, ticketID string) ([]TicketAttachmentResponse, error)
	AddTicketAttachment(ctx context.Context, actor *model.Employee, ticketID string, upload AttachmentUpload) (TicketAttachmentResponse, error)
	GetTicketAttachmentFile(ctx context.Context, ticketID, attachmentID string) (FileDownload, error)
	DeleteTicketAttachment(ctx context.Context, actor *model.Employee, ticketID, attachmentID string) error
}

// --- Implementation ---

type ticketService struct {
	ticketRepo    repository.TicketRepository
	employeeRepo  repository.EmployeeRepository
	permissionSvc PermissionService
	events        EventPublisher
	uploadDir     string
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	employeeRepo repository.EmployeeRepository,
	permissionSvc PermissionService,
	events EventPublisher,
	uploadDir string,
) TicketService {
	return &ticketService{
		ticketRepo:    ticketRepo,
		employeeRepo:  employeeRepo,
		permissionSvc: permissionSvc,
		events:        events,
		uploadDir:     uploadDir,
	}
}

// --- Validation helpers ---

var validTicketStatuses = func() map[string]bool {
	m := make(map[string]bool, len(model.TicketStatuses))
	for _, s := range model.TicketStatuses {
		m[s] = true
	}
	return m
}()

var validTicketPriorities = func() map[string]bool {
	m := make(map[string]bool, len(model.TicketPriorities))
	for _, p := range model.TicketPriorities {
		m[p] = true
	}
	return m
}()

var validTicketSLAs = func() map[string]bool {
	m := make(map[string]bool, len(model.TicketSLAs))
	for _, s := range model.TicketSLAs {
		m[s] = true
	}
	return m
}()

func ticketStatusHint() string {
	return "status must be one of: " + strings.Join(model.TicketStatuses, ", ")
}

func ticketPriorityHint() string {
	return "priority must be one of: " + strings.Join(model.TicketPriorities, ", ")
}

func ticketSLAHint() string {
	return "sla must be one of: " + strings.Join(model.TicketSLAs, ", ")
}

func (s *ticketService) isTicketAdmin(ctx context.Context, actor *model.Employee) bool {
	if actor == nil {
		return false
	}
	ok, err := s.permissionSvc.HasPermission(ctx, actor, "tickets", ActionAdminActions)
	return err == nil && ok
}

func (s *ticketService) findTicket(ctx context.Context, id string) (*model.Ticket, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID")
	}
	ticket, err := s.ticketRepo.GetByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("ticket not found: %w", err)
	}
	return ticket, nil
}

// resolveAssignee validates an assignment target. An empty string means
// "unassigned" and returns nil.
func (s *ticketService) resolveAssignee(ctx context.Context, raw string) (*model.Employee, error) {
	if raw == "" {
		return nil, nil
	}
	eid, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid assigned employee ID")
	}
	employee, err := s.employeeRepo.GetByID(ctx, eid)
	if err != nil {
		return nil, fmt.Errorf("assigned employee not found: %w", err)
	}
	return employee, nil
}

func (s *ticketService) publish(event string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(event, data)
}

// --- Ticket operations ---

func (s *ticketService) CreateTicket(ctx context.Context, actor *model.Employee, req CreateTicketRequest) (TicketResponse, error) {
	if actor == nil {
		return TicketResponse{}, fmt.Errorf("acting employee is required")
	}

	status := req.Status
	if status == "" {
		status = model.TicketStatusTodo
	}
	if !validTicketStatuses[status] {
		return TicketResponse{}, fmt.Errorf(ticketStatusHint())
	}

	priority := req.Priority
	if priority == "" {
		priority = model.TicketPriorityNormal
	}
	if !validTicketPriorities[priority] {
		return TicketResponse{}, fmt.Errorf(ticketPriorityHint())
	}

	if req.SLA != "" && !validTicketSLAs[req.SLA] {
		return TicketResponse{}, fmt.Errorf(ticketSLAHint())
	}

	ticket := &model.Ticket{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		SLA:         req.SLA,
		CreatedBy:   actor.ID,
	}

	if req.AssignedTo != nil {
		assignee, err := s.resolveAssignee(ctx, *req.AssignedTo)
		if err != nil {
			return TicketResponse{}, err
		}
		if assignee != nil {
			ticket.AssignedTo = &assignee.ID
			ticket.Assignee = assignee
		}
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return TicketResponse{}, fmt.Errorf("failed to create ticket: %w", err)
	}
	ticket.Creator = actor

	resp := toTicketResponse(*ticket)
	s.publish(EventTicketCreated, resp)
	return resp, nil
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (TicketResponse, error) {
	ticket, err := s.findTicket(ctx, id)
	if err != nil {
		return TicketResponse{}, err
	}
	return toTicketResponse(*ticket), nil
}

func (s *ticketService) GetTickets(ctx context.Context, filter TicketListFilter, page, limit int) ([]TicketResponse, int64, error) {
	if filter.Status != "" && !validTicketStatuses[filter.Status] {
		return nil, 0, fmt.Errorf(ticketStatusHint())
	}
	if filter.Priority != "" && !validTicketPriorities[filter.Priority] {
		return nil, 0, fmt.Errorf(ticketPriorityHint())
	}
	if filter.SLA != "" && !validTicketSLAs[filter.SLA] {
		return nil, 0, fmt.Errorf(ticketSLAHint())
	}

	repoFilter := repository.TicketFilter{
		Status:   filter.Status,
		Priority: filter.Priority,
		SLA:      filter.SLA,
		Search:   filter.Search,
	}
	if filter.AssignedTo != "" {
		eid, err := uuid.Parse(filter.AssignedTo)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid assigned_to filter")
		}
		repoFilter.AssignedTo = &eid
	}
	if filter.CreatedBy != "" {
		eid, err := uuid.Parse(filter.CreatedBy)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid created_by filter")
		}
		repoFilter.CreatedBy = &eid
	}

	tickets, total, err := s.ticketRepo.List(ctx, repoFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	responses := make([]TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, toTicketResponse(ticket))
	}
	return responses, total, nil
}

// canModifyTicket reports whether the actor may update the ticket. Deletion
// is stricter and handled separately.
func (s *ticketService) canModifyTicket(ctx context.Context, actor *model.Employee, ticket *model.Ticket) bool {
	if actor == nil {
		return false
	}
	if ticket.CreatedBy == actor.ID {
		return true
	}
	if ticket.AssignedTo != nil && *ticket.AssignedTo == actor.ID {
		return true
	}
	return s.isTicketAdmin(ctx, actor)
}

func (s *ticketService) UpdateTicket(ctx context.Context, actor *model.Employee, id string, req UpdateTicketRequest) (TicketResponse, error) {
	ticket, err := s.findTicket(ctx, id)
	if err != nil {
		return TicketResponse{}, err
	}
	if !s.canModifyTicket(ctx, actor, ticket) {
		return TicketResponse{}, fmt.Errorf("only the creator, the assignee or a tickets admin can update this ticket: %w", ErrForbidden)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return TicketResponse{}, fmt.Errorf("title cannot be empty")
		}
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Status != nil {
		if !validTicketStatuses[*req.Status] {
			return TicketResponse{}, fmt.Errorf(ticketStatusHint())
		}
		ticket.Status = *req.Status
	}
	if req.Priority != nil {
		if !validTicketPriorities[*req.Priority] {
			return TicketResponse{}, fmt.Errorf(ticketPriorityHint())
		}
		ticket.Priority = *req.Priority
	}
	if req.SLA != nil {
		if *req.SLA != "" && !validTicketSLAs[*req.SLA] {
			return TicketResponse{}, fmt.Errorf(ticketSLAHint())
		}
		ticket.SLA = *req.SLA
	}
	if req.AssignedTo != nil {
		assignee, err := s.resolveAssignee(ctx, *req.AssignedTo)
		if err != nil {
			return TicketResponse{}, err
		}
		if assignee != nil {
			ticket.AssignedTo = &assignee.ID
			ticket.Assignee = assignee
		} else {
			ticket.AssignedTo = nil
			ticket.Assignee = nil
		}
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return TicketResponse{}, fmt.Errorf("failed to update ticket: %w", err)
	}

	resp := toTicketResponse(*ticket)
	s.publish(EventTicketUpdated, resp)
	return resp, nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, actor *model.Employee, id string) error {
	ticket, err := s.findTicket(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || (ticket.CreatedBy != actor.ID && !s.isTicketAdmin(ctx, actor)) {
		return fmt.Errorf("only the creator or a tickets admin can delete this ticket: %w", ErrForbidden)
	}

	attachments, err := s.ticketRepo.ListAttachments(ctx, ticket.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch ticket attachments: %w", err)
	}

	if err := s.ticketRepo.Delete(ctx, ticket.ID); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	// Stored files are cleaned up after the row delete so a failed delete
	// never leaves attachment records pointing at nothing.
	for _, attachment := range attachments {
		if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove attachment file: %w", err)
		}
	}

	s.publish(EventTicketDeleted, toTicketResponse(*ticket))
	return nil
}

// --- Message operations ---

func (s *ticketService) GetTicketMessages(ctx context.Context, ticketID string) ([]TicketMessageResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	messages, err := s.ticketRepo.ListMessages(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket messages: %w", err)
	}

	responses := make([]TicketMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, toTicketMessageResponse(message))
	}
	return responses, nil
}

func (s *ticketService) AddTicketMessage(ctx context.Context, actor *model.Employee, ticketID string, req CreateTicketMessageRequest) (TicketMessageResponse, error) {
	if actor == nil {
		return TicketMessageResponse{}, fmt.Errorf("acting employee is required")
	}
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return TicketMessageResponse{}, err
	}

	message := &model.TicketMessage{
		TicketID:   ticket.ID,
		EmployeeID: actor.ID,
		Body:       req.Body,
	}
	if err := s.ticketRepo.CreateMessage(ctx, message); err != nil {
		return TicketMessageResponse{}, fmt.Errorf("failed to create ticket message: %w", err)
	}
	message.Author = actor

	resp := toTicketMessageResponse(*message)
	s.publish(EventTicketMessage, resp)
	return resp, nil
}

// findMessage loads a message and checks it belongs to the ticket in the
// URL, so a message cannot be edited through another ticket's route.
func (s *ticketService) findMessage(ctx context.Context, ticketID, messageID string) (*model.TicketMessage, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	mid, err := uuid.Parse(messageID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID")
	}
	message, err := s.ticketRepo.GetMessageByID(ctx, mid)
	if err != nil {
		return nil, fmt.Errorf("ticket message not found: %w", err)
	}
	if message.TicketID != ticket.ID {
		return nil, fmt.Errorf("ticket message not found: %w", gorm.ErrRecordNotFound)
	}
	return message, nil
}

func (s *ticketService) UpdateTicketMessage(ctx context.Context, actor *model.Employee, ticketID, messageID string, req UpdateTicketMessageRequest) (TicketMessageResponse, error) {
	message, err := s.findMessage(ctx, ticketID, messageID)
	if err != nil {
		return TicketMessageResponse{}, err
	}
	if actor == nil || (message.EmployeeID != actor.ID && !s.isTicketAdmin(ctx, actor)) {
		return TicketMessageResponse{}, fmt.Errorf("only the author or a tickets admin can edit this message: %w", ErrForbidden)
	}

	now := time.Now().UTC()
	message.Body = req.Body
	message.EditedAt = &now

	if err := s.ticketRepo.UpdateMessage(ctx, message); err != nil {
		return TicketMessageResponse{}, fmt.Errorf("failed to update ticket message: %w", err)
	}
	return toTicketMessageResponse(*message), nil
}

func (s *ticketService) DeleteTicketMessage(ctx context.Context, actor *model.Employee, ticketID, messageID string) error {
	message, err := s.findMessage(ctx, ticketID, messageID)
	if err != nil {
		return err
	}
	if actor == nil || (message.EmployeeID != actor.ID && !s.isTicketAdmin(ctx, actor)) {
		return fmt.Errorf("only the author or a tickets admin can delete this message: %w", ErrForbidden)
	}

	if err := s.ticketRepo.DeleteMessage(ctx, message.ID); err != nil {
		return fmt.Errorf("failed to delete ticket message: %w", err)
	}
	return nil
}

// --- Attachment operations ---

func (s *ticketService) GetTicketAttachments(ctx context.Context, ticketID string) ([]TicketAttachmentResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.ticketRepo.ListAttachments(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket attachments: %w", err)
	}

	responses := make([]TicketAttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, toTicketAttachmentResponse(attachment))
	}
	return responses, nil
}

func (s *ticketService) AddTicketAttachment(ctx context.Context, actor *model.Employee, ticketID string, upload AttachmentUpload) (TicketAttachmentResponse, error) {
	if actor == nil {
		return TicketAttachmentResponse{}, fmt.Errorf("acting employee is required")
	}
	if upload.FileName == "" {
		return TicketAttachmentResponse{}, fmt.Errorf("file name is required")
	}
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return TicketAttachmentResponse{}, err
	}

	dir := filepath.Join(s.uploadDir, "tickets", ticket.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return TicketAttachmentResponse{}, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	storedPath := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(storedPath)
	if err != nil {
		return TicketAttachmentResponse{}, fmt.Errorf("failed to store file: %w", err)
	}
	size, err := io.Copy(dst, upload.Content)
	if err != nil {
		dst.Close()
		os.Remove(storedPath)
		return TicketAttachmentResponse{}, fmt.Errorf("failed to store file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(storedPath)
		return TicketAttachmentResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	attachment := &model.TicketAttachment{
		TicketID:    ticket.ID,
		FileName:    filepath.Base(upload.FileName),
		FilePath:    storedPath,
		ContentType: upload.ContentType,
		SizeBytes:   size,
		UploadedBy:  actor.ID,
	}
	if err := s.ticketRepo.CreateAttachment(ctx, attachment); err != nil {
		os.Remove(storedPath)
		return TicketAttachmentResponse{}, fmt.Errorf("failed to create ticket attachment: %w", err)
	}
	return toTicketAttachmentResponse(*attachment), nil
}

// findAttachment mirrors findMessage: the attachment must belong to the
// ticket named in the URL.
func (s *ticketService) findAttachment(ctx context.Context, ticketID, attachmentID string) (*model.TicketAttachment, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	aid, err := uuid.Parse(attachmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid attachment ID")
	}
	attachment, err := s.ticketRepo.GetAttachmentByID(ctx, aid)
	if err != nil {
		return nil, fmt.Errorf("ticket attachment not found: %w", err)
	}
	if attachment.TicketID != ticket.ID {
		return nil, fmt.Errorf("ticket attachment not found: %w", gorm.ErrRecordNotFound)
	}
	return attachment, nil
}

func (s *ticketService) GetTicketAttachmentFile(ctx context.Context, ticketID, attachmentID string) (FileDownload, error) {
	attachment, err := s.findAttachment(ctx, ticketID, attachmentID)
	if err != nil {
		return FileDownload{}, err
	}
	return FileDownload{
		Path:        attachment.FilePath,
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
	}, nil
}

func (s *ticketService) DeleteTicketAttachment(ctx context.Context, actor *model.Employee, ticketID, attachmentID string) error {
	attachment, err := s.findAttachment(ctx, ticketID, attachmentID)
	if err != nil {
		return err
	}
	if !s.isTicketAdmin(ctx, actor) {
		return fmt.Errorf("only a tickets admin can delete attachments: %w", ErrForbidden)
	}

	if err := s.ticketRepo.DeleteAttachment(ctx, attachment.ID); err != nil {
		return fmt.Errorf("failed to delete ticket attachment: %w", err)
	}
	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment file: %w", err)
	}
	return nil
}

// --- Response mappers ---

func toTicketResponse(ticket model.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		SLA:         ticket.SLA,
		AssignedTo:  ticket.AssignedTo,
		CreatedBy:   ticket.CreatedBy,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
	if ticket.Assignee != nil {
		resp.AssigneeName = ticket.Assignee.DisplayName
	}
	if ticket.Creator != nil {
		resp.CreatorName = ticket.Creator.DisplayName
	}
	return resp
}

func toTicketMessageResponse(message model.TicketMessage) TicketMessageResponse {
	resp := TicketMessageResponse{
		ID:         message.ID,
		TicketID:   message.TicketID,
		EmployeeID: message.EmployeeID,
		Body:       message.Body,
		EditedAt:   message.EditedAt,
		CreatedAt:  message.CreatedAt,
	}
	if message.Author != nil {
		resp.AuthorName = message.Author.DisplayName
	}
	return resp
}

func toTicketAttachmentResponse(attachment model.TicketAttachment) TicketAttachmentResponse {
	return TicketAttachmentResponse{
		ID:          attachment.ID,
		TicketID:    attachment.TicketID,
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		UploadedBy:  attachment.UploadedBy,
		CreatedAt:   attachment.CreatedAt,
	}
}
