package handler

import (
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/service"
	"primefire/pkg/pagination"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService service.TicketService
	permissions   service.PermissionService
}

func NewTicketHandler(ticketService service.TicketService, permissions service.PermissionService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, permissions: permissions}
}

// Mutations on existing tickets, messages and attachments are guarded by
// ownership rules in the service layer, so those routes only need view
// access here.
func (h *TicketHandler) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/api/tickets")
	tickets.Use(middleware.RequirePermission(h.permissions, "tickets", service.ActionView))
	{
		tickets.GET("", h.ListTickets)
		tickets.POST("", h.CreateTicket)
		tickets.GET("/:id", h.GetTicket)
		tickets.PUT("/:id", h.UpdateTicket)
		tickets.DELETE("/:id", h.DeleteTicket)

		tickets.GET("/:id/messages", h.ListTicketMessages)
		tickets.POST("/:id/messages", h.AddTicketMessage)
		tickets.PUT("/:id/messages/:messageId", h.UpdateTicketMessage)
		tickets.DELETE("/:id/messages/:messageId", h.DeleteTicketMessage)

		tickets.GET("/:id/attachments", h.ListTicketAttachments)
		tickets.POST("/:id/attachments", h.AddTicketAttachment)
		tickets.GET("/:id/attachments/:attachmentId/download", h.DownloadTicketAttachment)
		tickets.DELETE("/:id/attachments/:attachmentId", h.DeleteTicketAttachment)
	}
}

// ListTickets returns paginated tickets with optional filters
// @Summary      List tickets
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        page         query  int     false  "Page number (default: 1)"
// @Param        limit        query  int     false  "Items per page (default: 20)"
// @Param        status       query  string  false  "Filter by status: todo, in_progress, done, closed"
// @Param        priority     query  string  false  "Filter by priority: low, normal, high, urgent"
// @Param        sla          query  string  false  "Filter by SLA"
// @Param        assigned_to  query  string  false  "Filter by assignee employee ID"
// @Param        created_by   query  string  false  "Filter by creator employee ID"
// @Param        search       query  string  false  "Search in title and description"
// @Success      200  {object}  response.Response
// @Router       /api/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.TicketListFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		SLA:        c.Query("sla"),
		AssignedTo: c.Query("assigned_to"),
		CreatedBy:  c.Query("created_by"),
		Search:     c.Query("search"),
	}

	tickets, total, err := h.ticketService.GetTickets(c.Request.Context(), filter, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, tickets, p.Page, p.Limit, total))
}

// CreateTicket opens a new ticket for the calling employee
// @Summary      Create ticket
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTicketRequest  true  "Ticket payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	var req service.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), employee, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, ticket))
}

// GetTicket returns a single ticket by ID
// @Summary      Get ticket
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ticket ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ticket))
}

// UpdateTicket updates a ticket; only the creator, the assignee or a
// tickets admin may do so
// @Summary      Update ticket
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Ticket ID"
// @Param        payload  body  service.UpdateTicketRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	var req service.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), employee, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ticket))
}

// DeleteTicket deletes a ticket; only the creator or a tickets admin may
// do so
// @Summary      Delete ticket
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ticket ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	if err := h.ticketService.DeleteTicket(c.Request.Context(), employee, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Ticket deleted successfully"}))
}

// ListTicketMessages returns a ticket's messages, oldest first
// @Summary      List ticket messages
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ticket ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id}/messages [get]
func (h *TicketHandler) ListTicketMessages(c *gin.Context) {
	messages, err := h.ticketService.GetTicketMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, messages))
}

// AddTicketMessage posts a message on a ticket as the calling employee
// @Summary      Add ticket message
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                              true  "Ticket ID"
// @Param        payload  body  service.CreateTicketMessageRequest  true  "Message payload"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id}/messages [post]
func (h *TicketHandler) AddTicketMessage(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	var req service.CreateTicketMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	message, err := h.ticketService.AddTicketMessage(c.Request.Context(), employee, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, message))
}

// UpdateTicketMessage edits a message; only the author or a tickets admin
// may do so
// @Summary      Update ticket message
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id         path  string                              true  "Ticket ID"
// @Param        messageId  path  string                              true  "Message ID"
// @Param        payload    body  service.UpdateTicketMessageRequest  true  "Message payload"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/tickets/{id}/messages/{messageId} [put]
func (h *TicketHandler) UpdateTicketMessage(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	var req service.UpdateTicketMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	message, err := h.ticketService.UpdateTicketMessage(c.Request.Context(), employee, c.Param("id"), c.Param("messageId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, message))
}

// DeleteTicketMessage removes a message; only the author or a tickets
// admin may do so
// @Summary      Delete ticket message
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id         path  string  true  "Ticket ID"
// @Param        messageId  path  string  true  "Message ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/tickets/{id}/messages/{messageId} [delete]
func (h *TicketHandler) DeleteTicketMessage(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	if err := h.ticketService.DeleteTicketMessage(c.Request.Context(), employee, c.Param("id"), c.Param("messageId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Message deleted successfully"}))
}

// ListTicketAttachments returns a ticket's attachments
// @Summary      List ticket attachments
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ticket ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id}/attachments [get]
func (h *TicketHandler) ListTicketAttachments(c *gin.Context) {
	attachments, err := h.ticketService.GetTicketAttachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, attachments))
}

// AddTicketAttachment uploads a file onto a ticket
// @Summary      Add ticket attachment
// @Tags         tickets
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Ticket ID"
// @Param        file  formData  file    true  "Attachment file"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id}/attachments [post]
func (h *TicketHandler) AddTicketAttachment(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBindingError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	defer file.Close()

	upload := service.AttachmentUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	}
	attachment, err := h.ticketService.AddTicketAttachment(c.Request.Context(), employee, c.Param("id"), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, attachment))
}

// DownloadTicketAttachment streams a stored attachment
// @Summary      Download ticket attachment
// @Tags         tickets
// @Security     BearerAuth
// @Produce      application/octet-stream
// @Param        id            path  string  true  "Ticket ID"
// @Param        attachmentId  path  string  true  "Attachment ID"
// @Success      200  {file}  file
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id}/attachments/{attachmentId}/download [get]
func (h *TicketHandler) DownloadTicketAttachment(c *gin.Context) {
	download, err := h.ticketService.GetTicketAttachmentFile(c.Request.Context(), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(download.Path, download.FileName)
}

// DeleteTicketAttachment removes an attachment; tickets admins only
// @Summary      Delete ticket attachment
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id            path  string  true  "Ticket ID"
// @Param        attachmentId  path  string  true  "Attachment ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/tickets/{id}/attachments/{attachmentId} [delete]
func (h *TicketHandler) DeleteTicketAttachment(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	if err := h.ticketService.DeleteTicketAttachment(c.Request.Context(), employee, c.Param("id"), c.Param("attachmentId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Attachment deleted successfully"}))
}
