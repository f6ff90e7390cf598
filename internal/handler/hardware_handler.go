package handler

import (
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/service"
	"primefire/pkg/export"
	"primefire/pkg/pagination"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HardwareHandler struct {
	hardwareService service.HardwareService
	permissions     service.PermissionService
}

func NewHardwareHandler(hardwareService service.HardwareService, permissions service.PermissionService) *HardwareHandler {
	return &HardwareHandler{hardwareService: hardwareService, permissions: permissions}
}

func (h *HardwareHandler) RegisterRoutes(router *gin.RouterGroup) {
	hardware := router.Group("/api/hardware")
	{
		hardware.GET("", middleware.RequirePermission(h.permissions, "hardware", service.ActionView), h.ListHardware)
		hardware.POST("", middleware.RequirePermission(h.permissions, "hardware", service.ActionCreate), h.CreateHardware)
		hardware.GET("/export", middleware.RequirePermission(h.permissions, "hardware", service.ActionExport), h.ExportHardware)
		hardware.GET("/:id", middleware.RequirePermission(h.permissions, "hardware", service.ActionView), h.GetHardware)
		hardware.PUT("/:id", middleware.RequirePermission(h.permissions, "hardware", service.ActionEdit), h.UpdateHardware)
		hardware.DELETE("/:id", middleware.RequirePermission(h.permissions, "hardware", service.ActionDelete), h.DeleteHardware)
	}
}

// ListHardware returns paginated hardware assets with optional filters
// @Summary      List hardware
// @Tags         hardware
// @Security     BearerAuth
// @Produce      json
// @Param        page         query  int     false  "Page number (default: 1)"
// @Param        limit        query  int     false  "Items per page (default: 20)"
// @Param        status       query  string  false  "Filter by status"
// @Param        device_type  query  string  false  "Filter by device type"
// @Param        employee_id  query  string  false  "Filter by assigned employee"
// @Success      200  {object}  response.Response
// @Router       /api/hardware [get]
func (h *HardwareHandler) ListHardware(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.HardwareListFilter{
		Status:     c.Query("status"),
		DeviceType: c.Query("device_type"),
		EmployeeID: c.Query("employee_id"),
	}

	assets, total, err := h.hardwareService.GetHardwareList(c.Request.Context(), filter, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, assets, p.Page, p.Limit, total))
}

// CreateHardware registers a new hardware asset
// @Summary      Create hardware
// @Tags         hardware
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateHardwareRequest  true  "Hardware payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/hardware [post]
func (h *HardwareHandler) CreateHardware(c *gin.Context) {
	var req service.CreateHardwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	asset, err := h.hardwareService.CreateHardware(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, asset))
}

// GetHardware returns a single hardware asset by ID
// @Summary      Get hardware
// @Tags         hardware
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Hardware ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/hardware/{id} [get]
func (h *HardwareHandler) GetHardware(c *gin.Context) {
	asset, err := h.hardwareService.GetHardware(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// UpdateHardware updates a hardware asset
// @Summary      Update hardware
// @Tags         hardware
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Hardware ID"
// @Param        payload  body  service.UpdateHardwareRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/hardware/{id} [put]
func (h *HardwareHandler) UpdateHardware(c *gin.Context) {
	var req service.UpdateHardwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	asset, err := h.hardwareService.UpdateHardware(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// DeleteHardware deletes a hardware asset
// @Summary      Delete hardware
// @Tags         hardware
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Hardware ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/hardware/{id} [delete]
func (h *HardwareHandler) DeleteHardware(c *gin.Context) {
	if err := h.hardwareService.DeleteHardware(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Hardware deleted successfully"}))
}

// ExportHardware downloads all hardware assets as a spreadsheet
// @Summary      Export hardware
// @Tags         hardware
// @Security     BearerAuth
// @Produce      application/octet-stream
// @Param        format  query  string  false  "Export format: xlsx or csv (default: xlsx)"
// @Success      200  {file}  file
// @Router       /api/hardware/export [get]
func (h *HardwareHandler) ExportHardware(c *gin.Context) {
	headers, rows, err := h.hardwareService.ExportRows(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		if err := export.WriteCSV(c.Writer, "hardware.csv", headers, rows); err != nil {
			logrus.WithError(err).Error("failed to write hardware CSV export")
		}
	case "xlsx":
		if err := export.WriteExcel(c.Writer, "Hardware", headers, rows); err != nil {
			logrus.WithError(err).Error("failed to write hardware Excel export")
		}
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "unsupported export format, use xlsx or csv"))
	}
}
