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

type LicenseHandler struct {
	licenseService service.LicenseService
	permissions    service.PermissionService
}

func NewLicenseHandler(licenseService service.LicenseService, permissions service.PermissionService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService, permissions: permissions}
}

func (h *LicenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	licenses := router.Group("/api/licenses")
	{
		licenses.GET("", middleware.RequirePermission(h.permissions, "licenses", service.ActionView), h.ListLicenses)
		licenses.POST("", middleware.RequirePermission(h.permissions, "licenses", service.ActionCreate), h.CreateLicense)
		licenses.GET("/export", middleware.RequirePermission(h.permissions, "licenses", service.ActionExport), h.ExportLicenses)
		licenses.GET("/:id", middleware.RequirePermission(h.permissions, "licenses", service.ActionView), h.GetLicense)
		licenses.PUT("/:id", middleware.RequirePermission(h.permissions, "licenses", service.ActionEdit), h.UpdateLicense)
		licenses.DELETE("/:id", middleware.RequirePermission(h.permissions, "licenses", service.ActionDelete), h.DeleteLicense)
	}
}

// ListLicenses returns paginated licenses with masked secrets
// @Summary      List licenses
// @Tags         licenses
// @Security     BearerAuth
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/licenses [get]
func (h *LicenseHandler) ListLicenses(c *gin.Context) {
	p := pagination.Parse(c)

	licenses, total, err := h.licenseService.GetLicenses(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, licenses, p.Page, p.Limit, total))
}

// CreateLicense creates a new license, encrypting its key and password
// @Summary      Create license
// @Tags         licenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateLicenseRequest  true  "License payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/licenses [post]
func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	var req service.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	license, err := h.licenseService.CreateLicense(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, license))
}

// GetLicense returns a single license with decrypted secrets
// @Summary      Get license
// @Tags         licenses
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "License ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/licenses/{id} [get]
func (h *LicenseHandler) GetLicense(c *gin.Context) {
	license, err := h.licenseService.GetLicense(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, license))
}

// UpdateLicense updates an existing license
// @Summary      Update license
// @Tags         licenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "License ID"
// @Param        payload  body  service.UpdateLicenseRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/licenses/{id} [put]
func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	var req service.UpdateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	license, err := h.licenseService.UpdateLicense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, license))
}

// DeleteLicense deletes a license
// @Summary      Delete license
// @Tags         licenses
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "License ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/licenses/{id} [delete]
func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	if err := h.licenseService.DeleteLicense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "License deleted successfully"}))
}

// ExportLicenses downloads all licenses as a spreadsheet, secrets masked
// @Summary      Export licenses
// @Tags         licenses
// @Security     BearerAuth
// @Produce      application/octet-stream
// @Param        format  query  string  false  "Export format: xlsx or csv (default: xlsx)"
// @Success      200  {file}  file
// @Router       /api/licenses/export [get]
func (h *LicenseHandler) ExportLicenses(c *gin.Context) {
	headers, rows, err := h.licenseService.ExportRows(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		if err := export.WriteCSV(c.Writer, "licenses.csv", headers, rows); err != nil {
			logrus.WithError(err).Error("failed to write license CSV export")
		}
	case "xlsx":
		if err := export.WriteExcel(c.Writer, "Licenses", headers, rows); err != nil {
			logrus.WithError(err).Error("failed to write license Excel export")
		}
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "unsupported export format, use xlsx or csv"))
	}
}
