package handler

import (
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/model"
	"primefire/internal/service"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

func (h *PermissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	perms := router.Group("/api/permissions")

	// Self-service routes, any authenticated employee.
	perms.GET("/me", h.GetMyPermissions)
	perms.GET("/check/:moduleKey/:action", h.CheckPermission)

	admin := perms.Group("")
	admin.Use(middleware.RequirePermission(h.permissionService, "permissions", service.ActionAdminActions))
	{
		admin.GET("", h.ListPermissions)
		admin.POST("", h.CreatePermission)
		admin.GET("/role/:roleId", h.ListPermissionsByRole)
		admin.GET("/module/:moduleId", h.ListPermissionsByModule)
		admin.PUT("/bulk-update", h.BulkUpdatePermissions)
		admin.GET("/:roleId/:moduleId", h.GetPermission)
		admin.PUT("/:roleId/:moduleId", h.UpdatePermission)
		admin.DELETE("/:roleId/:moduleId", h.DeletePermission)
	}
}

type employeeSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
}

type myPermissionsPayload struct {
	Employee          employeeSummary               `json:"employee"`
	Roles             []model.Role                  `json:"roles"`
	Permissions       []service.EffectivePermission `json:"permissions"`
	AccessibleModules []service.AccessibleModule    `json:"accessible_modules"`
}

// GetMyPermissions returns the calling employee's aggregated permissions
// together with the viewable-module list the UI builds its navigation from.
func (h *PermissionHandler) GetMyPermissions(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	effective, err := h.permissionService.EffectivePermissions(c.Request.Context(), employee)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, myPermissionsPayload{
		Employee: employeeSummary{
			ID:          employee.ID,
			DisplayName: employee.DisplayName,
			Email:       employee.Email,
		},
		Roles:             employee.Roles,
		Permissions:       effective,
		AccessibleModules: service.AccessibleModulesFrom(effective),
	}))
}

// CheckPermission reports whether the calling employee may perform an action
func (h *PermissionHandler) CheckPermission(c *gin.Context) {
	employee, ok := currentEmployee(c)
	if !ok {
		return
	}

	allowed, err := h.permissionService.HasPermission(c.Request.Context(), employee, c.Param("moduleKey"), c.Param("action"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"allowed": allowed}))
}

// ListPermissions returns every role-module permission row
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	rows, err := h.permissionService.GetPermissions(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ListPermissionsByRole returns a role's permission rows
func (h *PermissionHandler) ListPermissionsByRole(c *gin.Context) {
	rows, err := h.permissionService.GetPermissionsByRole(c.Request.Context(), c.Param("roleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ListPermissionsByModule returns a module's permission rows
func (h *PermissionHandler) ListPermissionsByModule(c *gin.Context) {
	rows, err := h.permissionService.GetPermissionsByModule(c.Request.Context(), c.Param("moduleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetPermission returns one role-module permission row
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	row, err := h.permissionService.GetPermission(c.Request.Context(), c.Param("roleId"), c.Param("moduleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, row))
}

// CreatePermission grants a role access to a module
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req service.UpsertPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	row, err := h.permissionService.CreatePermission(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, row))
}

// UpdatePermission changes the flags on an existing role-module pair
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	var flags service.PermissionFlagOverrides
	if err := c.ShouldBindJSON(&flags); err != nil {
		respondBindingError(c, err)
		return
	}

	req := service.UpsertPermissionRequest{
		RoleID:                  c.Param("roleId"),
		ModuleID:                c.Param("moduleId"),
		PermissionFlagOverrides: flags,
	}
	row, err := h.permissionService.UpdatePermission(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, row))
}

// DeletePermission removes a role-module pair
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	if err := h.permissionService.DeletePermission(c.Request.Context(), c.Param("roleId"), c.Param("moduleId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Permission deleted successfully"}))
}

// BulkUpdatePermissions replaces all permission rows for a role
func (h *PermissionHandler) BulkUpdatePermissions(c *gin.Context) {
	var req service.BulkUpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rows, err := h.permissionService.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
