package handler

import (
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/service"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
)

type ModuleHandler struct {
	moduleService service.ModuleService
	permissions   service.PermissionService
}

func NewModuleHandler(moduleService service.ModuleService, permissions service.PermissionService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, permissions: permissions}
}

func (h *ModuleHandler) RegisterRoutes(router *gin.RouterGroup) {
	modules := router.Group("/api/modules")
	{
		modules.GET("", middleware.RequirePermission(h.permissions, "modules", service.ActionView), h.ListModules)
		modules.GET("/tree", middleware.RequirePermission(h.permissions, "modules", service.ActionView), h.GetModuleTree)
		modules.GET("/root/all", middleware.RequirePermission(h.permissions, "modules", service.ActionView), h.ListRootModules)
		modules.GET("/by-key/:key", middleware.RequirePermission(h.permissions, "modules", service.ActionView), h.GetModuleByKey)
		modules.GET("/:id", middleware.RequirePermission(h.permissions, "modules", service.ActionView), h.GetModule)
		modules.GET("/:id/children", middleware.RequirePermission(h.permissions, "modules", service.ActionView), h.GetModuleChildren)
		modules.POST("", middleware.RequirePermission(h.permissions, "modules", service.ActionCreate), h.CreateModule)
		modules.PUT("/:id", middleware.RequirePermission(h.permissions, "modules", service.ActionEdit), h.UpdateModule)
		modules.DELETE("/:id", middleware.RequirePermission(h.permissions, "modules", service.ActionDelete), h.DeleteModule)
	}
}

// ListModules returns all modules, inactive ones only when requested
func (h *ModuleHandler) ListModules(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	modules, err := h.moduleService.GetModules(c.Request.Context(), includeInactive)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, modules))
}

// GetModuleTree returns modules nested by parent link
func (h *ModuleHandler) GetModuleTree(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	tree, err := h.moduleService.GetModuleTree(c.Request.Context(), includeInactive)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tree))
}

// ListRootModules returns top-level modules in display order
func (h *ModuleHandler) ListRootModules(c *gin.Context) {
	modules, err := h.moduleService.GetRootModules(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, modules))
}

// GetModuleByKey returns a module by its module key
func (h *ModuleHandler) GetModuleByKey(c *gin.Context) {
	module, err := h.moduleService.GetModuleByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, module))
}

// GetModule returns a single module by ID
func (h *ModuleHandler) GetModule(c *gin.Context) {
	module, err := h.moduleService.GetModule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, module))
}

// GetModuleChildren returns the direct children of a module
func (h *ModuleHandler) GetModuleChildren(c *gin.Context) {
	children, err := h.moduleService.GetModuleChildren(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, children))
}

// CreateModule creates a new module
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req service.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	module, err := h.moduleService.CreateModule(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, module))
}

// UpdateModule updates a module, including moving it in the hierarchy
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	var req service.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	module, err := h.moduleService.UpdateModule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, module))
}

// DeleteModule deletes a module; its children move to the root
func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	if err := h.moduleService.DeleteModule(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Module deleted successfully"}))
}
