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

type EmployeeHandler struct {
	employeeService service.EmployeeService
	syncService     service.SyncService
	scheduler       *service.SyncScheduler
	permissions     service.PermissionService
}

func NewEmployeeHandler(
	employeeService service.EmployeeService,
	syncService service.SyncService,
	scheduler *service.SyncScheduler,
	permissions service.PermissionService,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		syncService:     syncService,
		scheduler:       scheduler,
		permissions:     permissions,
	}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/api/employees")
	{
		employees.GET("", middleware.RequirePermission(h.permissions, "employees", service.ActionView), h.ListEmployees)
		employees.POST("", middleware.RequirePermission(h.permissions, "employees", service.ActionCreate), h.CreateEmployee)
		employees.GET("/export", middleware.RequirePermission(h.permissions, "employees", service.ActionExport), h.ExportEmployees)
		employees.POST("/sync", middleware.RequirePermission(h.permissions, "employees", service.ActionAdminActions), h.TriggerSync)
		employees.GET("/sync/status", middleware.RequirePermission(h.permissions, "employees", service.ActionAdminActions), h.SyncStatus)
		employees.GET("/:id", middleware.RequirePermission(h.permissions, "employees", service.ActionView), h.GetEmployee)
		employees.PUT("/:id", middleware.RequirePermission(h.permissions, "employees", service.ActionEdit), h.UpdateEmployee)
		employees.DELETE("/:id", middleware.RequirePermission(h.permissions, "employees", service.ActionDelete), h.DeleteEmployee)
		employees.GET("/:id/roles", middleware.RequirePermission(h.permissions, "employees", service.ActionView), h.GetEmployeeRoles)
		employees.PUT("/:id/roles", middleware.RequirePermission(h.permissions, "employees", service.ActionAdminActions), h.AssignRoles)
		employees.POST("/:id/sync/pull", middleware.RequirePermission(h.permissions, "employees", service.ActionAdminActions), h.PullEmployee)
		employees.POST("/:id/sync/push", middleware.RequirePermission(h.permissions, "employees", service.ActionAdminActions), h.PushEmployee)
	}
}

// ListEmployees returns paginated employees with optional search/department filter
// @Summary      List employees
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default: 1)"
// @Param        limit       query     int     false  "Items per page (default: 20)"
// @Param        search      query     string  false  "Search by name or email"
// @Param        department  query     string  false  "Filter by department"
// @Success      200  {object}  response.Response
// @Router       /api/employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	p := pagination.Parse(c)
	search := c.Query("search")
	department := c.Query("department")

	employees, total, err := h.employeeService.GetEmployees(c.Request.Context(), search, department, p.Page, p.Limit)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, employees, p.Page, p.Limit, total))
}

// CreateEmployee creates a new employee
// @Summary      Create employee
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateEmployeeRequest  true  "Employee payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, employee))
}

// GetEmployee returns a single employee by ID
// @Summary      Get employee
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Employee ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// UpdateEmployee updates an existing employee
// @Summary      Update employee
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Employee ID"
// @Param        payload  body  service.UpdateEmployeeRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req service.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// DeleteEmployee deletes an employee
// @Summary      Delete employee
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Employee ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Employee deleted successfully"}))
}

// GetEmployeeRoles returns the roles assigned to an employee
// @Summary      Get employee roles
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Employee ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{id}/roles [get]
func (h *EmployeeHandler) GetEmployeeRoles(c *gin.Context) {
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee.Roles))
}

// AssignRoles replaces an employee's role assignment
// @Summary      Assign roles to employee
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Employee ID"
// @Param        payload  body  service.AssignRolesRequest  true  "Role IDs"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/employees/{id}/roles [put]
func (h *EmployeeHandler) AssignRoles(c *gin.Context) {
	var req service.AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	employee, err := h.employeeService.AssignRoles(c.Request.Context(), c.Param("id"), req.RoleIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// ExportEmployees downloads all employees as a spreadsheet
// @Summary      Export employees
// @Tags         employees
// @Security     BearerAuth
// @Produce      application/octet-stream
// @Param        format  query  string  false  "Export format: xlsx or csv (default: xlsx)"
// @Success      200  {file}  file
// @Router       /api/employees/export [get]
func (h *EmployeeHandler) ExportEmployees(c *gin.Context) {
	headers, rows, err := h.employeeService.ExportRows(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		if err := export.WriteCSV(c.Writer, "employees.csv", headers, rows); err != nil {
			logrus.WithError(err).Error("failed to write employee CSV export")
		}
	case "xlsx":
		if err := export.WriteExcel(c.Writer, "Employees", headers, rows); err != nil {
			logrus.WithError(err).Error("failed to write employee Excel export")
		}
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "unsupported export format, use xlsx or csv"))
	}
}

// TriggerSync starts a full directory sync
// @Summary      Trigger directory sync
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/employees/sync [post]
func (h *EmployeeHandler) TriggerSync(c *gin.Context) {
	stats, started, err := h.scheduler.RunNow(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if !started {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
			"started": false,
			"message": "a sync is already running",
		}))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"started": true,
		"stats":   stats,
	}))
}

// SyncStatus reports the directory sync scheduler state
// @Summary      Directory sync status
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/employees/sync/status [get]
func (h *EmployeeHandler) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.scheduler.Status()))
}

// PullEmployee refreshes one employee from the directory
// @Summary      Pull employee from directory
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Employee ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{id}/sync/pull [post]
func (h *EmployeeHandler) PullEmployee(c *gin.Context) {
	employee, err := h.syncService.PullEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// PushEmployee writes one employee's profile back to the directory
// @Summary      Push employee to directory
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Employee ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{id}/sync/push [post]
func (h *EmployeeHandler) PushEmployee(c *gin.Context) {
	employee, err := h.syncService.PushEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}
