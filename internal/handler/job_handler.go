package handler

import (
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/service"
	"primefire/pkg/pagination"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobService  service.JobService
	permissions service.PermissionService
}

func NewJobHandler(jobService service.JobService, permissions service.PermissionService) *JobHandler {
	return &JobHandler{jobService: jobService, permissions: permissions}
}

// RegisterRoutes takes two groups because job postings are readable without a
// token, for embedding on the careers site, while mutations stay behind auth.
func (h *JobHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	jobs := public.Group("/api/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
	}

	protected := authed.Group("/api/jobs")
	{
		protected.POST("", middleware.RequirePermission(h.permissions, "jobs", service.ActionCreate), h.CreateJob)
		protected.PUT("/:id", middleware.RequirePermission(h.permissions, "jobs", service.ActionEdit), h.UpdateJob)
		protected.DELETE("/:id", middleware.RequirePermission(h.permissions, "jobs", service.ActionDelete), h.DeleteJob)
	}
}

// ListJobs returns paginated job postings with optional status filter
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page (default: 20)"
// @Param        status  query  string  false  "Filter by status: open, closed, draft"
// @Success      200  {object}  response.Response
// @Router       /api/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	p := pagination.Parse(c)
	status := c.Query("status")

	jobs, total, err := h.jobService.GetJobs(c.Request.Context(), status, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, jobs, p.Page, p.Limit, total))
}

// GetJob returns a single job posting by ID
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// CreateJob creates a new job posting
// @Summary      Create job
// @Tags         jobs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateJobRequest  true  "Job payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, job))
}

// UpdateJob updates an existing job posting
// @Summary      Update job
// @Tags         jobs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Job ID"
// @Param        payload  body  service.UpdateJobRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req service.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// DeleteJob deletes a job posting
// @Summary      Delete job
// @Tags         jobs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.jobService.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Job deleted successfully"}))
}
