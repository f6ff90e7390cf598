package handler

import (
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/service"
	"primefire/pkg/pagination"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
)

type CurriculumHandler struct {
	curriculumService service.CurriculumService
	permissions       service.PermissionService
}

func NewCurriculumHandler(curriculumService service.CurriculumService, permissions service.PermissionService) *CurriculumHandler {
	return &CurriculumHandler{curriculumService: curriculumService, permissions: permissions}
}

func (h *CurriculumHandler) RegisterRoutes(router *gin.RouterGroup) {
	curriculums := router.Group("/api/curriculums")
	{
		curriculums.GET("", middleware.RequirePermission(h.permissions, "curriculums", service.ActionView), h.ListCurriculums)
		curriculums.POST("", middleware.RequirePermission(h.permissions, "curriculums", service.ActionCreate), h.CreateCurriculum)
		curriculums.POST("/upload", middleware.RequirePermission(h.permissions, "curriculums", service.ActionCreate), h.UploadCurriculum)
		curriculums.GET("/job/:jobId", middleware.RequirePermission(h.permissions, "curriculums", service.ActionView), h.ListCurriculumsByJob)
		curriculums.GET("/status/:status", middleware.RequirePermission(h.permissions, "curriculums", service.ActionView), h.ListCurriculumsByStatus)
		curriculums.GET("/:id", middleware.RequirePermission(h.permissions, "curriculums", service.ActionView), h.GetCurriculum)
		curriculums.GET("/:id/download", middleware.RequirePermission(h.permissions, "curriculums", service.ActionView), h.DownloadCurriculum)
		curriculums.PUT("/:id", middleware.RequirePermission(h.permissions, "curriculums", service.ActionEdit), h.UpdateCurriculum)
		curriculums.DELETE("/:id", middleware.RequirePermission(h.permissions, "curriculums", service.ActionDelete), h.DeleteCurriculum)
	}
}

// ListCurriculums returns paginated candidate CVs
// @Summary      List curriculums
// @Tags         curriculums
// @Security     BearerAuth
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/curriculums [get]
func (h *CurriculumHandler) ListCurriculums(c *gin.Context) {
	p := pagination.Parse(c)

	curriculums, total, err := h.curriculumService.GetCurriculums(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, curriculums, p.Page, p.Limit, total))
}

// CreateCurriculum creates a candidate record without a CV file
// @Summary      Create curriculum
// @Tags         curriculums
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateCurriculumRequest  true  "Candidate payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curriculums [post]
func (h *CurriculumHandler) CreateCurriculum(c *gin.Context) {
	var req service.CreateCurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	curriculum, err := h.curriculumService.CreateCurriculum(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, curriculum))
}

// UploadCurriculum creates a candidate record together with their CV file
// @Summary      Upload curriculum
// @Tags         curriculums
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        candidate_name  formData  string  true   "Candidate name"
// @Param        candidate_email formData  string  false  "Candidate email"
// @Param        phone           formData  string  false  "Candidate phone"
// @Param        job_id          formData  string  false  "Job the candidate applied to"
// @Param        status          formData  string  false  "Pipeline status"
// @Param        notes           formData  string  false  "Recruiter notes"
// @Param        file            formData  file    true   "CV file (.pdf, .doc, .docx, .txt)"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curriculums/upload [post]
func (h *CurriculumHandler) UploadCurriculum(c *gin.Context) {
	var req service.CreateCurriculumRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
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

	contentType := fileHeader.Header.Get("Content-Type")
	curriculum, err := h.curriculumService.CreateFromUpload(c.Request.Context(), req, fileHeader.Filename, contentType, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, curriculum))
}

// GetCurriculum returns a single candidate record
// @Summary      Get curriculum
// @Tags         curriculums
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Curriculum ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/curriculums/{id} [get]
func (h *CurriculumHandler) GetCurriculum(c *gin.Context) {
	curriculum, err := h.curriculumService.GetCurriculum(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, curriculum))
}

// ListCurriculumsByJob returns the candidates attached to a job
// @Summary      List curriculums by job
// @Tags         curriculums
// @Security     BearerAuth
// @Produce      json
// @Param        jobId  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/curriculums/job/{jobId} [get]
func (h *CurriculumHandler) ListCurriculumsByJob(c *gin.Context) {
	curriculums, err := h.curriculumService.GetCurriculumsByJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, curriculums))
}

// ListCurriculumsByStatus returns the candidates in a pipeline status
// @Summary      List curriculums by status
// @Tags         curriculums
// @Security     BearerAuth
// @Produce      json
// @Param        status  path  string  true  "Pipeline status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curriculums/status/{status} [get]
func (h *CurriculumHandler) ListCurriculumsByStatus(c *gin.Context) {
	curriculums, err := h.curriculumService.GetCurriculumsByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, curriculums))
}

// DownloadCurriculum streams the stored CV file
// @Summary      Download curriculum file
// @Tags         curriculums
// @Security     BearerAuth
// @Produce      application/octet-stream
// @Param        id  path  string  true  "Curriculum ID"
// @Success      200  {file}  file
// @Failure      404  {object}  response.Response
// @Router       /api/curriculums/{id}/download [get]
func (h *CurriculumHandler) DownloadCurriculum(c *gin.Context) {
	download, err := h.curriculumService.GetCurriculumFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(download.Path, download.FileName)
}

// UpdateCurriculum updates a candidate record
// @Summary      Update curriculum
// @Tags         curriculums
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                           true  "Curriculum ID"
// @Param        payload  body  service.UpdateCurriculumRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curriculums/{id} [put]
func (h *CurriculumHandler) UpdateCurriculum(c *gin.Context) {
	var req service.UpdateCurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	curriculum, err := h.curriculumService.UpdateCurriculum(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, curriculum))
}

// DeleteCurriculum deletes a candidate record and its stored file
// @Summary      Delete curriculum
// @Tags         curriculums
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Curriculum ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/curriculums/{id} [delete]
func (h *CurriculumHandler) DeleteCurriculum(c *gin.Context) {
	if err := h.curriculumService.DeleteCurriculum(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Curriculum deleted successfully"}))
}
