package handlers

import (
	"net/http"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/middleware"
	"hiremind_backend/internal/services"
	"hiremind_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(h.Auth(), middleware.RequirePermission(auth.PermJobsWrite))
	{
		jobs.GET("", h.ListJobs)
		jobs.POST("", h.CreateJob)
		jobs.GET("/:jobId", h.GetJob)
		jobs.PUT("/:jobId", h.UpdateJob)
		jobs.DELETE("/:jobId", h.DeleteJob)
		jobs.POST("/:jobId/generate-description", h.AILimit(), h.GenerateDescription)
	}
}

// ListJobs godoc
// @Summary Вакансии пользователя
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status_filter query string false "active, closed или draft"
// @Success 200 {array} dto.JobResponse
// @Router /api/v1/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListJobs(c.Request.Context(), h.GetDB(c), userID, c.Query("status_filter"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// CreateJob godoc
// @Summary Создать вакансию
// @Description Число вакансий ограничено тарифом
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Вакансия"
// @Success 201 {object} dto.JobResponse
// @Failure 403 {object} apperrors.ErrorResponse "Лимит тарифа"
// @Router /api/v1/jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateDescription godoc
// @Summary Сгенерировать описание вакансии
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Success 200 {object} dto.JobDescriptionResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /api/v1/jobs/{jobId}/generate-description [post]
func (h *JobHandler) GenerateDescription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobService.GenerateDescription(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
