package handlers

import (
	"net/http"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/middleware"
	"hiremind_backend/internal/services"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	emailService     services.EmailService
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService, emailService services.EmailService) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		emailService:     emailService,
	}
}

func (h *CandidateHandler) RegisterRoutes(r *gin.RouterGroup) {
	candidates := r.Group("/candidates")
	candidates.Use(h.Auth(), middleware.RequirePermission(auth.PermJobsWrite))
	{
		candidates.GET("/job/:jobId", h.ListCandidates)
		candidates.POST("/job/:jobId/upload", h.AILimit(), h.UploadResume)
		candidates.GET("/:candidateId", h.GetCandidate)
		candidates.DELETE("/:candidateId", h.DeleteCandidate)
		candidates.PUT("/:candidateId/status", h.UpdateStatus)
		candidates.POST("/:candidateId/reanalyze", h.AILimit(), h.Reanalyze)

		// Письма кандидату
		candidates.POST("/:candidateId/email", h.SendEmail)
		candidates.GET("/:candidateId/emails", h.ListEmails)
	}
}

// ListCandidates godoc
// @Summary Кандидаты вакансии
// @Description По умолчанию сортировка по AI оценке, sort_by=created_at - по дате загрузки (новые первыми)
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Param status_filter query string false "Статус кандидата"
// @Param sort_by query string false "ai_score (по умолчанию) или created_at"
// @Success 200 {array} dto.CandidateResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/candidates/job/{jobId} [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	candidates, err := h.candidateService.ListCandidates(
		c.Request.Context(), h.GetDB(c), userID,
		c.Param("jobId"), c.Query("status_filter"), c.Query("sort_by"),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// UploadResume godoc
// @Summary Загрузить резюме
// @Description Создает кандидата и сразу запускает AI анализ. Число резюме ограничено тарифом.
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Param name formData string true "Имя кандидата"
// @Param email formData string true "Email кандидата"
// @Param phone formData string false "Телефон"
// @Param file formData file true "Резюме (PDF или текст)"
// @Success 201 {object} dto.CandidateResponse
// @Failure 403 {object} apperrors.ErrorResponse "Лимит тарифа"
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /api/v1/candidates/job/{jobId}/upload [post]
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UploadResumeRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"file": "This field is required"}))
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to open uploaded file", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Could not read uploaded file"))
		return
	}
	defer file.Close()

	candidate, err := h.candidateService.UploadResume(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId"), &req, services.ResumeFile{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	candidate, err := h.candidateService.GetCandidate(c.Request.Context(), h.GetDB(c), userID, c.Param("candidateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCandidateStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	candidate, err := h.candidateService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, c.Param("candidateId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// Reanalyze godoc
// @Summary Повторный AI анализ
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param candidateId path string true "ID кандидата"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /api/v1/candidates/{candidateId}/reanalyze [post]
func (h *CandidateHandler) Reanalyze(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.candidateService.Reanalyze(c.Request.Context(), h.GetDB(c), userID, c.Param("candidateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.candidateService.DeleteCandidate(c.Request.Context(), h.GetDB(c), userID, c.Param("candidateId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CandidateHandler) SendEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendEmailRequest
	// пустое тело допустимо: шаблон выбирается по статусу
	if c.Request.ContentLength != 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	log, err := h.emailService.SendToCandidate(c.Request.Context(), h.GetDB(c), userID, c.Param("candidateId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

func (h *CandidateHandler) ListEmails(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	logs, err := h.emailService.ListCandidateEmails(c.Request.Context(), h.GetDB(c), userID, c.Param("candidateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
