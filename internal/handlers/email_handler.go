package handlers

import (
	"net/http"

	"hiremind_backend/internal/services"
	"hiremind_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmailTemplateHandler struct {
	*BaseHandler
	emailService services.EmailService
}

func NewEmailTemplateHandler(base *BaseHandler, emailService services.EmailService) *EmailTemplateHandler {
	return &EmailTemplateHandler{
		BaseHandler:  base,
		emailService: emailService,
	}
}

func (h *EmailTemplateHandler) RegisterRoutes(r *gin.RouterGroup) {
	templates := r.Group("/email-templates")
	templates.Use(h.Auth())
	{
		templates.GET("", h.ListTemplates)
		templates.POST("", h.CreateTemplate)
		templates.DELETE("/:templateId", h.DeleteTemplate)
	}
}

func (h *EmailTemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	templates, err := h.emailService.ListTemplates(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *EmailTemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEmailTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	template, err := h.emailService.CreateTemplate(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

func (h *EmailTemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.emailService.DeleteTemplate(c.Request.Context(), h.GetDB(c), userID, c.Param("templateId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
