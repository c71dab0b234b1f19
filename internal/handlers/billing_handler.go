package handlers

import (
	"io"
	"net/http"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/middleware"
	"hiremind_backend/internal/services"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody - Stripe присылает события меньше 64KB
const maxWebhookBody = 1 << 16

type BillingHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewBillingHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *BillingHandler {
	return &BillingHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *BillingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/billing")
	{
		public.GET("/plans", h.ListPlans)
		public.POST("/webhook", h.Webhook)
	}

	// Protected routes
	billing := r.Group("/billing")
	billing.Use(h.Auth(), middleware.RequirePermission(auth.PermBillingWrite))
	{
		billing.GET("/subscription", h.GetSubscription)
		billing.POST("/checkout", h.CreateCheckout)
		billing.POST("/portal", h.CreatePortal)
	}
}

// ListPlans godoc
// @Summary Тарифы
// @Tags billing
// @Produce json
// @Success 200 {object} dto.PlansResponse
// @Router /api/v1/billing/plans [get]
func (h *BillingHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.subscriptionService.ListPlans())
}

// GetSubscription godoc
// @Summary Подписка и использование лимитов
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionResponse
// @Router /api/v1/billing/subscription [get]
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// CreateCheckout godoc
// @Summary Оплата тарифа
// @Description Только платные тарифы (pro, business)
// @Tags billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "Тариф и адреса возврата"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} apperrors.ErrorResponse "INVALID_ARGUMENT"
// @Router /api/v1/billing/checkout [post]
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.subscriptionService.CreateCheckout(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *BillingHandler) CreatePortal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PortalRequest
	if c.Request.ContentLength != 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	session, err := h.subscriptionService.CreatePortal(c.Request.Context(), h.GetDB(c), userID, req.ReturnURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Webhook godoc
// @Summary Stripe webhook
// @Description Подпись проверяется по заголовку Stripe-Signature. Неизвестные события подтверждаются без изменений.
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} apperrors.ErrorResponse "INVALID_SIGNATURE"
// @Router /api/v1/billing/webhook [post]
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to read webhook body", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Could not read request body"))
		return
	}

	resp, err := h.subscriptionService.HandleWebhook(c.Request.Context(), h.GetDB(c), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
