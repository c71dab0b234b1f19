package services

import (
	"context"
	"errors"

	"hiremind_backend/internal/billing"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	ListPlans() *dto.PlansResponse
	GetSubscription(ctx context.Context, db *gorm.DB, userID string) (*dto.SubscriptionResponse, error)
	CreateCheckout(ctx context.Context, db *gorm.DB, userID string, req *dto.CheckoutRequest) (*dto.SessionResponse, error)
	CreatePortal(ctx context.Context, db *gorm.DB, userID, returnURL string) (*dto.SessionResponse, error)
	HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) (*dto.WebhookResponse, error)
	// ApplyEvent применяет проверенное событие. false - событие проигнорировано.
	ApplyEvent(ctx context.Context, db *gorm.DB, event billing.Event) (bool, error)
}

type subscriptionService struct {
	subRepo         repositories.SubscriptionRepository
	userRepo        repositories.UserRepository
	jobRepo         repositories.JobRepository
	candidateRepo   repositories.CandidateRepository
	catalog         *plans.Catalog
	processor       billing.Processor // nil, если Stripe не настроен
	portalReturnURL string
}

func NewSubscriptionService(
	subRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	catalog *plans.Catalog,
	processor billing.Processor,
	portalReturnURL string,
) SubscriptionService {
	return &subscriptionService{
		subRepo:         subRepo,
		userRepo:        userRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		catalog:         catalog,
		processor:       processor,
		portalReturnURL: portalReturnURL,
	}
}

func (s *subscriptionService) ListPlans() *dto.PlansResponse {
	return &dto.PlansResponse{Plans: s.catalog.All()}
}

func (s *subscriptionService) GetSubscription(ctx context.Context, db *gorm.DB, userID string) (*dto.SubscriptionResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	jobs, err := s.jobRepo.CountByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	resumes, err := s.candidateRepo.CountByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	limits := s.catalog.Get(user.SubscriptionTier)
	resp := &dto.SubscriptionResponse{
		Tier:   limits.Name,
		Plan:   limits.Name,
		Limits: limits,
		Usage: dto.UsageResponse{
			Jobs:         jobs,
			JobsLimit:    limits.JobsLimit,
			Resumes:      resumes,
			ResumesLimit: limits.ResumesLimit,
		},
	}
	if sub := user.Subscription; sub != nil {
		resp.Plan = sub.Plan
		resp.Status = sub.Status
		resp.CurrentPeriodStart = sub.CurrentPeriodStart
		resp.CurrentPeriodEnd = sub.CurrentPeriodEnd
	}
	return resp, nil
}

func (s *subscriptionService) CreateCheckout(ctx context.Context, db *gorm.DB, userID string, req *dto.CheckoutRequest) (*dto.SessionResponse, error) {
	// Бесплатный и неизвестный тариф отклоняем до обращения к Stripe
	if !s.catalog.Payable(req.Plan) {
		return nil, apperrors.ErrInvalidPlan.WithDetails(map[string]interface{}{"plan": req.Plan})
	}
	if s.processor == nil {
		return nil, apperrors.ErrBillingDisabled
	}

	limits := s.catalog.Get(req.Plan)
	if limits.PriceID == "" {
		logger.CtxError(ctx, "stripe price is not configured", "plan", req.Plan)
		return nil, apperrors.ErrBillingDisabled.WithDetails(map[string]interface{}{"plan": req.Plan})
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	session, err := s.processor.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		UserID:     user.ID,
		Email:      user.Email,
		CustomerID: user.StripeCustomerID,
		Plan:       limits.Name,
		PriceID:    limits.PriceID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		logger.CtxWithError(ctx, "checkout session failed", err, "plan", req.Plan)
		return nil, apperrors.ExternalServiceError(err, "billing")
	}

	logger.CtxInfo(ctx, "checkout session created", "plan", limits.Name, "session_id", session.ID)
	return &dto.SessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *subscriptionService) CreatePortal(ctx context.Context, db *gorm.DB, userID, returnURL string) (*dto.SessionResponse, error) {
	if s.processor == nil {
		return nil, apperrors.ErrBillingDisabled
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if user.StripeCustomerID == "" {
		return nil, apperrors.ErrNoBillingAccount
	}

	if returnURL == "" {
		returnURL = s.portalReturnURL
	}

	session, err := s.processor.CreatePortalSession(ctx, user.StripeCustomerID, returnURL)
	if err != nil {
		logger.CtxWithError(ctx, "portal session failed", err)
		return nil, apperrors.ExternalServiceError(err, "billing")
	}
	return &dto.SessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *subscriptionService) HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) (*dto.WebhookResponse, error) {
	if s.processor == nil {
		return nil, apperrors.ErrBillingDisabled
	}

	event, err := s.processor.ParseWebhook(payload, signature)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.NewBadRequestError("Invalid webhook payload")
	}

	handled, err := s.ApplyEvent(ctx, db, event)
	if err != nil {
		return nil, err
	}
	return &dto.WebhookResponse{Received: true, Handled: handled, Type: string(event.Type)}, nil
}

func (s *subscriptionService) ApplyEvent(ctx context.Context, db *gorm.DB, event billing.Event) (bool, error) {
	update, ok := billing.Apply(event)
	if !ok {
		logger.CtxDebug(ctx, "billing event ignored", "event_id", event.ID, "type", event.Type)
		return false, nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return false, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.resolveUser(tx, event)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// повтор доставки ничего не изменит, поэтому отвечаем 200
			logger.CtxWarn(ctx, "billing event for unknown user",
				"event_id", event.ID,
				"type", event.Type,
				"customer_id", event.CustomerID,
			)
			return false, nil
		}
		return false, apperrors.DatabaseError(err)
	}

	sub, err := s.subRepo.FindByUserID(tx, user.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return false, apperrors.DatabaseError(err)
		}
		sub = &models.Subscription{UserID: user.ID, Plan: plans.Free}
	}

	if update.Plan != "" {
		sub.Plan = update.Plan
	}
	sub.Status = update.Status
	if update.SubscriptionID != "" {
		sub.StripeSubscriptionID = update.SubscriptionID
	}
	if update.PeriodStart != nil {
		sub.CurrentPeriodStart = update.PeriodStart
	}
	if update.PeriodEnd != nil {
		sub.CurrentPeriodEnd = update.PeriodEnd
	}

	if err := s.subRepo.Upsert(tx, sub); err != nil {
		return false, apperrors.DatabaseError(err)
	}
	if err := s.userRepo.UpdateBilling(tx, user.ID, update.Tier, update.CustomerID); err != nil {
		return false, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return false, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "subscription updated",
		"event_id", event.ID,
		"type", event.Type,
		"user_id", user.ID,
		"plan", sub.Plan,
		"status", sub.Status,
		"tier", update.Tier,
	)
	return true, nil
}

// resolveUser: user_id из metadata, затем Stripe customer, затем уже известная подписка
func (s *subscriptionService) resolveUser(db *gorm.DB, event billing.Event) (*models.User, error) {
	if event.UserID != "" {
		user, err := s.userRepo.FindByID(db, event.UserID)
		if err == nil || !errors.Is(err, repositories.ErrUserNotFound) {
			return user, err
		}
	}

	if event.CustomerID != "" {
		user, err := s.userRepo.FindByStripeCustomerID(db, event.CustomerID)
		if err == nil || !errors.Is(err, repositories.ErrUserNotFound) {
			return user, err
		}
	}

	if event.SubscriptionID != "" {
		sub, err := s.subRepo.FindByStripeSubscriptionID(db, event.SubscriptionID)
		if err == nil {
			return s.userRepo.FindByID(db, sub.UserID)
		}
		if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, err
		}
	}

	return nil, repositories.ErrUserNotFound
}
