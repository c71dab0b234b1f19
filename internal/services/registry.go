package services

import (
	"hiremind_backend/internal/analyzer"
	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/billing"
	"hiremind_backend/internal/email"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	JobService          JobService
	CandidateService    CandidateService
	EmailService        EmailService
	SubscriptionService SubscriptionService
	DashboardService    DashboardService
}

// Dependencies - внешние зависимости сервисов, собираются в app
type Dependencies struct {
	Tokens          *auth.TokenManager
	Catalog         *plans.Catalog
	Analyzer        analyzer.Analyzer
	Storage         storage.Storage
	Templates       *email.TemplateManager
	Mailer          email.Provider
	Processor       billing.Processor
	MaxUploadSize   int64
	PortalReturnURL string
}

// NewServiceContainer собирает сервисы поверх репозиториев без состояния
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	candidateRepo := repositories.NewCandidateRepository()
	subRepo := repositories.NewSubscriptionRepository()
	emailRepo := repositories.NewEmailRepository()

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo, deps.Tokens),
		UserService:      NewUserService(userRepo, deps.Storage),
		JobService:       NewJobService(jobRepo, userRepo, deps.Catalog, deps.Analyzer, deps.Storage),
		CandidateService: NewCandidateService(candidateRepo, jobRepo, userRepo, deps.Catalog, deps.Analyzer, deps.Storage, deps.MaxUploadSize),
		EmailService:     NewEmailService(emailRepo, candidateRepo, jobRepo, userRepo, deps.Templates, deps.Mailer),
		SubscriptionService: NewSubscriptionService(
			subRepo, userRepo, jobRepo, candidateRepo,
			deps.Catalog, deps.Processor, deps.PortalReturnURL,
		),
		DashboardService: NewDashboardService(jobRepo, candidateRepo),
	}
}
