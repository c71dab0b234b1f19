package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"hiremind_backend/database"
	"hiremind_backend/internal/ai"
	"hiremind_backend/internal/ai/gemini"
	"hiremind_backend/internal/analyzer"
	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/billing"
	"hiremind_backend/internal/config"
	"hiremind_backend/internal/email"
	"hiremind_backend/internal/handlers"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/middleware"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/routes"
	"hiremind_backend/internal/services"
	"hiremind_backend/internal/storage"
	"hiremind_backend/internal/validator"
	"hiremind_backend/internal/workers"
	"hiremind_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run поднимает HTTP сервер и блокируется до SIGINT/SIGTERM
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.Env)
	defer logger.Sync()
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Open(cfg.Database, cfg.Server.Debug)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}

	if err := seedFirstAdmin(ctx, db, cfg, deps); err != nil {
		// Если не удалось создать админа (проблемы с БД и т.д.) - не запускаем сервер
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	workers.NewSubscriptionWorker(db, cfg.Workers.SubscriptionSync).Start(ctx)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: SetupRouter(cfg, db, deps),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", server.Addr, "ai_live", deps.Analyzer.Live(), "billing", deps.Processor != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// Migrate выполняет только миграцию схемы
func Migrate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	db, err := database.Open(cfg.Database, cfg.Server.Debug)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.AutoMigrate(db)
}

// BuildDependencies собирает внешние зависимости сервисов по конфигу
func BuildDependencies(ctx context.Context, cfg *config.Config) (services.Dependencies, error) {
	storageInstance, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return services.Dependencies{}, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var generator ai.TextGenerator
	if cfg.AI.Enabled() {
		client, err := gemini.NewClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model, cfg.AI.Timeout)
		if err != nil {
			// без модели сервис работает в офлайн-режиме
			logger.Warn("Failed to initialize Gemini client", "error", err)
		} else {
			generator = client
			logger.Info("Gemini client initialized", "model", client.Model())
		}
	}

	templates, err := email.NewTemplateManager()
	if err != nil {
		return services.Dependencies{}, err
	}

	var mailer email.Provider = email.LogProvider{}
	if cfg.Email.Enabled {
		smtp, err := email.NewSMTPProvider(cfg.Email)
		if err != nil {
			return services.Dependencies{}, fmt.Errorf("failed to initialize SMTP provider: %w", err)
		}
		mailer = smtp
	} else {
		logger.Warn("Email delivery disabled, messages are only logged")
	}

	catalog := plans.NewCatalog(cfg.Stripe.PricePro, cfg.Stripe.PriceBusiness)

	// nil интерфейс означает, что биллинг выключен
	var processor billing.Processor
	if cfg.Stripe.Enabled() {
		processor = billing.NewStripeProcessor(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, catalog)
	} else {
		logger.Warn("Stripe is not configured, billing endpoints are disabled")
	}

	return services.Dependencies{
		Tokens:          auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL),
		Catalog:         catalog,
		Analyzer:        analyzer.New(generator),
		Storage:         storageInstance,
		Templates:       templates,
		Mailer:          mailer,
		Processor:       processor,
		MaxUploadSize:   cfg.Upload.MaxSize,
		PortalReturnURL: cfg.Stripe.PortalReturnURL,
	}, nil
}

// SetupRouter собирает сервисы, хэндлеры и маршруты поверх готовых зависимостей
func SetupRouter(cfg *config.Config, db *gorm.DB, deps services.Dependencies) *gin.Engine {
	apperrors.SetDebug(cfg.Server.Debug)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(deps)

	// 2. Инициализируем хэндлеры
	aiLimiter := middleware.NewRateLimiter(cfg.RateLimit.AIPerMinute, cfg.RateLimit.Burst)
	appHandlers := initializeHandlers(serviceContainer, deps.Tokens, aiLimiter)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, db)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeHandlers(services *services.ServiceContainer, tokens *auth.TokenManager, aiLimiter *middleware.RateLimiter) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, middleware.AuthMiddleware(tokens), aiLimiter)

	return &handlers.AppHandlers{
		HealthHandler:        handlers.NewHealthHandler(),
		AuthHandler:          handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:          handlers.NewUserHandler(baseHandler, services.UserService),
		JobHandler:           handlers.NewJobHandler(baseHandler, services.JobService),
		CandidateHandler:     handlers.NewCandidateHandler(baseHandler, services.CandidateService, services.EmailService),
		EmailTemplateHandler: handlers.NewEmailTemplateHandler(baseHandler, services.EmailService),
		BillingHandler:       handlers.NewBillingHandler(baseHandler, services.SubscriptionService),
		DashboardHandler:     handlers.NewDashboardHandler(baseHandler, services.DashboardService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	// multipart сверх лимита уходит во временные файлы
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, deps services.Dependencies) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("Admin email or password is not set. Skipping admin seeding.")
		return nil
	}
	authService := services.NewServiceContainer(deps).AuthService
	return authService.EnsureAdmin(ctx, db.WithContext(ctx), cfg.Admin.Email, cfg.Admin.Password)
}
