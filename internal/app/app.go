package app

import (
	"context"
	"fmt"
	"time"

	"farmwork_backend/database"
	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/config"
	"farmwork_backend/internal/email"
	"farmwork_backend/internal/handlers"
	"farmwork_backend/internal/logger"
	"farmwork_backend/internal/middleware"
	"farmwork_backend/internal/payments"
	"farmwork_backend/internal/repositories"
	"farmwork_backend/internal/routes"
	"farmwork_backend/internal/services"
	"farmwork_backend/internal/validator"
	"farmwork_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	serviceContainer := initializeServices(cfg)
	ginRouter := SetupRouter(cfg, gormDB, serviceContainer)

	if cfg.Alerts.Enabled {
		worker := workers.NewAlertWorker(
			gormDB,
			serviceContainer.AlertService,
			time.Duration(cfg.Alerts.Interval)*time.Minute,
		)
		worker.Start(context.Background())
		logger.Info("Alert worker started", "interval_minutes", cfg.Alerts.Interval)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(cfg, serviceContainer)
	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	emailProvider := newEmailProvider(cfg)

	postingRepo := repositories.NewPostingRepository()
	alertRepo := repositories.NewAlertRepository()

	clk := clock.System{}
	customValidator := validator.New()

	emailService := services.NewEmailService(emailProvider, cfg.Server.BaseURL)
	postingService := services.NewPostingService(postingRepo, customValidator, clk)
	listingService := services.NewListingService(postingRepo, clk)
	alertService := services.NewAlertService(alertRepo, postingRepo, emailService, clk)

	stripeService := payments.NewStripeService(payments.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
		StandardPrice: cfg.Stripe.StandardPrice,
		FeaturedPrice: cfg.Stripe.FeaturedPrice,
	})

	return &services.ServiceContainer{
		PostingService: postingService,
		ListingService: listingService,
		AlertService:   alertService,
		EmailService:   emailService,
		StripeService:  stripeService,
		EmailProvider:  emailProvider,
		Clock:          clk,
	}
}

// newEmailProvider wires SMTP when configured and falls back to the mock
// so local runs do not need a mail server.
func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return &MockEmailProvider{}
	}

	renderer, err := email.NewDefaultTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	smtpConfig := email.DefaultConfig()
	smtpConfig.Host = cfg.Email.SMTPHost
	smtpConfig.Port = cfg.Email.SMTPPort
	smtpConfig.Username = cfg.Email.SMTPUsername
	smtpConfig.Password = cfg.Email.SMTPPassword
	smtpConfig.FromEmail = cfg.Email.FromEmail
	smtpConfig.FromName = cfg.Email.FromName

	provider := email.NewSMTPProvider(smtpConfig, renderer)
	if err := provider.Validate(); err != nil {
		logger.Fatal("SMTP configuration invalid", "error", err)
	}
	return provider
}

func initializeHandlers(cfg *config.Config, serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	return handlers.NewAppHandlers(cfg, customValidator, serviceContainer)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
