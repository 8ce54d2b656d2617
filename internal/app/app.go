package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"klarfix/internal/auth"
	"klarfix/internal/config"
	"klarfix/internal/database"
	"klarfix/internal/email"
	"klarfix/internal/handlers"
	"klarfix/internal/logger"
	"klarfix/internal/middleware"
	"klarfix/internal/repositories"
	"klarfix/internal/routes"
	"klarfix/internal/services"
	"klarfix/internal/validator"
	"klarfix/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("production")
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.OpenFromConfig(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	if err := database.SeedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}
	if cfg.Database.SeedDemo && !cfg.IsProduction() {
		if err := database.SeedDemoHelpers(gormDB); err != nil {
			logger.Fatal("Failed to seed demo helpers", "error", err)
		}
	}

	emailProvider := newEmailProvider(cfg)
	defer emailProvider.Close()

	ginRouter := SetupRouter(cfg, gormDB, emailProvider)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server exited")
}

// newEmailProvider returns the SMTP provider when configured, otherwise one that only logs.
func newEmailProvider(cfg *config.Config) email.Provider {
	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName
	smtpCfg.UseTLS = cfg.Email.UseTLS

	if !smtpCfg.Enabled() {
		logger.Warn("SMTP is not configured, e-mails are only logged")
		return email.NewLogProvider()
	}

	provider := email.NewSMTPProvider(smtpCfg)
	if err := provider.Validate(); err != nil {
		logger.Warn("SMTP config is invalid, e-mails are only logged", "error", err)
		return email.NewLogProvider()
	}
	return provider
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, emailProvider email.Provider) *gin.Engine {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	serviceContainer := initializeServices(cfg, tokens, emailProvider)
	appHandlers := initializeHandlers(cfg, tokens, serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, emailProvider email.Provider) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	contactRepo := repositories.NewContactRequestRepository()
	verificationRepo := repositories.NewVerificationRepository()
	serviceRepo := repositories.NewServiceRepository()
	bookingRepo := repositories.NewBookingRepository()
	paymentRepo := repositories.NewPaymentRepository()
	reviewRepo := repositories.NewReviewRepository()
	applicationRepo := repositories.NewApplicationRepository()

	notificationService := services.NewNotificationService(emailProvider, email.NewTemplateManager())

	return &services.ServiceContainer{
		AuthService:           services.NewAuthService(userRepo, tokens),
		UserService:           services.NewUserService(userRepo),
		ContactRequestService: services.NewContactRequestService(contactRepo, userRepo, notificationService),
		VerificationService:   services.NewVerificationService(verificationRepo, userRepo, notificationService),
		CatalogService:        services.NewCatalogService(serviceRepo, userRepo),
		BookingService:        services.NewBookingService(bookingRepo, serviceRepo),
		PaymentService:        services.NewPaymentService(paymentRepo, bookingRepo, cfg.Payments.PlatformFeePercent),
		ReviewService:         services.NewReviewService(reviewRepo, bookingRepo, userRepo),
		ApplicationService:    services.NewApplicationService(applicationRepo, userRepo, notificationService),
		NotificationService:   notificationService,
		EmailProvider:         emailProvider,
	}
}

func initializeHandlers(cfg *config.Config, tokens *auth.TokenManager, svc *services.ServiceContainer) *handlers.AppHandlers {
	authenticator := middleware.NewAuthenticator(tokens, cfg.JWT.CookieName)
	baseHandler := handlers.NewBaseHandler(validator.New(), authenticator)

	contactLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.ContactPerMinute, cfg.RateLimit.ContactBurst)
	applicationLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.ContactPerMinute, cfg.RateLimit.ContactBurst)

	return &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService, cfg.IsProduction()),
		UserHandler:         handlers.NewUserHandler(baseHandler, svc.UserService),
		ContactHandler:      handlers.NewContactHandler(baseHandler, svc.ContactRequestService, contactLimiter),
		VerificationHandler: handlers.NewVerificationHandler(baseHandler, svc.VerificationService),
		ServiceHandler:      handlers.NewServiceHandler(baseHandler, svc.CatalogService, svc.ReviewService),
		BookingHandler:      handlers.NewBookingHandler(baseHandler, svc.BookingService, svc.PaymentService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, svc.PaymentService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, svc.ReviewService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, svc.ApplicationService, applicationLimiter),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
