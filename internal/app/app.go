package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rooya_backend/database"
	"rooya_backend/internal/auth"
	"rooya_backend/internal/config"
	"rooya_backend/internal/email"
	"rooya_backend/internal/handlers"
	"rooya_backend/internal/logger"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/internal/routes"
	"rooya_backend/internal/services"
	"rooya_backend/internal/storage"
	"rooya_backend/internal/validator"
	"rooya_backend/internal/workers"
	"rooya_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	apperrors.Debug = cfg.Server.Env != "production"
	stripe.Key = cfg.Stripe.SecretKey

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstSuperAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first super admin", "error", err)
	}
	if err := seedTrialPlan(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed trial plan", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	subscriptionWorker := workers.NewSubscriptionWorker(gormDB, repositories.NewSubscriptionRepository())
	subscriptionWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	files, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(cfg, files)
	appHandlers := initializeHandlers(serviceContainer, files)
	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, files storage.Storage) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewSMTPProvider(cfg)
		logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailService = email.NewLogProvider()
		logger.Warn("SMTP is not configured, emails will only be logged")
	}

	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	planRepo := repositories.NewPlanRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	dreamRepo := repositories.NewDreamRepository()
	requestRepo := repositories.NewRequestRepository()
	messageRepo := repositories.NewMessageRepository()
	commentRepo := repositories.NewCommentRepository()
	paymentRepo := repositories.NewPaymentRepository()

	quotaService := services.NewQuotaService(subscriptionRepo, planRepo, profileRepo, dreamRepo)
	authService := services.NewAuthService(userRepo, profileRepo, quotaService, emailService)
	userService := services.NewUserService(profileRepo)
	dreamService := services.NewDreamService(dreamRepo, userRepo, profileRepo, quotaService, files)
	requestService := services.NewRequestService(requestRepo, dreamRepo, profileRepo)
	messageService := services.NewMessageService(messageRepo, dreamRepo, requestRepo)
	commentService := services.NewCommentService(commentRepo, dreamRepo)
	planService := services.NewPlanService(planRepo, quotaService)
	paymentService := services.NewPaymentService(paymentRepo, planRepo, userRepo, quotaService, emailService, cfg)
	adminService := services.NewAdminService(userRepo, profileRepo, dreamRepo, paymentRepo)

	return &services.ServiceContainer{
		AuthService:    authService,
		UserService:    userService,
		QuotaService:   quotaService,
		DreamService:   dreamService,
		RequestService: requestService,
		MessageService: messageService,
		CommentService: commentService,
		PlanService:    planService,
		PaymentService: paymentService,
		AdminService:   adminService,
		EmailService:   emailService,
		Storage:        files,
	}
}

func initializeHandlers(svc *services.ServiceContainer, files storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, svc.AuthService),
		UserHandler:    handlers.NewUserHandler(baseHandler, svc.UserService),
		DreamHandler:   handlers.NewDreamHandler(baseHandler, svc.DreamService, svc.MessageService, svc.CommentService),
		RequestHandler: handlers.NewRequestHandler(baseHandler, svc.RequestService, svc.MessageService),
		PlanHandler:    handlers.NewPlanHandler(baseHandler, svc.PlanService),
		PaymentHandler: handlers.NewPaymentHandler(baseHandler, svc.PaymentService),
		AdminHandler:   handlers.NewAdminHandler(baseHandler, svc.AdminService),
		FileHandler:    handlers.NewFileHandler(baseHandler, files),
	}
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

// seedFirstSuperAdmin bootstraps the first super_admin account from config;
// without one, role management is unreachable. No-op when unset or when the
// account already exists.
func seedFirstSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Seed.SuperAdminEmail
	adminPassword := cfg.Seed.SuperAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_SUPER_ADMIN_EMAIL or FIRST_SUPER_ADMIN_PASSWORD not set. Skipping super admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("Super admin already exists, skipping creation", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for super admin: %w", result.Error)
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash super admin password: %w", err)
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: hash,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create super admin user: %w", err)
		}

		profile := &models.Profile{
			UserID:   admin.ID,
			Role:     models.RoleSuperAdmin,
			FullName: "Platform Administrator",
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create super admin profile: %w", err)
		}

		logger.Info("Created first super admin", "email", adminEmail)
		return nil
	})
}

// seedTrialPlan creates a default trial plan so fresh installs grant new
// dreamers a working quota out of the box.
func seedTrialPlan(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Seed.TrialPlan {
		return nil
	}

	var existing models.Plan
	result := db.Where("is_trial = ? AND is_active = ?", true, true).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for trial plan: %w", result.Error)
	}

	maxDreams := 3
	letterQuota := int64(5000)
	audioQuota := 10
	trial := &models.Plan{
		Name:             "Trial",
		Price:            0,
		Currency:         "USD",
		DurationDays:     14,
		MaxDreams:        &maxDreams,
		LetterQuota:      &letterQuota,
		AudioMinuteQuota: &audioQuota,
		IsActive:         true,
		IsTrial:          true,
		TrialDays:        14,
	}
	if err := db.Create(trial).Error; err != nil {
		return fmt.Errorf("failed to create trial plan: %w", err)
	}

	logger.Info("Created default trial plan", "name", trial.Name, "days", trial.TrialDays)
	return nil
}
