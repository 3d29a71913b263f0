package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelink-backend/config"
	deliveryHttp "carelink-backend/internal/delivery/http"
	"carelink-backend/internal/delivery/http/handler"
	"carelink-backend/internal/delivery/http/middleware"
	"carelink-backend/internal/infrastructure/cache"
	"carelink-backend/internal/infrastructure/database"
	"carelink-backend/internal/infrastructure/mail"
	"carelink-backend/internal/infrastructure/ocr"
	"carelink-backend/internal/repository"
	"carelink-backend/internal/service"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/jwt"
	"carelink-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	dispatcher *service.NotificationDispatcher
	keyedMutex *service.KeyedMutex
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(database.MigrationURL(cfg.DB), log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.Server = app.initializeServer(cfg, db, redisClient, log)

	return app, nil
}

// setupLogger builds the JSON logger shared by every layer.
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	transactor := database.NewTransactor(db)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	personalInfoRepo := repository.NewPersonalInfoRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	presOrderRepo := repository.NewPresOrderRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Services
	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(redisClient)

	app.dispatcher = service.NewNotificationDispatcher(mail.NewSMTPMailer(cfg.SMTP), cfg.Notify.Workers, cfg.Notify.QueueSize, log)

	var locker service.Locker
	if cfg.Lock.UseRedis {
		locker = service.NewRedisLocker(redisClient, cfg.Lock.TTL, log)
	} else {
		app.keyedMutex = service.NewKeyedMutex(log)
		locker = app.keyedMutex
	}

	var imageValidator service.ImageValidator
	if cfg.OCR.URL != "" {
		imageValidator = ocr.NewClient(cfg.OCR.URL, cfg.OCR.Timeout)
	} else {
		log.Warn("OCR_URL not set, prescription images are accepted without text detection")
		imageValidator = service.NewAcceptAllValidator(log)
	}

	// Usecases
	userUsecase := usecase.NewUserUsecase(log, transactor, userRepo, personalInfoRepo, hasher, app.dispatcher, auditService)
	authUsecase := usecase.NewAuthUsecase(log, userRepo, doctorRepo, hasher, jwtService, tokenStore)
	doctorUsecase := usecase.NewDoctorUsecase(log, transactor, doctorRepo, hasher, auditService)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(log, transactor, planRepo, subscriptionRepo, userRepo, locker, auditService)
	reportUsecase := usecase.NewReportUsecase(log, transactor, reportRepo, feedbackRepo, subscriptionRepo, doctorRepo, auditService)
	productUsecase := usecase.NewProductUsecase(log, productRepo, cartRepo)
	orderUsecase := usecase.NewOrderUsecase(log, transactor, orderRepo, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(log, transactor, prescriptionRepo, presOrderRepo, imageValidator, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator, jwtService),
		User:         handler.NewUserHandler(userUsecase, customValidator),
		Doctor:       handler.NewDoctorHandler(doctorUsecase, reportUsecase, customValidator),
		Subscription: handler.NewSubscriptionHandler(subscriptionUsecase, customValidator),
		Report:       handler.NewReportHandler(reportUsecase, customValidator),
		Product:      handler.NewProductHandler(productUsecase, customValidator),
		Order:        handler.NewOrderHandler(orderUsecase, customValidator),
		Prescription: handler.NewPrescriptionHandler(prescriptionUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
	}

	router := deliveryHttp.NewRouter(
		handlers,
		middleware.NewAuthMiddleware(jwtService, authUsecase),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close drains the mail queue, then closes database and Redis connections.
func (app *App) Close() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}
	if app.keyedMutex != nil {
		app.keyedMutex.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
