package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sgtpi-agenda/config"
	deliveryHttp "sgtpi-agenda/internal/delivery/http"
	"sgtpi-agenda/internal/delivery/http/handler"
	"sgtpi-agenda/internal/delivery/http/middleware"
	"sgtpi-agenda/internal/infrastructure/cache"
	"sgtpi-agenda/internal/infrastructure/database"
	"sgtpi-agenda/internal/repository"
	"sgtpi-agenda/internal/service"
	"sgtpi-agenda/internal/usecase"
	"sgtpi-agenda/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	notificationBus *service.NotificationBus
	mailer          *service.MailerService
	sweeper         *service.AgendaSweeper
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations up front
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initialize(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, services, usecases, handlers and the server
func (app *App) initialize() error {
	cfg := app.Config
	db := app.DB

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	reminderRepo := repository.NewReminderRepository()
	patientRepo := repository.NewPatientRepository()
	professionalRepo := repository.NewProfessionalRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Seed the single professional of the deployment
	if err := professionalRepo.EnsureDefault(db, cfg.Agenda.ProfessionalID, cfg.Agenda.ProfessionalEmail); err != nil {
		return fmt.Errorf("failed to seed professional: %w", err)
	}

	// Initialize services
	conflictChecker := service.NewConflictChecker(appointmentRepo)
	slotLocker := service.NewRedisSlotLocker(app.RedisClient, 10*time.Second)
	auditService := service.NewAuditService(log, auditLogRepo)
	reportService := service.NewReportService(db, log, appointmentRepo)

	app.notificationBus = service.NewNotificationBus(64, log)
	app.mailer = service.NewMailerService(cfg.SMTP, log)
	app.mailer.Start(app.notificationBus.Events())

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(
		db, log, cfg.Agenda,
		appointmentRepo, patientRepo, professionalRepo, reminderRepo,
		conflictChecker, slotLocker, app.notificationBus, auditService,
	)
	reminderUsecase := usecase.NewReminderUsecase(
		db, log, cfg.Agenda,
		reminderRepo, appointmentRepo, app.notificationBus,
	)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize sweeper
	app.sweeper = service.NewAgendaSweeper(log, cfg.Agenda.SweepInterval, reminderUsecase, appointmentUsecase)
	app.sweeper.Start()

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	reminderHandler := handler.NewReminderHandler(reminderUsecase)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportService)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, reminderHandler, patientHandler, reportHandler, auditLogHandler, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: httpRouter,
	}

	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop background workers, then drain pending emails
	app.sweeper.Stop()
	app.notificationBus.Close()
	app.mailer.Wait()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
