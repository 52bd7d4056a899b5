package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-voice-call-reminder/config"
	deliveryHttp "go-voice-call-reminder/internal/delivery/http"
	"go-voice-call-reminder/internal/delivery/http/handler"
	"go-voice-call-reminder/internal/delivery/http/middleware"
	"go-voice-call-reminder/internal/infrastructure/cache"
	"go-voice-call-reminder/internal/infrastructure/database"
	"go-voice-call-reminder/internal/infrastructure/voicecall"
	"go-voice-call-reminder/internal/repository"
	"go-voice-call-reminder/internal/service"
	"go-voice-call-reminder/internal/usecase"
	"go-voice-call-reminder/pkg/taskgroup"
	"go-voice-call-reminder/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Tasks       *taskgroup.Group
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Redis is optional: without it slot booking falls back to database
	// counting.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logrus.Warnf("Redis unavailable, slot reservation will use database counts: %v", err)
		redisClient = nil
	}
	app.RedisClient = redisClient

	app.Tasks = taskgroup.New(logrus.StandardLogger())

	server := initializeServer(cfg, db, redisClient, app.Tasks)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, tasks *taskgroup.Group) *http.Server {
	customValidator := validator.NewValidator()

	// Repositories
	contactRepo := repository.NewContactRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()

	log := logrus.StandardLogger()

	// Services
	callClient := voicecall.NewClient(cfg.CallAPI)
	dispatcher := service.NewCallDispatcher(db, log, contactRepo, callClient)
	slotService := service.NewSlotReserveService(db, redisClient, log, contactRepo, cfg.Booking.SlotCapacity)

	// Usecases
	schedulerUsecase := usecase.NewCallSchedulerUsecase(db, log, contactRepo, prescriptionRepo, dispatcher, tasks)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, contactRepo, slotService, cfg.Booking)

	// Handlers
	callHandler := handler.NewCallHandler(schedulerUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)

	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewRouter(callHandler, appointmentHandler, corsMiddleware)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background tasks and closes all connections. Dispatchers still
// waiting on their scheduled time are abandoned; scheduled calls do not
// survive a restart.
func (app *App) Close() {
	if app.Tasks != nil {
		app.Tasks.Shutdown()
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
