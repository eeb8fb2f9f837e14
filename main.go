package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"surfcamp/internal/config"
	"surfcamp/internal/handlers"
	"surfcamp/internal/middleware"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
	"surfcamp/internal/routes"
	"surfcamp/internal/services"
	"surfcamp/pkg/cache"
	"surfcamp/pkg/logger"
	"surfcamp/pkg/rabbitmq"
	"surfcamp/pkg/storage"
)

func main() {
	cfg := config.Load()

	log, cleanup := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, File: cfg.LogFile})
	defer cleanup()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserPassword{},
		&models.Country{},
		&models.Surfboard{},
		&models.Booking{},
	); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- Booking event publisher ---
	// The API stays up without a broker; booking events are best-effort.
	var events services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Warn("rabbitmq unavailable, booking events disabled", zap.Error(err))
	} else {
		defer mqClient.Close()
		events = mqClient

		// Drain the queue so events don't pile up while nothing else
		// consumes them. Downstream processing hooks in here.
		if err := mqClient.Consume(func(msg amqp.Delivery) error {
			log.Info("booking event",
				zap.String("event", msg.Type),
				zap.ByteString("payload", msg.Body))
			return nil
		}); err != nil {
			log.Warn("failed to start booking event consumer", zap.Error(err))
		}
	}

	// --- Object storage ---
	files, err := storage.NewMinioStorage(storage.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
		BaseURL:   cfg.StorageBaseURL,
	})
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// --- Settings cache ---
	settingsCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer settingsCache.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository()
	passwordRepo := repositories.NewGORMUserPasswordRepository()
	countryRepo := repositories.NewGORMCountryRepository()
	surfboardRepo := repositories.NewGORMSurfboardRepository()
	bookingRepo := repositories.NewGORMBookingRepository()

	// --- Services ---
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(userRepo, passwordRepo, tokens)
	userService := services.NewUserService(userRepo)
	settingService := services.NewSettingService(countryRepo, surfboardRepo, settingsCache, cfg.SettingsTTL)
	bookingService := services.NewBookingService(bookingRepo, countryRepo, surfboardRepo, files, events, log)

	// --- Handlers ---
	handlerSet := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Users:    handlers.NewUserHandler(userService),
		Bookings: handlers.NewBookingHandler(bookingService, files, cfg.MaxUploadBytes),
		Settings: handlers.NewSettingHandler(settingService),
	}

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(log),
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024, // upload cap plus form-field headroom
	})
	app.Use(middleware.AccessLog(log))
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// One transaction per API request. Recover sits inside the transaction
	// scope so a panicking handler still rolls back.
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.Transaction(db))
	apiV1.Use(recover.New())
	routes.Mount(apiV1, routes.Table(handlerSet), middleware.AuthRequired(tokens, log))

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
