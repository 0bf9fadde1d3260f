package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/application"
	"github.com/petstay/service-booking/internal/auth"
	"github.com/petstay/service-booking/internal/config"
	"github.com/petstay/service-booking/internal/database"
	bookingEvents "github.com/petstay/service-booking/internal/events"
	"github.com/petstay/service-booking/internal/handler"
	"github.com/petstay/service-booking/internal/health"
	"github.com/petstay/service-booking/internal/kafka"
	"github.com/petstay/service-booking/internal/logger"
	"github.com/petstay/service-booking/internal/middleware"
	"github.com/petstay/service-booking/internal/notify"
	"github.com/petstay/service-booking/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.PetModel{},
			&repository.ReviewModel{},
			&repository.NotificationModel{},
			&repository.AvailabilityModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 15*time.Minute)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	petRepo := repository.NewGormPetRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	availabilityRepo := repository.NewGormAvailabilityRepository(db)

	// Initialize notifier and application services
	notifier := notify.NewNotifier(notificationRepo, kafkaProducer, log)

	bookingService := application.NewBookingService(bookingRepo, petRepo, notifier, kafkaProducer, log)
	reviewService := application.NewReviewService(reviewRepo, bookingRepo, log)
	notificationService := application.NewNotificationService(notificationRepo, log)
	couponService := application.NewCouponService(bookingRepo, log)
	petService := application.NewPetService(petRepo, log)
	availabilityService := application.NewAvailabilityService(availabilityRepo, log)

	// Start Kafka consumers in goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Separate consumer groups so the two readers never share a rebalance.
	reminderConsumer := bookingEvents.NewReminderEventConsumer(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.GroupPrefix+"booking-reminders", notifier, log)
	defer func() { _ = reminderConsumer.Close() }()

	messageConsumer := bookingEvents.NewMessageEventConsumer(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.GroupPrefix+"booking-messages", notifier, log)
	defer func() { _ = messageConsumer.Close() }()

	go func() {
		if err := reminderConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("reminder event consumer error", zap.Error(err))
		}
	}()
	go func() {
		if err := messageConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("message event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	couponHandler := handler.NewCouponHandler(couponService)
	petHandler := handler.NewPetHandler(petService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	adminHandler := handler.NewAdminHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-booking")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	reviewHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	notificationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	couponHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	petHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	availabilityHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
