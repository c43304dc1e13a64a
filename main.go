package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msutyak/careconnect/config"
	"github.com/msutyak/careconnect/cron"
	"github.com/msutyak/careconnect/database"
	availabilityRepo "github.com/msutyak/careconnect/database/repository/availability"
	bookingRepo "github.com/msutyak/careconnect/database/repository/booking"
	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	messagingRepo "github.com/msutyak/careconnect/database/repository/messaging"
	notificationRepo "github.com/msutyak/careconnect/database/repository/notification"
	paymentRepo "github.com/msutyak/careconnect/database/repository/payment"
	profileRepo "github.com/msutyak/careconnect/database/repository/profile"
	recipientRepo "github.com/msutyak/careconnect/database/repository/recipient"
	reviewRepo "github.com/msutyak/careconnect/database/repository/review"
	"github.com/msutyak/careconnect/handlers"
	"github.com/msutyak/careconnect/routes"
	bookingSvc "github.com/msutyak/careconnect/services/booking"
	caregiverSvc "github.com/msutyak/careconnect/services/caregiver"
	messagingSvc "github.com/msutyak/careconnect/services/messaging"
	notificationSvc "github.com/msutyak/careconnect/services/notification"
	"github.com/msutyak/careconnect/services/payments"
	reviewSvc "github.com/msutyak/careconnect/services/review"
	userSvc "github.com/msutyak/careconnect/services/user"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage: %v", err)
	}

	// repositories.
	profiles := profileRepo.NewMongoProfileRepo()
	caregivers := caregiverRepo.NewMongoCaregiverRepo()
	recipients := recipientRepo.NewMongoRecipientRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	paymentRecords := paymentRepo.NewMongoPaymentRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()
	conversations := messagingRepo.NewMongoMessagingRepo()
	reviews := reviewRepo.NewMongoReviewRepo()
	availability := availabilityRepo.NewMongoAvailabilityRepo()

	// background task client.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer taskClient.Close()

	// services.
	notificationService := &notificationSvc.DefaultNotificationService{
		Repo:     notifications,
		Profiles: profiles,
		Tasks:    taskClient,
		Logger:   logger,
	}

	userService := &userSvc.DefaultUserService{
		Profiles:   profiles,
		Caregivers: caregivers,
		Recipients: recipients,
		Logger:     logger,
	}

	caregiverService := &caregiverSvc.DefaultCaregiverService{
		Caregivers:   caregivers,
		Availability: availability,
		Logger:       logger,
	}

	// The booking-creation path and the intent-issuing path must price with
	// the same percentage or the persisted split drifts from the charged
	// application fee.
	feePercent := config.AppConfig.PlatformFeePercent
	if feePercent == 0 {
		feePercent = payments.PlatformFeePercent
	}

	bookingService := &bookingSvc.DefaultBookingService{
		Bookings:      bookings,
		Caregivers:    caregivers,
		Recipients:    recipients,
		Notifications: notificationService,
		FeePercent:    feePercent,
		Logger:        logger,
	}

	paymentService := &payments.DefaultPaymentService{
		Gateway:       payments.NewStripeGateway(),
		Bookings:      bookings,
		Payments:      paymentRecords,
		Caregivers:    caregivers,
		Recipients:    recipients,
		Profiles:      profiles,
		Notifications: notificationService,
		Dedupe:        payments.NewRedisDedupe(utils.GetCacheClient()),
		FeePercent:    feePercent,
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		Logger:        logger,
	}

	messagingService := &messagingSvc.DefaultMessagingService{
		Repo:          conversations,
		Notifications: notificationService,
		Logger:        logger,
	}

	reviewService := &reviewSvc.DefaultReviewService{
		Reviews:       reviews,
		Bookings:      bookings,
		Caregivers:    caregivers,
		Recipients:    recipients,
		Notifications: notificationService,
		Logger:        logger,
	}

	// background worker for pushes, reminders, and the daily sweep.
	worker := cron.StartWorker(notificationService, bookings, recipients)
	defer worker.Shutdown()

	// router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Users:         userService,
		Caregivers:    caregiverService,
		Bookings:      bookingService,
		Payments:      paymentService,
		Messaging:     messagingService,
		Reviews:       reviewService,
		Notifications: notificationService,
		Storage:       storageService,
	})
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
