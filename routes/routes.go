package routes

import (
	"net/http"
	"time"

	"github.com/msutyak/careconnect/handlers"
	"github.com/msutyak/careconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account creation and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Register)
		api.POST("/login", hb.Login)

		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", hb.Logout)
	}
}

// RegisterProfileRoutes registers the authenticated profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.GetProfile)
		api.PUT("", hb.UpdateProfile)
		api.POST("/push-token", hb.SetPushToken)
		api.POST("/avatar", hb.UploadAvatar)
	}
}

// RegisterCaregiverRoutes registers listing, discovery and schedule endpoints.
func RegisterCaregiverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/caregivers")
	{
		// Discovery is public; browsing does not require an account.
		api.GET("/search", hb.SearchCaregivers)
		api.GET("/:id", hb.GetCaregiver)
		api.GET("/:id/schedule", hb.GetSchedule)
		api.GET("/:id/reviews", hb.ListCaregiverReviews)

		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.GetOwnCaregiver)
		api.PUT("/me", hb.UpdateCaregiver)
		api.PUT("/me/schedule", hb.SetSchedule)
		api.POST("/me/overrides", hb.SetOverride)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.CreateBooking)
		api.GET("", hb.ListBookings)
		api.GET("/:id", hb.GetBooking)
		api.POST("/:id/start", hb.StartBooking)
		api.POST("/:id/complete", hb.CompleteBooking)
		api.POST("/:id/cancel", hb.CancelBooking)
	}
}

// RegisterPaymentRoutes registers intent issuance, connect onboarding, and
// the webhook receiver. The webhook stays outside the auth group: Stripe
// authenticates with its signature, not a bearer token.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.StripeWebhook)

	api := r.Group("/api/payments")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/intent", hb.CreatePaymentIntent)
		api.GET("/booking/:bookingId", hb.GetPaymentStatus)
		api.POST("/connect/onboard", hb.StripeOnboard)
	}
}

// RegisterMessagingRoutes registers conversation endpoints.
func RegisterMessagingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.StartConversation)
		api.GET("", hb.ListConversations)
		api.GET("/:id/messages", hb.ListMessages)
		api.POST("/:id/messages", hb.SendMessage)
		api.POST("/:id/read", hb.MarkMessagesRead)
	}
}

// RegisterReviewRoutes registers review creation. Listing lives under the
// caregiver group.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.CreateReview)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.ListNotifications)
		api.POST("/push", hb.SendPush)
		api.POST("/:id/read", hb.MarkNotificationRead)
	}
}

// RegisterStorageRoutes registers media upload and URL resolution.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/upload", hb.UploadFile)
		api.GET("/url", hb.GetDownloadURL)
	}
}

// RegisterHealthRoute exposes the liveness probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(middleware.RateLimitMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterCaregiverRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterMessagingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
