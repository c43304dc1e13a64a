package handlers

import (
	"github.com/msutyak/careconnect/services/booking"
	"github.com/msutyak/careconnect/services/caregiver"
	"github.com/msutyak/careconnect/services/messaging"
	"github.com/msutyak/careconnect/services/notification"
	"github.com/msutyak/careconnect/services/payments"
	"github.com/msutyak/careconnect/services/review"
	"github.com/msutyak/careconnect/services/storage"
	"github.com/msutyak/careconnect/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers so route registration has one
// wiring point.
type HandlerBundle struct {
	// Auth
	Register gin.HandlerFunc
	Login    gin.HandlerFunc
	Logout   gin.HandlerFunc

	// Profile
	GetProfile    gin.HandlerFunc
	UpdateProfile gin.HandlerFunc
	SetPushToken  gin.HandlerFunc
	UploadAvatar  gin.HandlerFunc

	// Caregivers
	GetCaregiver     gin.HandlerFunc
	GetOwnCaregiver  gin.HandlerFunc
	UpdateCaregiver  gin.HandlerFunc
	SearchCaregivers gin.HandlerFunc
	SetSchedule      gin.HandlerFunc
	GetSchedule      gin.HandlerFunc
	SetOverride      gin.HandlerFunc

	// Bookings
	CreateBooking   gin.HandlerFunc
	GetBooking      gin.HandlerFunc
	ListBookings    gin.HandlerFunc
	StartBooking    gin.HandlerFunc
	CompleteBooking gin.HandlerFunc
	CancelBooking   gin.HandlerFunc

	// Payments
	CreatePaymentIntent gin.HandlerFunc
	GetPaymentStatus    gin.HandlerFunc
	StripeOnboard       gin.HandlerFunc
	StripeWebhook       gin.HandlerFunc

	// Messaging
	StartConversation gin.HandlerFunc
	ListConversations gin.HandlerFunc
	SendMessage       gin.HandlerFunc
	ListMessages      gin.HandlerFunc
	MarkMessagesRead  gin.HandlerFunc

	// Reviews
	CreateReview         gin.HandlerFunc
	ListCaregiverReviews gin.HandlerFunc

	// Notifications
	ListNotifications    gin.HandlerFunc
	MarkNotificationRead gin.HandlerFunc
	SendPush             gin.HandlerFunc

	// Storage
	UploadFile     gin.HandlerFunc
	GetDownloadURL gin.HandlerFunc
}

// Services is everything the bundle needs wired in from main.
type Services struct {
	Users         user.UserService
	Caregivers    caregiver.CaregiverService
	Bookings      booking.BookingService
	Payments      payments.PaymentService
	Messaging     messaging.MessagingService
	Reviews       review.ReviewService
	Notifications notification.NotificationService
	Storage       storage.StorageService
}

// NewHandlerBundle builds every handler from the provided services.
func NewHandlerBundle(s Services) *HandlerBundle {
	return &HandlerBundle{
		Register: RegisterHandler(s.Users),
		Login:    LoginHandler(s.Users),
		Logout:   LogoutHandler(s.Users),

		GetProfile:    GetProfileHandler(s.Users),
		UpdateProfile: UpdateProfileHandler(s.Users),
		SetPushToken:  SetPushTokenHandler(s.Users),
		UploadAvatar:  UploadAvatarHandler(s.Users, s.Storage),

		GetCaregiver:     GetCaregiverHandler(s.Caregivers),
		GetOwnCaregiver:  GetOwnCaregiverHandler(s.Caregivers),
		UpdateCaregiver:  UpdateCaregiverHandler(s.Caregivers),
		SearchCaregivers: SearchCaregiversHandler(s.Caregivers),
		SetSchedule:      SetScheduleHandler(s.Caregivers),
		GetSchedule:      GetScheduleHandler(s.Caregivers),
		SetOverride:      SetOverrideHandler(s.Caregivers),

		CreateBooking:   CreateBookingHandler(s.Bookings),
		GetBooking:      GetBookingHandler(s.Bookings),
		ListBookings:    ListBookingsHandler(s.Bookings),
		StartBooking:    StartBookingHandler(s.Bookings),
		CompleteBooking: CompleteBookingHandler(s.Bookings),
		CancelBooking:   CancelBookingHandler(s.Bookings),

		CreatePaymentIntent: CreatePaymentIntentHandler(s.Payments),
		GetPaymentStatus:    GetPaymentStatusHandler(s.Payments),
		StripeOnboard:       StripeOnboardHandler(s.Payments),
		StripeWebhook:       StripeWebhookHandler(s.Payments),

		StartConversation: StartConversationHandler(s.Messaging),
		ListConversations: ListConversationsHandler(s.Messaging),
		SendMessage:       SendMessageHandler(s.Messaging),
		ListMessages:      ListMessagesHandler(s.Messaging),
		MarkMessagesRead:  MarkMessagesReadHandler(s.Messaging),

		CreateReview:         CreateReviewHandler(s.Reviews),
		ListCaregiverReviews: ListCaregiverReviewsHandler(s.Reviews),

		ListNotifications:    ListNotificationsHandler(s.Notifications),
		MarkNotificationRead: MarkNotificationReadHandler(s.Notifications),
		SendPush:             SendPushHandler(s.Notifications),

		UploadFile:     UploadFileHandler(s.Storage),
		GetDownloadURL: GetDownloadURLHandler(s.Storage),
	}
}
