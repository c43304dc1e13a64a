package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/msutyak/careconnect/services/payments"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreatePaymentIntentHandler issues the payment sheet for a booking.
func CreatePaymentIntentHandler(svc payments.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		if authedProfileID(c) == "" {
			return
		}

		var input struct {
			BookingID string `json:"bookingId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "bookingId is required")
			return
		}

		sheet, err := svc.CreatePaymentIntent(c.Request.Context(), input.BookingID)
		if err != nil {
			switch {
			case errors.Is(err, payments.ErrBookingNotFound), errors.Is(err, payments.ErrProfileNotFound):
				utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			case errors.Is(err, payments.ErrCaregiverNotOnboarded), errors.Is(err, payments.ErrInvalidAmount):
				utils.JSONError(c, http.StatusBadRequest, "Cannot take payment", err.Error())
			default:
				logger.Error("payment intent issuance failed", zap.String("booking", input.BookingID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Payment setup failed", "please try again")
			}
			return
		}
		c.JSON(http.StatusOK, sheet)
	}
}

// StripeOnboardHandler creates (or reuses) the caregiver's Express account
// and returns a hosted onboarding link.
func StripeOnboardHandler(svc payments.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input struct {
			ReturnURL  string `json:"returnUrl"`
			RefreshURL string `json:"refreshUrl"`
		}
		// Body is optional; defaults are deep links back into the app.
		_ = c.ShouldBindJSON(&input)

		link, err := svc.CreateOnboardingLink(c.Request.Context(), profileID, input.ReturnURL, input.RefreshURL)
		if err != nil {
			switch {
			case errors.Is(err, payments.ErrNotACaregiver):
				utils.JSONError(c, http.StatusNotFound, "Not a caregiver", "only caregiver accounts can onboard for payouts")
			default:
				logger.Error("onboarding link creation failed", zap.String("profile", profileID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Onboarding failed", "please try again")
			}
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

// GetPaymentStatusHandler returns the payment record for a booking so the
// client can poll charge state after presenting the payment sheet.
func GetPaymentStatusHandler(svc payments.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		bookingID := c.Param("bookingId")

		payment, err := svc.GetPaymentForBooking(c.Request.Context(), profileID, bookingID)
		if err != nil {
			switch {
			case errors.Is(err, payments.ErrBookingNotFound), errors.Is(err, payments.ErrPaymentNotFound):
				utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			case errors.Is(err, payments.ErrNotParticipant):
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "you are not part of this booking")
			default:
				logger.Error("payment status lookup failed", zap.String("booking", bookingID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Lookup failed", "please try again")
			}
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

// StripeWebhookHandler receives provider events. A 2xx acknowledges the
// delivery; anything else makes Stripe retry, so only transient failures map
// to 5xx.
func StripeWebhookHandler(svc payments.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid payload", "could not read request body")
			return
		}
		sigHeader := c.GetHeader("Stripe-Signature")
		if sigHeader == "" {
			utils.JSONError(c, http.StatusBadRequest, "Invalid payload", "missing Stripe-Signature header")
			return
		}

		if err := svc.HandleWebhookEvent(c.Request.Context(), payload, sigHeader); err != nil {
			if errors.Is(err, payments.ErrInvalidSignature) {
				utils.JSONError(c, http.StatusBadRequest, "Invalid signature", "webhook signature verification failed")
				return
			}
			logger.Error("webhook processing failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Processing failed", "event will be retried")
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
