package payments

import "fmt"

// Error is a typed payment-flow error carrying a stable code. Handlers map
// codes onto HTTP statuses; wrapped causes stay server-side.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrInvalidAmount         = &Error{Code: "invalid_amount", Message: "amount must be a non-negative integer of cents"}
	ErrBookingNotFound       = &Error{Code: "booking_not_found", Message: "booking not found"}
	ErrProfileNotFound       = &Error{Code: "profile_not_found", Message: "profile not found"}
	ErrNotACaregiver         = &Error{Code: "not_a_caregiver", Message: "caregiver record not found; only caregivers can onboard with Stripe"}
	ErrCaregiverNotOnboarded = &Error{Code: "caregiver_not_onboarded", Message: "caregiver has not set up Stripe payouts"}
	ErrPaymentNotFound       = &Error{Code: "payment_not_found", Message: "no payment record for this booking"}
	ErrNotParticipant        = &Error{Code: "not_booking_participant", Message: "booking does not belong to this profile"}
	ErrInvalidSignature      = &Error{Code: "invalid_signature", Message: "webhook signature verification failed"}
	ErrFailedToPersist       = &Error{Code: "failed_to_persist", Message: "failed to save Stripe account"}
)
