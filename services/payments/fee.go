package payments

import "math"

// PlatformFeePercent is the platform's cut of every charge. Every call site
// that needs a split goes through ComputeSplit with this constant, so the
// intent-issuing path and the booking-creation path can never disagree.
const PlatformFeePercent float64 = 15

// Split is the three-way division of a booking total. The invariant
// PlatformFeeCents + CaregiverAmountCents == total holds exactly because the
// caregiver amount is derived by subtraction, never computed independently.
type Split struct {
	PlatformFeeCents     int64
	CaregiverAmountCents int64
}

// ComputeSplit divides a total (integer cents) into the platform fee and the
// caregiver amount. The fee is rounded half-up to the nearest cent. Pure and
// deterministic; negative totals are rejected with ErrInvalidAmount.
func ComputeSplit(totalCents int64, feePercent float64) (Split, error) {
	if totalCents < 0 {
		return Split{}, ErrInvalidAmount
	}
	fee := int64(math.Round(float64(totalCents) * feePercent / 100))
	return Split{
		PlatformFeeCents:     fee,
		CaregiverAmountCents: totalCents - fee,
	}, nil
}
