package reservation

import (
	"time"

	"resortdesk/internal/domain/shared/dates"
	"resortdesk/internal/domain/shared/money"
)

// Refund is the outcome of applying the cancellation policy to a booking's
// advance payment.
type Refund struct {
	Amount float64
	Policy string
}

// CalculateRefund applies the tiered cancellation policy to the advance paid.
// A non-nil customAmount is a caller-negotiated override taken verbatim.
// Tiers count calendar days from the cancellation day to the check-in day:
//
//	<= 0 days  0% refund (cancelling on or after check-in)
//	<= 3 days  0% refund (inside 72 hours)
//	 < 7 days  50% refund
//	>= 7 days  85% refund
func CalculateRefund(checkIn time.Time, advancePaid float64, customAmount *float64, now time.Time) Refund {
	if customAmount != nil {
		return Refund{Amount: *customAmount, Policy: "Custom"}
	}
	daysUntil := dates.DaysBetween(now, checkIn)
	percent, policy := refundTier(daysUntil)
	return Refund{
		Amount: money.Round(advancePaid * float64(percent) / 100),
		Policy: policy,
	}
}

func refundTier(daysUntilCheckIn int) (percent int, policy string) {
	switch {
	case daysUntilCheckIn <= 0:
		return 0, "100% charge (cancelled on or after check-in)"
	case daysUntilCheckIn <= 3:
		return 0, "100% charge (within 72 hours of check-in)"
	case daysUntilCheckIn < 7:
		return 50, "50% refund (4-6 days before check-in)"
	default:
		return 85, "85% refund (7 or more days before check-in)"
	}
}
