package service

import (
	"math"
	"time"

	"github.com/Pranai222/eventvenue-platform/internal/model"
)

// RefundDecision is the outcome of the refund policy for one booking.
//
// Fields:
//   Percentage    → share of the booking total returned (0–100)
//   Amount        → refund value in currency, rounded to 2 decimals
//   Points        → refund converted to points at the current rate
//   Justification → human-readable reason recorded on the ledger entry
type RefundDecision struct {
	Percentage    int     `json:"percentage"`
	Amount        float64 `json:"amount"`
	Points        int64   `json:"points"`
	Justification string  `json:"justification"`
}

// CalculateRefund decides the refund for cancelling a booking.
// Rules are priority-ordered and the first match wins:
//
//  1. event cancelled by the vendor      → 100%
//  2. event rescheduled by the vendor    →  95%
//  3. two or more days before the date   → 100%
//  4. otherwise (late cancellation)      →  75%
//
// The reference date is the event date for event bookings and the
// booking date for venue bookings.  event may be nil for venue
// bookings.  Refunds are always paid in points, regardless of how
// the booking was originally paid; conversionRate maps currency to
// points the same way booking payment does.
func CalculateRefund(b *model.Booking, event *model.Event, now time.Time, conversionRate int64) RefundDecision {
	percentage := 75
	justification := "late cancellation"

	referenceDate := b.BookingDate
	if event != nil {
		referenceDate = event.EventDate
		switch {
		case event.IsCancelled:
			percentage = 100
			justification = "event cancelled by vendor"
		case event.WasRescheduled:
			percentage = 95
			justification = "event rescheduled by vendor"
		}
	}
	if percentage == 75 && DaysUntil(now, referenceDate) >= 2 {
		percentage = 100
		justification = "advance cancellation"
	}

	amount := RoundCurrency(b.TotalAmount * float64(percentage) / 100)
	return RefundDecision{
		Percentage:    percentage,
		Amount:        amount,
		Points:        PointsForAmount(amount, conversionRate),
		Justification: justification,
	}
}

// DaysUntil returns the whole calendar days from now to the target
// date.  Both sides are truncated to midnight so "tomorrow" is one
// day away no matter what time it is today.  Past dates yield a
// negative count.
func DaysUntil(now, target time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}

// RoundCurrency rounds a currency amount to 2 decimal places,
// half away from zero.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// PointsForAmount converts a currency amount into points at the
// given conversion rate, rounding half away from zero.
func PointsForAmount(amount float64, conversionRate int64) int64 {
	return int64(math.Round(amount * float64(conversionRate)))
}
