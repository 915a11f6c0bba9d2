package service

// Quote is the price breakdown for a prospective booking.
//
// Fields:
//   TotalAmount         → list price in currency (unit price × units)
//   FullPointsNeeded    → TotalAmount converted to points
//   PointsToUse         → points the payer will spend
//   PlatformFee         → flat per-booking fee, in points
//   TotalPointsRequired → PointsToUse + PlatformFee (balance check target)
//   RemainingAmount     → cash portion when the payer pays partly in cash
type Quote struct {
	TotalAmount         float64 `json:"total_amount"`
	FullPointsNeeded    int64   `json:"full_points_needed"`
	PointsToUse         int64   `json:"points_to_use"`
	PlatformFee         int64   `json:"platform_fee"`
	TotalPointsRequired int64   `json:"total_points_required"`
	RemainingAmount     float64 `json:"remaining_amount"`
}

// ComputeQuote prices a booking of units at unitPrice.  units is the
// ticket quantity for events or the duration in hours for venues.
//
// pointsToUse < 0 means "pay fully in points"; the payer is then
// charged FullPointsNeeded.  Otherwise pointsToUse is taken as-is and
// the remainder of the list price is due in cash.  Either way the
// flat platform fee is added in points on top.  The vendor is later
// settled FullPointsNeeded regardless of the payer's points/cash
// split; the platform absorbs the difference.
func ComputeQuote(unitPrice float64, units int, conversionRate int64, pointsToUse int64, platformFee int64) Quote {
	total := RoundCurrency(unitPrice * float64(units))
	full := PointsForAmount(total, conversionRate)

	use := pointsToUse
	if use < 0 {
		use = full
	}

	remaining := 0.0
	if use < full && conversionRate > 0 {
		remaining = RoundCurrency(float64(full-use) / float64(conversionRate))
	}

	return Quote{
		TotalAmount:         total,
		FullPointsNeeded:    full,
		PointsToUse:         use,
		PlatformFee:         platformFee,
		TotalPointsRequired: use + platformFee,
		RemainingAmount:     remaining,
	}
}

// WithTrustedTotal overrides the computed total with the amount the
// client was previously shown, keeping the charge consistent with the
// earlier quote even if settings changed in between.  Non-positive
// hints are ignored.
func (q Quote) WithTrustedTotal(hint float64) Quote {
	if hint > 0 {
		q.TotalAmount = RoundCurrency(hint)
	}
	return q
}
