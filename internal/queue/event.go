// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking completes. It
// carries the full settlement breakdown so downstream consumers can
// log, notify, or feed analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID       uint64   `json:"booking_id"`
	UserID          uint64   `json:"user_id"`
	UserName        string   `json:"user_name"`
	UserEmail       string   `json:"user_email"`
	VenueID         uint64   `json:"venue_id,omitempty"`
	EventID         uint64   `json:"event_id,omitempty"`
	TargetName      string   `json:"target_name"`
	BookingDate     string   `json:"booking_date"`
	Quantity        int      `json:"quantity"`
	SeatLabels      []string `json:"seats,omitempty"`
	TotalAmount     float64  `json:"total_amount"`
	PointsUsed      int64    `json:"points_used"`
	PlatformFee     int64    `json:"platform_fee"`
	RemainingAmount float64  `json:"remaining_amount"`
	VendorCredited  int64    `json:"vendor_credited"`
	ConfirmedAt     string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled,
// whether by the payer or as part of an event cancellation cascade.
// The refund breakdown states the points credited and why; cash is
// never refunded.
type BookingCancelledEvent struct {
	BookingID        uint64  `json:"booking_id"`
	UserID           uint64  `json:"user_id"`
	UserName         string  `json:"user_name"`
	UserEmail        string  `json:"user_email"`
	TargetName       string  `json:"target_name"`
	RefundPercentage int     `json:"refund_percentage"`
	RefundAmount     float64 `json:"refund_amount"`
	PointsRefunded   int64   `json:"points_refunded"`
	Justification    string  `json:"justification"`
	CancelledAt      string  `json:"cancelled_at"`
}

// EventRescheduledEvent is published once per affected payer when a
// vendor reschedules an event, carrying both old and new schedule so
// notifications can show the change.
type EventRescheduledEvent struct {
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	UserEmail   string `json:"user_email"`
	OldDate     string `json:"old_date"`
	NewDate     string `json:"new_date"`
	OldTime     string `json:"old_time,omitempty"`
	NewTime     string `json:"new_time,omitempty"`
	OldLocation string `json:"old_location,omitempty"`
	NewLocation string `json:"new_location,omitempty"`
	Reason      string `json:"reason"`
}

// EventCancelledEvent is published when a vendor cancels an event
// outright, after the per-booking refund cascade has been attempted.
type EventCancelledEvent struct {
	EventID          uint64 `json:"event_id"`
	EventName        string `json:"event_name"`
	VendorID         uint64 `json:"vendor_id"`
	Reason           string `json:"reason"`
	BookingsRefunded int    `json:"bookings_refunded"`
	BookingsFailed   int    `json:"bookings_failed"`
	CancelledAt      string `json:"cancelled_at"`
}
