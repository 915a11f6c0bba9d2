package model

import "time"

// Booking status values.  A booking is created CONFIRMED because
// payment is charged synchronously at creation time; it transitions
// to CANCELLED exactly once and never leaves that state.
const (
    BookingPending   = "PENDING"
    BookingConfirmed = "CONFIRMED"
    BookingCancelled = "CANCELLED"
)

// Payment status values for a booking.
const (
    PaymentPending   = "PENDING"
    PaymentCompleted = "COMPLETED"
    PaymentFailed    = "FAILED"
)

// Booking records a reservation against either a venue (a date plus
// an optional check-in/out window) or an event (a ticket quantity,
// optionally with selected seats).  Exactly one of VenueID/EventID is
// set.  Monetary amounts are in currency units; PointsUsed and the
// platform fee are in points.  UserName, RefundAmount and
// RefundPercentage are deliberately denormalized snapshots kept for
// historical accuracy even if the source records later change.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – payer.
//  UserName         – payer display name captured at booking time.
//  VenueID          – booked venue, nil for event bookings.
//  EventID          – booked event, nil for venue bookings.
//  BookingDate      – venue date, or the event date at booking time.
//  CheckInTime      – optional intra-day window start (venue).
//  CheckOutTime     – optional intra-day window end (venue).
//  DurationHours    – venue booking duration in hours.
//  Quantity         – ticket count for event bookings.
//  SeatIDs          – legacy text form of selected seat ids (JSON
//                     array or CSV); new bookings link seats by FK.
//  TotalAmount      – total charged amount in currency units.
//  PointsUsed       – points portion of the payment.
//  RemainingAmount  – cash portion settled externally.
//  PaymentRef       – external payment reference for the cash part.
//  Status           – BookingPending/Confirmed/Cancelled.
//  PaymentStatus    – PaymentPending/Completed/Failed.
//  RefundAmount     – currency value refunded on cancellation.
//  RefundPercentage – applied refund tier.
//  CancelledAt      – cancellation timestamp.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
    ID               uint64     // bookings.id
    UserID           uint64     // bookings.user_id
    UserName         string     // bookings.user_name
    VenueID          *uint64    // bookings.venue_id (nullable)
    EventID          *uint64    // bookings.event_id (nullable)
    BookingDate      time.Time  // bookings.booking_date
    CheckInTime      *string    // bookings.check_in_time (nullable, "HH:MM")
    CheckOutTime     *string    // bookings.check_out_time (nullable, "HH:MM")
    DurationHours    *int       // bookings.duration_hours (nullable)
    Quantity         *int       // bookings.quantity (nullable)
    SeatIDs          *string    // bookings.seat_ids (nullable, legacy)
    TotalAmount      float64    // bookings.total_amount
    PointsUsed       int64      // bookings.points_used
    RemainingAmount  float64    // bookings.remaining_amount
    PaymentRef       *string    // bookings.payment_ref (nullable)
    Status           string     // bookings.status
    PaymentStatus    string     // bookings.payment_status
    RefundAmount     *float64   // bookings.refund_amount (nullable)
    RefundPercentage *int       // bookings.refund_percentage (nullable)
    CancelledAt      *time.Time // bookings.cancelled_at (nullable)
    CreatedAt        time.Time  // bookings.created_at
    UpdatedAt        time.Time  // bookings.updated_at
}

// TicketQuantity returns the number of tickets the booking holds,
// falling back to duration hours for legacy rows that stored the
// count there, and finally to one.
func (b *Booking) TicketQuantity() int {
    if b.Quantity != nil && *b.Quantity > 0 {
        return *b.Quantity
    }
    if b.DurationHours != nil && *b.DurationHours > 0 {
        return *b.DurationHours
    }
    return 1
}
