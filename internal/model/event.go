package model

import "time"

// Event booking types.  QUANTITY events sell anonymous tickets
// against a counter; SEAT_SELECTION events additionally assign
// specific seats to each booking.
const (
    BookingTypeQuantity = "QUANTITY"
    BookingTypeSeat     = "SEAT_SELECTION"
)

// Event is a vendor-run occasion with finite ticket inventory.  It
// carries two independent capped counters: EditCount guards generic
// location/time edits, RescheduleCount guards the reschedule
// operation.  Both cap at two, after which the corresponding
// operation is permanently rejected.  OriginalEventDate and
// OriginalLocation are point-in-time snapshots taken before the
// first reschedule, kept for audit and display, not for rollback.
//
// Fields:
//  ID                 – primary key identifier.
//  VendorID           – owning vendor.
//  Name               – event title.
//  Description        – free-form description.
//  EventDate          – scheduled date.
//  EventTime          – scheduled start time ("HH:MM"), optional.
//  Location           – where the event takes place.
//  PricePerTicket     – list price per ticket in currency units.
//  BookingType        – BookingTypeQuantity or BookingTypeSeat.
//  TotalTickets       – inventory ceiling.
//  TicketsAvailable   – remaining sellable tickets, bounded by
//                       TotalTickets, decremented on booking and
//                       restored on cancellation.
//  IsActive           – false once cancelled or retired.
//  RescheduleCount    – times the event has been rescheduled (cap 2).
//  WasRescheduled     – true after the first reschedule; grants the
//                       95% refund tier to existing bookings.
//  RescheduleReason   – vendor-supplied reason for the last move.
//  LastRescheduledAt  – timestamp of the last reschedule.
//  OriginalEventDate  – date before the first reschedule.
//  OriginalLocation   – location before the first reschedule.
//  IsCancelled        – true once the vendor cancels the event.
//  CancellationReason – vendor-supplied cancellation reason.
//  CancelledAt        – cancellation timestamp.
//  EditCount          – generic location/time edit counter (cap 2).
//  IsEditLocked       – true once EditCount reaches the cap.
//  Phone              – vendor contact phone shown to attendees.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Event struct {
    ID                 uint64     // events.id
    VendorID           uint64     // events.vendor_id
    Name               string     // events.name
    Description        string     // events.description
    EventDate          time.Time  // events.event_date
    EventTime          *string    // events.event_time (nullable, "HH:MM")
    Location           string     // events.location
    PricePerTicket     float64    // events.price_per_ticket
    BookingType        string     // events.booking_type
    TotalTickets       int        // events.total_tickets
    TicketsAvailable   int        // events.tickets_available
    IsActive           bool       // events.is_active
    RescheduleCount    int        // events.reschedule_count
    WasRescheduled     bool       // events.was_rescheduled
    RescheduleReason   *string    // events.reschedule_reason (nullable)
    LastRescheduledAt  *time.Time // events.last_rescheduled_at (nullable)
    OriginalEventDate  *time.Time // events.original_event_date (nullable)
    OriginalLocation   *string    // events.original_location (nullable)
    IsCancelled        bool       // events.is_cancelled
    CancellationReason *string    // events.cancellation_reason (nullable)
    CancelledAt        *time.Time // events.cancelled_at (nullable)
    EditCount          int        // events.edit_count
    IsEditLocked       bool       // events.is_edit_locked
    Phone              string     // events.phone
    CreatedAt          time.Time  // events.created_at
    UpdatedAt          time.Time  // events.updated_at
}

// EventSeat is a single sellable seat of a SEAT_SELECTION event.  A
// seat is free while BookingID is nil and claimed once a booking
// links to it; cancellation clears the link.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – event the seat belongs to.
//  SeatLabel – display label such as "A12".
//  Category  – pricing category (e.g. "VIP", "GENERAL").
//  Price     – seat price in currency units.
//  BookingID – claiming booking, nil while the seat is free.
type EventSeat struct {
    ID        uint64  // event_seats.id
    EventID   uint64  // event_seats.event_id
    SeatLabel string  // event_seats.seat_label
    Category  string  // event_seats.category
    Price     float64 // event_seats.price
    BookingID *uint64 // event_seats.booking_id (nullable)
}
