package repository

import (
    "context"
    "database/sql"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

// EventRepo provides persistence for events and the atomic ticket
// inventory operations.  Reserving tickets is a single
// decrement-if-available statement, so two concurrent bookings
// against the last ticket cannot both succeed: one sees zero
// affected rows and fails with ErrSoldOut.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// CreateTx inserts an event within an existing transaction and
// populates the generated ID.  TicketsAvailable starts at
// TotalTickets; the original date/location snapshots are captured at
// insert time for later reschedule audit.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
    const q = `INSERT INTO events (vendor_id, name, description, event_date, event_time, location,
                                   price_per_ticket, booking_type, total_tickets, tickets_available,
                                   is_active, original_event_date, original_location, phone)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, e.VendorID, e.Name, e.Description,
        e.EventDate.Format("2006-01-02"), nullableStr(e.EventTime), e.Location,
        e.PricePerTicket, e.BookingType, e.TotalTickets, e.TotalTickets,
        e.EventDate.Format("2006-01-02"), e.Location, e.Phone)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)
    e.TicketsAvailable = e.TotalTickets
    e.IsActive = true
    return nil
}

// GetByID loads an event.  sql.ErrNoRows is returned when absent.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
    return scanEvent(r.db.QueryRowContext(ctx, eventSelect+` WHERE id = ?`, id))
}

// GetByIDTx is GetByID within an existing transaction.
func (r *EventRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Event, error) {
    return scanEvent(tx.QueryRowContext(ctx, eventSelect+` WHERE id = ?`, id))
}

// ListByVendor returns a vendor's events, newest first.
func (r *EventRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Event, error) {
    rows, err := r.db.QueryContext(ctx, eventSelect+` WHERE vendor_id = ? ORDER BY created_at DESC`, vendorID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    events := make([]model.Event, 0)
    for rows.Next() {
        e, err := scanEvent(rows)
        if err != nil {
            return nil, err
        }
        events = append(events, *e)
    }
    return events, rows.Err()
}

// ReserveTicketsTx atomically takes qty tickets from the event's
// remaining inventory.  The availability guard is part of the
// statement; zero affected rows means the inventory cannot cover the
// request (ErrSoldOut) or the event does not exist (sql.ErrNoRows).
func (r *EventRepo) ReserveTicketsTx(ctx context.Context, tx *sql.Tx, eventID uint64, qty int) error {
    const q = `UPDATE events SET tickets_available = tickets_available - ?
               WHERE id = ? AND tickets_available >= ?`
    res, err := tx.ExecContext(ctx, q, qty, eventID, qty)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var remaining int
        if err := tx.QueryRowContext(ctx, `SELECT tickets_available FROM events WHERE id = ?`, eventID).Scan(&remaining); err != nil {
            return err
        }
        return ErrSoldOut
    }
    return nil
}

// RestoreTicketsTx returns qty tickets to the event's inventory,
// bounded by the total so a double restore cannot exceed capacity.
func (r *EventRepo) RestoreTicketsTx(ctx context.Context, tx *sql.Tx, eventID uint64, qty int) error {
    const q = `UPDATE events SET tickets_available = LEAST(tickets_available + ?, total_tickets)
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, qty, eventID)
    return err
}

// UpdateTx persists the mutable event fields, including the generic
// edit counter and lock flag maintained by the event service.
func (r *EventRepo) UpdateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
    const q = `UPDATE events
               SET name = ?, description = ?, event_date = ?, event_time = ?, location = ?,
                   price_per_ticket = ?, total_tickets = ?, tickets_available = ?, is_active = ?,
                   edit_count = ?, is_edit_locked = ?, phone = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, e.Name, e.Description, e.EventDate.Format("2006-01-02"),
        nullableStr(e.EventTime), e.Location, e.PricePerTicket, e.TotalTickets, e.TicketsAvailable,
        e.IsActive, e.EditCount, e.IsEditLocked, e.Phone, e.ID)
    return err
}

/// MarkRescheduledTx persists a reschedule: the new schedule fields,
// the incremented counter, the flag the refund policy reads, and the
// vendor's reason.  The original-value snapshot columns are written
// only once (they keep the pre-first-reschedule values).
func (r *EventRepo) MarkRescheduledTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
    const q = `UPDATE events
               SET event_date = ?, event_time = ?, location = ?,
                   reschedule_count = ?, was_rescheduled = TRUE,
                   reschedule_reason = ?, last_rescheduled_at = NOW()
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, e.EventDate.Format("2006-01-02"), nullableStr(e.EventTime),
        e.Location, e.RescheduleCount, nullableStr(e.RescheduleReason), e.ID)
    return err
}

// MarkCancelledTx flags the event cancelled and inactive with the
// vendor's reason and a timestamp.
func (r *EventRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, eventID uint64, reason string) error {
    const q = `UPDATE events
               SET is_cancelled = TRUE, is_active = FALSE, cancellation_reason = ?, cancelled_at = NOW()
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, reason, eventID)
    return err
}

const eventSelect = `SELECT id, vendor_id, name, description, event_date, event_time, location,
                            price_per_ticket, booking_type, total_tickets, tickets_available, is_active,
                            reschedule_count, was_rescheduled, reschedule_reason, last_rescheduled_at,
                            original_event_date, original_location,
                            is_cancelled, cancellation_reason, cancelled_at,
                            edit_count, is_edit_locked, phone, created_at, updated_at
                     FROM events`

func scanEvent(row rowScanner) (*model.Event, error) {
    var e model.Event
    var eventTime, reschedReason, origLocation, cancelReason sql.NullString
    var lastResched, origDate, cancelledAt sql.NullTime
    if err := row.Scan(&e.ID, &e.VendorID, &e.Name, &e.Description, &e.EventDate, &eventTime,
        &e.Location, &e.PricePerTicket, &e.BookingType, &e.TotalTickets, &e.TicketsAvailable,
        &e.IsActive, &e.RescheduleCount, &e.WasRescheduled, &reschedReason, &lastResched,
        &origDate, &origLocation, &e.IsCancelled, &cancelReason, &cancelledAt,
        &e.EditCount, &e.IsEditLocked, &e.Phone, &e.CreatedAt, &e.UpdatedAt); err != nil {
        return nil, err
    }
    if eventTime.Valid {
        s := eventTime.String
        e.EventTime = &s
    }
    if reschedReason.Valid {
        s := reschedReason.String
        e.RescheduleReason = &s
    }
    if lastResched.Valid {
        t := lastResched.Time
        e.LastRescheduledAt = &t
    }
    if origDate.Valid {
        t := origDate.Time
        e.OriginalEventDate = &t
    }
    if origLocation.Valid {
        s := origLocation.String
        e.OriginalLocation = &s
    }
    if cancelReason.Valid {
        s := cancelReason.String
        e.CancellationReason = &s
    }
    if cancelledAt.Valid {
        t := cancelledAt.Time
        e.CancelledAt = &t
    }
    return &e, nil
}

// nullableStr converts an optional string into a driver value.
func nullableStr(s *string) interface{} {
    if s == nil {
        return nil
    }
    return *s
}
