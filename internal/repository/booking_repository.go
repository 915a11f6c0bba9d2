package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strconv"
    "strings"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

// BookingRepo provides persistence for bookings.  Bookings reference
// either a venue or an event, carry denormalized snapshots (payer
// display name, refund amount/percentage) and are written only
// inside the orchestrators' transactions.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a booking within an existing transaction and
// populates the generated ID and timestamps.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings (user_id, user_name, venue_id, event_id, booking_date,
                                     check_in_time, check_out_time, duration_hours, quantity, seat_ids,
                                     total_amount, points_used, remaining_amount, payment_ref,
                                     status, payment_status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, b.UserID, b.UserName, nullableID(b.VenueID), nullableID(b.EventID),
        b.BookingDate.Format("2006-01-02"), nullableStr(b.CheckInTime), nullableStr(b.CheckOutTime),
        nullableInt(b.DurationHours), nullableInt(b.Quantity), nullableStr(b.SeatIDs),
        b.TotalAmount, b.PointsUsed, b.RemainingAmount, nullableStr(b.PaymentRef),
        b.Status, b.PaymentStatus)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return tx.QueryRowContext(ctx, `SELECT created_at, updated_at FROM bookings WHERE id = ?`, b.ID).
        Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID loads a booking.  sql.ErrNoRows is returned when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    return scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE id = ?`, id))
}

// GetByIDForUpdateTx loads a booking inside a transaction with a row
// lock.  The cancellation orchestrator uses the lock so two
// concurrent cancellations of the same booking serialize and the
// second one sees the CANCELLED status.
func (r *BookingRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    return scanBooking(tx.QueryRowContext(ctx, bookingSelect+` WHERE id = ? FOR UPDATE`, id))
}

// MarkCancelledTx flips a booking to CANCELLED exactly once,
// stamping the cancellation time and the refund snapshot.
func (r *BookingRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, id uint64, refundAmount float64, refundPct int) error {
    const q = `UPDATE bookings
               SET status = 'CANCELLED', cancelled_at = NOW(), refund_amount = ?, refund_percentage = ?
               WHERE id = ? AND status <> 'CANCELLED'`
    res, err := tx.ExecContext(ctx, q, refundAmount, refundPct, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrAlreadyCancelled
    }
    return nil
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    return r.list(ctx, bookingSelect+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// ListByVenue returns all bookings against a venue, newest first.
func (r *BookingRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Booking, error) {
    return r.list(ctx, bookingSelect+` WHERE venue_id = ? ORDER BY created_at DESC`, venueID)
}

// ListByEvent returns all bookings against an event, newest first.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Booking, error) {
    return r.list(ctx, bookingSelect+` WHERE event_id = ? ORDER BY created_at DESC`, eventID)
}

// ActiveIDsByEvent returns the ids of every non-cancelled booking of
// an event.  The event-cancellation cascade iterates these ids and
// processes each booking in its own transaction, so only ids are
// collected here; each sub-transaction re-reads its booking under
// lock.
func (r *BookingRepo) ActiveIDsByEvent(ctx context.Context, eventID uint64) ([]uint64, error) {
    const q = `SELECT id FROM bookings WHERE event_id = ? AND status <> 'CANCELLED' ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := make([]uint64, 0)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// ParseSeatIDs decodes the legacy bookings.seat_ids text column.
// New bookings link seats by foreign key; old rows stored either a
// JSON array ("[1, 2, 3]") or a bare CSV ("1,2,3").  JSON is tried
// first, then the CSV form with brackets and whitespace stripped.
// Both must remain readable for backward compatibility.
func ParseSeatIDs(raw string) []uint64 {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return nil
    }
    var asJSON []uint64
    if err := json.Unmarshal([]byte(raw), &asJSON); err == nil {
        return asJSON
    }
    cleaned := strings.NewReplacer("[", "", "]", "", " ", "").Replace(raw)
    if cleaned == "" {
        return nil
    }
    ids := make([]uint64, 0)
    for _, part := range strings.Split(cleaned, ",") {
        if part == "" {
            continue
        }
        n, err := strconv.ParseUint(part, 10, 64)
        if err != nil {
            return nil
        }
        ids = append(ids, n)
    }
    if len(ids) == 0 {
        return nil
    }
    return ids
}

func (r *BookingRepo) list(ctx context.Context, query string, arg interface{}) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, query, arg)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    bookings := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        bookings = append(bookings, *b)
    }
    return bookings, rows.Err()
}

const bookingSelect = `SELECT id, user_id, user_name, venue_id, event_id, booking_date,
                              check_in_time, check_out_time, duration_hours, quantity, seat_ids,
                              total_amount, points_used, remaining_amount, payment_ref,
                              status, payment_status, refund_amount, refund_percentage, cancelled_at,
                              created_at, updated_at
                       FROM bookings`

func scanBooking(row rowScanner) (*model.Booking, error) {
    var b model.Booking
    var venueID, eventID sql.NullInt64
    var checkIn, checkOut, seatIDs, payRef sql.NullString
    var duration, quantity, refundPct sql.NullInt64
    var refundAmount sql.NullFloat64
    var cancelledAt sql.NullTime
    if err := row.Scan(&b.ID, &b.UserID, &b.UserName, &venueID, &eventID, &b.BookingDate,
        &checkIn, &checkOut, &duration, &quantity, &seatIDs,
        &b.TotalAmount, &b.PointsUsed, &b.RemainingAmount, &payRef,
        &b.Status, &b.PaymentStatus, &refundAmount, &refundPct, &cancelledAt,
        &b.CreatedAt, &b.UpdatedAt); err != nil {
        return nil, err
    }
    if venueID.Valid {
        id := uint64(venueID.Int64)
        b.VenueID = &id
    }
    if eventID.Valid {
        id := uint64(eventID.Int64)
        b.EventID = &id
    }
    if checkIn.Valid {
        s := checkIn.String
        b.CheckInTime = &s
    }
    if checkOut.Valid {
        s := checkOut.String
        b.CheckOutTime = &s
    }
    if duration.Valid {
        n := int(duration.Int64)
        b.DurationHours = &n
    }
    if quantity.Valid {
        n := int(quantity.Int64)
        b.Quantity = &n
    }
    if seatIDs.Valid {
        s := seatIDs.String
        b.SeatIDs = &s
    }
    if payRef.Valid {
        s := payRef.String
        b.PaymentRef = &s
    }
    if refundAmount.Valid {
        f := refundAmount.Float64
        b.RefundAmount = &f
    }
    if refundPct.Valid {
        n := int(refundPct.Int64)
        b.RefundPercentage = &n
    }
    if cancelledAt.Valid {
        t := cancelledAt.Time
        b.CancelledAt = &t
    }
    return &b, nil
}

// nullableID converts an optional id into a driver value.
func nullableID(id *uint64) interface{} {
    if id == nil {
        return nil
    }
    return *id
}

// nullableInt converts an optional int into a driver value.
func nullableInt(n *int) interface{} {
    if n == nil {
        return nil
    }
    return *n
}
