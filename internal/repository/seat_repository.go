package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

// SeatRepo manages the individual seats of SEAT_SELECTION events.  A
// seat is free while its booking_id is NULL; claiming is a single
// conditional update over the requested ids so two concurrent
// bookings can never both take the same seat.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo returns a new SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// CreateBulkTx inserts the seat inventory for an event in one
// statement.  Passing an empty slice has no effect and returns nil.
func (r *SeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, seats []model.EventSeat) error {
    if len(seats) == 0 {
        return nil
    }
    query := `INSERT INTO event_seats (event_id, seat_label, category, price) VALUES `
    args := make([]interface{}, 0, len(seats)*4)
    for i, s := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, s.EventID, s.SeatLabel, s.Category, s.Price)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// AssignToBookingTx claims the given seats for a booking.  The free
// guard (booking_id IS NULL) is part of the statement: when fewer
// rows are affected than seats requested, at least one seat was
// already taken, the claim is reported as ErrSoldOut and the caller
// rolls the surrounding transaction back.
func (r *SeatRepo) AssignToBookingTx(ctx context.Context, tx *sql.Tx, eventID, bookingID uint64, seatIDs []uint64) error {
    if len(seatIDs) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(seatIDs))
    args := []interface{}{bookingID, eventID}
    for _, id := range seatIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    query := `UPDATE event_seats SET booking_id = ?
              WHERE event_id = ? AND booking_id IS NULL AND id IN (` + strings.Join(placeholders, ",") + `)`
    res, err := tx.ExecContext(ctx, query, args...)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if int(n) != len(seatIDs) {
        return ErrSoldOut
    }
    return nil
}

// ReleaseByBookingTx frees every seat held by a booking and returns
// the number of seats released.
func (r *SeatRepo) ReleaseByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int, error) {
    const q = `UPDATE event_seats SET booking_id = NULL WHERE booking_id = ?`
    res, err := tx.ExecContext(ctx, q, bookingID)
    if err != nil {
        return 0, err
    }
    n, err := res.RowsAffected()
    return int(n), err
}

// FindByBookingID returns the seats linked to a booking by foreign
// key, ordered by label for deterministic output.
func (r *SeatRepo) FindByBookingID(ctx context.Context, bookingID uint64) ([]model.EventSeat, error) {
    const q = seatSelect + ` WHERE booking_id = ? ORDER BY seat_label`
    rows, err := r.db.QueryContext(ctx, q, bookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectSeats(rows)
}

// ListByEvent returns an event's full seat map, claimed and free.
func (r *SeatRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventSeat, error) {
    const q = seatSelect + ` WHERE event_id = ? ORDER BY seat_label`
    rows, err := r.db.QueryContext(ctx, q, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectSeats(rows)
}

// FindByIDs returns seats by primary key.  Used for legacy bookings
// whose seat links live in the bookings.seat_ids text column rather
// than the foreign key.
func (r *SeatRepo) FindByIDs(ctx context.Context, seatIDs []uint64) ([]model.EventSeat, error) {
    if len(seatIDs) == 0 {
        return []model.EventSeat{}, nil
    }
    placeholders := make([]string, 0, len(seatIDs))
    args := make([]interface{}, 0, len(seatIDs))
    for _, id := range seatIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := seatSelect + ` WHERE id IN (` + strings.Join(placeholders, ",") + `) ORDER BY seat_label`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectSeats(rows)
}

const seatSelect = `SELECT id, event_id, seat_label, category, price, booking_id FROM event_seats`

func collectSeats(rows *sql.Rows) ([]model.EventSeat, error) {
    seats := make([]model.EventSeat, 0)
    for rows.Next() {
        var s model.EventSeat
        var bookingID sql.NullInt64
        if err := rows.Scan(&s.ID, &s.EventID, &s.SeatLabel, &s.Category, &s.Price, &bookingID); err != nil {
            return nil, err
        }
        if bookingID.Valid {
            id := uint64(bookingID.Int64)
            s.BookingID = &id
        }
        seats = append(seats, s)
    }
    return seats, rows.Err()
}
