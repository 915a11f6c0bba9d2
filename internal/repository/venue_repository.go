package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

// VenueRepo provides persistence for venues and the per-date
// exclusivity checks the booking orchestrator relies on.  A venue
// follows a single-booking-per-date model: at most one non-cancelled
// booking may exist for a given (venue, date) pair.  The check
// queries lock matching booking rows so two concurrent bookings for
// the same venue and date serialize, and exactly one succeeds.
type VenueRepo struct {
    db *sql.DB
}

// NewVenueRepo returns a new VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// CreateTx inserts a venue within an existing transaction and
// populates the generated ID.  The caller commits or rolls back.
func (r *VenueRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
    const q = `INSERT INTO venues (vendor_id, name, description, city, address, capacity, price_per_hour, phone, is_available)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, v.VendorID, v.Name, v.Description, v.City, v.Address,
        v.Capacity, v.PricePerHour, v.Phone, v.IsAvailable)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    v.ID = uint64(id)
    return nil
}

// GetByID loads a venue.  sql.ErrNoRows is returned when absent.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
    return scanVenue(r.db.QueryRowContext(ctx, venueSelect+` WHERE id = ?`, id))
}

// GetByIDTx is GetByID within an existing transaction.
func (r *VenueRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Venue, error) {
    return scanVenue(tx.QueryRowContext(ctx, venueSelect+` WHERE id = ?`, id))
}

// ListByVendor returns all venues owned by a vendor, newest first.
func (r *VenueRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Venue, error) {
    rows, err := r.db.QueryContext(ctx, venueSelect+` WHERE vendor_id = ? ORDER BY created_at DESC`, vendorID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    venues := make([]model.Venue, 0)
    for rows.Next() {
        v, err := scanVenueRows(rows)
        if err != nil {
            return nil, err
        }
        venues = append(venues, *v)
    }
    return venues, rows.Err()
}

// UpdateTx persists the mutable venue fields, including the edit
// counter and lock flag maintained by the venue service.
func (r *VenueRepo) UpdateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
    const q = `UPDATE venues
               SET name = ?, description = ?, city = ?, address = ?, capacity = ?,
                   price_per_hour = ?, phone = ?, is_available = ?, edit_count = ?, is_edit_locked = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, v.Name, v.Description, v.City, v.Address, v.Capacity,
        v.PricePerHour, v.Phone, v.IsAvailable, v.EditCount, v.IsEditLocked, v.ID)
    return err
}

// ActiveBookingCountOnDateTx counts the non-cancelled bookings for
// the venue on the given date, including rows inserted earlier in
// the same transaction.  Matching rows are locked (FOR UPDATE) so a
// racing transaction blocks until this one resolves.
//
// The booking orchestrator calls this twice: before its insert to
// reject an already-taken date cheaply, and again after the insert.
// The pre-insert check alone is not enough: when both racers see an
// empty date (no rows to lock yet, or an isolation level without gap
// locking), both insert — but then each post-insert count covers the
// other's row, so at least one transaction observes a count above
// one and backs out.
func (r *VenueRepo) ActiveBookingCountOnDateTx(ctx context.Context, tx *sql.Tx, venueID uint64, date time.Time) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings
               WHERE venue_id = ? AND booking_date = ? AND status <> 'CANCELLED'
               FOR UPDATE`
    var n int
    if err := tx.QueryRowContext(ctx, q, venueID, date.Format("2006-01-02")).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// HasActiveBookingOnDateTx reports whether any non-cancelled booking
// exists for the venue on the given date.
func (r *VenueRepo) HasActiveBookingOnDateTx(ctx context.Context, tx *sql.Tx, venueID uint64, date time.Time) (bool, error) {
    n, err := r.ActiveBookingCountOnDateTx(ctx, tx, venueID, date)
    return n > 0, err
}

// HasOverlappingBookingTx reports whether a non-cancelled booking on
// the same date overlaps the [checkIn, checkOut) window.  Times are
// "HH:MM" strings; two windows overlap when each starts before the
// other ends.
func (r *VenueRepo) HasOverlappingBookingTx(ctx context.Context, tx *sql.Tx, venueID uint64, date time.Time, checkIn, checkOut string) (bool, error) {
    const q = `SELECT COUNT(*) FROM bookings
               WHERE venue_id = ? AND booking_date = ? AND status <> 'CANCELLED'
                 AND check_in_time IS NOT NULL AND check_out_time IS NOT NULL
                 AND check_in_time < ? AND check_out_time > ?
               FOR UPDATE`
    var n int
    if err := tx.QueryRowContext(ctx, q, venueID, date.Format("2006-01-02"), checkOut, checkIn).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}

const venueSelect = `SELECT id, vendor_id, name, description, city, address, capacity,
                            price_per_hour, phone, is_available, edit_count, is_edit_locked,
                            created_at, updated_at
                     FROM venues`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
    var v model.Venue
    if err := row.Scan(&v.ID, &v.VendorID, &v.Name, &v.Description, &v.City, &v.Address,
        &v.Capacity, &v.PricePerHour, &v.Phone, &v.IsAvailable, &v.EditCount, &v.IsEditLocked,
        &v.CreatedAt, &v.UpdatedAt); err != nil {
        return nil, err
    }
    return &v, nil
}

func scanVenueRows(rows *sql.Rows) (*model.Venue, error) {
    return scanVenue(rows)
}
