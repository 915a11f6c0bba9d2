package repository

import (
    "context"
    "database/sql"
    "log"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

// LedgerRepo owns every point balance mutation.  Each mutation is a
// single atomic statement against the balance column plus an
// appended point_history row capturing the previous balance, the
// signed delta and the new balance.  History rows are never updated
// or deleted, so replaying the deltas for an account always
// reconstructs its stored balance.
//
// All mutating methods take a *sql.Tx: orchestrators run ledger,
// inventory and booking mutations inside one transaction so a crash
// partway leaves no partial effect.
type LedgerRepo struct {
    db *sql.DB
}

// NewLedgerRepo returns a new LedgerRepo bound to the given database.
func NewLedgerRepo(db *sql.DB) *LedgerRepo { return &LedgerRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions.
func (r *LedgerRepo) DB() *sql.DB { return r.db }

// DebitUserTx atomically removes points from a user's balance.  The
// guard lives in the statement itself: zero affected rows means the
// balance was insufficient (ErrInsufficientPoints) or the user does
// not exist (sql.ErrNoRows); the balance is left untouched either
// way.  On success a history row with a negative delta is appended.
func (r *LedgerRepo) DebitUserTx(ctx context.Context, tx *sql.Tx, userID uint64, points int64, reason string, bookingID *uint64) error {
    if points <= 0 {
        return nil
    }
    const upd = `UPDATE users SET points = points - ? WHERE id = ? AND points >= ?`
    res, err := tx.ExecContext(ctx, upd, points, userID, points)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Distinguish a missing user from an underfunded one.
        var cur int64
        if err := tx.QueryRowContext(ctx, `SELECT points FROM users WHERE id = ?`, userID).Scan(&cur); err != nil {
            return err
        }
        return ErrInsufficientPoints
    }
    var newPoints int64
    if err := tx.QueryRowContext(ctx, `SELECT points FROM users WHERE id = ?`, userID).Scan(&newPoints); err != nil {
        return err
    }
    return r.appendTx(ctx, tx, model.AccountUser, userID, -points, reason, newPoints+points, newPoints, bookingID)
}

// CreditUserTx adds points to a user's balance.  It always succeeds
// for an existing user; sql.ErrNoRows is returned otherwise.
func (r *LedgerRepo) CreditUserTx(ctx context.Context, tx *sql.Tx, userID uint64, points int64, reason string, bookingID *uint64) error {
    return r.creditTx(ctx, tx, model.AccountUser, "users", userID, points, reason, bookingID)
}

// RefundUserTx adds points back to a user's balance.  It is
// semantically identical to CreditUserTx; the distinct entry point
// exists so refund rows carry their own reason labels in history.
func (r *LedgerRepo) RefundUserTx(ctx context.Context, tx *sql.Tx, userID uint64, points int64, reason string, bookingID *uint64) error {
    return r.creditTx(ctx, tx, model.AccountUser, "users", userID, points, reason, bookingID)
}

// CreditVendorTx adds points to a vendor's balance.
func (r *LedgerRepo) CreditVendorTx(ctx context.Context, tx *sql.Tx, vendorID uint64, points int64, reason string, bookingID *uint64) error {
    return r.creditTx(ctx, tx, model.AccountVendor, "vendors", vendorID, points, reason, bookingID)
}

// DebitVendorTx atomically removes points from a vendor's balance
// with the same insufficient-funds guard as DebitUserTx.  Used for
// vendor-side platform fees (venue/event creation).
func (r *LedgerRepo) DebitVendorTx(ctx context.Context, tx *sql.Tx, vendorID uint64, points int64, reason string, bookingID *uint64) error {
    if points <= 0 {
        return nil
    }
    const upd = `UPDATE vendors SET points = points - ? WHERE id = ? AND points >= ?`
    res, err := tx.ExecContext(ctx, upd, points, vendorID, points)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var cur int64
        if err := tx.QueryRowContext(ctx, `SELECT points FROM vendors WHERE id = ?`, vendorID).Scan(&cur); err != nil {
            return err
        }
        return ErrInsufficientPoints
    }
    var newPoints int64
    if err := tx.QueryRowContext(ctx, `SELECT points FROM vendors WHERE id = ?`, vendorID).Scan(&newPoints); err != nil {
        return err
    }
    return r.appendTx(ctx, tx, model.AccountVendor, vendorID, -points, reason, newPoints+points, newPoints, bookingID)
}

// DebitVendorClampTx removes up to the requested points from a
// vendor's balance, clamping the deduction so the balance never
// drops below zero.  This is the one sanctioned exception to the
// no-silent-clamping rule: a refund must reverse the vendor's
// earlier settlement credit even if the vendor already spent it.
// The history row records the points actually deducted, and the
// clamp is logged when it fires.  Returns the deducted amount.
func (r *LedgerRepo) DebitVendorClampTx(ctx context.Context, tx *sql.Tx, vendorID uint64, points int64, reason string, bookingID *uint64) (int64, error) {
    if points <= 0 {
        return 0, nil
    }
    var cur int64
    if err := tx.QueryRowContext(ctx, `SELECT points FROM vendors WHERE id = ? FOR UPDATE`, vendorID).Scan(&cur); err != nil {
        return 0, err
    }
    deduct := points
    if deduct > cur {
        log.Printf("[LEDGER] clamping vendor %d refund debit: wanted %d, balance %d", vendorID, points, cur)
        deduct = cur
    }
    if deduct == 0 {
        return 0, nil
    }
    if _, err := tx.ExecContext(ctx, `UPDATE vendors SET points = points - ? WHERE id = ?`, deduct, vendorID); err != nil {
        return 0, err
    }
    if err := r.appendTx(ctx, tx, model.AccountVendor, vendorID, -deduct, reason, cur, cur-deduct, bookingID); err != nil {
        return 0, err
    }
    return deduct, nil
}

// ListByAccount returns an account's ledger history, newest first.
func (r *LedgerRepo) ListByAccount(ctx context.Context, accountType string, accountID uint64) ([]model.PointEntry, error) {
    const q = `SELECT id, account_type, account_id, delta, reason, previous_points, new_points, booking_id, created_at
               FROM point_history
               WHERE account_type = ? AND account_id = ?
               ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, accountType, accountID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    entries := make([]model.PointEntry, 0)
    for rows.Next() {
        var e model.PointEntry
        var bookingID sql.NullInt64
        if err := rows.Scan(&e.ID, &e.AccountType, &e.AccountID, &e.Delta, &e.Reason,
            &e.PreviousPoints, &e.NewPoints, &bookingID, &e.CreatedAt); err != nil {
            return nil, err
        }
        if bookingID.Valid {
            id := uint64(bookingID.Int64)
            e.BookingID = &id
        }
        entries = append(entries, e)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return entries, nil
}

// creditTx adds points to an account and appends the history row.
// The row is locked first so the previous balance captured in
// history is exact under concurrent mutation.
func (r *LedgerRepo) creditTx(ctx context.Context, tx *sql.Tx, accountType, table string, accountID uint64, points int64, reason string, bookingID *uint64) error {
    if points <= 0 {
        return nil
    }
    var prev int64
    if err := tx.QueryRowContext(ctx, `SELECT points FROM `+table+` WHERE id = ? FOR UPDATE`, accountID).Scan(&prev); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `UPDATE `+table+` SET points = points + ? WHERE id = ?`, points, accountID); err != nil {
        return err
    }
    return r.appendTx(ctx, tx, accountType, accountID, points, reason, prev, prev+points, bookingID)
}

// appendTx inserts one immutable point_history row.
func (r *LedgerRepo) appendTx(ctx context.Context, tx *sql.Tx, accountType string, accountID uint64, delta int64, reason string, prev, next int64, bookingID *uint64) error {
    const ins = `INSERT INTO point_history (account_type, account_id, delta, reason, previous_points, new_points, booking_id)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`
    var bid interface{}
    if bookingID != nil {
        bid = *bookingID
    }
    _, err := tx.ExecContext(ctx, ins, accountType, accountID, delta, reason, prev, next, bid)
    return err
}
