package repository

import (
    "context"
    "database/sql"
)

// AccountRepo provides read access to user and vendor accounts.  It
// never mutates point balances; balance changes go through
// LedgerRepo so that every mutation leaves a history row.
type AccountRepo struct {
    db *sql.DB
}

// NewAccountRepo returns a new AccountRepo bound to the given database.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

// UserContact is the slice of a user row needed for notifications
// and for the display-name snapshot captured on bookings.
type UserContact struct {
    ID          uint64
    Email       string
    DisplayName string
}

// GetUserContact loads a user's contact fields.  sql.ErrNoRows is
// returned when the user does not exist.
func (r *AccountRepo) GetUserContact(ctx context.Context, userID uint64) (*UserContact, error) {
    const q = `SELECT id, email, display_name FROM users WHERE id = ?`
    var u UserContact
    if err := r.db.QueryRowContext(ctx, q, userID).Scan(&u.ID, &u.Email, &u.DisplayName); err != nil {
        return nil, err
    }
    return &u, nil
}

// GetUserContactTx is GetUserContact within an existing transaction.
func (r *AccountRepo) GetUserContactTx(ctx context.Context, tx *sql.Tx, userID uint64) (*UserContact, error) {
    const q = `SELECT id, email, display_name FROM users WHERE id = ?`
    var u UserContact
    if err := tx.QueryRowContext(ctx, q, userID).Scan(&u.ID, &u.Email, &u.DisplayName); err != nil {
        return nil, err
    }
    return &u, nil
}

// UserPoints returns a user's current balance, or sql.ErrNoRows when
// the user does not exist.
func (r *AccountRepo) UserPoints(ctx context.Context, userID uint64) (int64, error) {
    const q = `SELECT points FROM users WHERE id = ?`
    var pts int64
    if err := r.db.QueryRowContext(ctx, q, userID).Scan(&pts); err != nil {
        return 0, err
    }
    return pts, nil
}

// VendorPoints returns a vendor's current balance, or sql.ErrNoRows
// when the vendor does not exist.
func (r *AccountRepo) VendorPoints(ctx context.Context, vendorID uint64) (int64, error) {
    const q = `SELECT points FROM vendors WHERE id = ?`
    var pts int64
    if err := r.db.QueryRowContext(ctx, q, vendorID).Scan(&pts); err != nil {
        return 0, err
    }
    return pts, nil
}
