package model

import "time"

// Account type discriminators used by the points ledger.  User and
// vendor balances live in separate tables but share one history
// table, so every ledger row records which side it belongs to.
const (
    AccountUser   = "USER"
    AccountVendor = "VENDOR"
)

// User is a platform customer.  The Points column is the account's
// live balance; it is mutated only through the ledger repository and
// must never go negative.
//
// Fields:
//  ID          – primary key identifier.
//  Email       – contact address used for notifications.
//  DisplayName – name shown on bookings; snapshotted onto each
//                booking at creation time.
//  Points      – current points balance.
//  CreatedAt   – creation timestamp.
type User struct {
    ID          uint64    // users.id
    Email       string    // users.email
    DisplayName string    // users.display_name
    Points      int64     // users.points
    CreatedAt   time.Time // users.created_at
}

// Vendor owns venues and events and is settled in points when its
// inventory is booked.  Like users, the Points balance is mutated
// only through ledger operations; the sole exception to the
// no-clamping rule is the refund-driven debit, which clamps at zero.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – contact address used for notifications.
//  BusinessName – trading name shown to customers.
//  Phone        – contact phone shown on listings.
//  Points       – current points balance.
//  CreatedAt    – creation timestamp.
type Vendor struct {
    ID           uint64    // vendors.id
    Email        string    // vendors.email
    BusinessName string    // vendors.business_name
    Phone        string    // vendors.phone
    Points       int64     // vendors.points
    CreatedAt    time.Time // vendors.created_at
}
