package model

import "time"

// PointEntry is one immutable row of the points ledger.  Entries are
// appended on every balance mutation and never updated or deleted.
// For any account the most recent entry's NewPoints equals the stored
// balance, and the sum of all deltas since account creation equals
// the balance as well.
//
// Fields:
//  ID             – primary key identifier.
//  AccountType    – AccountUser or AccountVendor.
//  AccountID      – user or vendor the entry belongs to.
//  Delta          – signed points change (negative for debits).
//  Reason         – human-readable label ("Booking payment",
//                   "Platform fee", refund text, ...).
//  PreviousPoints – balance before the mutation.
//  NewPoints      – balance after the mutation.
//  BookingID      – optional link to the booking that caused the
//                   mutation; nil for standalone operations such as
//                   points purchases.
//  CreatedAt      – creation timestamp.
type PointEntry struct {
    ID             uint64    // point_history.id
    AccountType    string    // point_history.account_type
    AccountID      uint64    // point_history.account_id
    Delta          int64     // point_history.delta
    Reason         string    // point_history.reason
    PreviousPoints int64     // point_history.previous_points
    NewPoints      int64     // point_history.new_points
    BookingID      *uint64   // point_history.booking_id (nullable)
    CreatedAt      time.Time // point_history.created_at
}
