package model

import "time"

// Venue is a bookable space rented by the hour.  Venues follow a
// single-booking-per-date exclusivity model: at most one
// non-cancelled booking may exist for a given (venue, date) pair,
// with an additional time-range overlap check for venues that allow
// intra-day sub-bookings.  Address/city edits share the same capped
// edit-lock scheme as event location/time edits.
//
// Fields:
//  ID           – primary key identifier.
//  VendorID     – owning vendor.
//  Name         – venue name.
//  Description  – free-form description.
//  City         – city, part of the edit-locked address.
//  Address      – street address, edit-locked after two changes.
//  Capacity     – maximum headcount.
//  PricePerHour – list price per hour in currency units.
//  Phone        – vendor contact phone shown to customers.
//  IsAvailable  – vendor-controlled publish flag.
//  EditCount    – address/city edit counter (cap 2).
//  IsEditLocked – true once EditCount reaches the cap.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Venue struct {
    ID           uint64    // venues.id
    VendorID     uint64    // venues.vendor_id
    Name         string    // venues.name
    Description  string    // venues.description
    City         string    // venues.city
    Address      string    // venues.address
    Capacity     int       // venues.capacity
    PricePerHour float64   // venues.price_per_hour
    Phone        string    // venues.phone
    IsAvailable  bool      // venues.is_available
    EditCount    int       // venues.edit_count
    IsEditLocked bool      // venues.is_edit_locked
    CreatedAt    time.Time // venues.created_at
    UpdatedAt    time.Time // venues.updated_at
}
