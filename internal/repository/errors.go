// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrForbidden indicates that the current
// actor is not authorized to operate on a resource owned by someone
// else, while ErrSoldOut signals that an event's remaining ticket
// inventory cannot cover the requested quantity.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed
// because of conflicting state. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInsufficientPoints is returned when a ledger debit would push
// an account balance below zero. The debit is rejected and the
// balance left unchanged.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrSoldOut is returned when an event does not have enough
// tickets available to cover a reservation, or when the requested
// seats are no longer free.
var ErrSoldOut = errors.New("not enough tickets available")

// ErrDateTaken is returned when a venue already has a
// non-cancelled booking for the requested date, or an overlapping
// time window on that date.
var ErrDateTaken = errors.New("venue already booked for this date")

// ErrEditLocked is returned when a location/time edit is attempted
// after the capped number of such edits has been used up.
var ErrEditLocked = errors.New("location/time editing is locked")

// ErrRescheduleLimit is returned when an event has already been
// rescheduled the maximum number of times.
var ErrRescheduleLimit = errors.New("reschedule limit reached")

// ErrAlreadyCancelled is returned when cancelling a booking whose
// status is already CANCELLED. Replaying the refund would
// double-credit the payer, so the operation is rejected.
var ErrAlreadyCancelled = errors.New("booking already cancelled")
