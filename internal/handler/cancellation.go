package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/Pranai222/eventvenue-platform/internal/model"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
	"github.com/Pranai222/eventvenue-platform/internal/service"
)

// cancelRepos groups everything the refund-and-release core touches.
// Both the booking cancellation endpoint and the event cancellation
// cascade run the same core, so it lives here rather than on either
// handler.
type cancelRepos struct {
	Bookings *repository.BookingRepo
	Ledger   *repository.LedgerRepo
	Accounts *repository.AccountRepo
	Venues   *repository.VenueRepo
	Events   *repository.EventRepo
	Seats    *repository.SeatRepo
	Settings *repository.SettingsRepo
}

// cancelOutcome reports what a completed cancellation did, for the
// HTTP response, the audit entry and the notification payload.
type cancelOutcome struct {
	Booking       *model.Booking
	Decision      service.RefundDecision
	TargetName    string
	UserEmail     string
	SeatsReleased int
	VendorDebited int64
}

// cancelBooking cancels one booking inside a single transaction:
// refund policy, booking status flip, payer credit, clamped vendor
// debit, ticket restore and seat release.  ownerUserID, when
// non-nil, restricts the operation to the booking's payer; the event
// cancellation cascade passes nil because the vendor acts on all
// payers' bookings at once.
//
// Refunds are paid in points only.  The vendor-side debit is the one
// place a balance is silently clamped at zero; the payer credit is
// never reduced to match.
func cancelBooking(ctx context.Context, r cancelRepos, bookingID uint64, ownerUserID *uint64, now time.Time) (*cancelOutcome, error) {
	rate, err := r.Settings.ConversionRate(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := r.Ledger.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := r.Bookings.GetByIDForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if ownerUserID != nil && b.UserID != *ownerUserID {
		return nil, repository.ErrForbidden
	}
	if b.Status == model.BookingCancelled {
		return nil, repository.ErrAlreadyCancelled
	}

	var ev *model.Event
	var vendorID uint64
	var targetName string
	switch {
	case b.EventID != nil:
		ev, err = r.Events.GetByIDTx(ctx, tx, *b.EventID)
		if err != nil {
			return nil, err
		}
		vendorID = ev.VendorID
		targetName = ev.Name
	case b.VenueID != nil:
		v, err := r.Venues.GetByIDTx(ctx, tx, *b.VenueID)
		if err != nil {
			return nil, err
		}
		vendorID = v.VendorID
		targetName = v.Name
	default:
		return nil, repository.ErrConflict
	}

	decision := service.CalculateRefund(b, ev, now, rate)

	if err := r.Bookings.MarkCancelledTx(ctx, tx, b.ID, decision.Amount, decision.Percentage); err != nil {
		return nil, err
	}

	var vendorDebited int64
	if decision.Points > 0 {
		userReason := fmt.Sprintf("refund %d%% (%.2f) - %s", decision.Percentage, decision.Amount, decision.Justification)
		if err := r.Ledger.RefundUserTx(ctx, tx, b.UserID, decision.Points, userReason, &b.ID); err != nil {
			return nil, err
		}
		vendorReason := fmt.Sprintf("refund reversal for booking #%d", b.ID)
		vendorDebited, err = r.Ledger.DebitVendorClampTx(ctx, tx, vendorID, decision.Points, vendorReason, &b.ID)
		if err != nil {
			return nil, err
		}
	}

	seatsReleased := 0
	if b.EventID != nil {
		if err := r.Events.RestoreTicketsTx(ctx, tx, *b.EventID, b.TicketQuantity()); err != nil {
			return nil, err
		}
		if ev.BookingType == model.BookingTypeSeat {
			seatsReleased, err = r.Seats.ReleaseByBookingTx(ctx, tx, b.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	contact, err := r.Accounts.GetUserContactTx(ctx, tx, b.UserID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return &cancelOutcome{
		Booking:       b,
		Decision:      decision,
		TargetName:    targetName,
		UserEmail:     contact.Email,
		SeatsReleased: seatsReleased,
		VendorDebited: vendorDebited,
	}, nil
}
