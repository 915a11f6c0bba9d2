package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/model"
	"github.com/Pranai222/eventvenue-platform/internal/queue"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
	"github.com/Pranai222/eventvenue-platform/internal/service"
)

// BookingHandler serves booking creation, pricing previews,
// cancellation and booking listings.  All methods assume JWT
// authentication and role validation has already been performed by
// middleware.  Each mutation runs inside a single transaction
// covering ledger, inventory and booking record changes.
type BookingHandler struct {
	BookingRepo  *repository.BookingRepo
	LedgerRepo   *repository.LedgerRepo
	AccountRepo  *repository.AccountRepo
	VenueRepo    *repository.VenueRepo
	EventRepo    *repository.EventRepo
	SeatRepo     *repository.SeatRepo
	SettingsRepo *repository.SettingsRepo
	AuditRepo    *repository.AuditRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(bookingRepo *repository.BookingRepo, ledgerRepo *repository.LedgerRepo, accountRepo *repository.AccountRepo, venueRepo *repository.VenueRepo, eventRepo *repository.EventRepo, seatRepo *repository.SeatRepo, settingsRepo *repository.SettingsRepo, auditRepo *repository.AuditRepo) *BookingHandler {
	if bookingRepo == nil || ledgerRepo == nil || accountRepo == nil || venueRepo == nil || eventRepo == nil || seatRepo == nil || settingsRepo == nil || auditRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		BookingRepo:  bookingRepo,
		LedgerRepo:   ledgerRepo,
		AccountRepo:  accountRepo,
		VenueRepo:    venueRepo,
		EventRepo:    eventRepo,
		SeatRepo:     seatRepo,
		SettingsRepo: settingsRepo,
		AuditRepo:    auditRepo,
	}
}

// bookingRequest is the creation payload.  Exactly one of venue_id
// and event_id must be set.  points_to_use omitted means "pay fully
// in points"; total_amount, when positive, is the previously quoted
// price and is charged as-is.
type bookingRequest struct {
	VenueID       uint64   `json:"venue_id"`
	EventID       uint64   `json:"event_id"`
	BookingDate   string   `json:"booking_date"`
	CheckInTime   string   `json:"check_in_time"`
	CheckOutTime  string   `json:"check_out_time"`
	DurationHours int      `json:"duration_hours"`
	Quantity      int      `json:"quantity"`
	SeatIDs       []uint64 `json:"seat_ids"`
	PointsToUse   *int64   `json:"points_to_use"`
	TotalAmount   float64  `json:"total_amount"`
	PaymentRef    string   `json:"payment_ref"`
}

// Quote handles POST /v1/bookings/quote.  It prices a prospective
// booking with the current conversion rate and platform fee without
// mutating anything.  A later rate change can change the final
// price; clients pass the quoted total back on creation to pin it.
func (h *BookingHandler) Quote(c echo.Context) error {
	if _, err := getAccountID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	unitPrice, units, _, _, errResp := h.resolveTarget(ctx, &body)
	if errResp != nil {
		return errResp(c)
	}

	rate, err := h.SettingsRepo.ConversionRate(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}
	fee, err := h.SettingsRepo.UserPlatformFee(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}

	quote := service.ComputeQuote(unitPrice, units, rate, pointsOrFull(body.PointsToUse), fee)
	return c.JSON(http.StatusOK, quote)
}

// Create handles POST /v1/bookings.  It reserves inventory, debits
// the payer (points portion plus the flat platform fee as two ledger
// entries), persists the booking with a display-name snapshot and
// credits the vendor the full list price in points regardless of the
// payer's points/cash split.  Everything happens in one transaction;
// a confirmation notification is published after commit.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	unitPrice, units, bookingDate, vendorID, errResp := h.resolveTarget(ctx, &body)
	if errResp != nil {
		return errResp(c)
	}

	rate, err := h.SettingsRepo.ConversionRate(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}
	fee, err := h.SettingsRepo.UserPlatformFee(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}
	quote := service.ComputeQuote(unitPrice, units, rate, pointsOrFull(body.PointsToUse), fee).
		WithTrustedTotal(body.TotalAmount)

	// Advisory balance check so the error can name the shortfall; the
	// conditional debit inside the transaction is the authoritative
	// guard against races.
	balance, err := h.AccountRepo.UserPoints(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if balance < quote.TotalPointsRequired {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     "insufficient points",
			"required":  quote.TotalPointsRequired,
			"balance":   balance,
			"shortfall": quote.TotalPointsRequired - balance,
		})
	}

	tx, err := h.LedgerRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ev *model.Event
	if body.EventID != 0 {
		ev, err = h.EventRepo.GetByIDTx(ctx, tx, body.EventID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if err := h.EventRepo.ReserveTicketsTx(ctx, tx, body.EventID, units); err != nil {
			if errors.Is(err, repository.ErrSoldOut) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "not enough tickets available"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reserve tickets"})
		}
	} else {
		taken, err := h.VenueRepo.HasActiveBookingOnDateTx(ctx, tx, body.VenueID, bookingDate)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrDateTaken.Error()})
		}
	}

	contact, err := h.AccountRepo.GetUserContactTx(ctx, tx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}

	b := &model.Booking{
		UserID:          userID,
		UserName:        contact.DisplayName,
		BookingDate:     bookingDate,
		TotalAmount:     quote.TotalAmount,
		PointsUsed:      quote.PointsToUse,
		RemainingAmount: quote.RemainingAmount,
		Status:          model.BookingConfirmed,
		PaymentStatus:   model.PaymentCompleted,
	}
	if body.EventID != 0 {
		b.EventID = &body.EventID
		qty := units
		b.Quantity = &qty
	} else {
		b.VenueID = &body.VenueID
		dur := body.DurationHours
		b.DurationHours = &dur
		if body.CheckInTime != "" {
			ci, co := body.CheckInTime, body.CheckOutTime
			b.CheckInTime = &ci
			b.CheckOutTime = &co
		}
	}
	if body.PaymentRef != "" {
		ref := body.PaymentRef
		b.PaymentRef = &ref
	} else if quote.RemainingAmount > 0 {
		b.PaymentStatus = model.PaymentPending
	}
	if len(body.SeatIDs) > 0 {
		if raw, err := json.Marshal(body.SeatIDs); err == nil {
			s := string(raw)
			b.SeatIDs = &s
		}
	}

	if err := h.BookingRepo.CreateTx(ctx, tx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	if body.EventID == 0 {
		// Re-count after the insert. Two transactions racing for the
		// same date can both pass the pre-insert check when neither has
		// a row to lock yet; once both have inserted, each sees the
		// other's row here and the loser backs out.
		n, err := h.VenueRepo.ActiveBookingCountOnDateTx(ctx, tx, body.VenueID, bookingDate)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
		if n > 1 {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrDateTaken.Error()})
		}
	}

	var seatLabels []string
	if ev != nil && ev.BookingType == model.BookingTypeSeat {
		if err := h.SeatRepo.AssignToBookingTx(ctx, tx, ev.ID, b.ID, body.SeatIDs); err != nil {
			if errors.Is(err, repository.ErrSoldOut) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "some seats are no longer available"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign seats"})
		}
	}

	if err := h.LedgerRepo.DebitUserTx(ctx, tx, userID, quote.PointsToUse, "booking payment", &b.ID); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient points"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to debit points"})
	}
	if err := h.LedgerRepo.DebitUserTx(ctx, tx, userID, quote.PlatformFee, "platform fee", &b.ID); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient points"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to debit points"})
	}

	// The vendor is settled at full list price in points no matter how
	// the payer split points and cash; the platform absorbs the gap.
	if err := h.LedgerRepo.CreditVendorTx(ctx, tx, vendorID, quote.FullPointsNeeded, "booking settlement", &b.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to credit vendor"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "BOOKING_CREATED", "booking", b.ID,
		fmt.Sprintf("total=%.2f points_used=%d fee=%d cash=%.2f vendor_credited=%d",
			quote.TotalAmount, quote.PointsToUse, quote.PlatformFee, quote.RemainingAmount, quote.FullPointsNeeded),
		"USER", userID)

	targetName := ""
	var venueID, eventID uint64
	if ev != nil {
		targetName = ev.Name
		eventID = ev.ID
		seatLabels = h.seatLabelsFor(ctx, b)
	} else if v, err := h.VenueRepo.GetByID(ctx, body.VenueID); err == nil {
		targetName = v.Name
		venueID = v.ID
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.PublishBookingConfirmed(pctx, queue.BookingConfirmedEvent{
			BookingID:       b.ID,
			UserID:          userID,
			UserName:        contact.DisplayName,
			UserEmail:       contact.Email,
			VenueID:         venueID,
			EventID:         eventID,
			TargetName:      targetName,
			BookingDate:     bookingDate.Format("2006-01-02"),
			Quantity:        units,
			SeatLabels:      seatLabels,
			TotalAmount:     quote.TotalAmount,
			PointsUsed:      quote.PointsToUse,
			PlatformFee:     quote.PlatformFee,
			RemainingAmount: quote.RemainingAmount,
			VendorCredited:  quote.FullPointsNeeded,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("booking: publish confirmation failed: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":       b.ID,
		"status":           b.Status,
		"payment_status":   b.PaymentStatus,
		"total_amount":     quote.TotalAmount,
		"points_used":      quote.PointsToUse,
		"platform_fee":     quote.PlatformFee,
		"remaining_amount": quote.RemainingAmount,
		"seats":            seatLabels,
	})
}

// Cancel handles DELETE /v1/bookings/:id.  The refund follows the
// tiered policy and is paid in points only; see cancelBooking for
// the transaction steps.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()

	outcome, err := cancelBooking(ctx, h.cancelRepos(), bookingID, &userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrAlreadyCancelled.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}

	h.AuditRepo.RecordActor(ctx, "BOOKING_CANCELLED", "booking", bookingID,
		fmt.Sprintf("refund=%d%% points_refunded=%d cash_refund=none", outcome.Decision.Percentage, outcome.Decision.Points),
		"USER", userID)
	publishCancellation(outcome)

	return c.JSON(http.StatusOK, echo.Map{
		"refund_amount":     outcome.Decision.Amount,
		"refund_percentage": outcome.Decision.Percentage,
		"points_refunded":   outcome.Decision.Points,
		"message":           outcome.Decision.Justification,
	})
}

// ListMine handles GET /v1/my-bookings.  Bookings are enriched with
// seat labels where applicable.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	bookings, err := h.BookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.toViews(ctx, bookings)})
}

// Get handles GET /v1/bookings/:id for the booking's payer.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	views := h.toViews(ctx, []model.Booking{*b})
	return c.JSON(http.StatusOK, echo.Map{"item": views[0]})
}

// ListForVenue handles GET /v1/vendor/venues/:id/bookings for the
// owning vendor.
func (h *BookingHandler) ListForVenue(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	ctx := c.Request().Context()
	v, err := h.VenueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if v.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	bookings, err := h.BookingRepo.ListByVenue(ctx, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.toViews(ctx, bookings)})
}

// ListForEvent handles GET /v1/vendor/events/:id/bookings for the
// owning vendor.
func (h *BookingHandler) ListForEvent(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	bookings, err := h.BookingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.toViews(ctx, bookings)})
}

// resolveTarget validates the venue/event part of a booking request
// and returns the unit price, unit count, booking date and owning
// vendor.  On failure it returns a function that writes the error
// response, so Quote and Create share identical validation.
func (h *BookingHandler) resolveTarget(ctx context.Context, body *bookingRequest) (float64, int, time.Time, uint64, func(echo.Context) error) {
	fail := func(status int, msg string) func(echo.Context) error {
		return func(c echo.Context) error {
			return c.JSON(status, echo.Map{"error": msg})
		}
	}
	if (body.VenueID == 0) == (body.EventID == 0) {
		return 0, 0, time.Time{}, 0, fail(http.StatusBadRequest, "exactly one of venue_id and event_id is required")
	}

	if body.EventID != 0 {
		ev, err := h.EventRepo.GetByID(ctx, body.EventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, 0, time.Time{}, 0, fail(http.StatusNotFound, "event not found")
			}
			return 0, 0, time.Time{}, 0, fail(http.StatusInternalServerError, "database error")
		}
		if !ev.IsActive || ev.IsCancelled {
			return 0, 0, time.Time{}, 0, fail(http.StatusConflict, "event is not open for booking")
		}
		qty := body.Quantity
		if ev.BookingType == model.BookingTypeSeat {
			if len(body.SeatIDs) == 0 {
				return 0, 0, time.Time{}, 0, fail(http.StatusBadRequest, "seat_ids is required for this event")
			}
			qty = len(body.SeatIDs)
		}
		if qty <= 0 {
			qty = 1
		}
		return ev.PricePerTicket, qty, ev.EventDate, ev.VendorID, nil
	}

	v, err := h.VenueRepo.GetByID(ctx, body.VenueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, time.Time{}, 0, fail(http.StatusNotFound, "venue not found")
		}
		return 0, 0, time.Time{}, 0, fail(http.StatusInternalServerError, "database error")
	}
	if !v.IsAvailable {
		return 0, 0, time.Time{}, 0, fail(http.StatusConflict, "venue is not available")
	}
	date, ok := parseDate(body.BookingDate)
	if !ok {
		return 0, 0, time.Time{}, 0, fail(http.StatusBadRequest, "booking_date must be YYYY-MM-DD")
	}
	if body.DurationHours <= 0 {
		return 0, 0, time.Time{}, 0, fail(http.StatusBadRequest, "duration_hours must be positive")
	}
	if body.CheckInTime != "" || body.CheckOutTime != "" {
		if !validClock(body.CheckInTime) || !validClock(body.CheckOutTime) || body.CheckOutTime <= body.CheckInTime {
			return 0, 0, time.Time{}, 0, fail(http.StatusBadRequest, "check-in/check-out must be a valid HH:MM window")
		}
	}
	return v.PricePerHour, body.DurationHours, date, v.VendorID, nil
}

func (h *BookingHandler) cancelRepos() cancelRepos {
	return cancelRepos{
		Bookings: h.BookingRepo,
		Ledger:   h.LedgerRepo,
		Accounts: h.AccountRepo,
		Venues:   h.VenueRepo,
		Events:   h.EventRepo,
		Seats:    h.SeatRepo,
		Settings: h.SettingsRepo,
	}
}

// bookingView is the listing shape returned to clients, carrying the
// seat labels resolved from the linked seat table or the legacy
// text column.
type bookingView struct {
	ID               uint64     `json:"id"`
	UserName         string     `json:"user_name"`
	VenueID          *uint64    `json:"venue_id,omitempty"`
	EventID          *uint64    `json:"event_id,omitempty"`
	BookingDate      string     `json:"booking_date"`
	CheckInTime      *string    `json:"check_in_time,omitempty"`
	CheckOutTime     *string    `json:"check_out_time,omitempty"`
	DurationHours    *int       `json:"duration_hours,omitempty"`
	Quantity         *int       `json:"quantity,omitempty"`
	SeatLabels       []string   `json:"seat_labels,omitempty"`
	TotalAmount      float64    `json:"total_amount"`
	PointsUsed       int64      `json:"points_used"`
	RemainingAmount  float64    `json:"remaining_amount"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	RefundAmount     *float64   `json:"refund_amount,omitempty"`
	RefundPercentage *int       `json:"refund_percentage,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (h *BookingHandler) toViews(ctx context.Context, bookings []model.Booking) []bookingView {
	views := make([]bookingView, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		views = append(views, bookingView{
			ID:               b.ID,
			UserName:         b.UserName,
			VenueID:          b.VenueID,
			EventID:          b.EventID,
			BookingDate:      b.BookingDate.Format("2006-01-02"),
			CheckInTime:      b.CheckInTime,
			CheckOutTime:     b.CheckOutTime,
			DurationHours:    b.DurationHours,
			Quantity:         b.Quantity,
			SeatLabels:       h.seatLabelsFor(ctx, b),
			TotalAmount:      b.TotalAmount,
			PointsUsed:       b.PointsUsed,
			RemainingAmount:  b.RemainingAmount,
			Status:           b.Status,
			PaymentStatus:    b.PaymentStatus,
			RefundAmount:     b.RefundAmount,
			RefundPercentage: b.RefundPercentage,
			CancelledAt:      b.CancelledAt,
			CreatedAt:        b.CreatedAt,
		})
	}
	return views
}

// seatLabelsFor resolves the seat labels of an event booking.  The
// linked seat table wins; rows predating the link fall back to the
// legacy seat_ids text column in either JSON or CSV form.
func (h *BookingHandler) seatLabelsFor(ctx context.Context, b *model.Booking) []string {
	if b.EventID == nil {
		return nil
	}
	seats, err := h.SeatRepo.FindByBookingID(ctx, b.ID)
	if err != nil {
		log.Printf("booking: seat lookup failed for booking %d: %v", b.ID, err)
		return nil
	}
	if len(seats) == 0 && b.SeatIDs != nil {
		ids := repository.ParseSeatIDs(*b.SeatIDs)
		if len(ids) > 0 {
			seats, err = h.SeatRepo.FindByIDs(ctx, ids)
			if err != nil {
				log.Printf("booking: legacy seat lookup failed for booking %d: %v", b.ID, err)
				return nil
			}
		}
	}
	if len(seats) == 0 {
		return nil
	}
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.SeatLabel)
	}
	return labels
}

// publishCancellation fires the cancellation notification without
// blocking the request.  Failures are logged and ignored.
func publishCancellation(outcome *cancelOutcome) {
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.PublishBookingCancelled(pctx, queue.BookingCancelledEvent{
			BookingID:        outcome.Booking.ID,
			UserID:           outcome.Booking.UserID,
			UserName:         outcome.Booking.UserName,
			UserEmail:        outcome.UserEmail,
			TargetName:       outcome.TargetName,
			RefundPercentage: outcome.Decision.Percentage,
			RefundAmount:     outcome.Decision.Amount,
			PointsRefunded:   outcome.Decision.Points,
			Justification:    outcome.Decision.Justification,
			CancelledAt:      time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("booking: publish cancellation failed: %v", err)
		}
	}()
}

// pointsOrFull maps an omitted points_to_use to the pay-fully-in-
// points sentinel understood by ComputeQuote.
func pointsOrFull(p *int64) int64 {
	if p == nil {
		return -1
	}
	return *p
}
