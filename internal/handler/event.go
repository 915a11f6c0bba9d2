package handler

import (
	"context"
	"database/sql"
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

// EventHandler serves vendor event management: creation (with the
// per-booking-type creation fee), field edits under the capped edit
// lock, the bounded reschedule operation and outright cancellation
// with its per-booking refund cascade.
type EventHandler struct {
	EventRepo    *repository.EventRepo
	BookingRepo  *repository.BookingRepo
	LedgerRepo   *repository.LedgerRepo
	AccountRepo  *repository.AccountRepo
	VenueRepo    *repository.VenueRepo
	SeatRepo     *repository.SeatRepo
	SettingsRepo *repository.SettingsRepo
	AuditRepo    *repository.AuditRepo
}

// NewEventHandler constructs an EventHandler.  All dependencies must
// be non-nil.
func NewEventHandler(eventRepo *repository.EventRepo, bookingRepo *repository.BookingRepo, ledgerRepo *repository.LedgerRepo, accountRepo *repository.AccountRepo, venueRepo *repository.VenueRepo, seatRepo *repository.SeatRepo, settingsRepo *repository.SettingsRepo, auditRepo *repository.AuditRepo) *EventHandler {
	if eventRepo == nil || bookingRepo == nil || ledgerRepo == nil || accountRepo == nil || venueRepo == nil || seatRepo == nil || settingsRepo == nil || auditRepo == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{
		EventRepo:    eventRepo,
		BookingRepo:  bookingRepo,
		LedgerRepo:   ledgerRepo,
		AccountRepo:  accountRepo,
		VenueRepo:    venueRepo,
		SeatRepo:     seatRepo,
		SettingsRepo: settingsRepo,
		AuditRepo:    auditRepo,
	}
}

// Create handles POST /v1/vendor/events.  Seat-selection events must
// supply their seat map up front; the ticket total then equals the
// seat count.  The creation fee depends on the booking type and is
// debited in the same transaction.
func (h *EventHandler) Create(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		EventDate      string  `json:"event_date"`
		EventTime      string  `json:"event_time"`
		Location       string  `json:"location"`
		PricePerTicket float64 `json:"price_per_ticket"`
		BookingType    string  `json:"booking_type"`
		TotalTickets   int     `json:"total_tickets"`
		Phone          string  `json:"phone"`
		Seats          []struct {
			SeatLabel string  `json:"seat_label"`
			Category  string  `json:"category"`
			Price     float64 `json:"price"`
		} `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
	}
	date, ok := parseDate(body.EventDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
	}
	if body.EventTime != "" && !validClock(body.EventTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_time must be HH:MM"})
	}
	if body.PricePerTicket < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_ticket must not be negative"})
	}
	switch body.BookingType {
	case model.BookingTypeQuantity:
		if body.TotalTickets <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_tickets must be positive"})
		}
	case model.BookingTypeSeat:
		if len(body.Seats) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats are required for seat-selection events"})
		}
		body.TotalTickets = len(body.Seats)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_type must be QUANTITY or SEAT_SELECTION"})
	}
	ctx := c.Request().Context()

	fee, err := h.SettingsRepo.EventCreationFee(ctx, body.BookingType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
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

	ev := &model.Event{
		VendorID:       vendorID,
		Name:           body.Name,
		Description:    body.Description,
		EventDate:      date,
		Location:       body.Location,
		PricePerTicket: body.PricePerTicket,
		BookingType:    body.BookingType,
		TotalTickets:   body.TotalTickets,
		IsActive:       true,
		Phone:          body.Phone,
	}
	if body.EventTime != "" {
		t := body.EventTime
		ev.EventTime = &t
	}
	if err := h.EventRepo.CreateTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create event"})
	}
	if len(body.Seats) > 0 {
		seats := make([]model.EventSeat, 0, len(body.Seats))
		for _, s := range body.Seats {
			seats = append(seats, model.EventSeat{
				EventID:   ev.ID,
				SeatLabel: s.SeatLabel,
				Category:  s.Category,
				Price:     s.Price,
			})
		}
		if err := h.SeatRepo.CreateBulkTx(ctx, tx, seats); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
		}
	}
	if err := h.LedgerRepo.DebitVendorTx(ctx, tx, vendorID, fee, "event creation fee", nil); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient points for event creation fee", "fee": fee})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to charge creation fee"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "EVENT_CREATED", "event", ev.ID,
		fmt.Sprintf("name=%q type=%s tickets=%d fee=%d", ev.Name, ev.BookingType, ev.TotalTickets, fee),
		"VENDOR", vendorID)

	return c.JSON(http.StatusCreated, echo.Map{"event_id": ev.ID, "creation_fee": fee})
}

// Update handles PATCH /v1/vendor/events/:id.  Location and time
// changes count against the capped edit lock; date changes must go
// through the reschedule operation instead so the refund policy and
// payer notifications apply.
func (h *EventHandler) Update(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		EventTime      *string  `json:"event_time"`
		Location       *string  `json:"location"`
		PricePerTicket *float64 `json:"price_per_ticket"`
		TotalTickets   *int     `json:"total_tickets"`
		IsActive       *bool    `json:"is_active"`
		Phone          *string  `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.EventTime != nil && *body.EventTime != "" && !validClock(*body.EventTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_time must be HH:MM"})
	}
	ctx := c.Request().Context()

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

	ev, err := h.EventRepo.GetByIDTx(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if ev.IsCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event is cancelled"})
	}

	locationChanged := (body.Location != nil && *body.Location != ev.Location) ||
		(body.EventTime != nil && !sameClock(body.EventTime, ev.EventTime))
	if locationChanged {
		count, locked, err := service.RegisterLockedEdit(ev.EditCount, ev.IsEditLocked)
		if err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrEditLocked.Error()})
		}
		ev.EditCount = count
		ev.IsEditLocked = locked
		if body.Location != nil {
			ev.Location = *body.Location
		}
		if body.EventTime != nil {
			if *body.EventTime == "" {
				ev.EventTime = nil
			} else {
				ev.EventTime = body.EventTime
			}
		}
	}
	if body.Name != nil {
		ev.Name = *body.Name
	}
	if body.Description != nil {
		ev.Description = *body.Description
	}
	if body.PricePerTicket != nil {
		ev.PricePerTicket = *body.PricePerTicket
	}
	if body.TotalTickets != nil {
		// Adjusting the total moves the available counter by the same
		// delta so already-sold tickets stay sold.
		delta := *body.TotalTickets - ev.TotalTickets
		if ev.TicketsAvailable+delta < 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot shrink inventory below sold tickets"})
		}
		ev.TotalTickets = *body.TotalTickets
		ev.TicketsAvailable += delta
	}
	if body.IsActive != nil {
		ev.IsActive = *body.IsActive
	}
	if body.Phone != nil {
		ev.Phone = *body.Phone
	}

	if err := h.EventRepo.UpdateTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update event"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "EVENT_UPDATED", "event", ev.ID,
		fmt.Sprintf("location_changed=%t edit_count=%d locked=%t", locationChanged, ev.EditCount, ev.IsEditLocked),
		"VENDOR", vendorID)

	return c.JSON(http.StatusOK, echo.Map{
		"event_id":       ev.ID,
		"edit_count":     ev.EditCount,
		"is_edit_locked": ev.IsEditLocked,
	})
}

// Reschedule handles POST /v1/vendor/events/:id/reschedule.  At most
// two reschedules are allowed per event.  Rescheduling does not
// refund anything by itself; it grants existing bookings the 95%
// refund tier should their payers cancel later, and every affected
// payer is notified with the old and new schedule.
func (h *EventHandler) Reschedule(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		NewDate     string `json:"new_date"`
		NewTime     string `json:"new_time"`
		NewLocation string `json:"new_location"`
		Reason      string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.NewDate == "" && body.NewTime == "" && body.NewLocation == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to reschedule"})
	}
	if body.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
	}
	var newDate *time.Time
	if body.NewDate != "" {
		d, ok := parseDate(body.NewDate)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_date must be YYYY-MM-DD"})
		}
		newDate = &d
	}
	var newTime *string
	if body.NewTime != "" {
		if !validClock(body.NewTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_time must be HH:MM"})
		}
		newTime = &body.NewTime
	}
	var newLocation *string
	if body.NewLocation != "" {
		newLocation = &body.NewLocation
	}
	ctx := c.Request().Context()

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

	ev, err := h.EventRepo.GetByIDTx(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	change, err := service.ApplyReschedule(ev, newDate, newTime, newLocation, body.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRescheduleLimit):
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrRescheduleLimit.Error()})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event is cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reschedule event"})
	}
	if err := h.EventRepo.MarkRescheduledTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reschedule event"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "EVENT_RESCHEDULED", "event", ev.ID,
		fmt.Sprintf("count=%d date=%s->%s reason=%q", ev.RescheduleCount,
			change.OldDate.Format("2006-01-02"), change.NewDate.Format("2006-01-02"), body.Reason),
		"VENDOR", vendorID)
	h.notifyReschedule(ev, change, body.Reason)

	return c.JSON(http.StatusOK, echo.Map{
		"event_id":         ev.ID,
		"reschedule_count": ev.RescheduleCount,
		"event_date":       ev.EventDate.Format("2006-01-02"),
		"location":         ev.Location,
	})
}

// Cancel handles POST /v1/vendor/events/:id/cancel.  The event is
// marked cancelled first, then every non-cancelled booking goes
// through the refund-and-release core in its own transaction at the
// 100% tier.  A failure on one booking is logged and does not stop
// the remaining bookings from being processed.
func (h *EventHandler) Cancel(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
	}
	ctx := c.Request().Context()

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

	ev, err := h.EventRepo.GetByIDTx(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if ev.IsCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event already cancelled"})
	}
	if err := h.EventRepo.MarkCancelledTx(ctx, tx, eventID, body.Reason); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel event"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Cascade: one independent transaction per booking so a failure on
	// one never undoes or blocks the others.
	ids, err := h.BookingRepo.ActiveIDsByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event bookings"})
	}
	repos := cancelRepos{
		Bookings: h.BookingRepo,
		Ledger:   h.LedgerRepo,
		Accounts: h.AccountRepo,
		Venues:   h.VenueRepo,
		Events:   h.EventRepo,
		Seats:    h.SeatRepo,
		Settings: h.SettingsRepo,
	}
	now := time.Now().UTC()
	refunded, failed := 0, 0
	for _, bookingID := range ids {
		outcome, err := cancelBooking(ctx, repos, bookingID, nil, now)
		if err != nil {
			failed++
			log.Printf("event-cancel: refund failed for booking %d of event %d: %v", bookingID, eventID, err)
			continue
		}
		refunded++
		publishCancellation(outcome)
	}

	h.AuditRepo.RecordActor(ctx, "EVENT_CANCELLED", "event", eventID,
		fmt.Sprintf("reason=%q refunded=%d failed=%d", body.Reason, refunded, failed),
		"VENDOR", vendorID)
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.PublishEventCancelled(pctx, queue.EventCancelledEvent{
			EventID:          eventID,
			EventName:        ev.Name,
			VendorID:         vendorID,
			Reason:           body.Reason,
			BookingsRefunded: refunded,
			BookingsFailed:   failed,
			CancelledAt:      time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("event-cancel: publish failed: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"event_id":          eventID,
		"bookings_refunded": refunded,
		"bookings_failed":   failed,
	})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.EventRepo.GetByID(c.Request().Context(), eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": eventView(ev)})
}

// ListMine handles GET /v1/vendor/events.
func (h *EventHandler) ListMine(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.EventRepo.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	views := make([]eventViewT, 0, len(events))
	for i := range events {
		views = append(views, eventView(&events[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// ListSeats handles GET /v1/events/:id/seats, returning the full
// seat map with per-seat availability.
func (h *EventHandler) ListSeats(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	if _, err := h.EventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.SeatRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	type seatView struct {
		ID        uint64  `json:"id"`
		SeatLabel string  `json:"seat_label"`
		Category  string  `json:"category,omitempty"`
		Price     float64 `json:"price"`
		Available bool    `json:"available"`
	}
	views := make([]seatView, 0, len(seats))
	for _, s := range seats {
		views = append(views, seatView{
			ID:        s.ID,
			SeatLabel: s.SeatLabel,
			Category:  s.Category,
			Price:     s.Price,
			Available: s.BookingID == nil,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// notifyReschedule publishes one reschedule notification per active
// booking, fire-and-forget.
func (h *EventHandler) notifyReschedule(ev *model.Event, change *service.ScheduleChange, reason string) {
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		bookings, err := h.BookingRepo.ListByEvent(pctx, ev.ID)
		if err != nil {
			log.Printf("reschedule: load bookings failed for event %d: %v", ev.ID, err)
			return
		}
		for i := range bookings {
			b := &bookings[i]
			if b.Status == model.BookingCancelled {
				continue
			}
			contact, err := h.AccountRepo.GetUserContact(pctx, b.UserID)
			if err != nil {
				log.Printf("reschedule: contact lookup failed for user %d: %v", b.UserID, err)
				continue
			}
			if err := queue.PublishEventRescheduled(pctx, queue.EventRescheduledEvent{
				EventID:     ev.ID,
				EventName:   ev.Name,
				BookingID:   b.ID,
				UserID:      b.UserID,
				UserEmail:   contact.Email,
				OldDate:     change.OldDate.Format("2006-01-02"),
				NewDate:     change.NewDate.Format("2006-01-02"),
				OldTime:     clockOrEmpty(change.OldTime),
				NewTime:     clockOrEmpty(change.NewTime),
				OldLocation: change.OldLocation,
				NewLocation: change.NewLocation,
				Reason:      reason,
			}); err != nil {
				log.Printf("reschedule: publish failed for booking %d: %v", b.ID, err)
			}
		}
	}()
}

// eventView is the client-facing event shape.
type eventViewT struct {
	ID               uint64  `json:"id"`
	VendorID         uint64  `json:"vendor_id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	EventDate        string  `json:"event_date"`
	EventTime        *string `json:"event_time,omitempty"`
	Location         string  `json:"location"`
	PricePerTicket   float64 `json:"price_per_ticket"`
	BookingType      string  `json:"booking_type"`
	TotalTickets     int     `json:"total_tickets"`
	TicketsAvailable int     `json:"tickets_available"`
	IsActive         bool    `json:"is_active"`
	RescheduleCount  int     `json:"reschedule_count"`
	WasRescheduled   bool    `json:"was_rescheduled"`
	IsCancelled      bool    `json:"is_cancelled"`
	EditCount        int     `json:"edit_count"`
	IsEditLocked     bool    `json:"is_edit_locked"`
	Phone            string  `json:"phone,omitempty"`
}

func eventView(ev *model.Event) eventViewT {
	return eventViewT{
		ID:               ev.ID,
		VendorID:         ev.VendorID,
		Name:             ev.Name,
		Description:      ev.Description,
		EventDate:        ev.EventDate.Format("2006-01-02"),
		EventTime:        ev.EventTime,
		Location:         ev.Location,
		PricePerTicket:   ev.PricePerTicket,
		BookingType:      ev.BookingType,
		TotalTickets:     ev.TotalTickets,
		TicketsAvailable: ev.TicketsAvailable,
		IsActive:         ev.IsActive,
		RescheduleCount:  ev.RescheduleCount,
		WasRescheduled:   ev.WasRescheduled,
		IsCancelled:      ev.IsCancelled,
		EditCount:        ev.EditCount,
		IsEditLocked:     ev.IsEditLocked,
		Phone:            ev.Phone,
	}
}

// sameClock compares an incoming optional HH:MM value against the
// stored one, treating empty string as "clear".
func sameClock(incoming *string, current *string) bool {
	if incoming == nil {
		return true
	}
	if *incoming == "" {
		return current == nil
	}
	return current != nil && *current == *incoming
}

func clockOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
