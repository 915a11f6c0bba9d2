package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/model"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
	"github.com/Pranai222/eventvenue-platform/internal/service"
)

// VenueHandler serves vendor venue management and the public
// availability check.  Creating a venue debits the vendor the
// configured creation fee in the same transaction, so a vendor who
// cannot afford the fee ends up with no venue and no charge.
type VenueHandler struct {
	VenueRepo    *repository.VenueRepo
	LedgerRepo   *repository.LedgerRepo
	SettingsRepo *repository.SettingsRepo
	AuditRepo    *repository.AuditRepo
}

// NewVenueHandler constructs a VenueHandler.  All dependencies must
// be non-nil.
func NewVenueHandler(venueRepo *repository.VenueRepo, ledgerRepo *repository.LedgerRepo, settingsRepo *repository.SettingsRepo, auditRepo *repository.AuditRepo) *VenueHandler {
	if venueRepo == nil || ledgerRepo == nil || settingsRepo == nil || auditRepo == nil {
		panic("nil repository passed to NewVenueHandler")
	}
	return &VenueHandler{
		VenueRepo:    venueRepo,
		LedgerRepo:   ledgerRepo,
		SettingsRepo: settingsRepo,
		AuditRepo:    auditRepo,
	}
}

// Create handles POST /v1/vendor/venues.
func (h *VenueHandler) Create(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		City         string  `json:"city"`
		Address      string  `json:"address"`
		Capacity     int     `json:"capacity"`
		PricePerHour float64 `json:"price_per_hour"`
		Phone        string  `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.City == "" || body.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, city and address are required"})
	}
	if body.PricePerHour < 0 || body.Capacity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity and price must not be negative"})
	}
	ctx := c.Request().Context()

	fee, err := h.SettingsRepo.GetInt(ctx, model.SettingVenueCreationFee, model.DefaultVenueCreationFee)
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

	v := &model.Venue{
		VendorID:     vendorID,
		Name:         body.Name,
		Description:  body.Description,
		City:         body.City,
		Address:      body.Address,
		Capacity:     body.Capacity,
		PricePerHour: body.PricePerHour,
		Phone:        body.Phone,
		IsAvailable:  true,
	}
	if err := h.VenueRepo.CreateTx(ctx, tx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create venue"})
	}
	if err := h.LedgerRepo.DebitVendorTx(ctx, tx, vendorID, fee, "venue creation fee", nil); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient points for venue creation fee", "fee": fee})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to charge creation fee"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "VENUE_CREATED", "venue", v.ID,
		fmt.Sprintf("name=%q fee=%d", v.Name, fee), "VENDOR", vendorID)

	return c.JSON(http.StatusCreated, echo.Map{"venue_id": v.ID, "creation_fee": fee})
}

// Update handles PATCH /v1/vendor/venues/:id.  Changing the city or
// address counts against the capped edit lock; other fields are
// freely editable.
func (h *VenueHandler) Update(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var body struct {
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		City         *string  `json:"city"`
		Address      *string  `json:"address"`
		Capacity     *int     `json:"capacity"`
		PricePerHour *float64 `json:"price_per_hour"`
		Phone        *string  `json:"phone"`
		IsAvailable  *bool    `json:"is_available"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
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

	v, err := h.VenueRepo.GetByIDTx(ctx, tx, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if v.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	locationChanged := (body.City != nil && *body.City != v.City) ||
		(body.Address != nil && *body.Address != v.Address)
	if locationChanged {
		count, locked, err := service.RegisterLockedEdit(v.EditCount, v.IsEditLocked)
		if err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrEditLocked.Error()})
		}
		v.EditCount = count
		v.IsEditLocked = locked
		if body.City != nil {
			v.City = *body.City
		}
		if body.Address != nil {
			v.Address = *body.Address
		}
	}
	if body.Name != nil {
		v.Name = *body.Name
	}
	if body.Description != nil {
		v.Description = *body.Description
	}
	if body.Capacity != nil {
		v.Capacity = *body.Capacity
	}
	if body.PricePerHour != nil {
		v.PricePerHour = *body.PricePerHour
	}
	if body.Phone != nil {
		v.Phone = *body.Phone
	}
	if body.IsAvailable != nil {
		v.IsAvailable = *body.IsAvailable
	}

	if err := h.VenueRepo.UpdateTx(ctx, tx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update venue"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "VENUE_UPDATED", "venue", v.ID,
		fmt.Sprintf("location_changed=%t edit_count=%d locked=%t", locationChanged, v.EditCount, v.IsEditLocked),
		"VENDOR", vendorID)

	return c.JSON(http.StatusOK, echo.Map{
		"venue_id":       v.ID,
		"edit_count":     v.EditCount,
		"is_edit_locked": v.IsEditLocked,
	})
}

// ListMine handles GET /v1/vendor/venues.
func (h *VenueHandler) ListMine(c echo.Context) error {
	vendorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venues, err := h.VenueRepo.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": venueViews(venues)})
}

// Get handles GET /v1/venues/:id.
func (h *VenueHandler) Get(c echo.Context) error {
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	v, err := h.VenueRepo.GetByID(c.Request().Context(), venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": venueView(v)})
}

// Availability handles GET /v1/venues/:id/availability?date=YYYY-MM-DD.
// With optional check_in/check_out query parameters it also reports
// whether the requested intra-day window overlaps an existing
// booking.  The checks run inside one read transaction so both
// answers reflect the same snapshot.
func (h *VenueHandler) Availability(c echo.Context) error {
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	date, ok := parseDate(c.QueryParam("date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	checkIn, checkOut := c.QueryParam("check_in"), c.QueryParam("check_out")
	if (checkIn == "") != (checkOut == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be given together"})
	}
	if checkIn != "" && (!validClock(checkIn) || !validClock(checkOut) || checkOut <= checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check-in/check-out must be a valid HH:MM window"})
	}
	ctx := c.Request().Context()

	if _, err := h.VenueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.LedgerRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()

	taken, err := h.VenueRepo.HasActiveBookingOnDateTx(ctx, tx, venueID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	overlaps := false
	if checkIn != "" {
		overlaps, err = h.VenueRepo.HasOverlappingBookingTx(ctx, tx, venueID, date, checkIn, checkOut)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":            date.Format("2006-01-02"),
		"date_taken":      taken,
		"window_overlaps": overlaps,
		"available":       !taken,
	})
}

// venueView is the client-facing venue shape.
type venueViewT struct {
	ID           uint64  `json:"id"`
	VendorID     uint64  `json:"vendor_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	City         string  `json:"city"`
	Address      string  `json:"address"`
	Capacity     int     `json:"capacity"`
	PricePerHour float64 `json:"price_per_hour"`
	Phone        string  `json:"phone,omitempty"`
	IsAvailable  bool    `json:"is_available"`
	EditCount    int     `json:"edit_count"`
	IsEditLocked bool    `json:"is_edit_locked"`
}

func venueView(v *model.Venue) venueViewT {
	return venueViewT{
		ID:           v.ID,
		VendorID:     v.VendorID,
		Name:         v.Name,
		Description:  v.Description,
		City:         v.City,
		Address:      v.Address,
		Capacity:     v.Capacity,
		PricePerHour: v.PricePerHour,
		Phone:        v.Phone,
		IsAvailable:  v.IsAvailable,
		EditCount:    v.EditCount,
		IsEditLocked: v.IsEditLocked,
	}
}

func venueViews(venues []model.Venue) []venueViewT {
	out := make([]venueViewT, 0, len(venues))
	for i := range venues {
		out = append(out, venueView(&venues[i]))
	}
	return out
}
