package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/model"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
)

// AdminHandler serves the settings endpoints.  Setting writes take
// effect immediately: every pricing computation reads the settings
// table live, so there is no cache to invalidate.
type AdminHandler struct {
	SettingsRepo *repository.SettingsRepo
	AuditRepo    *repository.AuditRepo
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must
// be non-nil.
func NewAdminHandler(settingsRepo *repository.SettingsRepo, auditRepo *repository.AuditRepo) *AdminHandler {
	if settingsRepo == nil || auditRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{SettingsRepo: settingsRepo, AuditRepo: auditRepo}
}

// GetSettings handles GET /v1/admin/settings.
func (h *AdminHandler) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	rate, err := h.SettingsRepo.ConversionRate(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}
	fees, err := h.SettingsRepo.PlatformFees(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"conversion_rate": rate,
		"fees":            fees,
	})
}

// UpdateSettings handles PATCH /v1/admin/settings.  Only provided
// fields are written; each must be a non-negative integer (the
// conversion rate must be positive).
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	adminID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ConversionRate        *int64 `json:"conversion_rate"`
		UserBookingFee        *int64 `json:"user_platform_fee_points"`
		VenueCreationFee      *int64 `json:"venue_creation_points"`
		EventQuantityFee      *int64 `json:"event_creation_points_quantity"`
		EventSeatSelectionFee *int64 `json:"event_creation_points_seat"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	updates := map[string]*int64{
		model.SettingConversionRate:        body.ConversionRate,
		model.SettingUserPlatformFee:       body.UserBookingFee,
		model.SettingVenueCreationFee:      body.VenueCreationFee,
		model.SettingEventCreationQuantity: body.EventQuantityFee,
		model.SettingEventCreationSeat:     body.EventSeatSelectionFee,
	}
	if body.ConversionRate != nil && *body.ConversionRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "conversion_rate must be positive"})
	}
	for key, v := range updates {
		if v != nil && *v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": key + " must not be negative"})
		}
	}

	ctx := c.Request().Context()
	changed := 0
	for key, v := range updates {
		if v == nil {
			continue
		}
		if err := h.SettingsRepo.Set(ctx, key, strconv.FormatInt(*v, 10)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
		}
		h.AuditRepo.RecordActor(ctx, "SETTING_UPDATED", "setting", 0,
			fmt.Sprintf("%s=%d", key, *v), "ADMIN", adminID)
		changed++
	}
	if changed == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no settings provided"})
	}
	return h.GetSettings(c)
}

// UpdateConversionRate handles PUT /v1/admin/settings/conversion-rate.
func (h *AdminHandler) UpdateConversionRate(c echo.Context) error {
	adminID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ConversionRate int64 `json:"conversion_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ConversionRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "conversion_rate must be positive"})
	}
	ctx := c.Request().Context()
	if err := h.SettingsRepo.Set(ctx, model.SettingConversionRate, strconv.FormatInt(body.ConversionRate, 10)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
	}
	h.AuditRepo.RecordActor(ctx, "SETTING_UPDATED", "setting", 0,
		fmt.Sprintf("%s=%d", model.SettingConversionRate, body.ConversionRate), "ADMIN", adminID)
	return c.JSON(http.StatusOK, echo.Map{"conversion_rate": body.ConversionRate})
}

// UpdatePlatformFees handles PUT /v1/admin/settings/platform-fees.
// All four fee values must be supplied; they replace the current set.
func (h *AdminHandler) UpdatePlatformFees(c echo.Context) error {
	adminID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		UserBookingFee        int64 `json:"user_platform_fee_points"`
		VenueCreationFee      int64 `json:"venue_creation_points"`
		EventQuantityFee      int64 `json:"event_creation_points_quantity"`
		EventSeatSelectionFee int64 `json:"event_creation_points_seat"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	fees := map[string]int64{
		model.SettingUserPlatformFee:       body.UserBookingFee,
		model.SettingVenueCreationFee:      body.VenueCreationFee,
		model.SettingEventCreationQuantity: body.EventQuantityFee,
		model.SettingEventCreationSeat:     body.EventSeatSelectionFee,
	}
	for key, v := range fees {
		if v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": key + " must not be negative"})
		}
	}
	ctx := c.Request().Context()
	for key, v := range fees {
		if err := h.SettingsRepo.Set(ctx, key, strconv.FormatInt(v, 10)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
		}
		h.AuditRepo.RecordActor(ctx, "SETTING_UPDATED", "setting", 0,
			fmt.Sprintf("%s=%d", key, v), "ADMIN", adminID)
	}
	return h.GetSettings(c)
}
