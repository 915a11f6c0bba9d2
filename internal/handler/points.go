package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/model"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
	"github.com/Pranai222/eventvenue-platform/internal/service"
)

// PointsHandler serves ledger reads and point purchases.  Balance
// and history work for both account sides; the authenticated role
// decides which ledger is read.
type PointsHandler struct {
	LedgerRepo   *repository.LedgerRepo
	AccountRepo  *repository.AccountRepo
	SettingsRepo *repository.SettingsRepo
	AuditRepo    *repository.AuditRepo
}

// NewPointsHandler constructs a PointsHandler.  All dependencies
// must be non-nil.
func NewPointsHandler(ledgerRepo *repository.LedgerRepo, accountRepo *repository.AccountRepo, settingsRepo *repository.SettingsRepo, auditRepo *repository.AuditRepo) *PointsHandler {
	if ledgerRepo == nil || accountRepo == nil || settingsRepo == nil || auditRepo == nil {
		panic("nil repository passed to NewPointsHandler")
	}
	return &PointsHandler{
		LedgerRepo:   ledgerRepo,
		AccountRepo:  accountRepo,
		SettingsRepo: settingsRepo,
		AuditRepo:    auditRepo,
	}
}

// Balance handles GET /v1/points.
func (h *PointsHandler) Balance(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	var points int64
	accountType := model.AccountUser
	if getRole(c) == "VENDOR" {
		accountType = model.AccountVendor
		points, err = h.AccountRepo.VendorPoints(ctx, accountID)
	} else {
		points, err = h.AccountRepo.UserPoints(ctx, accountID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"account_type": accountType, "points": points})
}

// History handles GET /v1/points/history.  Entries come back newest
// first; each one carries the balance before and after its delta so
// the full balance trajectory can be reconstructed from history
// alone.
func (h *PointsHandler) History(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	accountType := model.AccountUser
	if getRole(c) == "VENDOR" {
		accountType = model.AccountVendor
	}
	entries, err := h.LedgerRepo.ListByAccount(c.Request().Context(), accountType, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load history"})
	}
	type entryView struct {
		ID             uint64    `json:"id"`
		Delta          int64     `json:"delta"`
		Reason         string    `json:"reason"`
		PreviousPoints int64     `json:"previous_points"`
		NewPoints      int64     `json:"new_points"`
		BookingID      *uint64   `json:"booking_id,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView{
			ID:             e.ID,
			Delta:          e.Delta,
			Reason:         e.Reason,
			PreviousPoints: e.PreviousPoints,
			NewPoints:      e.NewPoints,
			BookingID:      e.BookingID,
			CreatedAt:      e.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// Purchase handles POST /v1/points/purchase.  The cash payment is
// settled externally; the request carries its reference and the
// paid amount, which converts to points at the current rate.
func (h *PointsHandler) Purchase(c echo.Context) error {
	userID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Amount     float64 `json:"amount"`
		PaymentRef string  `json:"payment_ref"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}
	if body.PaymentRef == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_ref is required"})
	}
	ctx := c.Request().Context()

	rate, err := h.SettingsRepo.ConversionRate(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
	}
	points := service.PointsForAmount(body.Amount, rate)
	if points <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount too small to convert to points"})
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

	reason := fmt.Sprintf("points purchase (%.2f, ref %s)", body.Amount, body.PaymentRef)
	if err := h.LedgerRepo.CreditUserTx(ctx, tx, userID, points, reason, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to credit points"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.AuditRepo.RecordActor(ctx, "POINTS_PURCHASED", "user", userID,
		fmt.Sprintf("amount=%.2f points=%d ref=%s", body.Amount, points, body.PaymentRef),
		"USER", userID)

	return c.JSON(http.StatusCreated, echo.Map{"points_added": points})
}
