package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/repository"
)

func newBookingHandler(db *sql.DB) *BookingHandler {
	return NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewLedgerRepo(db),
		repository.NewAccountRepo(db),
		repository.NewVenueRepo(db),
		repository.NewEventRepo(db),
		repository.NewSeatRepo(db),
		repository.NewSettingsRepo(db),
		repository.NewAuditRepo(db),
	)
}

// expectVenueQuotePrefix scripts the reads Create performs before it
// opens the booking transaction: the venue lookup, the conversion
// rate and platform fee settings, and the advisory balance read.
func expectVenueQuotePrefix(mock sqlmock.Sqlmock) {
	now := time.Now()
	mock.ExpectQuery(`SELECT id, vendor_id, name, description, city, address, capacity`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "vendor_id", "name", "description", "city", "address", "capacity",
			"price_per_hour", "phone", "is_available", "edit_count", "is_edit_locked",
			"created_at", "updated_at",
		}).AddRow(9, 3, "Harbor Hall", "waterfront hall", "Pune", "12 Dock Rd", 200,
			100.0, "555-0101", true, 0, false, now, now))
	mock.ExpectQuery(`SELECT setting_value FROM settings WHERE setting_key = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"setting_value"}).AddRow("1"))
	mock.ExpectQuery(`SELECT setting_value FROM settings WHERE setting_key = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"setting_value"}).AddRow("2"))
	mock.ExpectQuery(`SELECT points FROM users WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(100000))
}

func postVenueBooking(t *testing.T, h *BookingHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	body := `{"venue_id": 9, "booking_date": "2026-06-10", "duration_hours": 2}`
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("account_id", uint64(5))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rec
}

func TestCreateVenueBooking_DateAlreadyTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	expectVenueQuotePrefix(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(int64(9), "2026-06-10").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectRollback()

	rec := postVenueBooking(t, newBookingHandler(db))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "venue already booked for this date") {
		t.Errorf("body = %s, want date conflict error", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Two requests racing for the same venue and date can both pass the
// pre-insert availability check when neither has committed a row yet.
// After its own insert each transaction re-counts; the one that sees
// both rows must roll back with a conflict instead of committing a
// second booking for the date.
func TestCreateVenueBooking_ConcurrentDateRaceRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Now()
	expectVenueQuotePrefix(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(int64(9), "2026-06-10").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, email, display_name FROM users WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "display_name"}).
			AddRow(5, "asha@example.com", "Asha"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectQuery(`SELECT created_at, updated_at FROM bookings WHERE id = \?`).
		WithArgs(int64(41)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	// The racing transaction's row is visible now: count covers both.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(int64(9), "2026-06-10").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
	mock.ExpectRollback()

	rec := postVenueBooking(t, newBookingHandler(db))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "venue already booked for this date") {
		t.Errorf("body = %s, want date conflict error", rec.Body.String())
	}
	// No ledger debit, vendor credit or commit may follow the rollback.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
