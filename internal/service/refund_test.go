package service

import (
	"testing"
	"time"

	"github.com/Pranai222/eventvenue-platform/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func eventBooking(total float64, eventDate time.Time) (*model.Booking, *model.Event) {
	eventID := uint64(7)
	return &model.Booking{
			ID:          1,
			UserID:      10,
			EventID:     &eventID,
			BookingDate: eventDate,
			TotalAmount: total,
			Status:      model.BookingConfirmed,
		}, &model.Event{
			ID:        eventID,
			VendorID:  20,
			EventDate: eventDate,
		}
}

func TestCalculateRefund_Tiers(t *testing.T) {
	now := date(2026, 3, 10)

	t.Run("advance cancellation two days out", func(t *testing.T) {
		b, ev := eventBooking(400, date(2026, 3, 12))
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 100 {
			t.Fatalf("expected 100%%, got %d%%", d.Percentage)
		}
		if d.Amount != 400 || d.Points != 400 {
			t.Errorf("expected full refund 400/400, got %.2f/%d", d.Amount, d.Points)
		}
	})

	t.Run("late cancellation one day out", func(t *testing.T) {
		b, ev := eventBooking(1000, date(2026, 3, 11))
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 75 {
			t.Fatalf("expected 75%%, got %d%%", d.Percentage)
		}
		if d.Amount != 750 || d.Points != 750 {
			t.Errorf("expected 750/750, got %.2f/%d", d.Amount, d.Points)
		}
	})

	t.Run("same day is late", func(t *testing.T) {
		b, ev := eventBooking(100, date(2026, 3, 10))
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 75 {
			t.Errorf("expected 75%%, got %d%%", d.Percentage)
		}
	})

	t.Run("rescheduled event", func(t *testing.T) {
		b, ev := eventBooking(200, date(2026, 3, 30))
		ev.WasRescheduled = true
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 95 {
			t.Fatalf("expected 95%%, got %d%%", d.Percentage)
		}
		if d.Amount != 190 {
			t.Errorf("expected 190, got %.2f", d.Amount)
		}
	})

	t.Run("vendor cancelled event", func(t *testing.T) {
		b, ev := eventBooking(200, date(2026, 3, 11))
		ev.IsCancelled = true
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 100 {
			t.Fatalf("expected 100%%, got %d%%", d.Percentage)
		}
	})
}

func TestCalculateRefund_PriorityOrder(t *testing.T) {
	now := date(2026, 3, 10)

	t.Run("cancelled beats rescheduled and days", func(t *testing.T) {
		b, ev := eventBooking(100, date(2026, 3, 30))
		ev.IsCancelled = true
		ev.WasRescheduled = true
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 100 {
			t.Errorf("expected cancelled rule to win with 100%%, got %d%%", d.Percentage)
		}
	})

	t.Run("rescheduled beats advance days", func(t *testing.T) {
		// Even 20 days out, a rescheduled event stays at 95%.
		b, ev := eventBooking(100, date(2026, 3, 30))
		ev.WasRescheduled = true
		d := CalculateRefund(b, ev, now, 1)
		if d.Percentage != 95 {
			t.Errorf("expected rescheduled rule to win with 95%%, got %d%%", d.Percentage)
		}
	})
}

func TestCalculateRefund_VenueBookingUsesBookingDate(t *testing.T) {
	now := date(2026, 3, 10)
	venueID := uint64(3)
	b := &model.Booking{
		ID:          2,
		VenueID:     &venueID,
		BookingDate: date(2026, 3, 14),
		TotalAmount: 500,
	}
	d := CalculateRefund(b, nil, now, 1)
	if d.Percentage != 100 {
		t.Fatalf("expected 100%% four days out, got %d%%", d.Percentage)
	}

	b.BookingDate = date(2026, 3, 11)
	d = CalculateRefund(b, nil, now, 1)
	if d.Percentage != 75 {
		t.Errorf("expected 75%% one day out, got %d%%", d.Percentage)
	}
}

func TestCalculateRefund_RoundingAndRate(t *testing.T) {
	now := date(2026, 3, 10)

	t.Run("half up to two decimals", func(t *testing.T) {
		b, ev := eventBooking(100.10, date(2026, 3, 30))
		ev.WasRescheduled = true
		d := CalculateRefund(b, ev, now, 1)
		// 95% of 100.10 = 95.095 -> 95.10
		if d.Amount != 95.10 {
			t.Errorf("expected 95.10, got %.4f", d.Amount)
		}
		if d.Points != 95 {
			t.Errorf("expected 95 points, got %d", d.Points)
		}
	})

	t.Run("conversion rate scales points", func(t *testing.T) {
		b, ev := eventBooking(1000, date(2026, 3, 11))
		d := CalculateRefund(b, ev, now, 2)
		if d.Amount != 750 {
			t.Fatalf("expected 750, got %.2f", d.Amount)
		}
		if d.Points != 1500 {
			t.Errorf("expected 1500 points at rate 2, got %d", d.Points)
		}
	})
}

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		name   string
		now    time.Time
		target time.Time
		want   int
	}{
		{"same day", date(2026, 1, 5), date(2026, 1, 5), 0},
		{"tomorrow late in the day", time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC), date(2026, 1, 6), 1},
		{"two days", date(2026, 1, 5), date(2026, 1, 7), 2},
		{"past date", date(2026, 1, 5), date(2026, 1, 3), -2},
		{"across month boundary", date(2026, 1, 31), date(2026, 2, 2), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysUntil(tc.now, tc.target); got != tc.want {
				t.Errorf("DaysUntil(%v, %v) = %d, want %d", tc.now, tc.target, got, tc.want)
			}
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{249.9975, 250.00},
		{95.095, 95.10},
		{10.004, 10.00},
		{-2.675, -2.68},
		{0, 0},
	}
	for _, tc := range cases {
		if got := RoundCurrency(tc.in); got != tc.want {
			t.Errorf("RoundCurrency(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
