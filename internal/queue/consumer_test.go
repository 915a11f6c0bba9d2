package queue

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatLine_BookingConfirmed(t *testing.T) {
	body, _ := json.Marshal(BookingConfirmedEvent{
		BookingID:       42,
		UserID:          7,
		TargetName:      "Jazz Night",
		BookingDate:     "2026-06-10",
		Quantity:        2,
		SeatLabels:      []string{"A1", "A2"},
		TotalAmount:     200,
		PointsUsed:      150,
		PlatformFee:     2,
		RemainingAmount: 50,
		VendorCredited:  200,
		ConfirmedAt:     "2026-06-01T10:00:00Z",
	})

	line, err := formatLine(BookingConfirmedQueue, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Booking confirmed",
		"booking_id=42",
		"points_used=150",
		"cash=50.00",
		"vendor_credited=200",
		"seats=[A1,A2]",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %s", want, line)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("line should end with a newline")
	}
}

func TestFormatLine_BookingCancelled(t *testing.T) {
	body, _ := json.Marshal(BookingCancelledEvent{
		BookingID:        42,
		UserID:           7,
		TargetName:       "Jazz Night",
		RefundPercentage: 75,
		RefundAmount:     750,
		PointsRefunded:   750,
		Justification:    "late cancellation",
		CancelledAt:      "2026-06-09T10:00:00Z",
	})

	line, err := formatLine(BookingCancelledQueue, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Booking cancelled",
		"refund=75% (750.00)",
		"points_refunded=750",
		`reason="late cancellation"`,
		"cash_refund=none",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %s", want, line)
		}
	}
}

func TestFormatLine_EventRescheduled(t *testing.T) {
	body, _ := json.Marshal(EventRescheduledEvent{
		EventID:     5,
		EventName:   "Jazz Night",
		BookingID:   42,
		UserID:      7,
		OldDate:     "2026-06-10",
		NewDate:     "2026-06-20",
		OldLocation: "Main Hall",
		NewLocation: "Annex",
		Reason:      "venue flooding",
	})

	line, err := formatLine(EventRescheduledQueue, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Event rescheduled",
		"date 2026-06-10 -> 2026-06-20",
		`location "Main Hall" -> "Annex"`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %s", want, line)
		}
	}
}

func TestFormatLine_RejectsBadInput(t *testing.T) {
	t.Run("unknown queue", func(t *testing.T) {
		if _, err := formatLine("no.such.queue", []byte(`{}`)); err == nil {
			t.Fatal("expected error for unknown queue")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		if _, err := formatLine(BookingConfirmedQueue, []byte(`{broken`)); err == nil {
			t.Fatal("expected error for malformed body")
		}
	})
}
