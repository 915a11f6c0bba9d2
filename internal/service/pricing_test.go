package service

import "testing"

func TestComputeQuote_PartialPoints(t *testing.T) {
	// 2 tickets at 100 each, 150 points plus cash for the rest,
	// flat fee of 2 points.
	q := ComputeQuote(100, 2, 1, 150, 2)

	if q.TotalAmount != 200 {
		t.Fatalf("total amount = %.2f, want 200", q.TotalAmount)
	}
	if q.FullPointsNeeded != 200 {
		t.Errorf("full points needed = %d, want 200", q.FullPointsNeeded)
	}
	if q.PointsToUse != 150 {
		t.Errorf("points to use = %d, want 150", q.PointsToUse)
	}
	if q.TotalPointsRequired != 152 {
		t.Errorf("total points required = %d, want 152", q.TotalPointsRequired)
	}
	if q.RemainingAmount != 50 {
		t.Errorf("remaining amount = %.2f, want 50", q.RemainingAmount)
	}
}

func TestComputeQuote_FullPointsByDefault(t *testing.T) {
	q := ComputeQuote(100, 2, 1, -1, 2)

	if q.PointsToUse != 200 {
		t.Errorf("points to use = %d, want full 200", q.PointsToUse)
	}
	if q.RemainingAmount != 0 {
		t.Errorf("remaining amount = %.2f, want 0", q.RemainingAmount)
	}
	if q.TotalPointsRequired != 202 {
		t.Errorf("total points required = %d, want 202", q.TotalPointsRequired)
	}
}

func TestComputeQuote_ConversionRate(t *testing.T) {
	// Rate 2: every currency unit costs two points.
	q := ComputeQuote(50, 3, 2, 200, 5)

	if q.TotalAmount != 150 {
		t.Fatalf("total amount = %.2f, want 150", q.TotalAmount)
	}
	if q.FullPointsNeeded != 300 {
		t.Errorf("full points needed = %d, want 300", q.FullPointsNeeded)
	}
	// 100 points short at rate 2 => 50 in cash.
	if q.RemainingAmount != 50 {
		t.Errorf("remaining amount = %.2f, want 50", q.RemainingAmount)
	}
	if q.TotalPointsRequired != 205 {
		t.Errorf("total points required = %d, want 205", q.TotalPointsRequired)
	}
}

func TestComputeQuote_ZeroPoints(t *testing.T) {
	q := ComputeQuote(80, 1, 1, 0, 2)

	if q.PointsToUse != 0 {
		t.Errorf("points to use = %d, want 0", q.PointsToUse)
	}
	if q.RemainingAmount != 80 {
		t.Errorf("remaining amount = %.2f, want 80", q.RemainingAmount)
	}
	// Only the fee is due in points.
	if q.TotalPointsRequired != 2 {
		t.Errorf("total points required = %d, want 2", q.TotalPointsRequired)
	}
}

func TestQuote_WithTrustedTotal(t *testing.T) {
	base := ComputeQuote(100, 2, 1, -1, 2)

	t.Run("positive hint replaces total", func(t *testing.T) {
		q := base.WithTrustedTotal(180)
		if q.TotalAmount != 180 {
			t.Errorf("total amount = %.2f, want 180", q.TotalAmount)
		}
		// Settlement figures stay list-price based.
		if q.FullPointsNeeded != 200 {
			t.Errorf("full points needed = %d, want 200", q.FullPointsNeeded)
		}
	})

	t.Run("zero and negative hints are ignored", func(t *testing.T) {
		if q := base.WithTrustedTotal(0); q.TotalAmount != 200 {
			t.Errorf("total amount after zero hint = %.2f, want 200", q.TotalAmount)
		}
		if q := base.WithTrustedTotal(-5); q.TotalAmount != 200 {
			t.Errorf("total amount after negative hint = %.2f, want 200", q.TotalAmount)
		}
	})
}
