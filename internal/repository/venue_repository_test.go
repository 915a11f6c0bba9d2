package repository

import (
    "context"
    "testing"
    "time"

    sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestActiveBookingCountOnDateTx(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock.New: %v", err)
    }
    t.Cleanup(func() { db.Close() })
    mock.ExpectBegin()
    tx, err := db.Begin()
    if err != nil {
        t.Fatalf("begin: %v", err)
    }

    date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
        WithArgs(int64(9), "2026-06-10").
        WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))

    repo := NewVenueRepo(db)
    n, err := repo.ActiveBookingCountOnDateTx(context.Background(), tx, 9, date)
    if err != nil {
        t.Fatalf("ActiveBookingCountOnDateTx: %v", err)
    }
    if n != 2 {
        t.Errorf("count = %d, want 2", n)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestHasActiveBookingOnDateTx(t *testing.T) {
    cases := []struct {
        name  string
        count int
        want  bool
    }{
        {"free date", 0, false},
        {"taken date", 1, true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            db, mock, err := sqlmock.New()
            if err != nil {
                t.Fatalf("sqlmock.New: %v", err)
            }
            t.Cleanup(func() { db.Close() })
            mock.ExpectBegin()
            tx, err := db.Begin()
            if err != nil {
                t.Fatalf("begin: %v", err)
            }

            mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
                WithArgs(int64(9), "2026-06-10").
                WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(tc.count))

            repo := NewVenueRepo(db)
            date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
            taken, err := repo.HasActiveBookingOnDateTx(context.Background(), tx, 9, date)
            if err != nil {
                t.Fatalf("HasActiveBookingOnDateTx: %v", err)
            }
            if taken != tc.want {
                t.Errorf("taken = %v, want %v", taken, tc.want)
            }
        })
    }
}
