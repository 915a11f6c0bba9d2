package repository

import (
    "context"
    "errors"
    "testing"

    sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestReserveTicketsTx_SoldOut(t *testing.T) {
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

    // Guarded decrement matches no row when fewer tickets remain than
    // requested; inventory is left untouched and the caller gets
    // ErrSoldOut after the confirming read.
    mock.ExpectExec(`UPDATE events SET tickets_available = tickets_available - \?`).
        WithArgs(int64(4), int64(12), int64(4)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT tickets_available FROM events WHERE id = \?`).
        WithArgs(int64(12)).
        WillReturnRows(sqlmock.NewRows([]string{"tickets_available"}).AddRow(2))

    repo := NewEventRepo(db)
    if err := repo.ReserveTicketsTx(context.Background(), tx, 12, 4); !errors.Is(err, ErrSoldOut) {
        t.Fatalf("err = %v, want ErrSoldOut", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestReserveTicketsTx_DecrementsWhenAvailable(t *testing.T) {
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

    mock.ExpectExec(`UPDATE events SET tickets_available = tickets_available - \?`).
        WithArgs(int64(4), int64(12), int64(4)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    repo := NewEventRepo(db)
    if err := repo.ReserveTicketsTx(context.Background(), tx, 12, 4); err != nil {
        t.Fatalf("ReserveTicketsTx: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}
