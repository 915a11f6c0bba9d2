package repository

import (
    "context"
    "database/sql"
    "errors"
    "testing"

    sqlmock "github.com/DATA-DOG/go-sqlmock"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

func newLedgerMock(t *testing.T) (*LedgerRepo, sqlmock.Sqlmock, *sql.Tx) {
    t.Helper()
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
    return NewLedgerRepo(db), mock, tx
}

func TestDebitVendorClampTx_ClampsToBalance(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    // Vendor holds 100 points but the refund wants 750 back: the
    // debit clamps to 100 and the history row records the clamped
    // delta with the balance landing exactly on zero.
    mock.ExpectQuery(`SELECT points FROM vendors WHERE id = \? FOR UPDATE`).
        WithArgs(int64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(100))
    mock.ExpectExec(`UPDATE vendors SET points = points - \? WHERE id = \?`).
        WithArgs(int64(100), int64(7)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`INSERT INTO point_history`).
        WithArgs(model.AccountVendor, int64(7), int64(-100), "booking refund reversal", int64(100), int64(0), int64(42)).
        WillReturnResult(sqlmock.NewResult(1, 1))

    bid := uint64(42)
    got, err := repo.DebitVendorClampTx(context.Background(), tx, 7, 750, "booking refund reversal", &bid)
    if err != nil {
        t.Fatalf("DebitVendorClampTx: %v", err)
    }
    if got != 100 {
        t.Errorf("deducted = %d, want 100", got)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestDebitVendorClampTx_ZeroBalanceIsNoOp(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    mock.ExpectQuery(`SELECT points FROM vendors WHERE id = \? FOR UPDATE`).
        WithArgs(int64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(0))

    got, err := repo.DebitVendorClampTx(context.Background(), tx, 7, 500, "booking refund reversal", nil)
    if err != nil {
        t.Fatalf("DebitVendorClampTx: %v", err)
    }
    if got != 0 {
        t.Errorf("deducted = %d, want 0", got)
    }
    // No balance update and no history row may follow a zero clamp.
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestDebitVendorClampTx_FullDebitWhenSufficient(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    mock.ExpectQuery(`SELECT points FROM vendors WHERE id = \? FOR UPDATE`).
        WithArgs(int64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(1000))
    mock.ExpectExec(`UPDATE vendors SET points = points - \? WHERE id = \?`).
        WithArgs(int64(750), int64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`INSERT INTO point_history`).
        WithArgs(model.AccountVendor, int64(3), int64(-750), "booking refund reversal", int64(1000), int64(250), nil).
        WillReturnResult(sqlmock.NewResult(1, 1))

    got, err := repo.DebitVendorClampTx(context.Background(), tx, 3, 750, "booking refund reversal", nil)
    if err != nil {
        t.Fatalf("DebitVendorClampTx: %v", err)
    }
    if got != 750 {
        t.Errorf("deducted = %d, want 750", got)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestDebitUserTx_InsufficientLeavesBalanceUntouched(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    // The guarded UPDATE matches no row when the balance is short;
    // the follow-up read confirms the user exists and the call must
    // fail without appending history.
    mock.ExpectExec(`UPDATE users SET points = points - \? WHERE id = \? AND points >= \?`).
        WithArgs(int64(150), int64(5), int64(150)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT points FROM users WHERE id = \?`).
        WithArgs(int64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(40))

    err := repo.DebitUserTx(context.Background(), tx, 5, 150, "booking payment", nil)
    if !errors.Is(err, ErrInsufficientPoints) {
        t.Fatalf("err = %v, want ErrInsufficientPoints", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestDebitUserTx_MissingUserSurfacesNoRows(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    mock.ExpectExec(`UPDATE users SET points = points - \? WHERE id = \? AND points >= \?`).
        WithArgs(int64(99), int64(11), int64(99)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT points FROM users WHERE id = \?`).
        WithArgs(int64(11)).
        WillReturnError(sql.ErrNoRows)

    err := repo.DebitUserTx(context.Background(), tx, 11, 99, "booking payment", nil)
    if !errors.Is(err, sql.ErrNoRows) {
        t.Fatalf("err = %v, want sql.ErrNoRows", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestDebitUserTx_RecordsPrevAndNewBalance(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    // Balance goes 500 -> 350; the history row must carry both
    // endpoints so replaying deltas reconstructs the balance.
    mock.ExpectExec(`UPDATE users SET points = points - \? WHERE id = \? AND points >= \?`).
        WithArgs(int64(150), int64(5), int64(150)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectQuery(`SELECT points FROM users WHERE id = \?`).
        WithArgs(int64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(350))
    mock.ExpectExec(`INSERT INTO point_history`).
        WithArgs(model.AccountUser, int64(5), int64(-150), "booking payment", int64(500), int64(350), int64(42)).
        WillReturnResult(sqlmock.NewResult(1, 1))

    bid := uint64(42)
    if err := repo.DebitUserTx(context.Background(), tx, 5, 150, "booking payment", &bid); err != nil {
        t.Fatalf("DebitUserTx: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestCreditUserTx_RecordsPrevAndNewBalance(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
        WithArgs(int64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(50))
    mock.ExpectExec(`UPDATE users SET points = points \+ \? WHERE id = \?`).
        WithArgs(int64(100), int64(5)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`INSERT INTO point_history`).
        WithArgs(model.AccountUser, int64(5), int64(100), "booking refund", int64(50), int64(150), int64(9)).
        WillReturnResult(sqlmock.NewResult(1, 1))

    bid := uint64(9)
    if err := repo.CreditUserTx(context.Background(), tx, 5, 100, "booking refund", &bid); err != nil {
        t.Fatalf("CreditUserTx: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}

func TestLedgerTx_NonPositiveAmountsAreNoOps(t *testing.T) {
    repo, mock, tx := newLedgerMock(t)

    ctx := context.Background()
    if err := repo.DebitUserTx(ctx, tx, 5, 0, "booking payment", nil); err != nil {
        t.Errorf("DebitUserTx(0): %v", err)
    }
    if err := repo.CreditVendorTx(ctx, tx, 7, -10, "booking settlement", nil); err != nil {
        t.Errorf("CreditVendorTx(-10): %v", err)
    }
    if got, err := repo.DebitVendorClampTx(ctx, tx, 7, 0, "booking refund reversal", nil); err != nil || got != 0 {
        t.Errorf("DebitVendorClampTx(0) = (%d, %v), want (0, nil)", got, err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Errorf("unmet expectations: %v", err)
    }
}
