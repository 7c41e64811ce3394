package services

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
)

func newRefundService(db *sql.DB) RefundService {
	return RefundService{
		Bookings: repositories.BookingRepository{DB: db},
		Payments: repositories.PaymentRepository{DB: db},
		Refunds:  repositories.RefundRepository{DB: db},
	}
}

func refundMockRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "payment_id", "amount_cents", "reason", "status",
		"admin_notes", "requested_at", "approved_at", "processed_at",
	})
}

func expectBookingByID(mock sqlmock.Sqlmock, status string) {
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id=?")).
		WillReturnRows(bookingMockRows().AddRow(
			int64(11), "SF-TESTREF1", int64(7), int64(3), int64(42), "2026-09-10", "08:30",
			3, int64(15000), status, "", now, now,
		))
}

func expectPaymentByBooking(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE booking_id=?")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "method", "amount_cents", "status", "transaction_id", "created_at",
		}).AddRow(int64(5), int64(11), "card", int64(15000), status, "txn-1", time.Now()))
}

func expectRefundByID(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM refunds WHERE id=?")).
		WillReturnRows(refundMockRows().AddRow(
			int64(9), int64(11), int64(5), int64(15000), "trip cancelled", status,
			"", time.Now(), nil, nil,
		))
}

func TestRefundRequest(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newRefundService(db)
	rc := domain.RequestContext{UserID: 42, Role: models.RoleCustomer}

	expectBookingByID(mock, models.BookingCancelled)
	expectPaymentByBooking(mock, models.PaymentCompleted)
	mock.ExpectQuery(regexp.QuoteMeta("FROM refunds WHERE booking_id=?")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO refunds").
		WithArgs(int64(11), int64(5), int64(15000), "trip cancelled", models.RefundPending).
		WillReturnResult(sqlmock.NewResult(9, 1))
	expectRefundByID(mock, models.RefundPending)

	got, err := svc.Request(rc, 11, "trip cancelled")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	// The refund covers the full payment amount.
	if got.AmountCents != 15000 {
		t.Fatalf("AmountCents = %d, want 15000", got.AmountCents)
	}
	if got.Status != models.RefundPending {
		t.Fatalf("Status = %q, want pending", got.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRefundRequestPreconditions(t *testing.T) {
	rc := domain.RequestContext{UserID: 42, Role: models.RoleCustomer}

	t.Run("empty reason", func(t *testing.T) {
		db, _ := newMockDB(t)
		if _, err := newRefundService(db).Request(rc, 11, "  "); !domain.IsValidation(err) {
			t.Fatalf("got %v, want validation error", err)
		}
	})

	t.Run("foreign booking", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectBookingByID(mock, models.BookingCancelled)
		other := domain.RequestContext{UserID: 99, Role: models.RoleCustomer}
		if _, err := newRefundService(db).Request(other, 11, "trip cancelled"); !domain.IsForbidden(err) {
			t.Fatalf("got %v, want forbidden", err)
		}
	})

	t.Run("booking not cancelled", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectBookingByID(mock, models.BookingConfirmed)
		if _, err := newRefundService(db).Request(rc, 11, "trip cancelled"); !domain.IsConflict(err) {
			t.Fatalf("got %v, want conflict", err)
		}
	})

	t.Run("payment not completed", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectBookingByID(mock, models.BookingCancelled)
		expectPaymentByBooking(mock, models.PaymentPending)
		if _, err := newRefundService(db).Request(rc, 11, "trip cancelled"); !domain.IsConflict(err) {
			t.Fatalf("got %v, want conflict", err)
		}
	})

	t.Run("refund already requested", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectBookingByID(mock, models.BookingCancelled)
		expectPaymentByBooking(mock, models.PaymentCompleted)
		mock.ExpectQuery(regexp.QuoteMeta("FROM refunds WHERE booking_id=?")).
			WillReturnRows(refundMockRows().AddRow(
				int64(9), int64(11), int64(5), int64(15000), "earlier request", models.RefundPending,
				"", time.Now(), nil, nil,
			))
		if _, err := newRefundService(db).Request(rc, 11, "trip cancelled"); !domain.IsConflict(err) {
			t.Fatalf("got %v, want conflict", err)
		}
	})
}

func TestRefundProcessActions(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectRefundByID(mock, models.RefundPending)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refunds SET status=?, admin_notes=?, approved_at=NOW()")).
			WithArgs(models.RefundApproved, "ok", int64(9), models.RefundPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectRefundByID(mock, models.RefundApproved)

		got, err := newRefundService(db).Process(9, "approve", "ok")
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if got.Status != models.RefundApproved {
			t.Fatalf("Status = %q, want approved", got.Status)
		}
	})

	t.Run("reject pending", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectRefundByID(mock, models.RefundPending)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refunds SET status=?, admin_notes=?, approved_at=NOW()")).
			WithArgs(models.RefundRejected, "out of window", int64(9), models.RefundPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectRefundByID(mock, models.RefundRejected)

		got, err := newRefundService(db).Process(9, "reject", "out of window")
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if got.Status != models.RefundRejected {
			t.Fatalf("Status = %q, want rejected", got.Status)
		}
	})

	t.Run("process approved flips payment", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectRefundByID(mock, models.RefundApproved)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refunds SET status=?, admin_notes=?, processed_at=NOW()")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE payments SET status=").
			WithArgs(models.PaymentRefunded, int64(5), models.PaymentCompleted).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectRefundByID(mock, models.RefundProcessed)

		got, err := newRefundService(db).Process(9, "process", "")
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if got.Status != models.RefundProcessed {
			t.Fatalf("Status = %q, want processed", got.Status)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("process pending conflicts", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectRefundByID(mock, models.RefundPending)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refunds SET status=?, admin_notes=?, processed_at=NOW()")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if _, err := newRefundService(db).Process(9, "process", ""); !domain.IsConflict(err) {
			t.Fatalf("got %v, want conflict", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectRefundByID(mock, models.RefundPending)
		if _, err := newRefundService(db).Process(9, "escalate", ""); !domain.IsValidation(err) {
			t.Fatalf("got %v, want validation error", err)
		}
	})
}
