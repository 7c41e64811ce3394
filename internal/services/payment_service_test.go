package services

import (
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
)

func expectPaymentByID(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id=?")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "method", "amount_cents", "status", "transaction_id", "created_at",
		}).AddRow(int64(5), int64(11), "card", int64(15000), status, "txn-1", time.Now()))
}

func TestPaymentUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := PaymentService{Payments: repositories.PaymentRepository{DB: db}}

	expectPaymentByID(mock, models.PaymentPending)
	mock.ExpectExec("UPDATE payments SET status=").
		WithArgs(models.PaymentCompleted, int64(5), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectPaymentByID(mock, models.PaymentCompleted)

	got, err := svc.UpdateStatus(5, models.PaymentCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != models.PaymentCompleted {
		t.Fatalf("Status = %q, want completed", got.Status)
	}
}

func TestPaymentUpdateStatusGuards(t *testing.T) {
	db, mock := newMockDB(t)
	svc := PaymentService{Payments: repositories.PaymentRepository{DB: db}}

	// Refunded is reserved for refund processing.
	if _, err := svc.UpdateStatus(5, models.PaymentRefunded); !domain.IsValidation(err) {
		t.Fatalf("refunded target: got %v, want validation error", err)
	}

	// A completed payment cannot move again.
	expectPaymentByID(mock, models.PaymentCompleted)
	mock.ExpectExec("UPDATE payments SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if _, err := svc.UpdateStatus(5, models.PaymentFailed); !domain.IsConflict(err) {
		t.Fatalf("got %v, want conflict", err)
	}
}
