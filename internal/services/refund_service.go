package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// RefundService owns the post-cancellation refund sub-flow:
// pending -> approved -> processed, or pending -> rejected.
type RefundService struct {
	Bookings repositories.BookingRepository
	Payments repositories.PaymentRepository
	Refunds  repositories.RefundRepository

	RequestID string
}

// Request creates a pending refund for a cancelled booking. Allowed only when
// the booking's payment completed and no refund exists yet.
func (s RefundService) Request(rc domain.RequestContext, bookingID int64, reason string) (models.Refund, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Refund{}, domain.ValidationError{Field: "reason", Msg: "required"}
	}

	b, err := s.Bookings.GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Refund{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Refund{}, domain.InternalError{Err: err}
	}
	if !rc.IsAdmin() && b.UserID != int64(rc.UserID) {
		return models.Refund{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	if b.Status != models.BookingCancelled {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: "booking is not cancelled"}
	}

	payment, err := s.Payments.GetByBookingID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: "booking has no payment"}
	}
	if err != nil {
		return models.Refund{}, domain.InternalError{Err: err}
	}
	if payment.Status != models.PaymentCompleted {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: "payment is not completed"}
	}

	if _, err := s.Refunds.GetByBookingID(bookingID); err == nil {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: "refund already requested"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Refund{}, domain.InternalError{Err: err}
	}

	id, err := s.Refunds.Create(models.Refund{
		BookingID:   bookingID,
		PaymentID:   payment.ID,
		AmountCents: payment.AmountCents,
		Reason:      reason,
		Status:      models.RefundPending,
	})
	if err != nil {
		return models.Refund{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "refund", "request",
		fmt.Sprintf("refund_id=%d booking_id=%d amount=%s", id, bookingID, utils.FormatMoney(payment.AmountCents)))

	return s.get(id)
}

func (s RefundService) get(id int64) (models.Refund, error) {
	rf, err := s.Refunds.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Refund{}, domain.NotFoundError{Resource: "refund"}
	}
	if err != nil {
		return models.Refund{}, domain.InternalError{Err: err}
	}
	return rf, nil
}

// Get returns one refund; customers may only read refunds of their bookings.
func (s RefundService) Get(rc domain.RequestContext, id int64) (models.Refund, error) {
	rf, err := s.get(id)
	if err != nil {
		return models.Refund{}, err
	}
	if !rc.IsAdmin() {
		b, err := s.Bookings.GetByID(rf.BookingID)
		if err != nil || b.UserID != int64(rc.UserID) {
			return models.Refund{}, domain.ForbiddenError{Msg: "not your refund"}
		}
	}
	return rf, nil
}

// List returns refunds; customers are scoped to their own bookings.
func (s RefundService) List(rc domain.RequestContext, f models.RefundFilter, p *domain.Pagination) ([]models.Refund, error) {
	if !rc.IsAdmin() {
		f.UserID = int64(rc.UserID)
	}
	out, err := s.Refunds.List(f, p)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Process applies an admin action: approve/reject from pending, process from
// approved. Processing also flips the payment to refunded.
func (s RefundService) Process(id int64, action, adminNotes string) (models.Refund, error) {
	rf, err := s.get(id)
	if err != nil {
		return models.Refund{}, err
	}

	switch strings.ToLower(strings.TrimSpace(action)) {
	case models.RefundActionApprove:
		ok, err := s.Refunds.Resolve(id, models.RefundApproved, adminNotes)
		if err != nil {
			return models.Refund{}, domain.InternalError{Err: err}
		}
		if !ok {
			return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: fmt.Sprintf("cannot approve a %s refund", rf.Status)}
		}
	case models.RefundActionReject:
		ok, err := s.Refunds.Resolve(id, models.RefundRejected, adminNotes)
		if err != nil {
			return models.Refund{}, domain.InternalError{Err: err}
		}
		if !ok {
			return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: fmt.Sprintf("cannot reject a %s refund", rf.Status)}
		}
	case models.RefundActionProcess:
		ok, err := s.Refunds.Process(id, adminNotes)
		if err != nil {
			return models.Refund{}, domain.InternalError{Err: err}
		}
		if !ok {
			return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: fmt.Sprintf("cannot process a %s refund", rf.Status)}
		}
		if _, err := s.Payments.UpdateStatusGuarded(rf.PaymentID, []string{models.PaymentCompleted}, models.PaymentRefunded); err != nil {
			return models.Refund{}, domain.InternalError{Err: err}
		}
	default:
		return models.Refund{}, domain.ValidationError{Field: "action", Msg: "must be approve, reject or process"}
	}

	utils.LogEvent(s.RequestID, "refund", action, fmt.Sprintf("refund_id=%d", id))
	return s.get(id)
}
