package services

import (
	"database/sql"
	"errors"
	"fmt"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// PaymentService exposes the admin payment views and the completion/failure
// status update. Refunded is only ever set by refund processing.
type PaymentService struct {
	Payments repositories.PaymentRepository

	RequestID string
}

func (s PaymentService) List(f models.PaymentFilter, p *domain.Pagination) ([]models.Payment, error) {
	out, err := s.Payments.List(f, p)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s PaymentService) Get(id int64) (models.Payment, error) {
	pay, err := s.Payments.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return pay, nil
}

// UpdateStatus moves a pending payment to completed or failed.
func (s PaymentService) UpdateStatus(id int64, to string) (models.Payment, error) {
	if to != models.PaymentCompleted && to != models.PaymentFailed {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "must be completed or failed"}
	}
	pay, err := s.Get(id)
	if err != nil {
		return models.Payment{}, err
	}
	ok, err := s.Payments.UpdateStatusGuarded(id, []string{models.PaymentPending}, to)
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Payment{}, domain.ConflictError{
			Resource: "payment",
			Msg:      fmt.Sprintf("cannot move a %s payment to %s", pay.Status, to),
		}
	}
	utils.LogEvent(s.RequestID, "payment", "update_status", fmt.Sprintf("payment_id=%d status=%s", id, to))
	return s.Get(id)
}
