package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"seaferry/internal/cache"
	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// BookingService implements the booking lifecycle: creation with an atomic
// capacity re-check, detail reads with linked payment/refund, and the
// forward-only status transitions.
type BookingService struct {
	DB       *sql.DB
	Routes   repositories.RouteRepository
	Bookings repositories.BookingRepository
	Payments repositories.PaymentRepository
	Refunds  repositories.RefundRepository
	Drafts   cache.DraftStore
	Cache    cache.CapacityCache

	RequestID string
}

var paymentMethods = map[string]bool{
	"card":          true,
	"bank_transfer": true,
	"cash":          true,
}

func (s BookingService) validateCreate(rt models.Route, in *models.CreateBookingInput) error {
	in.TravelDate = strings.TrimSpace(in.TravelDate)
	in.DepartureTime = strings.TrimSpace(in.DepartureTime)
	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	in.SpecialRequest = strings.TrimSpace(in.SpecialRequest)

	date, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return domain.ValidationError{Field: "travel_date", Msg: "must be YYYY-MM-DD"}
	}
	today, _ := utils.ParseDate(utils.FormatDate(time.Now()))
	if date.Before(today) {
		return domain.ValidationError{Field: "travel_date", Msg: "must not be in the past"}
	}
	if rt.Status != models.RouteActive {
		return domain.ValidationError{Field: "route_id", Msg: "route is not active"}
	}
	if len(rt.Schedule) == 0 {
		return domain.ValidationError{Field: "departure_time", Msg: "no departure times available"}
	}
	if !rt.HasDeparture(in.DepartureTime) {
		return domain.ValidationError{Field: "departure_time", Msg: "not a scheduled departure"}
	}
	if in.Passengers < 1 {
		return domain.ValidationError{Field: "passengers", Msg: "must be at least 1"}
	}
	if !paymentMethods[in.PaymentMethod] {
		return domain.ValidationError{Field: "payment_method", Msg: "unsupported payment method"}
	}
	return nil
}

// Create books seats for the authenticated user. The capacity check runs
// inside the insert transaction so two overlapping creations cannot oversell
// a slot; a shortfall surfaces as a conflict for the client to resolve by
// resubmitting with different inputs.
func (s BookingService) Create(ctx context.Context, rc domain.RequestContext, in models.CreateBookingInput) (models.Booking, error) {
	rt, err := s.Routes.GetByID(in.RouteID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if err := s.validateCreate(rt, &in); err != nil {
		return models.Booking{}, err
	}

	capacity := 0
	if rt.Vessel != nil {
		capacity = rt.Vessel.Capacity
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	booked, err := s.Bookings.BookedSeatsTx(tx, rt.ID, in.TravelDate, in.DepartureTime)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	remaining := capacity - booked
	if in.Passengers > remaining {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("only %d seats remain for this departure", max(remaining, 0)),
		}
	}

	booking := models.Booking{
		Reference:      utils.NewBookingReference(),
		RouteID:        rt.ID,
		VesselID:       rt.VesselID,
		UserID:         int64(rc.UserID),
		TravelDate:     in.TravelDate,
		DepartureTime:  in.DepartureTime,
		Passengers:     in.Passengers,
		TotalCents:     rt.PriceCents * int64(in.Passengers),
		Status:         models.BookingPending,
		SpecialRequest: in.SpecialRequest,
	}

	bookingID, err := s.Bookings.CreateTx(tx, booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	payment := models.Payment{
		BookingID:     bookingID,
		Method:        in.PaymentMethod,
		AmountCents:   booking.TotalCents,
		Status:        models.PaymentPending,
		TransactionID: utils.NewTransactionID(),
	}
	if _, err := s.Payments.CreateTx(tx, payment); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	// Creation consumed the pending draft.
	if s.Drafts != nil {
		_ = s.Drafts.Clear(ctx, int64(rc.UserID))
	}
	s.Cache.InvalidateSlot(ctx, rt.VesselID, rt.ID, in.TravelDate, in.DepartureTime, capacity)

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d route_id=%d passengers=%d", bookingID, rt.ID, in.Passengers))

	return s.get(bookingID)
}

func (s BookingService) get(id int64) (models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	s.attach(&b)
	return b, nil
}

func (s BookingService) attach(b *models.Booking) {
	if rt, err := s.Routes.GetByID(b.RouteID); err == nil {
		b.Route = &rt
	}
	if p, err := s.Payments.GetByBookingID(b.ID); err == nil {
		b.Payment = &p
	}
	if rf, err := s.Refunds.GetByBookingID(b.ID); err == nil {
		b.Refund = &rf
	}
}

// Get returns one booking. Customers may only read their own.
func (s BookingService) Get(rc domain.RequestContext, id int64) (models.Booking, error) {
	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if !rc.IsAdmin() && b.UserID != int64(rc.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	return b, nil
}

// GetByReference looks a booking up by its human-readable code.
func (s BookingService) GetByReference(rc domain.RequestContext, reference string) (models.Booking, error) {
	b, err := s.Bookings.GetByReference(strings.TrimSpace(reference))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !rc.IsAdmin() && b.UserID != int64(rc.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	s.attach(&b)
	return b, nil
}

// List returns bookings; customers are always scoped to their own.
func (s BookingService) List(rc domain.RequestContext, f models.BookingFilter, p *domain.Pagination) ([]models.Booking, error) {
	if !rc.IsAdmin() {
		f.UserID = int64(rc.UserID)
	}
	out, err := s.Bookings.List(f, p)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Confirm moves a pending booking to confirmed (admin action).
func (s BookingService) Confirm(id int64) (models.Booking, error) {
	return s.transition(id, []string{models.BookingPending}, models.BookingConfirmed, "confirm")
}

// Complete moves a confirmed booking to completed (admin action).
func (s BookingService) Complete(id int64) (models.Booking, error) {
	return s.transition(id, []string{models.BookingConfirmed}, models.BookingCompleted, "complete")
}

// Cancel moves a pending or confirmed booking to cancelled. Customers may
// only cancel their own bookings.
func (s BookingService) Cancel(ctx context.Context, rc domain.RequestContext, id int64) (models.Booking, error) {
	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if !rc.IsAdmin() && b.UserID != int64(rc.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	out, err := s.transition(id, []string{models.BookingPending, models.BookingConfirmed}, models.BookingCancelled, "cancel")
	if err != nil {
		return models.Booking{}, err
	}
	// Cancelling releases the seats for this slot.
	capacity := 0
	if out.Route != nil && out.Route.Vessel != nil {
		capacity = out.Route.Vessel.Capacity
	}
	s.Cache.InvalidateSlot(ctx, out.VesselID, out.RouteID, out.TravelDate, out.DepartureTime, capacity)
	return out, nil
}

func (s BookingService) transition(id int64, from []string, to, action string) (models.Booking, error) {
	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	ok, err := s.Bookings.UpdateStatusGuarded(id, from, to)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot %s a %s booking", action, b.Status),
		}
	}
	utils.LogEvent(s.RequestID, "booking", action, fmt.Sprintf("booking_id=%d", id))
	return s.get(id)
}
