package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"seaferry/internal/cache"
	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// CapacityService answers "how many seats remain for this slot" reads. The
// authoritative enforcement happens again inside the booking-creation
// transaction; this path exists for the booking form's live availability
// display and is cached per query tuple.
type CapacityService struct {
	Routes   repositories.RouteRepository
	Bookings repositories.BookingRepository
	Cache    cache.CapacityCache
}

// Check computes the capacity result for one (vessel, route, date, time,
// passengers) tuple, serving a cached value inside the freshness window.
func (s CapacityService) Check(ctx context.Context, vesselID, routeID int64, travelDate, departureTime string, passengers int) (models.CapacityResult, error) {
	if passengers < 1 {
		passengers = 1
	}
	travelDate = strings.TrimSpace(travelDate)
	departureTime = strings.TrimSpace(departureTime)

	if _, err := utils.ParseDate(travelDate); err != nil {
		return models.CapacityResult{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}

	rt, err := s.Routes.GetByID(routeID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CapacityResult{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.CapacityResult{}, domain.InternalError{Err: err}
	}
	if rt.VesselID != vesselID {
		return models.CapacityResult{}, domain.ValidationError{Field: "vessel_id", Msg: "vessel does not serve this route"}
	}
	if len(rt.Schedule) == 0 {
		return models.CapacityResult{}, domain.ValidationError{Field: "time", Msg: "no departure times available"}
	}
	if !rt.HasDeparture(departureTime) {
		return models.CapacityResult{}, domain.ValidationError{Field: "time", Msg: "not a scheduled departure"}
	}

	key := cache.CapacityKey(vesselID, routeID, travelDate, departureTime, passengers)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		return cached, nil
	}

	booked, err := s.Bookings.BookedSeats(routeID, travelDate, departureTime)
	if err != nil {
		return models.CapacityResult{}, domain.InternalError{Err: err}
	}

	capacity := 0
	if rt.Vessel != nil {
		capacity = rt.Vessel.Capacity
	}
	available := capacity - booked
	if available < 0 {
		available = 0
	}

	result := models.CapacityResult{
		VesselCapacity: capacity,
		BookedSeats:    booked,
		AvailableSeats: available,
		Available:      passengers <= available,
	}
	s.Cache.Set(ctx, key, result)
	return result, nil
}
