package services

import (
	"database/sql"
	"errors"
	"strings"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// RouteService owns the route catalog and its vessels.
type RouteService struct {
	Routes  repositories.RouteRepository
	Vessels repositories.VesselRepository
}

func (s RouteService) List(f models.RouteFilter, p *domain.Pagination) ([]models.Route, error) {
	routes, err := s.Routes.List(f, p)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return routes, nil
}

func (s RouteService) Get(id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	rt, err := s.Routes.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

func (s RouteService) validate(rt *models.Route) error {
	rt.Origin = strings.TrimSpace(rt.Origin)
	rt.Destination = strings.TrimSpace(rt.Destination)
	if rt.Origin == "" {
		return domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if rt.Destination == "" {
		return domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if rt.PriceCents <= 0 {
		return domain.ValidationError{Field: "price", Msg: "must be positive"}
	}
	if rt.DurationMinutes <= 0 {
		return domain.ValidationError{Field: "duration_minutes", Msg: "must be positive"}
	}
	for _, t := range rt.Schedule {
		if !utils.ValidClock(t) {
			return domain.ValidationError{Field: "schedule", Msg: "departure times must be HH:MM"}
		}
	}
	switch rt.Status {
	case "":
		rt.Status = models.RouteActive
	case models.RouteActive, models.RouteInactive:
	default:
		return domain.ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	if _, err := s.Vessels.GetByID(rt.VesselID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ValidationError{Field: "vessel_id", Msg: "unknown vessel"}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s RouteService) Create(rt models.Route) (models.Route, error) {
	if err := s.validate(&rt); err != nil {
		return models.Route{}, err
	}
	id, err := s.Routes.Create(rt)
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	return s.Get(id)
}

func (s RouteService) Update(rt models.Route) (models.Route, error) {
	if rt.ID <= 0 {
		return models.Route{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	if err := s.validate(&rt); err != nil {
		return models.Route{}, err
	}
	if err := s.Routes.Update(rt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route"}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return s.Get(rt.ID)
}

func (s RouteService) Delete(id int64) error {
	if err := s.Routes.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "route"}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}
