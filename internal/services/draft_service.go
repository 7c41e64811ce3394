package services

import (
	"context"
	"strings"

	"seaferry/internal/cache"
	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/utils"
)

// DraftService bridges an interrupted booking flow: the form snapshot is kept
// in a single per-user slot and restored when the user returns to the same
// route's booking form.
type DraftService struct {
	Store cache.DraftStore
}

// Save overwrites the caller's draft slot.
func (s DraftService) Save(ctx context.Context, userID int64, draft models.PendingBookingDraft) error {
	if draft.RouteID <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "must be positive"}
	}
	if draft.Passengers < 1 {
		draft.Passengers = 1
	}
	draft.TravelDate = strings.TrimSpace(draft.TravelDate)
	draft.DepartureTime = strings.TrimSpace(draft.DepartureTime)
	draft.SavedAt = utils.NowUTC()

	if err := s.Store.Save(ctx, userID, draft); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// GetForRoute returns the stored draft when it references routeID; a draft
// for a different route is ignored for pre-fill but left in place. routeID 0
// matches any stored draft.
func (s DraftService) GetForRoute(ctx context.Context, userID, routeID int64) (models.PendingBookingDraft, bool, error) {
	draft, ok, err := s.Store.Get(ctx, userID)
	if err != nil {
		return models.PendingBookingDraft{}, false, domain.InternalError{Err: err}
	}
	if !ok {
		return models.PendingBookingDraft{}, false, nil
	}
	if routeID > 0 && draft.RouteID != routeID {
		return models.PendingBookingDraft{}, false, nil
	}
	return draft, true, nil
}

// Clear removes the draft unconditionally.
func (s DraftService) Clear(ctx context.Context, userID int64) error {
	if err := s.Store.Clear(ctx, userID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Exists reports slot presence without deserializing.
func (s DraftService) Exists(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.Store.Exists(ctx, userID)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return ok, nil
}
