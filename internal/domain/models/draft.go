package models

import "time"

// PendingBookingDraft is a snapshot of an in-progress booking form, kept in a
// single per-user slot so the form survives an authentication redirect.
// Saving overwrites, never accumulates.
type PendingBookingDraft struct {
	RouteID        int64     `json:"route_id"`
	TravelDate     string    `json:"travel_date"`
	DepartureTime  string    `json:"departure_time"`
	Passengers     int       `json:"passengers"`
	SpecialRequest string    `json:"special_requirements,omitempty"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	SavedAt        time.Time `json:"saved_at"`
}
