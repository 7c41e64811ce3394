package models

import "strings"

// RouteStatus values.
const (
	RouteActive   = "active"
	RouteInactive = "inactive"
)

// Vessel is a ferry with a fixed passenger capacity.
type Vessel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	ImageURL string `json:"image_url,omitempty"`
}

// Route is a scheduled origin-destination ferry service with a fixed price
// and vessel assignment. Schedule holds "HH:MM" departure times.
type Route struct {
	ID              int64    `json:"id"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	PriceCents      int64    `json:"price_cents"`
	DurationMinutes int      `json:"duration_minutes"`
	Schedule        []string `json:"schedule"`
	Status          string   `json:"status"`
	VesselID        int64    `json:"vessel_id"`
	Vessel          *Vessel  `json:"vessel,omitempty"`
}

// HasDeparture reports whether t is one of the route's published times.
func (r Route) HasDeparture(t string) bool {
	t = strings.TrimSpace(t)
	for _, s := range r.Schedule {
		if s == t {
			return true
		}
	}
	return false
}

// JoinSchedule serializes departure times for storage.
func JoinSchedule(times []string) string {
	return strings.Join(times, ",")
}

// SplitSchedule parses the stored schedule column, dropping empty entries.
func SplitSchedule(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RouteFilter narrows route listings.
type RouteFilter struct {
	Status string
	Search string
}
